package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPlanType_Valid(t *testing.T) {
	tests := []struct {
		plan  PlanType
		valid bool
	}{
		{PlanBasic, true},
		{PlanStudent, true},
		{PlanPremium, true},
		{PlanType("gold"), false},
		{PlanType(""), false},
	}

	for _, tt := range tests {
		if got := tt.plan.Valid(); got != tt.valid {
			t.Errorf("PlanType(%q).Valid() = %v, want %v", tt.plan, got, tt.valid)
		}
	}
}

func TestTimeDeposit_ValidateWithdrawal(t *testing.T) {
	tests := []struct {
		name    string
		balance decimal.Decimal
		amount  decimal.Decimal
		wantErr error
	}{
		{
			name:    "withdraw less than balance",
			balance: decimal.NewFromInt(100),
			amount:  decimal.NewFromInt(50),
		},
		{
			name:    "withdraw exact balance",
			balance: decimal.NewFromInt(100),
			amount:  decimal.NewFromInt(100),
		},
		{
			name:    "withdraw more than balance",
			balance: decimal.NewFromInt(100),
			amount:  decimal.NewFromInt(150),
			wantErr: ErrInsufficientBalance,
		},
		{
			name:    "withdraw zero",
			balance: decimal.NewFromInt(100),
			amount:  decimal.Zero,
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "withdraw negative amount",
			balance: decimal.NewFromInt(100),
			amount:  decimal.NewFromInt(-10),
			wantErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			td := &TimeDeposit{Balance: tt.balance}

			err := td.ValidateWithdrawal(tt.amount)

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateWithdrawal() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTimeDeposit_ApplyWithdrawal(t *testing.T) {
	td := &TimeDeposit{Balance: decimal.RequireFromString("100.50")}

	got := td.ApplyWithdrawal(decimal.RequireFromString("25.25"))

	if got.String() != "75.25" {
		t.Errorf("ApplyWithdrawal() = %s, want 75.25", got)
	}
}
