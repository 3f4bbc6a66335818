package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanType identifies the interest plan of a time deposit.
//
// Unknown values are carried through unchanged: the calculator treats
// anything outside the known set as earning no interest rather than as
// an error.
type PlanType string

const (
	PlanBasic   PlanType = "basic"
	PlanStudent PlanType = "student"
	PlanPremium PlanType = "premium"
)

// Valid reports whether p is one of the known plan types.
func (p PlanType) Valid() bool {
	switch p {
	case PlanBasic, PlanStudent, PlanPremium:
		return true
	}
	return false
}

// TimeDeposit represents a time deposit account.
type TimeDeposit struct {
	ID          string
	PlanType    PlanType
	Balance     decimal.Decimal
	Days        int
	Withdrawals []*Withdrawal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidateWithdrawal checks if amount can be withdrawn from the deposit.
func (d *TimeDeposit) ValidateWithdrawal(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if d.Balance.Sub(amount).IsNegative() {
		return ErrInsufficientBalance
	}
	return nil
}

// ApplyWithdrawal returns the balance after withdrawing amount.
func (d *TimeDeposit) ApplyWithdrawal(amount decimal.Decimal) decimal.Decimal {
	return d.Balance.Sub(amount)
}

// Withdrawal represents money taken out of a time deposit.
type Withdrawal struct {
	ID            string
	TimeDepositID string
	Amount        decimal.Decimal
	Date          time.Time
}
