package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/domain"
)

func TestDepositFromDomain(t *testing.T) {
	deposit := &domain.TimeDeposit{
		ID:       "td-1",
		PlanType: domain.PlanStudent,
		Balance:  decimal.RequireFromString("2005.83"),
		Days:     60,
		Withdrawals: []*domain.Withdrawal{
			{
				ID:            "w-1",
				TimeDepositID: "td-1",
				Amount:        decimal.RequireFromString("50"),
				Date:          time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	resp := DepositFromDomain(deposit)
	if resp.ID != deposit.ID || resp.PlanType != "student" || resp.Days != 60 {
		t.Fatalf("unexpected deposit response: %+v", resp)
	}
	if !resp.Balance.Equal(deposit.Balance) {
		t.Fatalf("expected balance to carry over, got %s", resp.Balance)
	}
	if len(resp.Withdrawals) != 1 || resp.Withdrawals[0].Date != "2024-03-15" {
		t.Fatalf("unexpected withdrawals: %+v", resp.Withdrawals)
	}

	list := DepositsFromDomain([]*domain.TimeDeposit{deposit})
	if len(list) != 1 || list[0].ID != deposit.ID {
		t.Fatalf("DepositsFromDomain returned %+v", list)
	}
}

func TestDepositResponse_MarshalsCamelCase(t *testing.T) {
	resp := DepositFromDomain(&domain.TimeDeposit{
		ID:       "td-1",
		PlanType: domain.PlanBasic,
		Balance:  decimal.RequireFromString("1000.83"),
		Days:     45,
	})

	body, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	s := string(body)
	if !strings.Contains(s, `"planType":"basic"`) {
		t.Fatalf("expected camelCase planType field, got %s", s)
	}
	if !strings.Contains(s, `"withdrawals":[]`) {
		t.Fatalf("expected empty withdrawals array, got %s", s)
	}
}
