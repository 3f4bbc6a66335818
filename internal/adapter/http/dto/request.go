package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/usecase"
)

// CreateDepositRequest represents a request to create a time deposit.
// Field names follow the original API contract (camelCase planType).
type CreateDepositRequest struct {
	PlanType string          `json:"planType"`
	Balance  decimal.Decimal `json:"balance"`
	Days     int             `json:"days"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateDepositRequest) ToUseCaseInput() usecase.CreateDepositInput {
	return usecase.CreateDepositInput{
		PlanType: r.PlanType,
		Balance:  r.Balance,
		Days:     r.Days,
	}
}

// CreateWithdrawalRequest represents a request to withdraw from a deposit.
type CreateWithdrawalRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Date   *time.Time      `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateWithdrawalRequest) ToUseCaseInput(depositID string) usecase.CreateWithdrawalInput {
	input := usecase.CreateWithdrawalInput{
		TimeDepositID: depositID,
		Amount:        r.Amount,
	}
	if r.Date != nil {
		input.Date = *r.Date
	}
	return input
}
