package dto

import (
	"github.com/shopspring/decimal"

	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/domain"
)

// WithdrawalResponse represents a withdrawal in API responses.
type WithdrawalResponse struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
}

// TimeDepositResponse represents a time deposit in API responses.
// planType is camelCase to match the original API contract.
type TimeDepositResponse struct {
	ID          string                `json:"id"`
	PlanType    string                `json:"planType"`
	Balance     decimal.Decimal       `json:"balance"`
	Days        int                   `json:"days"`
	Withdrawals []*WithdrawalResponse `json:"withdrawals"`
}

// DepositFromDomain converts a domain deposit to a response.
func DepositFromDomain(td *domain.TimeDeposit) *TimeDepositResponse {
	withdrawals := make([]*WithdrawalResponse, len(td.Withdrawals))
	for i, w := range td.Withdrawals {
		withdrawals[i] = &WithdrawalResponse{
			ID:     w.ID,
			Amount: w.Amount,
			Date:   w.Date.Format("2006-01-02"),
		}
	}

	return &TimeDepositResponse{
		ID:          td.ID,
		PlanType:    string(td.PlanType),
		Balance:     td.Balance,
		Days:        td.Days,
		Withdrawals: withdrawals,
	}
}

// DepositsFromDomain converts domain deposits to responses.
func DepositsFromDomain(deposits []*domain.TimeDeposit) []*TimeDepositResponse {
	result := make([]*TimeDepositResponse, len(deposits))
	for i, td := range deposits {
		result[i] = DepositFromDomain(td)
	}
	return result
}

// UpdateBalancesResponse reports an accrual run, matching the original
// updateBalances response shape.
type UpdateBalancesResponse struct {
	Message      string `json:"message"`
	UpdatedCount int    `json:"updatedCount"`
	Status       string `json:"status"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
