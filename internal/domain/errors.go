package domain

import "errors"

var (
	// Deposit errors
	ErrDepositNotFound = errors.New("time deposit not found")
	ErrInvalidPlanType = errors.New("plan type must be basic, student or premium")
	ErrNegativeBalance = errors.New("balance must not be negative")
	ErrNegativeDays    = errors.New("days must not be negative")

	// Withdrawal errors
	ErrWithdrawalNotFound  = errors.New("withdrawal not found")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientBalance = errors.New("insufficient balance for withdrawal")
)
