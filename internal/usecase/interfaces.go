package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/domain"
)

// DepositRepository defines data access for time deposits and their withdrawals.
type DepositRepository interface {
	Create(ctx context.Context, deposit *domain.TimeDeposit) error
	GetByID(ctx context.Context, id string) (*domain.TimeDeposit, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.TimeDeposit, error)
	// GetAll returns every deposit with its withdrawals, ordered by id.
	GetAll(ctx context.Context) ([]*domain.TimeDeposit, error)
	// GetAllForUpdate returns every deposit ordered by id with row locks held
	// for the duration of tx. The ordering is load-bearing: the interest
	// calculator's result depends on it.
	GetAllForUpdate(ctx context.Context, tx Transaction) ([]*domain.TimeDeposit, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateBalances(ctx context.Context, tx Transaction, deposits []*domain.TimeDeposit, updatedAt time.Time) error
	CreateWithdrawal(ctx context.Context, tx Transaction, withdrawal *domain.Withdrawal) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation on transient database failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
