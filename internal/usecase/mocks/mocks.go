package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/domain"
	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/usecase"
)

// MockDepositRepository is a mock implementation of DepositRepository.
type MockDepositRepository struct {
	mu       sync.RWMutex
	deposits map[string]*domain.TimeDeposit
	order    []string

	CreateFunc           func(ctx context.Context, deposit *domain.TimeDeposit) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.TimeDeposit, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.TimeDeposit, error)
	GetAllFunc           func(ctx context.Context) ([]*domain.TimeDeposit, error)
	GetAllForUpdateFunc  func(ctx context.Context, tx usecase.Transaction) ([]*domain.TimeDeposit, error)
	UpdateBalanceFunc    func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateBalancesFunc   func(ctx context.Context, tx usecase.Transaction, deposits []*domain.TimeDeposit, updatedAt time.Time) error
	CreateWithdrawalFunc func(ctx context.Context, tx usecase.Transaction, withdrawal *domain.Withdrawal) error
}

func NewMockDepositRepository() *MockDepositRepository {
	return &MockDepositRepository{
		deposits: make(map[string]*domain.TimeDeposit),
	}
}

// Seed inserts deposits directly into the backing store, preserving order.
func (m *MockDepositRepository) Seed(deposits ...*domain.TimeDeposit) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, td := range deposits {
		if _, ok := m.deposits[td.ID]; !ok {
			m.order = append(m.order, td.ID)
		}
		m.deposits[td.ID] = td
	}
}

func (m *MockDepositRepository) Create(ctx context.Context, deposit *domain.TimeDeposit) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, deposit)
	}
	m.Seed(deposit)
	return nil
}

func (m *MockDepositRepository) GetByID(ctx context.Context, id string) (*domain.TimeDeposit, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if td, ok := m.deposits[id]; ok {
		return td, nil
	}
	return nil, domain.ErrDepositNotFound
}

func (m *MockDepositRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.TimeDeposit, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockDepositRepository) GetAll(ctx context.Context) ([]*domain.TimeDeposit, error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	deposits := make([]*domain.TimeDeposit, 0, len(m.order))
	for _, id := range m.order {
		deposits = append(deposits, m.deposits[id])
	}
	return deposits, nil
}

func (m *MockDepositRepository) GetAllForUpdate(ctx context.Context, tx usecase.Transaction) ([]*domain.TimeDeposit, error) {
	if m.GetAllForUpdateFunc != nil {
		return m.GetAllForUpdateFunc(ctx, tx)
	}
	return m.GetAll(ctx)
}

func (m *MockDepositRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	td, ok := m.deposits[id]
	if !ok {
		return domain.ErrDepositNotFound
	}
	td.Balance = balance
	td.UpdatedAt = updatedAt
	return nil
}

func (m *MockDepositRepository) UpdateBalances(ctx context.Context, tx usecase.Transaction, deposits []*domain.TimeDeposit, updatedAt time.Time) error {
	if m.UpdateBalancesFunc != nil {
		return m.UpdateBalancesFunc(ctx, tx, deposits, updatedAt)
	}
	for _, td := range deposits {
		if err := m.UpdateBalance(ctx, tx, td.ID, td.Balance, updatedAt); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockDepositRepository) CreateWithdrawal(ctx context.Context, tx usecase.Transaction, withdrawal *domain.Withdrawal) error {
	if m.CreateWithdrawalFunc != nil {
		return m.CreateWithdrawalFunc(ctx, tx, withdrawal)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	td, ok := m.deposits[withdrawal.TimeDepositID]
	if !ok {
		return domain.ErrDepositNotFound
	}
	td.Withdrawals = append(td.Withdrawals, withdrawal)
	return nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	m.Committed = true
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if !m.Committed {
		m.RolledBack = true
	}
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	LastTx *MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.LastTx = &MockTransaction{}
	return m.LastTx, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string

	mu   sync.Mutex
	next int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return "mock-id-" + string(rune('0'+m.next))
}

// MockRetrier is a Retrier that invokes the operation once.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error

	Calls int
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	m.Calls++
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockCache is an in-memory Cache implementation.
type MockCache struct {
	mu      sync.RWMutex
	entries map[string][]byte

	Gets    int
	Sets    int
	Deletes int
}

func NewMockCache() *MockCache {
	return &MockCache{entries: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Gets++
	return m.entries[key], nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sets++
	m.entries[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deletes++
	delete(m.entries, key)
	return nil
}
