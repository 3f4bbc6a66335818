package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/domain"
)

const depositListCacheKey = "time_deposits:all"

// DepositUseCase handles time deposit business logic.
type DepositUseCase struct {
	txManager   TransactionManager
	depositRepo DepositRepository
	calculator  *domain.Calculator
	idGen       IDGenerator
	retrier     Retrier
	cache       Cache
	cacheTTL    time.Duration
}

// NewDepositUseCase creates a new DepositUseCase. retrier and cache are
// optional; pass nil to run without retries or list caching.
func NewDepositUseCase(
	txManager TransactionManager,
	depositRepo DepositRepository,
	idGen IDGenerator,
	retrier Retrier,
	cache Cache,
	cacheTTL time.Duration,
) *DepositUseCase {
	return &DepositUseCase{
		txManager:   txManager,
		depositRepo: depositRepo,
		calculator:  domain.NewCalculator(),
		idGen:       idGen,
		retrier:     retrier,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

// UpdateBalancesResult reports the outcome of an accrual run.
type UpdateBalancesResult struct {
	Total        int
	UpdatedCount int
}

// UpdateAllBalances runs interest accrual over every time deposit.
//
// All deposits are locked and updated inside a single transaction, so an
// interrupted run never persists a half-processed sequence. The repository
// supplies deposits in stable id order; the calculator carries interest
// across the whole sequence, so that ordering must match between runs.
func (uc *DepositUseCase) UpdateAllBalances(ctx context.Context) (*UpdateBalancesResult, error) {
	var result *UpdateBalancesResult

	op := func() error {
		res, err := uc.updateAllBalancesTx(ctx)
		if err != nil {
			return err
		}
		result = res
		return nil
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, op)
	} else {
		err = op()
	}
	if err != nil {
		return nil, err
	}

	uc.invalidateListCache(ctx)

	return result, nil
}

func (uc *DepositUseCase) updateAllBalancesTx(ctx context.Context) (*UpdateBalancesResult, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	deposits, err := uc.depositRepo.GetAllForUpdate(ctx, tx)
	if err != nil {
		return nil, err
	}

	if len(deposits) == 0 {
		return &UpdateBalancesResult{}, nil
	}

	before := make(map[string]decimal.Decimal, len(deposits))
	for _, td := range deposits {
		before[td.ID] = td.Balance
	}

	uc.calculator.UpdateBalances(deposits)

	now := time.Now().UTC()
	if err := uc.depositRepo.UpdateBalances(ctx, tx, deposits, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	updated := 0
	for _, td := range deposits {
		if !td.Balance.Equal(before[td.ID]) {
			updated++
		}
	}

	return &UpdateBalancesResult{Total: len(deposits), UpdatedCount: updated}, nil
}

// ListDeposits returns all time deposits with their withdrawals, in stable
// id order, read through the cache when one is configured.
func (uc *DepositUseCase) ListDeposits(ctx context.Context) ([]*domain.TimeDeposit, error) {
	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, depositListCacheKey); err == nil && len(data) > 0 {
			var deposits []*domain.TimeDeposit
			if err := json.Unmarshal(data, &deposits); err == nil {
				return deposits, nil
			}
		}
	}

	deposits, err := uc.depositRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(deposits); err == nil {
			// Cache write failures only cost the next read a DB round trip.
			_ = uc.cache.Set(ctx, depositListCacheKey, data, uc.cacheTTL)
		}
	}

	return deposits, nil
}

// GetDeposit retrieves a time deposit by ID.
func (uc *DepositUseCase) GetDeposit(ctx context.Context, id string) (*domain.TimeDeposit, error) {
	return uc.depositRepo.GetByID(ctx, id)
}

// CreateDepositInput represents input for creating a time deposit.
type CreateDepositInput struct {
	PlanType string
	Balance  decimal.Decimal
	Days     int
}

// CreateDeposit creates a new time deposit.
func (uc *DepositUseCase) CreateDeposit(ctx context.Context, input CreateDepositInput) (*domain.TimeDeposit, error) {
	plan := domain.PlanType(input.PlanType)
	if !plan.Valid() {
		return nil, domain.ErrInvalidPlanType
	}
	if input.Balance.IsNegative() {
		return nil, domain.ErrNegativeBalance
	}
	if input.Days < 0 {
		return nil, domain.ErrNegativeDays
	}

	now := time.Now().UTC()

	deposit := &domain.TimeDeposit{
		ID:        uc.idGen.Generate(),
		PlanType:  plan,
		Balance:   input.Balance,
		Days:      input.Days,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.depositRepo.Create(ctx, deposit); err != nil {
		return nil, err
	}

	uc.invalidateListCache(ctx)

	return deposit, nil
}

// CreateWithdrawalInput represents input for withdrawing from a deposit.
type CreateWithdrawalInput struct {
	TimeDepositID string
	Amount        decimal.Decimal
	Date          time.Time
}

// CreateWithdrawal withdraws an amount from a time deposit, recording the
// withdrawal and decrementing the balance atomically.
func (uc *DepositUseCase) CreateWithdrawal(ctx context.Context, input CreateWithdrawalInput) (*domain.Withdrawal, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	deposit, err := uc.depositRepo.GetByIDForUpdate(ctx, tx, input.TimeDepositID)
	if err != nil {
		return nil, err
	}

	if err := deposit.ValidateWithdrawal(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	date := input.Date
	if date.IsZero() {
		date = now
	}

	withdrawal := &domain.Withdrawal{
		ID:            uc.idGen.Generate(),
		TimeDepositID: deposit.ID,
		Amount:        input.Amount,
		Date:          date,
	}

	if err := uc.depositRepo.CreateWithdrawal(ctx, tx, withdrawal); err != nil {
		return nil, err
	}

	newBalance := deposit.ApplyWithdrawal(input.Amount)
	if err := uc.depositRepo.UpdateBalance(ctx, tx, deposit.ID, newBalance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.invalidateListCache(ctx)

	return withdrawal, nil
}

func (uc *DepositUseCase) invalidateListCache(ctx context.Context) {
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, depositListCacheKey)
	}
}
