package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/domain"
	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/usecase"
)

type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DepositRepository implements usecase.DepositRepository.
type DepositRepository struct {
	db dbtx
}

// NewDepositRepository creates a new DepositRepository.
func NewDepositRepository(pool *pgxpool.Pool) *DepositRepository {
	return newDepositRepositoryWithDB(pool)
}

func newDepositRepositoryWithDB(db dbtx) *DepositRepository {
	return &DepositRepository{db: db}
}

const depositColumns = `id, plan_type, days, balance, created_at, updated_at`

// Create inserts a new time deposit.
func (r *DepositRepository) Create(ctx context.Context, deposit *domain.TimeDeposit) error {
	query := `
		INSERT INTO time_deposits (id, plan_type, days, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		deposit.ID,
		string(deposit.PlanType),
		deposit.Days,
		decimalToNumeric(deposit.Balance),
		timeToPgTimestamptz(deposit.CreatedAt),
		timeToPgTimestamptz(deposit.UpdatedAt),
	)

	return err
}

// GetByID retrieves a time deposit with its withdrawals.
func (r *DepositRepository) GetByID(ctx context.Context, id string) (*domain.TimeDeposit, error) {
	query := `SELECT ` + depositColumns + ` FROM time_deposits WHERE id = $1`

	deposit, err := scanDeposit(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDepositNotFound
		}

		return nil, err
	}

	withdrawals, err := r.getWithdrawals(ctx, id)
	if err != nil {
		return nil, err
	}
	deposit.Withdrawals = withdrawals

	return deposit, nil
}

// GetByIDForUpdate retrieves a time deposit with a FOR UPDATE lock.
func (r *DepositRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.TimeDeposit, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + depositColumns + ` FROM time_deposits WHERE id = $1 FOR UPDATE`

	deposit, err := scanDeposit(pgxTx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDepositNotFound
		}

		return nil, err
	}

	return deposit, nil
}

// GetAll retrieves every time deposit with its withdrawals, ordered by id.
func (r *DepositRepository) GetAll(ctx context.Context) ([]*domain.TimeDeposit, error) {
	query := `SELECT ` + depositColumns + ` FROM time_deposits ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	deposits, err := scanDeposits(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachWithdrawals(ctx, deposits); err != nil {
		return nil, err
	}

	return deposits, nil
}

// GetAllForUpdate retrieves every time deposit inside tx with row locks held.
// The fixed id ordering matters twice over: it keeps lock acquisition
// deterministic and it is the sequence the interest calculator folds over.
func (r *DepositRepository) GetAllForUpdate(ctx context.Context, tx usecase.Transaction) ([]*domain.TimeDeposit, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + depositColumns + ` FROM time_deposits ORDER BY id FOR UPDATE`

	rows, err := pgxTx.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	return scanDeposits(rows)
}

// UpdateBalance updates the balance of a single time deposit.
func (r *DepositRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `UPDATE time_deposits SET balance = $2, updated_at = $3 WHERE id = $1`

	tag, err := pgxTx.Exec(ctx, query, id, decimalToNumeric(balance), timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDepositNotFound
	}

	return nil
}

// UpdateBalances persists the balances of all given deposits inside tx.
func (r *DepositRepository) UpdateBalances(ctx context.Context, tx usecase.Transaction, deposits []*domain.TimeDeposit, updatedAt time.Time) error {
	for _, td := range deposits {
		if err := r.UpdateBalance(ctx, tx, td.ID, td.Balance, updatedAt); err != nil {
			return err
		}
	}

	return nil
}

// CreateWithdrawal inserts a withdrawal record inside tx.
func (r *DepositRepository) CreateWithdrawal(ctx context.Context, tx usecase.Transaction, withdrawal *domain.Withdrawal) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO withdrawals (id, time_deposit_id, amount, date)
		VALUES ($1, $2, $3, $4)
	`

	_, err := pgxTx.Exec(ctx, query,
		withdrawal.ID,
		withdrawal.TimeDepositID,
		decimalToNumeric(withdrawal.Amount),
		pgtype.Date{Time: withdrawal.Date, Valid: true},
	)

	return err
}

func (r *DepositRepository) getWithdrawals(ctx context.Context, depositID string) ([]*domain.Withdrawal, error) {
	query := `
		SELECT id, time_deposit_id, amount, date
		FROM withdrawals
		WHERE time_deposit_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, depositID)
	if err != nil {
		return nil, err
	}

	return scanWithdrawals(rows)
}

// attachWithdrawals loads withdrawals for all deposits in one query and
// distributes them by deposit id.
func (r *DepositRepository) attachWithdrawals(ctx context.Context, deposits []*domain.TimeDeposit) error {
	if len(deposits) == 0 {
		return nil
	}

	query := `
		SELECT id, time_deposit_id, amount, date
		FROM withdrawals
		ORDER BY time_deposit_id, id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return err
	}

	withdrawals, err := scanWithdrawals(rows)
	if err != nil {
		return err
	}

	byDeposit := make(map[string][]*domain.Withdrawal, len(deposits))
	for _, w := range withdrawals {
		byDeposit[w.TimeDepositID] = append(byDeposit[w.TimeDepositID], w)
	}

	for _, td := range deposits {
		td.Withdrawals = byDeposit[td.ID]
	}

	return nil
}

func scanDeposit(row pgx.Row) (*domain.TimeDeposit, error) {
	var (
		td        domain.TimeDeposit
		planType  string
		balance   pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	if err := row.Scan(&td.ID, &planType, &td.Days, &balance, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	td.PlanType = domain.PlanType(planType)
	td.Balance = numericToDecimal(balance)
	td.CreatedAt = createdAt.Time
	td.UpdatedAt = updatedAt.Time

	return &td, nil
}

func scanDeposits(rows pgx.Rows) ([]*domain.TimeDeposit, error) {
	defer rows.Close()

	var deposits []*domain.TimeDeposit
	for rows.Next() {
		td, err := scanDeposit(rows)
		if err != nil {
			return nil, err
		}
		deposits = append(deposits, td)
	}

	return deposits, rows.Err()
}

func scanWithdrawals(rows pgx.Rows) ([]*domain.Withdrawal, error) {
	defer rows.Close()

	var withdrawals []*domain.Withdrawal
	for rows.Next() {
		var (
			w      domain.Withdrawal
			amount pgtype.Numeric
			date   pgtype.Date
		)

		if err := rows.Scan(&w.ID, &w.TimeDepositID, &amount, &date); err != nil {
			return nil, err
		}

		w.Amount = numericToDecimal(amount)
		w.Date = date.Time
		withdrawals = append(withdrawals, &w)
	}

	return withdrawals, rows.Err()
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
