package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/routeledger/routeledger/internal/shared"
)

// Querier is the subset of pgx both a pool and a transaction satisfy; it
// lets expense repositories insert validated entries inside their own
// transactional scope.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const entryColumns = `id, kind, date, description, from_account_id, to_account_id, withdrawal, deposit,
related_trip_id, related_trip_expense_id, related_maintenance_id, created_at`

// InsertEntry appends one validated entry. Callers are responsible for
// validating the input first; the repository and service never skip it.
func InsertEntry(ctx context.Context, q Querier, in PostingInput) (Entry, error) {
	row := q.QueryRow(ctx, `INSERT INTO account_transactions
(kind, date, description, from_account_id, to_account_id, withdrawal, deposit, related_trip_id, related_trip_expense_id, related_maintenance_id)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) RETURNING `+entryColumns,
		in.Kind, in.Date, in.Description, in.FromAccountID, in.ToAccountID,
		shared.Round2(in.Withdrawal), shared.Round2(in.Deposit),
		in.RelatedTripID, in.RelatedTripExpenseID, in.RelatedMaintenanceID)
	return scanEntry(row)
}

func scanEntry(row pgx.Row) (Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.Kind, &e.Date, &e.Description, &e.FromAccountID, &e.ToAccountID,
		&e.Withdrawal, &e.Deposit, &e.RelatedTripID, &e.RelatedTripExpenseID, &e.RelatedMaintenanceID, &e.CreatedAt)
	return e, err
}

type Repository interface {
	ListByAccount(ctx context.Context, accountID int64, asOf *time.Time) ([]Entry, error)
	ListByTrip(ctx context.Context, tripID string) ([]Entry, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes the operations available within one posting
// transaction, including the maintenance-expense back-sync that must commit
// with its triggering entry.
type TxRepository interface {
	InsertEntry(ctx context.Context, in PostingInput) (Entry, error)
	MaintenanceIsPaid(ctx context.Context, maintenanceID int64) (bool, error)
	MarkMaintenancePaid(ctx context.Context, maintenanceID int64, paymentDate time.Time, accountID *int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) ListByAccount(ctx context.Context, accountID int64, asOf *time.Time) ([]Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM account_transactions
WHERE (from_account_id = $1 OR to_account_id = $1)`
	args := []any{accountID}
	if asOf != nil {
		query += ` AND date <= $2`
		args = append(args, *asOf)
	}
	// Chronological, insertion order as tiebreak, mirrors how the running
	// balance is replayed.
	query += ` ORDER BY date, id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

func (r *repository) ListByTrip(ctx context.Context, tripID string) ([]Entry, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+entryColumns+` FROM account_transactions
WHERE related_trip_id = $1 ORDER BY date, id`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

func collectEntries(rows pgx.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return err
	}
	if err := fn(ctx, &txRepository{tx: tx}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) InsertEntry(ctx context.Context, in PostingInput) (Entry, error) {
	return InsertEntry(ctx, r.tx, in)
}

func (r *txRepository) MaintenanceIsPaid(ctx context.Context, maintenanceID int64) (bool, error) {
	var paid bool
	err := r.tx.QueryRow(ctx, `SELECT is_paid FROM maintenance_expenses WHERE id = $1 FOR UPDATE`, maintenanceID).Scan(&paid)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, shared.ErrNotFound
	}
	return paid, err
}

func (r *txRepository) MarkMaintenancePaid(ctx context.Context, maintenanceID int64, paymentDate time.Time, accountID *int64) error {
	_, err := r.tx.Exec(ctx, `UPDATE maintenance_expenses
SET is_paid = TRUE, payment_date = $1, paid_via_account_id = $2, updated_at = now()
WHERE id = $3`, paymentDate, accountID, maintenanceID)
	return err
}
