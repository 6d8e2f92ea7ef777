package expenses

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/routeledger/routeledger/internal/ledger"
	"github.com/routeledger/routeledger/internal/platform/db"
	"github.com/routeledger/routeledger/internal/shared"
)

type Repository interface {
	ListTripExpenses(ctx context.Context, tripID string) ([]TripExpense, error)
	ListMaintenance(ctx context.Context, vehicleNo string, unpaidOnly bool) ([]MaintenanceExpense, error)
	GetMaintenance(ctx context.Context, id int64) (MaintenanceExpense, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository scopes an expense insert together with its auto-posted
// ledger entry so the pair commits or fails as one.
type TxRepository interface {
	InsertTripExpense(ctx context.Context, expense TripExpense) (TripExpense, error)
	InsertMaintenance(ctx context.Context, expense MaintenanceExpense) (MaintenanceExpense, error)
	InsertLedgerEntry(ctx context.Context, in ledger.PostingInput) (ledger.Entry, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const tripExpenseColumns = `id, trip_id, date, category_id, paid_via_account_id, description, amount, bill_no, created_at`

const maintenanceColumns = `id, date, vehicle_no, workshop_id, category_id, description, shop, amount,
is_paid, payment_date, paid_via_account_id, created_at, updated_at`

func scanTripExpense(row pgx.Row) (TripExpense, error) {
	var e TripExpense
	err := row.Scan(&e.ID, &e.TripID, &e.Date, &e.CategoryID, &e.PaidViaAccountID, &e.Description, &e.Amount, &e.BillNo, &e.CreatedAt)
	return e, err
}

func scanMaintenance(row pgx.Row) (MaintenanceExpense, error) {
	var e MaintenanceExpense
	err := row.Scan(&e.ID, &e.Date, &e.VehicleNo, &e.WorkshopID, &e.CategoryID, &e.Description, &e.Shop, &e.Amount,
		&e.IsPaid, &e.PaymentDate, &e.PaidViaAccountID, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (r *repository) ListTripExpenses(ctx context.Context, tripID string) ([]TripExpense, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+tripExpenseColumns+` FROM trip_expenses
WHERE trip_id = $1 ORDER BY date, id`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []TripExpense
	for rows.Next() {
		e, err := scanTripExpense(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (r *repository) ListMaintenance(ctx context.Context, vehicleNo string, unpaidOnly bool) ([]MaintenanceExpense, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_expenses WHERE 1=1`
	args := []any{}
	if vehicleNo != "" {
		query += ` AND vehicle_no = $1`
		args = append(args, vehicleNo)
	}
	if unpaidOnly {
		query += ` AND NOT is_paid`
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []MaintenanceExpense
	for rows.Next() {
		e, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (r *repository) GetMaintenance(ctx context.Context, id int64) (MaintenanceExpense, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+maintenanceColumns+` FROM maintenance_expenses WHERE id = $1`, id)
	e, err := scanMaintenance(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return MaintenanceExpense{}, shared.ErrNotFound
	}
	return e, err
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

func (r *txRepository) InsertTripExpense(ctx context.Context, expense TripExpense) (TripExpense, error) {
	row := r.tx.QueryRow(ctx, `INSERT INTO trip_expenses (trip_id, date, category_id, paid_via_account_id, description, amount, bill_no)
VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING `+tripExpenseColumns,
		expense.TripID, expense.Date, expense.CategoryID, expense.PaidViaAccountID, expense.Description,
		shared.Round2(expense.Amount), expense.BillNo)
	created, err := scanTripExpense(row)
	if err != nil {
		return TripExpense{}, db.MapConstraintError(err)
	}
	return created, nil
}

func (r *txRepository) InsertMaintenance(ctx context.Context, expense MaintenanceExpense) (MaintenanceExpense, error) {
	row := r.tx.QueryRow(ctx, `INSERT INTO maintenance_expenses (date, vehicle_no, workshop_id, category_id, description, shop, amount, is_paid, payment_date, paid_via_account_id)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) RETURNING `+maintenanceColumns,
		expense.Date, expense.VehicleNo, expense.WorkshopID, expense.CategoryID, expense.Description, expense.Shop,
		shared.Round2(expense.Amount), expense.IsPaid, expense.PaymentDate, expense.PaidViaAccountID)
	created, err := scanMaintenance(row)
	if err != nil {
		return MaintenanceExpense{}, db.MapConstraintError(err)
	}
	return created, nil
}

func (r *txRepository) InsertLedgerEntry(ctx context.Context, in ledger.PostingInput) (ledger.Entry, error) {
	return ledger.InsertEntry(ctx, r.tx, in)
}
