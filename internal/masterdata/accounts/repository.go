package accounts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/routeledger/routeledger/internal/platform/db"
	"github.com/routeledger/routeledger/internal/shared"
)

type Repository interface {
	List(ctx context.Context, activeOnly bool) ([]Account, error)
	Get(ctx context.Context, id int64) (Account, error)
	Create(ctx context.Context, account Account) (Account, error)
	Update(ctx context.Context, id int64, account Account) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const accountColumns = `id, name, account_type, initial_balance, is_active, created_at, updated_at`

func scanAccount(row pgx.Row) (Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.Name, &a.Type, &a.InitialBalance, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	a, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, shared.ErrNotFound
	}
	return a, err
}

func (r *repository) Create(ctx context.Context, account Account) (Account, error) {
	row := r.pool.QueryRow(ctx, `INSERT INTO accounts (name, account_type, initial_balance, is_active)
VALUES ($1,$2,$3,$4) RETURNING `+accountColumns,
		account.Name, account.Type, account.InitialBalance, account.IsActive)
	created, err := scanAccount(row)
	if err != nil {
		return Account{}, db.MapConstraintError(err)
	}
	return created, nil
}

// Update never touches initial_balance: the opening balance is fixed at
// creation so derived balances stay stable.
func (r *repository) Update(ctx context.Context, id int64, account Account) error {
	tag, err := r.pool.Exec(ctx, `UPDATE accounts SET name=$1, account_type=$2, is_active=$3, updated_at=now()
WHERE id=$4`, account.Name, account.Type, account.IsActive, id)
	if err != nil {
		return db.MapConstraintError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
