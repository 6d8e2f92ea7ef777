package drivers

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/routeledger/routeledger/internal/platform/db"
	"github.com/routeledger/routeledger/internal/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Driver, int, error)
	Get(ctx context.Context, driverID string) (Driver, error)
	Create(ctx context.Context, driver Driver) (Driver, error)
	Update(ctx context.Context, driverID string, driver Driver) error
	Delete(ctx context.Context, driverID string) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const driverColumns = `driver_id, name, mobile, license_no, license_expiry, fixed_salary, wage_rate, is_active, created_at, updated_at`

func scanDriver(row pgx.Row) (Driver, error) {
	var d Driver
	err := row.Scan(&d.DriverID, &d.Name, &d.Mobile, &d.LicenseNo, &d.LicenseExpiry,
		&d.FixedSalary, &d.WageRate, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Driver, int, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM drivers WHERE 1=1`
	args := []any{}
	if filters.Search != "" {
		query += ` AND (driver_id ILIKE $1 OR name ILIKE $1 OR license_no ILIKE $1)`
		countQuery += ` AND (driver_id ILIKE $1 OR name ILIKE $1 OR license_no ILIKE $1)`
		args = append(args, "%"+filters.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY driver_id`
	if filters.Limit > 0 {
		args = append(args, filters.Limit, filters.Offset())
		if filters.Search != "" {
			query += ` LIMIT $2 OFFSET $3`
		} else {
			query += ` LIMIT $1 OFFSET $2`
		}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, d)
	}
	return result, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, driverID string) (Driver, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE driver_id = $1`, driverID)
	d, err := scanDriver(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Driver{}, shared.ErrNotFound
	}
	return d, err
}

func (r *repository) Create(ctx context.Context, driver Driver) (Driver, error) {
	row := r.pool.QueryRow(ctx, `INSERT INTO drivers (driver_id, name, mobile, license_no, license_expiry, fixed_salary, wage_rate, is_active)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING `+driverColumns,
		driver.DriverID, driver.Name, driver.Mobile, driver.LicenseNo, driver.LicenseExpiry,
		driver.FixedSalary, driver.WageRate, driver.IsActive)
	created, err := scanDriver(row)
	if err != nil {
		return Driver{}, db.MapConstraintError(err)
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, driverID string, driver Driver) error {
	tag, err := r.pool.Exec(ctx, `UPDATE drivers SET name=$1, mobile=$2, license_no=$3, license_expiry=$4,
fixed_salary=$5, wage_rate=$6, is_active=$7, updated_at=now() WHERE driver_id=$8`,
		driver.Name, driver.Mobile, driver.LicenseNo, driver.LicenseExpiry,
		driver.FixedSalary, driver.WageRate, driver.IsActive, driverID)
	if err != nil {
		return db.MapConstraintError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, driverID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM drivers WHERE driver_id = $1`, driverID)
	if err != nil {
		return db.MapConstraintError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
