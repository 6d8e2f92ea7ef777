package vehicles

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/routeledger/routeledger/internal/platform/db"
	"github.com/routeledger/routeledger/internal/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Vehicle, int, error)
	Get(ctx context.Context, vehicleNo string) (Vehicle, error)
	Create(ctx context.Context, vehicle Vehicle) (Vehicle, error)
	Update(ctx context.Context, vehicleNo string, vehicle Vehicle) error
	Delete(ctx context.Context, vehicleNo string) error
	ListExpiring(ctx context.Context, before time.Time) ([]Vehicle, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const vehicleColumns = `vehicle_no, vehicle_type, ownership, owner_name, hypothecation, reg_date,
fitness_expiry, permit_expiry, insurance_expiry, national_permit, puc_expiry, tax_expiry, created_at, updated_at`

func scanVehicle(row pgx.Row) (Vehicle, error) {
	var v Vehicle
	err := row.Scan(&v.VehicleNo, &v.VehicleType, &v.Ownership, &v.OwnerName, &v.Hypothecation, &v.RegDate,
		&v.FitnessExpiry, &v.PermitExpiry, &v.InsuranceExpiry, &v.NationalPermit, &v.PUCExpiry, &v.TaxExpiry,
		&v.CreatedAt, &v.UpdatedAt)
	return v, err
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Vehicle, int, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM vehicles WHERE 1=1`
	args := []any{}
	if filters.Search != "" {
		query += ` AND (vehicle_no ILIKE $1 OR owner_name ILIKE $1)`
		countQuery += ` AND (vehicle_no ILIKE $1 OR owner_name ILIKE $1)`
		args = append(args, "%"+filters.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY vehicle_no`
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

	var vehicles []Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, vehicleNo string) (Vehicle, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE vehicle_no = $1`, vehicleNo)
	v, err := scanVehicle(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Vehicle{}, shared.ErrNotFound
	}
	return v, err
}

func (r *repository) Create(ctx context.Context, vehicle Vehicle) (Vehicle, error) {
	row := r.pool.QueryRow(ctx, `INSERT INTO vehicles (vehicle_no, vehicle_type, ownership, owner_name, hypothecation, reg_date,
fitness_expiry, permit_expiry, insurance_expiry, national_permit, puc_expiry, tax_expiry)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12) RETURNING `+vehicleColumns,
		vehicle.VehicleNo, vehicle.VehicleType, vehicle.Ownership, vehicle.OwnerName, vehicle.Hypothecation, vehicle.RegDate,
		vehicle.FitnessExpiry, vehicle.PermitExpiry, vehicle.InsuranceExpiry, vehicle.NationalPermit, vehicle.PUCExpiry, vehicle.TaxExpiry)
	created, err := scanVehicle(row)
	if err != nil {
		return Vehicle{}, db.MapConstraintError(err)
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, vehicleNo string, vehicle Vehicle) error {
	tag, err := r.pool.Exec(ctx, `UPDATE vehicles SET vehicle_type=$1, ownership=$2, owner_name=$3, hypothecation=$4, reg_date=$5,
fitness_expiry=$6, permit_expiry=$7, insurance_expiry=$8, national_permit=$9, puc_expiry=$10, tax_expiry=$11, updated_at=now()
WHERE vehicle_no=$12`,
		vehicle.VehicleType, vehicle.Ownership, vehicle.OwnerName, vehicle.Hypothecation, vehicle.RegDate,
		vehicle.FitnessExpiry, vehicle.PermitExpiry, vehicle.InsuranceExpiry, vehicle.NationalPermit, vehicle.PUCExpiry, vehicle.TaxExpiry,
		vehicleNo)
	if err != nil {
		return db.MapConstraintError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete relies on ON DELETE RESTRICT constraints from trips and
// maintenance expenses; a referenced vehicle surfaces as ErrProtected.
func (r *repository) Delete(ctx context.Context, vehicleNo string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM vehicles WHERE vehicle_no = $1`, vehicleNo)
	if err != nil {
		return db.MapConstraintError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) ListExpiring(ctx context.Context, before time.Time) ([]Vehicle, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+vehicleColumns+` FROM vehicles
WHERE fitness_expiry <= $1 OR permit_expiry <= $1 OR insurance_expiry <= $1 OR puc_expiry <= $1 OR tax_expiry <= $1
ORDER BY vehicle_no`, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}
