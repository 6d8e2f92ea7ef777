package trips

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/routeledger/routeledger/internal/platform/db"
	"github.com/routeledger/routeledger/internal/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Trip, int, error)
	Get(ctx context.Context, tripID string) (Trip, error)
	Update(ctx context.Context, trip Trip) error
	SetStatus(ctx context.Context, tripID string, status Status) error
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository serializes trip-id generation with the insert: the max id is
// read under lock so concurrent creates cannot mint the same number.
type TxRepository interface {
	MaxTripID(ctx context.Context) (string, error)
	Insert(ctx context.Context, trip Trip) (Trip, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const tripColumns = `trip_id, date, vehicle_no, driver_id, client_id, transporter_id, origin, destination,
rate, weight, total_freight, commission_rate, orai_charge, commission_amount, orai_amount,
halting, advance, status, created_at, updated_at`

func scanTrip(row pgx.Row) (Trip, error) {
	var t Trip
	err := row.Scan(&t.TripID, &t.Date, &t.VehicleNo, &t.DriverID, &t.ClientID, &t.TransporterID, &t.Origin, &t.Destination,
		&t.Rate, &t.Weight, &t.TotalFreight, &t.CommissionRate, &t.OraiCharge, &t.CommissionAmount, &t.OraiAmount,
		&t.Halting, &t.Advance, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Trip, int, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM trips WHERE 1=1`
	args := []any{}
	if filters.Search != "" {
		query += ` AND (trip_id ILIKE $1 OR origin ILIKE $1 OR destination ILIKE $1)`
		countQuery += ` AND (trip_id ILIKE $1 OR origin ILIKE $1 OR destination ILIKE $1)`
		args = append(args, "%"+filters.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY date DESC, trip_id DESC`
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

	var result []Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, t)
	}
	return result, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, tripID string) (Trip, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+tripColumns+` FROM trips WHERE trip_id = $1`, tripID)
	t, err := scanTrip(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Trip{}, shared.ErrNotFound
	}
	return t, err
}

func (r *repository) Update(ctx context.Context, trip Trip) error {
	tag, err := r.pool.Exec(ctx, `UPDATE trips SET date=$1, vehicle_no=$2, driver_id=$3, client_id=$4, transporter_id=$5,
origin=$6, destination=$7, rate=$8, weight=$9, total_freight=$10, commission_rate=$11, orai_charge=$12,
commission_amount=$13, orai_amount=$14, halting=$15, advance=$16, status=$17, updated_at=now()
WHERE trip_id=$18`,
		trip.Date, trip.VehicleNo, trip.DriverID, trip.ClientID, trip.TransporterID,
		trip.Origin, trip.Destination, trip.Rate, trip.Weight, trip.TotalFreight, trip.CommissionRate, trip.OraiCharge,
		trip.CommissionAmount, trip.OraiAmount, trip.Halting, trip.Advance, trip.Status, trip.TripID)
	if err != nil {
		return db.MapConstraintError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) SetStatus(ctx context.Context, tripID string, status Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE trips SET status=$1, updated_at=now() WHERE trip_id=$2`, status, tripID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
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

func (r *txRepository) MaxTripID(ctx context.Context) (string, error) {
	var last *string
	if err := r.tx.QueryRow(ctx, `SELECT MAX(trip_id) FROM trips`).Scan(&last); err != nil {
		return "", err
	}
	if last == nil {
		return "", nil
	}
	return *last, nil
}

func (r *txRepository) Insert(ctx context.Context, trip Trip) (Trip, error) {
	row := r.tx.QueryRow(ctx, `INSERT INTO trips (trip_id, date, vehicle_no, driver_id, client_id, transporter_id,
origin, destination, rate, weight, total_freight, commission_rate, orai_charge, commission_amount, orai_amount,
halting, advance, status)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18) RETURNING `+tripColumns,
		trip.TripID, trip.Date, trip.VehicleNo, trip.DriverID, trip.ClientID, trip.TransporterID,
		trip.Origin, trip.Destination, trip.Rate, trip.Weight, trip.TotalFreight, trip.CommissionRate, trip.OraiCharge,
		trip.CommissionAmount, trip.OraiAmount, trip.Halting, trip.Advance, trip.Status)
	created, err := scanTrip(row)
	if err != nil {
		return Trip{}, db.MapConstraintError(err)
	}
	return created, nil
}
