package dockets

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
	List(ctx context.Context, tripID string) ([]Docket, error)
	Get(ctx context.Context, id int64) (Docket, error)
	Create(ctx context.Context, docket Docket) (Docket, error)
	MarkReceived(ctx context.Context, id int64, receivedDate time.Time) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const docketColumns = `id, trip_id, driver_id, transporter_id, origin, destination, docket_no,
send_date, challan_received, received_date, created_at, updated_at`

func scanDocket(row pgx.Row) (Docket, error) {
	var d Docket
	err := row.Scan(&d.ID, &d.TripID, &d.DriverID, &d.TransporterID, &d.Origin, &d.Destination, &d.DocketNo,
		&d.SendDate, &d.ChallanReceived, &d.ReceivedDate, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (r *repository) List(ctx context.Context, tripID string) ([]Docket, error) {
	query := `SELECT ` + docketColumns + ` FROM dockets`
	args := []any{}
	if tripID != "" {
		query += ` WHERE trip_id = $1`
		args = append(args, tripID)
	}
	query += ` ORDER BY send_date DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Docket
	for rows.Next() {
		d, err := scanDocket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Docket, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+docketColumns+` FROM dockets WHERE id = $1`, id)
	d, err := scanDocket(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Docket{}, shared.ErrNotFound
	}
	return d, err
}

func (r *repository) Create(ctx context.Context, docket Docket) (Docket, error) {
	row := r.pool.QueryRow(ctx, `INSERT INTO dockets (trip_id, driver_id, transporter_id, origin, destination, docket_no, send_date)
VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING `+docketColumns,
		docket.TripID, docket.DriverID, docket.TransporterID, docket.Origin, docket.Destination, docket.DocketNo, docket.SendDate)
	created, err := scanDocket(row)
	if err != nil {
		return Docket{}, db.MapConstraintError(err)
	}
	return created, nil
}

func (r *repository) MarkReceived(ctx context.Context, id int64, receivedDate time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE dockets SET challan_received = TRUE, received_date = $1, updated_at = now()
WHERE id = $2`, receivedDate, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
