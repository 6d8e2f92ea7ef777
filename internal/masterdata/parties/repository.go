package parties

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/routeledger/routeledger/internal/platform/db"
	"github.com/routeledger/routeledger/internal/shared"
)

type Repository interface {
	List(ctx context.Context, role Role, filters shared.ListFilters) ([]Party, int, error)
	Get(ctx context.Context, id int64) (Party, error)
	Create(ctx context.Context, party Party) (Party, error)
	Update(ctx context.Context, id int64, party Party) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const partyColumns = `id, party_type, name, nick_name, contact_person, phone_number, email, address,
gst_number, pan_number, bank_account_no, ifsc_code, commission_rate, orai_charge, created_at, updated_at`

func scanParty(row pgx.Row) (Party, error) {
	var p Party
	err := row.Scan(&p.ID, &p.Role, &p.Name, &p.NickName, &p.ContactPerson, &p.PhoneNumber, &p.Email, &p.Address,
		&p.GSTNumber, &p.PANNumber, &p.BankAccountNo, &p.IFSCCode, &p.CommissionRate, &p.OraiCharge,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *repository) List(ctx context.Context, role Role, filters shared.ListFilters) ([]Party, int, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM parties WHERE 1=1`
	args := []any{}
	argc := 0
	if role != "" {
		argc++
		query += ` AND party_type = $1`
		countQuery += ` AND party_type = $1`
		args = append(args, role)
	}
	if filters.Search != "" {
		argc++
		ph := placeholder(argc)
		query += ` AND (name ILIKE ` + ph + ` OR nick_name ILIKE ` + ph + `)`
		countQuery += ` AND (name ILIKE ` + ph + ` OR nick_name ILIKE ` + ph + `)`
		args = append(args, "%"+filters.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY party_type, name`
	if filters.Limit > 0 {
		query += ` LIMIT ` + placeholder(argc+1) + ` OFFSET ` + placeholder(argc+2)
		args = append(args, filters.Limit, filters.Offset())
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Party
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	return result, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Party, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+partyColumns+` FROM parties WHERE id = $1`, id)
	p, err := scanParty(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Party{}, shared.ErrNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, party Party) (Party, error) {
	row := r.pool.QueryRow(ctx, `INSERT INTO parties (party_type, name, nick_name, contact_person, phone_number, email, address,
gst_number, pan_number, bank_account_no, ifsc_code, commission_rate, orai_charge)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13) RETURNING `+partyColumns,
		party.Role, party.Name, party.NickName, party.ContactPerson, party.PhoneNumber, party.Email, party.Address,
		party.GSTNumber, party.PANNumber, party.BankAccountNo, party.IFSCCode, party.CommissionRate, party.OraiCharge)
	created, err := scanParty(row)
	if err != nil {
		return Party{}, db.MapConstraintError(err)
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, id int64, party Party) error {
	tag, err := r.pool.Exec(ctx, `UPDATE parties SET party_type=$1, name=$2, nick_name=$3, contact_person=$4,
phone_number=$5, email=$6, address=$7, gst_number=$8, pan_number=$9, bank_account_no=$10, ifsc_code=$11,
commission_rate=$12, orai_charge=$13, updated_at=now() WHERE id=$14`,
		party.Role, party.Name, party.NickName, party.ContactPerson, party.PhoneNumber, party.Email, party.Address,
		party.GSTNumber, party.PANNumber, party.BankAccountNo, party.IFSCCode, party.CommissionRate, party.OraiCharge, id)
	if err != nil {
		return db.MapConstraintError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM parties WHERE id = $1`, id)
	if err != nil {
		return db.MapConstraintError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}
