package jobs

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

// LedgerIntegrityJob sweeps account_transactions for rows violating the
// exactly-one-side rule and flags accounts whose stored initial balance
// plus net movement has drifted into NaN/Inf territory. Violations are
// logged, never repaired: posted entries are append-only.
type LedgerIntegrityJob struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewLedgerIntegrityJob(pool *pgxpool.Pool, logger *slog.Logger) *LedgerIntegrityJob {
	return &LedgerIntegrityJob{pool: pool, logger: logger}
}

func (j *LedgerIntegrityJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("ledger integrity: handler not configured")
	}

	var shapeViolations, balanceAnomalies int
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		shapeViolations, err = j.scanEntryShapes(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		balanceAnomalies, err = j.scanBalances(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	j.logger.Info("ledger integrity scan finished",
		slog.Int("shape_violations", shapeViolations),
		slog.Int("balance_anomalies", balanceAnomalies))
	return nil
}

func (j *LedgerIntegrityJob) scanEntryShapes(ctx context.Context) (int, error) {
	rows, err := j.pool.Query(ctx, `SELECT id, kind, withdrawal, deposit FROM account_transactions
WHERE (withdrawal > 0) = (deposit > 0)
   OR (kind = 'PAYMENT'  AND (from_account_id IS NULL OR to_account_id IS NOT NULL))
   OR (kind = 'RECEIPT'  AND (to_account_id IS NULL OR from_account_id IS NOT NULL))
   OR (kind = 'TRANSFER' AND (from_account_id IS NULL OR to_account_id IS NULL
                              OR from_account_id = to_account_id))`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id int64
		var kind string
		var withdrawal, deposit float64
		if err := rows.Scan(&id, &kind, &withdrawal, &deposit); err != nil {
			return count, err
		}
		count++
		j.logger.Warn("ledger entry violates posting shape",
			slog.Int64("entry_id", id),
			slog.String("kind", kind),
			slog.Float64("withdrawal", withdrawal),
			slog.Float64("deposit", deposit))
	}
	return count, rows.Err()
}

func (j *LedgerIntegrityJob) scanBalances(ctx context.Context) (int, error) {
	rows, err := j.pool.Query(ctx, `SELECT a.id, a.name, a.initial_balance
  + COALESCE((SELECT SUM(t.deposit)    FROM account_transactions t WHERE t.to_account_id = a.id AND t.deposit > 0), 0)
  + COALESCE((SELECT SUM(t.withdrawal) FROM account_transactions t WHERE t.to_account_id = a.id AND t.kind = 'TRANSFER'), 0)
  - COALESCE((SELECT SUM(t.withdrawal) FROM account_transactions t WHERE t.from_account_id = a.id), 0)
FROM accounts a`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id int64
		var name string
		var balance float64
		if err := rows.Scan(&id, &name, &balance); err != nil {
			return count, err
		}
		if math.IsNaN(balance) || math.IsInf(balance, 0) {
			count++
			j.logger.Warn("account balance is not a finite number",
				slog.Int64("account_id", id),
				slog.String("account", name))
		}
	}
	return count, rows.Err()
}
