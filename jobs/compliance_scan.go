package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/routeledger/routeledger/internal/masterdata/vehicles"
)

// ComplianceCacheKey is where the latest scan result lives in redis. The
// dashboard endpoint reads it instead of re-scanning on every request.
const ComplianceCacheKey = "compliance:expiring"

const complianceCacheTTL = 25 * time.Hour

// ExpiringDoc is one vehicle document inside the scan window.
type ExpiringDoc struct {
	VehicleNo string    `json:"vehicle_no"`
	Document  string    `json:"document"`
	ExpiresOn time.Time `json:"expires_on"`
	Expired   bool      `json:"expired"`
}

type VehiclesPort interface {
	ListExpiring(ctx context.Context, before time.Time) ([]vehicles.Vehicle, error)
}

// ComplianceScanJob finds vehicles whose fitness, permit, insurance, PUC or
// tax documents expire within the window and caches the list in redis.
type ComplianceScanJob struct {
	vehicles VehiclesPort
	cache    *redis.Client
	logger   *slog.Logger
	clock    func() time.Time
}

func NewComplianceScanJob(vehiclesPort VehiclesPort, cache *redis.Client, logger *slog.Logger) *ComplianceScanJob {
	return &ComplianceScanJob{
		vehicles: vehiclesPort,
		cache:    cache,
		logger:   logger,
		clock:    func() time.Time { return time.Now().UTC() },
	}
}

func (j *ComplianceScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("compliance scan: handler not configured")
	}
	var payload ComplianceScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.WindowDays <= 0 {
		payload.WindowDays = 30
	}

	now := j.clock()
	cutoff := now.AddDate(0, 0, payload.WindowDays)
	fleet, err := j.vehicles.ListExpiring(ctx, cutoff)
	if err != nil {
		return err
	}

	var docs []ExpiringDoc
	for _, v := range fleet {
		for name, expiry := range v.ComplianceDocs() {
			if expiry == nil || expiry.After(cutoff) {
				continue
			}
			docs = append(docs, ExpiringDoc{
				VehicleNo: v.VehicleNo,
				Document:  name,
				ExpiresOn: *expiry,
				Expired:   expiry.Before(now),
			})
		}
	}

	data, err := json.Marshal(docs)
	if err != nil {
		return asynq.SkipRetry
	}
	if err := j.cache.Set(ctx, ComplianceCacheKey, data, complianceCacheTTL).Err(); err != nil {
		return err
	}
	j.logger.Info("compliance scan finished",
		slog.Int("window_days", payload.WindowDays),
		slog.Int("expiring_docs", len(docs)))
	return nil
}
