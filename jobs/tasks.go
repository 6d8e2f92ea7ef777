package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the queue all background jobs run on.
	QueueDefault = "default"
	// TaskComplianceScan looks for vehicles with regulatory documents about
	// to expire and caches the findings for the dashboard.
	TaskComplianceScan = "fleet:compliance_scan"
	// TaskLedgerIntegrity sweeps posted entries for shape violations and
	// reconciles stored rows against derived balances.
	TaskLedgerIntegrity = "ledger:integrity_scan"
)

// ComplianceScanPayload controls how far ahead the scan looks.
type ComplianceScanPayload struct {
	WindowDays int `json:"window_days"`
}

func NewComplianceScanTask(payload ComplianceScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskComplianceScan, data), nil
}

// LedgerIntegrityPayload is empty today; the type exists so the payload can
// grow without changing the task signature.
type LedgerIntegrityPayload struct{}

func NewLedgerIntegrityTask() (*asynq.Task, error) {
	data, err := json.Marshal(LedgerIntegrityPayload{})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLedgerIntegrity, data), nil
}
