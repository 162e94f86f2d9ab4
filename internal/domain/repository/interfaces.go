package repository

import (
	"context"

	"TriggerLab/internal/domain/models"
)

// RemoteTriggerStore is the authoritative store for saved triggers. Every
// call is a single request/response round trip; implementations surface
// the server's reported reason in returned errors on failure.
type RemoteTriggerStore interface {
	List(ctx context.Context) ([]models.StoredTrigger, error)
	Create(ctx context.Context, draft models.TriggerRecord) (models.StoredTrigger, error)
	Update(ctx context.Context, id string, fields map[string]any) (models.StoredTrigger, error)
	Delete(ctx context.Context, id string) error
}

// TriggerCache is the single local slot mirroring the remote list. It is
// not authoritative: successful remote reads overwrite it wholesale, and
// it only serves reads when the remote store is unreachable.
type TriggerCache interface {
	Read(ctx context.Context) ([]models.TriggerRecord, error)
	Write(ctx context.Context, records []models.TriggerRecord) error
}

// OutcomeArchive persists the per-event outcomes behind a saved trigger so
// scheduled reanalysis can recompute recency without re-running backtests.
type OutcomeArchive interface {
	Store(ctx context.Context, triggerID string, events []models.EventOutcome) error
	Load(ctx context.Context, triggerID string) ([]models.EventOutcome, error)
	Delete(ctx context.Context, triggerID string) error
}

// Publisher emits trigger lifecycle events after successful writes.
type Publisher interface {
	Publish(ctx context.Context, ev models.TriggerEvent) error
	Close() error
}

// Metrics records operational counters for the synchronizer and handlers.
type Metrics interface {
	RecordSyncOp(op, result string)
	RecordCacheFallback(op string)
	RecordScoreComputed(conditionType string)
	RecordLatency(op string, seconds float64)
}
