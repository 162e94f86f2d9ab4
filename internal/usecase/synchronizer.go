package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"TriggerLab/internal/domain/models"
	domrepo "TriggerLab/internal/domain/repository"
	"TriggerLab/internal/scoring"
	"TriggerLab/pkg/logger"
)

// ErrQualityRejected marks a save refused by the discovery quality gate.
var ErrQualityRejected = errors.New("quality gate rejected")

// TriggerSynchronizer reconciles the remote trigger store with the local
// cache slot. The remote store is authoritative: reads fall back to the
// cache and never error, writes surface failures and only touch the cache
// after the remote confirms.
type TriggerSynchronizer struct {
	remote    domrepo.RemoteTriggerStore
	cache     domrepo.TriggerCache
	archive   domrepo.OutcomeArchive
	publisher domrepo.Publisher
	metrics   domrepo.Metrics
	log       *logger.Logger
	gate      scoring.QualityGate
	now       func() time.Time
}

func NewTriggerSynchronizer(
	remote domrepo.RemoteTriggerStore,
	cache domrepo.TriggerCache,
	archive domrepo.OutcomeArchive,
	publisher domrepo.Publisher,
	metrics domrepo.Metrics,
	log *logger.Logger,
) *TriggerSynchronizer {
	return &TriggerSynchronizer{
		remote:    remote,
		cache:     cache,
		archive:   archive,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
		gate:      scoring.DefaultQualityGate(),
		now:       time.Now,
	}
}

// Load fetches the saved-trigger list from the remote store, overwrites the
// local slot, and returns the canonical records. On any remote failure it
// serves whatever the local slot holds (empty when absent or corrupt) and
// never returns an error.
func (s *TriggerSynchronizer) Load(ctx context.Context) []models.TriggerRecord {
	start := s.now()
	stored, err := s.remote.List(ctx)
	if err != nil {
		s.metrics.RecordSyncOp("load", "error")
		s.metrics.RecordCacheFallback("load")
		s.log.Warn("remote list failed, serving local cache", logger.Error(err))

		records, cerr := s.cache.Read(ctx)
		if cerr != nil {
			s.log.Warn("local cache read failed", logger.Error(cerr))
			return []models.TriggerRecord{}
		}
		return records
	}

	records := CanonicalizeAll(stored)
	if err := s.cache.Write(ctx, records); err != nil {
		s.log.Warn("local cache write failed", logger.Error(err))
	}
	s.metrics.RecordSyncOp("load", "ok")
	s.metrics.RecordLatency("load", s.now().Sub(start).Seconds())
	return records
}

// Save creates the draft on the remote store and appends the server's
// record, with its assigned id, to the local slot. On failure the error
// carries the server's reason and the slot stays untouched.
func (s *TriggerSynchronizer) Save(ctx context.Context, draft models.TriggerRecord) (models.TriggerRecord, error) {
	stored, err := s.remote.Create(ctx, draft)
	if err != nil {
		s.metrics.RecordSyncOp("save", "error")
		return models.TriggerRecord{}, err
	}

	rec := Canonicalize(stored)
	records, cerr := s.cache.Read(ctx)
	if cerr != nil {
		records = nil
	}
	if err := s.cache.Write(ctx, append(records, rec)); err != nil {
		s.log.Warn("local cache write failed", logger.Error(err))
	}

	s.metrics.RecordSyncOp("save", "ok")
	s.publish(ctx, models.TriggerEvent{Type: models.TriggerSaved, ID: rec.ID, Record: &rec})
	return rec, nil
}

// SaveAnalysis builds a draft from a backtest result (aggregate, score,
// classify, recency), optionally applies the discovery quality gate, saves
// through the remote store, and archives the per-event outcomes for later
// reanalysis.
func (s *TriggerSynchronizer) SaveAnalysis(ctx context.Context, name string, criteria models.Criteria, events []models.EventOutcome, enforceQuality bool) (models.TriggerRecord, error) {
	draft := BuildDraft(name, criteria, events, s.now())
	s.metrics.RecordScoreComputed(criteria.ConditionType)

	if enforceQuality {
		if ok, reason := s.gate.Admit(draft); !ok {
			return models.TriggerRecord{}, fmt.Errorf("%w: %s", ErrQualityRejected, reason)
		}
	}

	rec, err := s.Save(ctx, draft)
	if err != nil {
		return models.TriggerRecord{}, err
	}

	if err := s.archive.Store(ctx, rec.ID, events); err != nil {
		// The record is saved; reanalysis will simply skip it.
		s.log.Warn("outcome archive store failed",
			logger.String("trigger_id", rec.ID), logger.Error(err))
	}
	return rec, nil
}

// Update applies a partial update on the remote store and replaces the
// matching local entry in place with the server's returned record. A
// missing local id leaves the mirror untouched.
func (s *TriggerSynchronizer) Update(ctx context.Context, id string, fields map[string]any) (models.TriggerRecord, error) {
	stored, err := s.remote.Update(ctx, id, fields)
	if err != nil {
		s.metrics.RecordSyncOp("update", "error")
		return models.TriggerRecord{}, err
	}

	rec := Canonicalize(stored)
	if records, cerr := s.cache.Read(ctx); cerr == nil {
		for i := range records {
			if records[i].ID == id {
				records[i] = rec
				if err := s.cache.Write(ctx, records); err != nil {
					s.log.Warn("local cache write failed", logger.Error(err))
				}
				break
			}
		}
	}

	s.metrics.RecordSyncOp("update", "ok")
	s.publish(ctx, models.TriggerEvent{Type: models.TriggerUpdated, ID: id, Record: &rec})
	return rec, nil
}

// Delete removes the record remotely, then drops the matching local entry.
// A missing local id is a no-op on the mirror.
func (s *TriggerSynchronizer) Delete(ctx context.Context, id string) error {
	if err := s.remote.Delete(ctx, id); err != nil {
		s.metrics.RecordSyncOp("delete", "error")
		return err
	}

	if records, cerr := s.cache.Read(ctx); cerr == nil {
		kept := records[:0]
		for _, r := range records {
			if r.ID != id {
				kept = append(kept, r)
			}
		}
		if len(kept) != len(records) {
			if err := s.cache.Write(ctx, kept); err != nil {
				s.log.Warn("local cache write failed", logger.Error(err))
			}
		}
	}

	if err := s.archive.Delete(ctx, id); err != nil {
		s.log.Warn("outcome archive delete failed",
			logger.String("trigger_id", id), logger.Error(err))
	}

	s.metrics.RecordSyncOp("delete", "ok")
	s.publish(ctx, models.TriggerEvent{Type: models.TriggerDeleted, ID: id})
	return nil
}

func (s *TriggerSynchronizer) publish(ctx context.Context, ev models.TriggerEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.log.Warn("event publish failed",
			logger.String("type", string(ev.Type)), logger.Error(err))
	}
}
