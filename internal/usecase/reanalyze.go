package usecase

import (
	"context"
	"time"

	domrepo "TriggerLab/internal/domain/repository"
	"TriggerLab/pkg/logger"
)

// Reanalyzer refreshes the recency fields of every saved trigger from the
// archived outcomes. Scores and signals are frozen at creation and are
// never recomputed here.
type Reanalyzer struct {
	sync    *TriggerSynchronizer
	archive domrepo.OutcomeArchive
	log     *logger.Logger
	now     func() time.Time
}

func NewReanalyzer(sync *TriggerSynchronizer, archive domrepo.OutcomeArchive, log *logger.Logger) *Reanalyzer {
	return &Reanalyzer{sync: sync, archive: archive, log: log, now: time.Now}
}

// Run walks the saved list and pushes updated recency fields through the
// synchronizer for every trigger whose archived outcomes say they drifted.
// Triggers without archived outcomes are skipped.
func (r *Reanalyzer) Run(ctx context.Context) {
	records := r.sync.Load(ctx)
	now := r.now()
	updated := 0

	for _, rec := range records {
		events, err := r.archive.Load(ctx, rec.ID)
		if err != nil {
			r.log.Warn("outcome archive load failed",
				logger.String("trigger_id", rec.ID), logger.Error(err))
			continue
		}
		if len(events) == 0 {
			continue
		}

		count, latest := Recency(events, now)
		if count == rec.RecentTriggerCount && equalDate(latest, rec.LatestTriggerDate) {
			continue
		}

		fields := map[string]any{"recent_trigger_count": count}
		if latest != nil {
			fields["latest_trigger_date"] = *latest
		}
		if _, err := r.sync.Update(ctx, rec.ID, fields); err != nil {
			r.log.Warn("recency update failed",
				logger.String("trigger_id", rec.ID), logger.Error(err))
			continue
		}
		updated++
	}

	r.log.Info("reanalysis pass complete",
		logger.Int("triggers", len(records)), logger.Int("updated", updated))
}

func equalDate(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
