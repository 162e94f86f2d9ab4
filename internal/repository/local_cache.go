package repository

import (
	"context"
	"encoding/json"
	"errors"

	"TriggerLab/internal/domain/models"
	pkgcache "TriggerLab/pkg/cache"
	applogger "TriggerLab/pkg/logger"
)

// LocalTriggerCache mirrors the remote trigger list in a single cache slot.
// The slot is a plain JSON array; a missing or unparseable slot reads as an
// empty list so a corrupt mirror can never block the dashboard.
type LocalTriggerCache struct {
	cache pkgcache.Service
	slot  string
	l     *applogger.Logger
}

func NewLocalTriggerCache(cache pkgcache.Service, slot string, l *applogger.Logger) *LocalTriggerCache {
	return &LocalTriggerCache{cache: cache, slot: slot, l: l}
}

func (c *LocalTriggerCache) Read(ctx context.Context) ([]models.TriggerRecord, error) {
	var raw string
	if err := c.cache.Get(ctx, c.slot, &raw); err != nil {
		if errors.Is(err, pkgcache.ErrCacheMiss) {
			return []models.TriggerRecord{}, nil
		}
		return nil, err
	}

	var records []models.TriggerRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		c.l.Warn("trigger cache slot unparseable, treating as empty",
			applogger.String("slot", c.slot), applogger.Error(err))
		return []models.TriggerRecord{}, nil
	}
	return records, nil
}

func (c *LocalTriggerCache) Write(ctx context.Context, records []models.TriggerRecord) error {
	if records == nil {
		records = []models.TriggerRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	// No expiration: the slot is the durable mirror, not a TTL cache.
	return c.cache.Set(ctx, c.slot, data, 0)
}
