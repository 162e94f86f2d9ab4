package repository

import (
	"context"
	"sync"

	"TriggerLab/internal/domain/models"
)

// MemoryOutcomeArchive implements OutcomeArchive in process, for tests and
// single-binary deployments without ClickHouse.
type MemoryOutcomeArchive struct {
	mu     sync.RWMutex
	events map[string][]models.EventOutcome
}

func NewMemoryOutcomeArchive() *MemoryOutcomeArchive {
	return &MemoryOutcomeArchive{events: make(map[string][]models.EventOutcome)}
}

func (a *MemoryOutcomeArchive) Store(_ context.Context, triggerID string, events []models.EventOutcome) error {
	cp := make([]models.EventOutcome, len(events))
	copy(cp, events)

	a.mu.Lock()
	a.events[triggerID] = cp
	a.mu.Unlock()
	return nil
}

func (a *MemoryOutcomeArchive) Load(_ context.Context, triggerID string) ([]models.EventOutcome, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	events := a.events[triggerID]
	cp := make([]models.EventOutcome, len(events))
	copy(cp, events)
	return cp, nil
}

func (a *MemoryOutcomeArchive) Delete(_ context.Context, triggerID string) error {
	a.mu.Lock()
	delete(a.events, triggerID)
	a.mu.Unlock()
	return nil
}
