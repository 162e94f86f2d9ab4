package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"TriggerLab/internal/domain/models"
	pkgch "TriggerLab/pkg/clickhouse"
	applogger "TriggerLab/pkg/logger"
)

// CHOutcomeArchive implements OutcomeArchive backed by ClickHouse. Events
// are one row per trigger and event date on a ReplacingMergeTree, so
// re-archiving a trigger overwrites its rows in place.
type CHOutcomeArchive struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

func NewCHOutcomeArchive(ch *pkgch.Client, table string, l *applogger.Logger) *CHOutcomeArchive {
	return &CHOutcomeArchive{db: ch.DB(), table: table, l: l}
}

// SchemaStmts returns the idempotent DDL for the archive table, for use
// with clickhouse.Client.InitSchema.
func SchemaStmts(database, table string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf(`
            CREATE TABLE IF NOT EXISTS %s.%s (
                trigger_id    String,
                event_date    String,
                returns       String,
                max_drawdown  Nullable(Float64),
                archived_at   DateTime DEFAULT now()
            ) ENGINE = ReplacingMergeTree(archived_at)
            ORDER BY (trigger_id, event_date)
        `, database, table),
	}
}

func (a *CHOutcomeArchive) Store(ctx context.Context, triggerID string, events []models.EventOutcome) error {
	if len(events) == 0 {
		return nil
	}

	start := time.Now()
	values := make([]string, 0, len(events))
	args := make([]interface{}, 0, len(events)*4)
	for _, ev := range events {
		returns, err := json.Marshal(ev.Returns)
		if err != nil {
			return fmt.Errorf("marshal returns: %w", err)
		}
		values = append(values, "(?, ?, ?, ?)")
		args = append(args, triggerID, ev.Date, string(returns), toNullFloat(ev.MaxDrawdown))
	}

	q := fmt.Sprintf("INSERT INTO %s (trigger_id, event_date, returns, max_drawdown) VALUES %s",
		a.table, strings.Join(values, ","))
	if _, err := a.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("archive store: %w", err)
	}

	a.l.Debug("outcome archive store ok",
		applogger.String("trigger_id", triggerID),
		applogger.Int("events", len(events)),
		applogger.Duration("duration_ms", time.Since(start)))
	return nil
}

func (a *CHOutcomeArchive) Load(ctx context.Context, triggerID string) ([]models.EventOutcome, error) {
	q := fmt.Sprintf(`
        SELECT event_date, returns, max_drawdown
        FROM %s FINAL
        WHERE trigger_id = ?
        ORDER BY event_date ASC
    `, a.table)
	rows, err := a.db.QueryContext(ctx, q, triggerID)
	if err != nil {
		return nil, fmt.Errorf("archive load: %w", err)
	}
	defer rows.Close()

	var events []models.EventOutcome
	for rows.Next() {
		var (
			ev      models.EventOutcome
			returns string
			dd      sql.NullFloat64
		)
		if err := rows.Scan(&ev.Date, &returns, &dd); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		if err := json.Unmarshal([]byte(returns), &ev.Returns); err != nil {
			return nil, fmt.Errorf("unmarshal returns: %w", err)
		}
		if dd.Valid {
			v := dd.Float64
			ev.MaxDrawdown = &v
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return events, nil
}

func (a *CHOutcomeArchive) Delete(ctx context.Context, triggerID string) error {
	q := fmt.Sprintf("ALTER TABLE %s DELETE WHERE trigger_id = ?", a.table)
	if _, err := a.db.ExecContext(ctx, q, triggerID); err != nil {
		return fmt.Errorf("archive delete: %w", err)
	}
	return nil
}

func toNullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}
