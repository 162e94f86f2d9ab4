package models

// Signal is the directional classification of a trigger condition.
type Signal string

const (
	SignalBullish Signal = "bullish"
	SignalBearish Signal = "bearish"
	// SignalNone marshals as an absent field; legacy records without a
	// stored signal get one assigned during canonicalization.
	SignalNone Signal = ""
)

// Criteria describes the trigger condition. The core copies it verbatim:
// only ConditionType is interpreted (signal classification, description
// formatting), everything else passes through to the store untouched.
type Criteria struct {
	ConditionType    string         `json:"condition_type"`
	ConditionTickers []string       `json:"condition_tickers,omitempty"`
	TargetTicker     string         `json:"target_ticker"`
	Params           map[string]any `json:"params,omitempty"`
}

// TriggerRecord is the persisted, scored unit in its canonical shape.
// Score and Signal are frozen at creation; rename/update never recomputes
// them. ID is assigned by the remote store and is the sole key for
// update/delete matching.
type TriggerRecord struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Criteria           Criteria `json:"criteria"`
	EventCount         int      `json:"event_count"`
	AvgReturn          *float64 `json:"avg_return"`   // decimal, 1-year horizon
	AvgWinRate         *float64 `json:"avg_win_rate"` // 0..1
	MaxDrawdown        *float64 `json:"max_drawdown"` // percentage, typically negative
	Score              float64  `json:"score"`        // 0..100, computed once at save time
	Signal             Signal   `json:"signal,omitempty"`
	RecentTriggerCount int      `json:"recent_trigger_count"`
	LatestTriggerDate  *string  `json:"latest_trigger_date"` // YYYY-MM-DD
}

// StoredTrigger is the wire/persisted shape of a trigger record. Older
// records carry the discovery-era field names (avg_return_1y, win_rate_1y,
// avg_max_dd) and may lack a signal; canonicalization folds these into a
// TriggerRecord once on load so nothing downstream needs fallback chains.
type StoredTrigger struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Criteria           Criteria `json:"criteria"`
	EventCount         int      `json:"event_count"`
	AvgReturn          *float64 `json:"avg_return,omitempty"`
	AvgWinRate         *float64 `json:"avg_win_rate,omitempty"`
	MaxDrawdown        *float64 `json:"max_drawdown,omitempty"`
	AvgReturn1Y        *float64 `json:"avg_return_1y,omitempty"` // legacy
	WinRate1Y          *float64 `json:"win_rate_1y,omitempty"`   // legacy
	AvgMaxDD           *float64 `json:"avg_max_dd,omitempty"`    // legacy
	Score              float64  `json:"score"`
	Signal             Signal   `json:"signal,omitempty"`
	RecentTriggerCount int      `json:"recent_trigger_count"`
	LatestTriggerDate  *string  `json:"latest_trigger_date,omitempty"`
}

// TriggerEventType identifies a trigger lifecycle transition.
type TriggerEventType string

const (
	TriggerSaved   TriggerEventType = "saved"
	TriggerUpdated TriggerEventType = "updated"
	TriggerDeleted TriggerEventType = "deleted"
)

// TriggerEvent is published after a successful write so downstream
// consumers (dashboards, audit topics) can refresh.
type TriggerEvent struct {
	Type   TriggerEventType `json:"type"`
	ID     string           `json:"id"`
	Record *TriggerRecord   `json:"record,omitempty"`
}
