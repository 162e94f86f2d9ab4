package models

// Requests for the trigger HTTP endpoints. Defined in domain for consistency and reuse.

type ListTriggersRequest struct {
	SortKey   string `query:"sort_key" json:"sort_key" default:"score" validate:"oneof=name score ticker signal criteria event_count avg_return win_rate drawdown latest_date"`
	Direction string `query:"direction" json:"direction" default:"desc" validate:"oneof=asc desc"`
}

type SaveTriggerRequest struct {
	Name           string         `json:"name" validate:"required,min=1,max=120"`
	Criteria       Criteria       `json:"criteria" validate:"required"`
	Events         []EventOutcome `json:"events" validate:"required,min=1,dive"`
	EnforceQuality bool           `json:"enforce_quality"`
}

type UpdateTriggerRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=120"`
}

// Fields returns the partial-field mapping sent to the remote store.
func (r UpdateTriggerRequest) Fields() map[string]any {
	fields := make(map[string]any)
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	return fields
}

type SummaryRequest struct {
	Events []EventOutcome `json:"events" validate:"required,min=1,dive"`
	// Curves holds the raw per-event daily return series (percent), one
	// inner slice per event, nil entries where future data ran out.
	Curves [][]*float64 `json:"curves,omitempty"`
}
