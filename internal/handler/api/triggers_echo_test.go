package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"TriggerLab/internal/domain/models"
	internalrepo "TriggerLab/internal/repository"
	"TriggerLab/internal/usecase"
	pkgcache "TriggerLab/pkg/cache"
	xlogger "TriggerLab/pkg/logger"

	"github.com/labstack/echo/v4"
)

type stubRemote struct {
	triggers  []models.StoredTrigger
	nextID    int
	createErr error
}

func (s *stubRemote) List(context.Context) ([]models.StoredTrigger, error) {
	return s.triggers, nil
}

func (s *stubRemote) Create(_ context.Context, draft models.TriggerRecord) (models.StoredTrigger, error) {
	if s.createErr != nil {
		return models.StoredTrigger{}, s.createErr
	}
	s.nextID++
	st := models.StoredTrigger{
		ID:     fmt.Sprintf("srv-%d", s.nextID),
		Name:   draft.Name,
		Score:  draft.Score,
		Signal: draft.Signal,
	}
	s.triggers = append(s.triggers, st)
	return st, nil
}

func (s *stubRemote) Update(_ context.Context, id string, fields map[string]any) (models.StoredTrigger, error) {
	for i := range s.triggers {
		if s.triggers[i].ID == id {
			if name, ok := fields["name"].(string); ok {
				s.triggers[i].Name = name
			}
			return s.triggers[i], nil
		}
	}
	return models.StoredTrigger{}, errors.New("trigger not found")
}

func (s *stubRemote) Delete(_ context.Context, id string) error {
	kept := s.triggers[:0]
	for _, st := range s.triggers {
		if st.ID != id {
			kept = append(kept, st)
		}
	}
	s.triggers = kept
	return nil
}

type stubPublisher struct{}

func (stubPublisher) Publish(context.Context, models.TriggerEvent) error { return nil }
func (stubPublisher) Close() error                                       { return nil }

type stubMetrics struct{}

func (stubMetrics) RecordSyncOp(string, string)   {}
func (stubMetrics) RecordCacheFallback(string)    {}
func (stubMetrics) RecordScoreComputed(string)    {}
func (stubMetrics) RecordLatency(string, float64) {}

func newTestHandler(t *testing.T, remote *stubRemote) (*echo.Echo, *TriggersEchoHandler) {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	cache := internalrepo.NewLocalTriggerCache(pkgcache.NewMemoryCache(), "saved_triggers", l)
	sync := usecase.NewTriggerSynchronizer(remote, cache, internalrepo.NewMemoryOutcomeArchive(), stubPublisher{}, stubMetrics{}, l)
	h := NewTriggersEchoHandler(l, sync, stubMetrics{})

	e := echo.New()
	h.RegisterRoutes(e)
	return e, h
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestListTriggersSorted(t *testing.T) {
	remote := &stubRemote{triggers: []models.StoredTrigger{
		{ID: "a", Name: "low", Score: 40},
		{ID: "b", Name: "high", Score: 90},
	}}
	e, _ := newTestHandler(t, remote)

	rec := do(e, http.MethodGet, "/api/triggers", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Status int `json:"status"`
		Data   struct {
			Triggers  []models.TriggerRecord `json:"triggers"`
			SortKey   string                 `json:"sort_key"`
			Direction string                 `json:"direction"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.SortKey != "score" || resp.Data.Direction != "desc" {
		t.Fatalf("defaults = %s/%s", resp.Data.SortKey, resp.Data.Direction)
	}
	if len(resp.Data.Triggers) != 2 || resp.Data.Triggers[0].ID != "b" {
		t.Fatalf("triggers = %+v, want score-descending", resp.Data.Triggers)
	}
}

func TestListTriggersBadSortKey(t *testing.T) {
	e, _ := newTestHandler(t, &stubRemote{})

	rec := do(e, http.MethodGet, "/api/triggers?sort_key=bogus", "")
	var resp struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Status)
	}
}

func TestSaveTrigger(t *testing.T) {
	remote := &stubRemote{}
	e, _ := newTestHandler(t, remote)

	body := `{
        "name": "vix spike",
        "criteria": {"condition_type": "vix_above", "target_ticker": "SPY", "params": {"vix_threshold": 30}},
        "events": [
            {"date": "2024-05-10", "returns": {"1_year": 12.5}, "max_drawdown": -6},
            {"date": "2023-02-01", "returns": {"1_year": 8.1}, "max_drawdown": -10}
        ]
    }`
	rec := do(e, http.MethodPost, "/api/triggers", body)

	var resp struct {
		Status int                  `json:"status"`
		Data   models.TriggerRecord `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", resp.Status, rec.Body.String())
	}
	if resp.Data.ID == "" {
		t.Fatalf("no server id in response: %+v", resp.Data)
	}
	if resp.Data.Signal != models.SignalBullish {
		t.Fatalf("signal = %q, want bullish", resp.Data.Signal)
	}
	if len(remote.triggers) != 1 {
		t.Fatalf("remote store not written")
	}
}

func TestSaveTriggerRemoteFailure(t *testing.T) {
	remote := &stubRemote{createErr: errors.New("name already exists")}
	e, _ := newTestHandler(t, remote)

	body := `{"name": "dup", "criteria": {"condition_type": "vix_above", "target_ticker": "SPY"},
        "events": [{"date": "2024-05-10", "returns": {"1_year": 1.0}}]}`
	rec := do(e, http.MethodPost, "/api/triggers", body)

	var resp struct {
		Status int `json:"status"`
		Data   []struct {
			Message string `json:"message"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.Status)
	}
	if len(resp.Data) != 1 || resp.Data[0].Message != "name already exists" {
		t.Fatalf("reason not surfaced: %s", rec.Body.String())
	}
}

func TestSaveTriggerValidation(t *testing.T) {
	e, _ := newTestHandler(t, &stubRemote{})

	// no events
	rec := do(e, http.MethodPost, "/api/triggers", `{"name": "x", "criteria": {"condition_type": "vix_above"}, "events": []}`)
	var resp struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Status)
	}
}

func TestDeleteTrigger(t *testing.T) {
	remote := &stubRemote{triggers: []models.StoredTrigger{{ID: "a"}}}
	e, _ := newTestHandler(t, remote)

	rec := do(e, http.MethodDelete, "/api/triggers/a", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if len(remote.triggers) != 0 {
		t.Fatalf("remote entry not deleted")
	}
}

func TestConditionTypes(t *testing.T) {
	e, _ := newTestHandler(t, &stubRemote{})

	rec := do(e, http.MethodGet, "/api/condition_types", "")
	var resp struct {
		Data []struct {
			Type          string         `json:"type"`
			Signal        string         `json:"signal"`
			DefaultParams map[string]any `json:"default_params"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 15 {
		t.Fatalf("condition types = %d, want 15", len(resp.Data))
	}
	for _, ct := range resp.Data {
		if ct.Signal == "" {
			t.Errorf("condition type %q missing signal", ct.Type)
		}
		if len(ct.DefaultParams) == 0 {
			t.Errorf("condition type %q missing default params", ct.Type)
		}
	}
}

func TestSummary(t *testing.T) {
	e, _ := newTestHandler(t, &stubRemote{})

	body := `{
        "events": [
            {"date": "2024-01-02", "returns": {"1_year": 12.5}},
            {"date": "2024-02-05", "returns": {"1_year": -4.2}}
        ],
        "curves": [[1.0, 2.0], [3.0, null]]
    }`
	rec := do(e, http.MethodPost, "/api/summary", body)

	var resp struct {
		Status int `json:"status"`
		Data   struct {
			Summaries map[string]models.OutcomeSummary `json:"summaries"`
			Curve     *models.ForwardCurve             `json:"curve"`
			Score     float64                          `json:"score"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.Status, rec.Body.String())
	}

	oneYear := resp.Data.Summaries["1_year"]
	if oneYear.Average == nil || *oneYear.Average != 4.15 {
		t.Fatalf("1_year average = %v, want 4.15", oneYear.Average)
	}
	if oneYear.PercentPositive == nil || *oneYear.PercentPositive != 50 {
		t.Fatalf("1_year percent positive = %v, want 50", oneYear.PercentPositive)
	}
	if resp.Data.Curve == nil || len(resp.Data.Curve.Average) != 2 {
		t.Fatalf("curve = %+v", resp.Data.Curve)
	}
	if resp.Data.Curve.Average[1] == nil || *resp.Data.Curve.Average[1] != 2 {
		t.Fatalf("curve day 1 = %v, want 2 (gap skipped)", resp.Data.Curve.Average[1])
	}
	if resp.Data.Score <= 0 {
		t.Fatalf("score = %v", resp.Data.Score)
	}
}
