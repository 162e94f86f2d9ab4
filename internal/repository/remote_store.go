package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"TriggerLab/internal/domain/models"
	pkghttp "TriggerLab/pkg/http"
	applogger "TriggerLab/pkg/logger"
)

// ErrRemoteRequestFailed is the fixed reason surfaced when the remote store
// fails without reporting one of its own.
var ErrRemoteRequestFailed = errors.New("remote store request failed")

// HTTPRemoteStore implements RemoteTriggerStore against the trigger store's
// JSON API. Every response carries a success flag plus an optional error
// reason; write paths surface that reason verbatim.
type HTTPRemoteStore struct {
	client  *pkghttp.Client
	baseURL string
	l       *applogger.Logger
}

func NewHTTPRemoteStore(baseURL string, timeout time.Duration, l *applogger.Logger) *HTTPRemoteStore {
	return &HTTPRemoteStore{
		client:  pkghttp.NewClient(pkghttp.WithTimeout(timeout)),
		baseURL: baseURL,
		l:       l,
	}
}

type storeResponse struct {
	Success  bool                   `json:"success"`
	Error    string                 `json:"error,omitempty"`
	Triggers []models.StoredTrigger `json:"triggers,omitempty"`
	Trigger  *models.StoredTrigger  `json:"trigger,omitempty"`
}

func (s *HTTPRemoteStore) List(ctx context.Context) ([]models.StoredTrigger, error) {
	body, err := s.call(ctx, pkghttp.MethodGet, "/api/triggers", nil)
	if err != nil {
		return nil, err
	}
	return body.Triggers, nil
}

func (s *HTTPRemoteStore) Create(ctx context.Context, draft models.TriggerRecord) (models.StoredTrigger, error) {
	body, err := s.call(ctx, pkghttp.MethodPost, "/api/triggers", draft)
	if err != nil {
		return models.StoredTrigger{}, err
	}
	if body.Trigger == nil {
		return models.StoredTrigger{}, ErrRemoteRequestFailed
	}
	return *body.Trigger, nil
}

func (s *HTTPRemoteStore) Update(ctx context.Context, id string, fields map[string]any) (models.StoredTrigger, error) {
	body, err := s.call(ctx, pkghttp.MethodPatch, "/api/triggers/"+id, fields)
	if err != nil {
		return models.StoredTrigger{}, err
	}
	if body.Trigger == nil {
		return models.StoredTrigger{}, ErrRemoteRequestFailed
	}
	return *body.Trigger, nil
}

func (s *HTTPRemoteStore) Delete(ctx context.Context, id string) error {
	_, err := s.call(ctx, pkghttp.MethodDelete, "/api/triggers/"+id, nil)
	return err
}

// call performs one round trip and folds transport failures, non-JSON
// bodies, and success=false into a single error: the server's reason when
// it gave one, the fixed fallback otherwise.
func (s *HTTPRemoteStore) call(ctx context.Context, method, path string, reqBody interface{}) (*storeResponse, error) {
	var body storeResponse
	status, err := s.client.SendAndParse(ctx, &pkghttp.RequestOptions{
		Method: method,
		URL:    s.baseURL + path,
		Body:   reqBody,
	}, &body)
	if err != nil {
		s.l.Warn("remote store call failed",
			applogger.String("method", method),
			applogger.String("path", path),
			applogger.Error(err))
		return nil, ErrRemoteRequestFailed
	}

	if !body.Success {
		if body.Error != "" {
			return nil, fmt.Errorf("%s", body.Error)
		}
		s.l.Warn("remote store reported failure without reason",
			applogger.String("method", method),
			applogger.String("path", path),
			applogger.Int("status", status))
		return nil, ErrRemoteRequestFailed
	}
	return &body, nil
}
