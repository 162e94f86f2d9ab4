package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"TriggerLab/internal/domain/models"
)

func TestHTTPRemoteStoreList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/triggers" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"triggers": []map[string]any{
				{"id": "1", "name": "one", "score": 61.5},
				{"id": "2", "name": "two", "score": 80, "avg_return_1y": 0.09},
			},
		})
	}))
	defer srv.Close()

	store := NewHTTPRemoteStore(srv.URL, 5*time.Second, testLogger(t))
	triggers, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(triggers) != 2 || triggers[0].ID != "1" {
		t.Fatalf("triggers = %+v", triggers)
	}
	if triggers[1].AvgReturn1Y == nil || *triggers[1].AvgReturn1Y != 0.09 {
		t.Fatalf("legacy field not decoded: %+v", triggers[1])
	}
}

func TestHTTPRemoteStoreCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var draft models.TriggerRecord
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			t.Errorf("decode draft: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"trigger": map[string]any{"id": "srv-9", "name": draft.Name, "score": draft.Score},
		})
	}))
	defer srv.Close()

	store := NewHTTPRemoteStore(srv.URL, 5*time.Second, testLogger(t))
	st, err := store.Create(context.Background(), models.TriggerRecord{Name: "vix spike", Score: 72})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if st.ID != "srv-9" || st.Name != "vix spike" {
		t.Fatalf("stored = %+v", st)
	}
}

func TestHTTPRemoteStoreSurfacesServerReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "name already exists"})
	}))
	defer srv.Close()

	store := NewHTTPRemoteStore(srv.URL, 5*time.Second, testLogger(t))
	_, err := store.Create(context.Background(), models.TriggerRecord{Name: "dup"})
	if err == nil || err.Error() != "name already exists" {
		t.Fatalf("err = %v, want server reason verbatim", err)
	}
}

func TestHTTPRemoteStoreFallbackReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{"success": false})
	}))
	defer srv.Close()

	store := NewHTTPRemoteStore(srv.URL, 5*time.Second, testLogger(t))
	err := store.Delete(context.Background(), "1")
	if !errors.Is(err, ErrRemoteRequestFailed) {
		t.Fatalf("err = %v, want fixed fallback", err)
	}
}

func TestHTTPRemoteStoreTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	store := NewHTTPRemoteStore(srv.URL, time.Second, testLogger(t))
	_, err := store.List(context.Background())
	if !errors.Is(err, ErrRemoteRequestFailed) {
		t.Fatalf("err = %v, want fixed fallback", err)
	}
}

func TestHTTPRemoteStoreUpdatePath(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"trigger": map[string]any{"id": "7", "name": "renamed"},
		})
	}))
	defer srv.Close()

	store := NewHTTPRemoteStore(srv.URL, 5*time.Second, testLogger(t))
	st, err := store.Update(context.Background(), "7", map[string]any{"name": "renamed"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if gotMethod != http.MethodPatch || gotPath != "/api/triggers/7" {
		t.Fatalf("request = %s %s", gotMethod, gotPath)
	}
	if st.Name != "renamed" {
		t.Fatalf("stored = %+v", st)
	}
}
