package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"alchemist/internal/types"
)

func intptr(i int) *int { return &i }

func taskErrors() []types.ValidationError {
	return []types.ValidationError{
		{ID: "tasks-4", Entity: types.EntityTasks, Row: intptr(4), Field: "deadline", Message: "deadline in the past", Severity: "error"},
		{ID: "tasks-9", Entity: types.EntityTasks, Row: intptr(9), Field: "estimatedHours", Message: "hours must be positive", Severity: "error"},
	}
}

func TestFixSession_ReconcileByOriginalValidationID(t *testing.T) {
	s := NewFixSession(nil, taskErrors())
	s.Reconcile([]types.FixSuggestion{
		{RowID: "1042", OriginalValidationID: "tasks-4", Entity: types.EntityTasks, Field: "deadline", SuggestedValue: "2026-09-30"},
	})

	fix := s.Fixes()[0]
	if got := s.ResolveID(fix); got != "1042" {
		t.Errorf("expected tasks-4 to map to 1042, got %q", got)
	}
}

func TestFixSession_ReconcileFallbackByFieldName(t *testing.T) {
	s := NewFixSession(nil, taskErrors())
	s.Reconcile([]types.FixSuggestion{
		// No back-reference: matched by field name. First match wins; the
		// match is not disambiguated by row.
		{RowID: "2077", Entity: types.EntityTasks, Field: "estimatedHours", SuggestedValue: 8},
	})

	fix := s.Fixes()[0]
	if got := s.ResolveID(fix); got != "2077" {
		t.Errorf("expected field-name fallback to map tasks-9 -> 2077, got %q", got)
	}
	if s.Fixed("tasks-9") {
		t.Error("nothing applied yet")
	}
}

func TestFixSession_ApplyUsesActualRecordID(t *testing.T) {
	var gotPath string
	var gotPatch map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotPatch)
		w.Write([]byte(`{"success":true,"data":{"id":1042}}`))
	}))
	defer server.Close()

	c := New(server.URL)
	s := NewFixSession(c.Data(), taskErrors())
	fix := types.FixSuggestion{RowID: "1042", OriginalValidationID: "tasks-4", Entity: types.EntityTasks, Field: "deadline", SuggestedValue: "2026-09-30"}
	s.Reconcile([]types.FixSuggestion{fix})

	if err := s.Apply(context.Background(), fix); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	// The update goes to the actual record ID, never the synthesized one.
	if gotPath != "/data/tasks/1042" {
		t.Errorf("expected update against 1042, got %s", gotPath)
	}
	if gotPatch["deadline"] != "2026-09-30" {
		t.Errorf("patch not forwarded: %v", gotPatch)
	}

	// Both ID spaces are marked fixed and the error left the working list.
	if !s.Fixed("1042") || !s.Fixed("tasks-4") {
		t.Error("expected both actual and validation IDs marked fixed")
	}
	for _, e := range s.Errors() {
		if e.ID == "tasks-4" {
			t.Error("applied error should be dropped from the working list")
		}
	}
	if len(s.Errors()) != 1 {
		t.Errorf("expected 1 remaining error, got %d", len(s.Errors()))
	}
}

func TestFixSession_RejectsSynthesizedIDWithoutNetworkCall(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	c := New(server.URL)
	s := NewFixSession(c.Data(), taskErrors())

	// A fix whose row ID is itself a synthesized validation ID, with no
	// recorded mapping: applying it would 404 against a record that never
	// existed, so it is rejected before any request.
	fix := types.FixSuggestion{RowID: "tasks-4", Entity: types.EntityTasks, Field: "deadline", SuggestedValue: "2026-09-30"}
	err := s.Apply(context.Background(), fix)
	if err == nil {
		t.Fatal("expected rejection")
	}
	if calls.Load() != 0 {
		t.Errorf("expected zero network calls, got %d", calls.Load())
	}
}

func TestFixSession_MappedSynthesizedRowIDResolvesToRealID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/tasks/1042" {
			t.Errorf("expected resolved real ID, got %s", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"data":{"id":1042}}`))
	}))
	defer server.Close()

	c := New(server.URL)
	s := NewFixSession(c.Data(), taskErrors())
	s.Reconcile([]types.FixSuggestion{
		{RowID: "1042", OriginalValidationID: "tasks-4", Entity: types.EntityTasks, Field: "deadline", SuggestedValue: "x"},
	})

	// A degenerate fix keyed by the validation ID still applies cleanly
	// because the mapping resolves it to the real record first.
	fix := types.FixSuggestion{RowID: "tasks-4", Entity: types.EntityTasks, Field: "deadline", SuggestedValue: "2026-09-30"}
	if err := s.Apply(context.Background(), fix); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
}

func TestSynthesizedIDPattern(t *testing.T) {
	matches := []string{"clients-1", "workers-42", "tasks-007"}
	for _, id := range matches {
		if !synthesizedID.MatchString(id) {
			t.Errorf("expected %q to match", id)
		}
	}
	nonMatches := []string{"1042", "tasks-unknown", "tasks-4-extra", "invoices-3", "tasks-"}
	for _, id := range nonMatches {
		if synthesizedID.MatchString(id) {
			t.Errorf("expected %q not to match", id)
		}
	}
}
