package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"alchemist/internal/types"
)

func TestRuleService_CreateReturnsStoredCopy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/rules" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var rule types.Rule
		json.NewDecoder(r.Body).Decode(&rule)
		rule.ID = 42
		rule.CreatedAt = "2026-08-29T10:00:00Z"
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": rule})
	}))
	defer server.Close()

	c := New(server.URL)
	created, err := c.Rules().Create(context.Background(), types.Rule{
		Name:      "Backend co-run",
		Type:      types.RuleCoRun,
		Condition: "tasks.id in [3, 7]",
		Action:    "Run tasks 3, 7 together in the same phase",
		Priority:  5,
		Active:    true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID != 42 {
		t.Errorf("expected backend-assigned ID, got %+v", created)
	}
}

func TestRuleService_SetActive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/rules/9" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["active"] != false {
			t.Errorf("expected active=false, got %v", body)
		}
		w.Write([]byte(`{"success":true,"data":{"id":9,"active":false}}`))
	}))
	defer server.Close()

	c := New(server.URL)
	updated, err := c.Rules().SetActive(context.Background(), 9, false)
	if err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}
	if updated.Active {
		t.Error("expected rule deactivated")
	}
}

func TestRuleService_Priorities(t *testing.T) {
	var posted types.RulePriorities
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rules/priorities" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"success":true,"data":{"priorityLevel":0.5,"fairness":0.25,"cost":0.25}}`))
		case http.MethodPost:
			json.NewDecoder(r.Body).Decode(&posted)
			w.Write([]byte(`{"success":true}`))
		}
	}))
	defer server.Close()

	c := New(server.URL)

	p, err := c.Rules().GetPriorities(context.Background())
	if err != nil {
		t.Fatalf("GetPriorities failed: %v", err)
	}
	if p.PriorityLevel != 0.5 {
		t.Errorf("unexpected priorities: %+v", p)
	}

	if err := c.Rules().SetPriorities(context.Background(), types.DefaultPriorities()); err != nil {
		t.Fatalf("SetPriorities failed: %v", err)
	}
	if posted.Fairness != 0.3 {
		t.Errorf("weights not forwarded: %+v", posted)
	}
}
