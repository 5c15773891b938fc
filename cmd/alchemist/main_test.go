package main

import (
	"strings"
	"testing"

	"alchemist/internal/types"
)

func TestParsePairs(t *testing.T) {
	patch, err := parsePairs([]string{"name=Acme", "priority=3", "rate=12.5"})
	if err != nil {
		t.Fatalf("parsePairs returned error: %v", err)
	}
	if patch["name"] != "Acme" {
		t.Errorf("expected string value, got %v", patch["name"])
	}
	if patch["priority"] != 3.0 {
		t.Errorf("expected numeric value 3, got %v", patch["priority"])
	}
	if patch["rate"] != 12.5 {
		t.Errorf("expected numeric value 12.5, got %v", patch["rate"])
	}
}

func TestParsePairsRejectsBareWord(t *testing.T) {
	if _, err := parsePairs([]string{"nonsense"}); err == nil {
		t.Fatal("expected an error for an argument without '='")
	}
}

func TestGuessEntity(t *testing.T) {
	cases := []struct {
		path string
		want types.EntityType
		ok   bool
	}{
		{"data/clients.csv", types.EntityClients, true},
		{"/tmp/Workers-v2.xlsx", types.EntityWorkers, true},
		{"tasks_2026.csv", types.EntityTasks, true},
		{"spreadsheet.csv", "", false},
	}
	for _, c := range cases {
		got, ok := guessEntity(c.path)
		if ok != c.ok || got != c.want {
			t.Errorf("guessEntity(%s) = (%s, %v), want (%s, %v)", c.path, got, ok, c.want, c.ok)
		}
	}
}

func TestBuildRuleCoRun(t *testing.T) {
	ruleType = "coRun"
	ruleName = ""
	ruleTasks = []string{"3", "7"}
	defer func() { ruleTasks = nil }()

	rule, err := buildRule()
	if err != nil {
		t.Fatalf("buildRule returned error: %v", err)
	}
	if rule.Type != types.RuleCoRun {
		t.Errorf("expected coRun type, got %s", rule.Type)
	}
	if !strings.Contains(rule.Condition, "3") || !strings.Contains(rule.Condition, "7") {
		t.Errorf("condition missing task IDs: %q", rule.Condition)
	}
}

func TestBuildRuleDefaultPriority(t *testing.T) {
	ruleType = "coRun"
	ruleTasks = []string{"1", "2"}
	defer func() { ruleTasks = nil }()

	rule, err := buildRule()
	if err != nil {
		t.Fatalf("buildRule returned error: %v", err)
	}
	// The create flag default must survive the other commands' flag
	// registrations sharing this file.
	if rule.Priority != 5 {
		t.Errorf("expected default priority 5, got %d", rule.Priority)
	}
}

func TestBuildRuleIncomplete(t *testing.T) {
	ruleType = "loadLimit"
	ruleGroup = ""

	if _, err := buildRule(); err == nil {
		t.Fatal("expected an error for an empty worker group")
	}
}

func TestBuildRuleUnknownType(t *testing.T) {
	ruleType = "slotRestriction"

	if _, err := buildRule(); err == nil {
		t.Fatal("expected an error for a type the builder does not assemble")
	}
}
