package lint_test

import (
	"testing"

	"github.com/yaklabco/leptomcp/pkg/lint"
)

func TestNewCatalog(t *testing.T) {
	t.Parallel()

	catalog := lint.NewCatalog([]lint.Rule{
		{ID: "T001", Name: "first"},
		{ID: "T002", Name: "second"},
		{ID: "T003", Name: "third"},
	})

	if catalog.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", catalog.Len())
	}

	ids := catalog.IDs()
	want := []string{"T001", "T002", "T003"}
	for i, id := range want {
		if ids[i] != id {
			t.Errorf("IDs()[%d] = %q, want %q", i, ids[i], id)
		}
	}
}

func TestNewCatalog_DuplicateIDsDropped(t *testing.T) {
	t.Parallel()

	catalog := lint.NewCatalog([]lint.Rule{
		{ID: "T001", Name: "first"},
		{ID: "T001", Name: "duplicate"},
		{ID: "T002", Name: "second"},
	})

	if catalog.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", catalog.Len())
	}

	rule, ok := catalog.Get("T001")
	if !ok {
		t.Fatal("Get(T001) not found")
	}
	if rule.Name != "first" {
		t.Errorf("Get(T001).Name = %q, want first entry kept", rule.Name)
	}
}

func TestCatalog_Get(t *testing.T) {
	t.Parallel()

	catalog := lint.NewCatalog([]lint.Rule{
		{ID: "T001", Name: "first"},
	})

	if _, ok := catalog.Get("T001"); !ok {
		t.Error("Get(T001) not found")
	}
	if _, ok := catalog.Get("T999"); ok {
		t.Error("Get(T999) found, want miss")
	}
}

func TestCatalog_Resolve(t *testing.T) {
	t.Parallel()

	catalog := lint.NewCatalog([]lint.Rule{
		{ID: "T001", Name: "first-rule"},
		{ID: "T002", Name: "second-rule"},
	})

	tests := []struct {
		key    string
		wantID string
		wantOK bool
	}{
		{"T001", "T001", true},
		{"first-rule", "T001", true},
		{"second-rule", "T002", true},
		{"T999", "", false},
		{"no-such-rule", "", false},
	}

	for _, tt := range tests {
		rule, ok := catalog.Resolve(tt.key)
		if ok != tt.wantOK {
			t.Errorf("Resolve(%q) ok = %v, want %v", tt.key, ok, tt.wantOK)
			continue
		}
		if ok && rule.ID != tt.wantID {
			t.Errorf("Resolve(%q).ID = %q, want %q", tt.key, rule.ID, tt.wantID)
		}
	}
}

func TestCatalog_Index(t *testing.T) {
	t.Parallel()

	catalog := lint.NewCatalog([]lint.Rule{
		{ID: "T001"},
		{ID: "T002"},
	})

	if idx, ok := catalog.Index("T002"); !ok || idx != 1 {
		t.Errorf("Index(T002) = %d, %v, want 1, true", idx, ok)
	}
	if _, ok := catalog.Index("T999"); ok {
		t.Error("Index(T999) found, want miss")
	}
}

func TestCatalog_RulesReturnsCopy(t *testing.T) {
	t.Parallel()

	catalog := lint.NewCatalog([]lint.Rule{
		{ID: "T001", Name: "first"},
	})

	rules := catalog.Rules()
	rules[0].Name = "mutated"

	fresh, _ := catalog.Get("T001")
	if fresh.Name != "first" {
		t.Error("mutating Rules() result changed the catalog")
	}
}
