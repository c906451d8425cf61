package catalog_test

import (
	"testing"

	"github.com/samsondavid381/NeedAJobdotCom/internal/catalog"
)

// ── Categories ─────────────────────────────────────────────────────────────

func TestCategories_CountAndOrder(t *testing.T) {
	got := catalog.Categories()
	want := []string{
		"software-engineer", "data", "design", "cybersecurity",
		"ai-ml", "product", "devops", "qa",
	}

	if len(got) != len(want) {
		t.Fatalf("Categories() returned %d keys, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCategories_ReturnsCopy(t *testing.T) {
	first := catalog.Categories()
	first[0] = "mutated"

	if catalog.Categories()[0] != "software-engineer" {
		t.Error("mutating the returned slice must not affect the catalog")
	}
}

// ── Queries ────────────────────────────────────────────────────────────────

func TestQueries_KnownCategory(t *testing.T) {
	queries, ok := catalog.Queries("data")
	if !ok {
		t.Fatal("Queries(\"data\") should report ok")
	}
	want := []string{"data analyst", "data scientist", "business analyst", "data engineer"}
	if len(queries) != len(want) {
		t.Fatalf("Queries(\"data\") returned %d queries, want %d", len(queries), len(want))
	}
	for i := range want {
		if queries[i] != want[i] {
			t.Errorf("Queries(\"data\")[%d] = %q, want %q", i, queries[i], want[i])
		}
	}
}

func TestQueries_UnknownCategory(t *testing.T) {
	if _, ok := catalog.Queries("underwater-basket-weaving"); ok {
		t.Error("Queries() should report !ok for an unknown category")
	}
}

func TestQueries_EveryCategoryNonEmpty(t *testing.T) {
	for _, key := range catalog.Categories() {
		queries, ok := catalog.Queries(key)
		if !ok {
			t.Errorf("category %q listed but has no queries", key)
			continue
		}
		if len(queries) < 3 || len(queries) > 4 {
			t.Errorf("category %q has %d queries, want 3-4", key, len(queries))
		}
		for _, q := range queries {
			if q == "" {
				t.Errorf("category %q contains an empty query", key)
			}
		}
	}
}

// ── IsKnown ────────────────────────────────────────────────────────────────

func TestIsKnown(t *testing.T) {
	for _, key := range catalog.Categories() {
		if !catalog.IsKnown(key) {
			t.Errorf("IsKnown(%q) should be true", key)
		}
	}
	for _, key := range []string{"", "all", "Software-Engineer", "finance"} {
		if catalog.IsKnown(key) {
			t.Errorf("IsKnown(%q) should be false", key)
		}
	}
}
