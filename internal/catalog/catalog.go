// Package catalog defines the fixed set of job categories and the search
// queries run against the external provider for each one.
//
// The catalog is read-only. It is the complete enumeration of categories
// the aggregator knows how to refresh — jobs created manually may carry a
// category outside this set, aggregated jobs never do.
package catalog

import "fmt"

// categoryQueries maps each category key to its search phrases, attempted
// in the order listed.
var categoryQueries = map[string][]string{
	"software-engineer": {"software engineer", "web developer", "software developer", "full stack developer"},
	"data":              {"data analyst", "data scientist", "business analyst", "data engineer"},
	"design":            {"ux designer", "ui designer", "graphic designer", "product designer"},
	"cybersecurity":     {"cybersecurity analyst", "security analyst", "information security"},
	"ai-ml":             {"machine learning engineer", "ai engineer", "ml engineer"},
	"product":           {"product manager", "product analyst", "product coordinator"},
	"devops":            {"devops engineer", "site reliability engineer", "cloud engineer"},
	"qa":                {"qa engineer", "test engineer", "software tester", "quality assurance"},
}

// categoryOrder fixes the iteration order for full refreshes — map
// iteration order is randomised in Go, and the refresh pacing relies on a
// stable sequence.
var categoryOrder = []string{
	"software-engineer",
	"data",
	"design",
	"cybersecurity",
	"ai-ml",
	"product",
	"devops",
	"qa",
}

func init() {
	if err := validate(); err != nil {
		panic(err)
	}
}

// validate runs once at load time and guards against an empty key or query
// sneaking into the table during maintenance.
func validate() error {
	if len(categoryOrder) != len(categoryQueries) {
		return fmt.Errorf("catalog: order list has %d entries, query map has %d", len(categoryOrder), len(categoryQueries))
	}
	for _, key := range categoryOrder {
		queries, ok := categoryQueries[key]
		if !ok {
			return fmt.Errorf("catalog: ordered key %q missing from query map", key)
		}
		if key == "" {
			return fmt.Errorf("catalog: empty category key")
		}
		if len(queries) == 0 {
			return fmt.Errorf("catalog: category %q has no queries", key)
		}
		for _, q := range queries {
			if q == "" {
				return fmt.Errorf("catalog: category %q has an empty query", key)
			}
		}
	}
	return nil
}

// Queries returns the search phrases for a category, and false when the
// category is unknown. Callers must not modify the returned slice.
func Queries(category string) ([]string, bool) {
	q, ok := categoryQueries[category]
	return q, ok
}

// Categories returns all category keys in refresh order.
func Categories() []string {
	out := make([]string, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// IsKnown reports whether category is part of the catalog.
func IsKnown(category string) bool {
	_, ok := categoryQueries[category]
	return ok
}
