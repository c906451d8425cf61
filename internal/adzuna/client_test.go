package adzuna_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/samsondavid381/NeedAJobdotCom/internal/adzuna"
	"github.com/samsondavid381/NeedAJobdotCom/internal/model"
)

// ── Construction ───────────────────────────────────────────────────────────

func TestNewClient_MissingCredentials(t *testing.T) {
	if _, err := adzuna.NewClient("", "key", "us"); err == nil {
		t.Error("NewClient with empty app id should fail")
	}
	if _, err := adzuna.NewClient("id", "", "us"); err == nil {
		t.Error("NewClient with empty app key should fail")
	}
	if _, err := adzuna.NewClient("id", "key", "us"); err != nil {
		t.Errorf("NewClient with credentials returned unexpected error: %v", err)
	}
}

// ── Fetch ──────────────────────────────────────────────────────────────────

type providerJob struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Created      string   `json:"created"`
	Company      any      `json:"company"`
	Location     any      `json:"location"`
	SalaryMin    *float64 `json:"salary_min,omitempty"`
	SalaryMax    *float64 `json:"salary_max,omitempty"`
	ContractType string   `json:"contract_type,omitempty"`
	RedirectURL  string   `json:"redirect_url,omitempty"`
}

func recent() string {
	return time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339)
}

func providerResponse(jobs ...providerJob) []byte {
	body, _ := json.Marshal(map[string]any{
		"results": jobs,
		"count":   len(jobs),
	})
	return body
}

func company(name string) map[string]string { return map[string]string{"display_name": name} }
func place(name string) map[string]string   { return map[string]string{"display_name": name} }

func newTestClient(t *testing.T, handler http.HandlerFunc) (*adzuna.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := adzuna.NewClient("test-id", "test-key", "us")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	client.BaseURL = srv.URL
	return client, srv
}

func TestFetch_FiltersSeniorAndStalePostings(t *testing.T) {
	old := time.Now().UTC().Add(-45 * 24 * time.Hour).Format(time.RFC3339)
	body := providerResponse(
		providerJob{ID: "1", Title: "Junior Developer", Description: "great first job", Created: recent(), Company: company("Acme"), Location: place("Austin, TX")},
		providerJob{ID: "2", Title: "Senior Developer", Description: "tech leadership", Created: recent(), Company: company("Acme"), Location: place("Austin, TX")},
		providerJob{ID: "3", Title: "Entry Level Engineer", Description: "requires 5+ years of Go", Created: recent(), Company: company("Acme"), Location: place("Austin, TX")},
		providerJob{ID: "4", Title: "Developer", Description: "fine role", Created: old, Company: company("Acme"), Location: place("Austin, TX")},
		providerJob{ID: "5", Title: "Web Developer", Description: "learn on the job", Created: recent(), Company: company("Acme"), Location: place("Austin, TX")},
	)

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	})

	drafts, err := client.Fetch(context.Background(), "developer", "", 50)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(drafts) != 2 {
		t.Fatalf("Fetch returned %d drafts, want 2 (senior, 5+ years, and stale postings filtered)", len(drafts))
	}
	// Provider order is preserved.
	if drafts[0].ExternalID != "1" || drafts[1].ExternalID != "5" {
		t.Errorf("Fetch order = [%s %s], want [1 5]", drafts[0].ExternalID, drafts[1].ExternalID)
	}
}

func TestFetch_SeniorTermBeatsEntrySignal(t *testing.T) {
	// "entry level" wording must not rescue a posting that also matches the
	// block list.
	body := providerResponse(
		providerJob{ID: "1", Title: "Entry level role reporting to Director", Description: "junior welcome", Created: recent(), Company: company("Acme"), Location: place("NYC")},
	)

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	})

	drafts, err := client.Fetch(context.Background(), "role", "", 10)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(drafts) != 0 {
		t.Errorf("posting with block-listed term should never pass the filter, got %d drafts", len(drafts))
	}
}

func TestFetch_TruncatesToLimit(t *testing.T) {
	jobs := make([]providerJob, 10)
	for i := range jobs {
		jobs[i] = providerJob{
			ID: fmt.Sprintf("%d", i), Title: "Developer", Description: "good role",
			Created: recent(), Company: company("Acme"), Location: place("Austin, TX"),
		}
	}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(providerResponse(jobs...))
	})

	drafts, err := client.Fetch(context.Background(), "developer", "", 3)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(drafts) != 3 {
		t.Errorf("Fetch returned %d drafts, want limit of 3", len(drafts))
	}
}

func TestFetch_CapsResultsPerPage(t *testing.T) {
	var gotPerPage string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPerPage = r.URL.Query().Get("results_per_page")
		w.Write(providerResponse())
	})

	if _, err := client.Fetch(context.Background(), "developer", "", 200); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotPerPage != "50" {
		t.Errorf("results_per_page = %s, want provider cap of 50", gotPerPage)
	}
}

func TestFetch_SendsCredentialsAndQuery(t *testing.T) {
	var got map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		got = map[string]string{
			"app_id":  q.Get("app_id"),
			"app_key": q.Get("app_key"),
			"what":    q.Get("what"),
		}
		w.Write(providerResponse())
	})

	if _, err := client.Fetch(context.Background(), "data analyst", "", 10); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got["app_id"] != "test-id" || got["app_key"] != "test-key" {
		t.Errorf("credentials not forwarded, got %v", got)
	}
	if got["what"] != "data analyst" {
		t.Errorf("what = %q, want %q", got["what"], "data analyst")
	}
}

func TestFetch_ProviderError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	if _, err := client.Fetch(context.Background(), "developer", "", 10); err == nil {
		t.Error("Fetch should surface a non-200 response as an error")
	}
}

func TestFetch_MalformedBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	if _, err := client.Fetch(context.Background(), "developer", "", 10); err == nil {
		t.Error("Fetch should surface a malformed body as an error")
	}
}

// ── Mapping ────────────────────────────────────────────────────────────────

func TestFetch_MapsFields(t *testing.T) {
	min, max := 60000.0, 80000.0
	body := providerResponse(providerJob{
		ID:           "abc-123",
		Title:        "Junior QA Engineer",
		Description:  "<p>Work from anywhere, fully remote team</p>",
		Created:      recent(),
		Company:      company("Acme Corp"),
		Location:     place("Denver, CO"),
		SalaryMin:    &min,
		SalaryMax:    &max,
		ContractType: "contract",
		RedirectURL:  "https://adzuna.example/redirect/abc-123",
	})

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	})

	drafts, err := client.Fetch(context.Background(), "qa engineer", "", 10)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("Fetch returned %d drafts, want 1", len(drafts))
	}

	d := drafts[0]
	if d.ExternalID != "abc-123" {
		t.Errorf("ExternalID = %q", d.ExternalID)
	}
	if d.Company != "Acme Corp" {
		t.Errorf("Company = %q", d.Company)
	}
	if d.Source != adzuna.Source {
		t.Errorf("Source = %q, want %q", d.Source, adzuna.Source)
	}
	if !d.IsRemote {
		t.Error("IsRemote should be true when the description mentions remote")
	}
	if d.Description != "Work from anywhere, fully remote team" {
		t.Errorf("Description = %q, HTML not stripped", d.Description)
	}
	if d.Salary == nil || *d.Salary != "$60,000 - $80,000" {
		t.Errorf("Salary = %v, want $60,000 - $80,000", d.Salary)
	}
	if d.Type != model.TypeContract {
		t.Errorf("Type = %q, want Contract", d.Type)
	}
	if d.ApplyURL == nil || *d.ApplyURL != "https://adzuna.example/redirect/abc-123" {
		t.Errorf("ApplyURL = %v", d.ApplyURL)
	}
	if d.CompanyLogo != nil {
		t.Error("CompanyLogo should always be nil for Adzuna")
	}
}

func TestFetch_RemoteFromLocation(t *testing.T) {
	body := providerResponse(providerJob{
		ID: "1", Title: "Developer", Description: "office snacks",
		Created: recent(), Company: company("Acme"), Location: place("Remote, US"),
	})

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	})

	drafts, err := client.Fetch(context.Background(), "developer", "", 10)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(drafts) != 1 || !drafts[0].IsRemote {
		t.Error("IsRemote should be true when the location mentions remote")
	}
}
