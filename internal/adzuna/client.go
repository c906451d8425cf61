// Package adzuna implements the job fetch adapter for the Adzuna public API.
package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/samsondavid381/NeedAJobdotCom/internal/model"
)

const (
	defaultBaseURL = "https://api.adzuna.com/v1/api"
	maxPageSize    = 50 // Adzuna caps results_per_page at 50
	httpTimeout    = 15 * time.Second

	// Source labels every job ingested through this adapter.
	Source = "Adzuna"
)

// Client fetches job postings from the Adzuna search API.
type Client struct {
	// BaseURL may be overridden in tests; defaults to the public API.
	BaseURL string

	appID   string
	appKey  string
	country string
	client  *http.Client
}

// NewClient constructs a Client. Credentials are mandatory: without them
// every request would fail with a 401, so construction fails fast instead.
func NewClient(appID, appKey, country string) (*Client, error) {
	if appID == "" || appKey == "" {
		return nil, fmt.Errorf("adzuna: ADZUNA_APP_ID / ADZUNA_APP_KEY not configured")
	}
	return &Client{
		BaseURL: defaultBaseURL,
		appID:   appID,
		appKey:  appKey,
		country: country,
		client:  &http.Client{Timeout: httpTimeout},
	}, nil
}

// searchResponse mirrors the top-level Adzuna JSON response.
type searchResponse struct {
	Results []wireJob `json:"results"`
	Count   int       `json:"count"`
}

// wireJob mirrors a single Adzuna job listing.
type wireJob struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Company      wireCompany  `json:"company"`
	Location     wireLocation `json:"location"`
	SalaryMin    *float64     `json:"salary_min"`
	SalaryMax    *float64     `json:"salary_max"`
	ContractType string       `json:"contract_type"`
	RedirectURL  string       `json:"redirect_url"`
	Created      time.Time    `json:"created"`
	Category     wireCategory `json:"category"`
}

type wireCompany struct {
	DisplayName string `json:"display_name"`
}

type wireLocation struct {
	DisplayName string   `json:"display_name"`
	Area        []string `json:"area"`
}

type wireCategory struct {
	Label string `json:"label"`
	Tag   string `json:"tag"`
}

// Fetch runs one search against Adzuna and returns normalised drafts that
// passed the entry-level relevance filter, in provider order, at most limit.
//
// The drafts are not yet deduplicated or persisted — that is the
// aggregator's job.
func (c *Client) Fetch(ctx context.Context, query, location string, limit int) ([]model.ExternalJob, error) {
	endpoint := fmt.Sprintf("%s/jobs/%s/search/1", c.BaseURL, c.country)

	perPage := limit
	if perPage > maxPageSize {
		perPage = maxPageSize
	}

	params := url.Values{}
	params.Set("app_id", c.appID)
	params.Set("app_key", c.appKey)
	params.Set("results_per_page", strconv.Itoa(perPage))
	params.Set("what", query)
	if location != "" {
		params.Set("where", location)
	}
	params.Set("content-type", "application/json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("adzuna: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adzuna: http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("adzuna: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("adzuna: status %d: %s", resp.StatusCode, truncateForError(body))
	}

	var apiResp searchResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("adzuna: json unmarshal: %w", err)
	}

	now := time.Now().UTC()
	drafts := make([]model.ExternalJob, 0, len(apiResp.Results))
	for _, r := range apiResp.Results {
		if !isEntryLevel(r, now) {
			continue
		}
		drafts = append(drafts, mapToExternalJob(r))
		if len(drafts) >= limit {
			break
		}
	}

	return drafts, nil
}

// truncateForError keeps provider error bodies readable in logs.
func truncateForError(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
