// Package api implements the HTTP handlers for the job board.
//
// Routes:
//
//	GET  /api/jobs             → filtered, paginated job listings
//	GET  /api/jobs/{id}        → single job with full description
//	GET  /api/jobs/categories  → distinct categories (cached)
//	GET  /api/jobs/locations   → distinct locations (cached)
//	GET  /api/jobs/stats       → inventory statistics
//	POST /api/jobs/refresh     → trigger an aggregation run
//	POST /api/test/add-test-job → insert a fixed job to verify the pipeline
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/samsondavid381/NeedAJobdotCom/internal/aggregator"
	"github.com/samsondavid381/NeedAJobdotCom/internal/model"
	"github.com/samsondavid381/NeedAJobdotCom/internal/store"
)

const facetCacheTTL = 5 * time.Minute

// JobStore is the persistence capability the handlers depend on.
type JobStore interface {
	List(ctx context.Context, filter model.JobFilter) (*model.JobList, error)
	GetByID(ctx context.Context, id int) (*model.JobResponse, error)
	Create(ctx context.Context, job *model.Job) error
	Categories(ctx context.Context) ([]string, error)
	Locations(ctx context.Context) ([]string, error)
	GetStats(ctx context.Context) (*store.Stats, error)
}

// Refresher triggers aggregation runs.
type Refresher interface {
	RefreshCategory(ctx context.Context, category string, limit int) (int, error)
	RefreshAll(ctx context.Context) (int, error)
}

// Handler holds shared dependencies.
type Handler struct {
	store     JobStore
	refresher Refresher     // nil when provider credentials are missing
	rdb       *redis.Client // nil disables facet caching
}

// NewHandler returns a configured Handler.
func NewHandler(st JobStore, refresher Refresher, rdb *redis.Client) *Handler {
	return &Handler{store: st, refresher: refresher, rdb: rdb}
}

// RegisterRoutes mounts all job board routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/jobs", h.handleJobs)
	mux.HandleFunc("/api/jobs/", h.handleJobsSubpath)
	mux.HandleFunc("/api/test/add-test-job", h.addTestJob)
}

// ─── Route dispatch ───────────────────────────────────────────────────────────

// handleJobs handles GET /api/jobs
func (h *Handler) handleJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.listJobs(w, r)
}

// handleJobsSubpath handles /api/jobs/{categories|locations|stats|refresh|id}
func (h *Handler) handleJobsSubpath(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/jobs/"), "/")

	switch rest {
	case "categories":
		h.getFacet(w, r, "categories", h.store.Categories)
	case "locations":
		h.getFacet(w, r, "locations", h.store.Locations)
	case "stats":
		h.getStats(w, r)
	case "refresh":
		h.refreshJobs(w, r)
	default:
		id, err := strconv.Atoi(rest)
		if err != nil {
			jsonError(w, "invalid path", http.StatusNotFound)
			return
		}
		h.getJob(w, r, id)
	}
}

// ─── Individual handlers ──────────────────────────────────────────────────────

func (h *Handler) listJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.JobFilter{
		Category: q.Get("category"),
		Location: q.Get("location"),
		Type:     q.Get("type"),
		Search:   q.Get("search"),
		Page:     intParam(q.Get("page"), 1),
		PageSize: intParam(q.Get("pageSize"), 20),
	}

	list, err := h.store.List(r.Context(), filter)
	if err != nil {
		log.Printf("[api] List jobs failed: %v", err)
		jsonError(w, "failed to retrieve jobs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) getJob(w http.ResponseWriter, r *http.Request, id int) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	job, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, fmt.Sprintf("job %d not found", id), http.StatusNotFound)
			return
		}
		log.Printf("[api] Get job %d failed: %v", id, err)
		jsonError(w, "failed to retrieve job", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// getFacet serves the distinct-value endpoints, with a short Redis cache in
// front of the store — the facet lists change only when ingestion runs.
func (h *Handler) getFacet(w http.ResponseWriter, r *http.Request, name string, load func(context.Context) ([]string, error)) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cacheKey := "jobs:facets:" + name
	if h.rdb != nil {
		if cached, err := h.rdb.Get(r.Context(), cacheKey).Bytes(); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		} else if err != redis.Nil {
			log.Printf("[api] Facet cache read %s: %v", name, err)
		}
	}

	values, err := load(r.Context())
	if err != nil {
		log.Printf("[api] Load %s failed: %v", name, err)
		jsonError(w, "failed to retrieve "+name, http.StatusInternalServerError)
		return
	}

	payload, err := json.Marshal(values)
	if err != nil {
		jsonError(w, "failed to encode "+name, http.StatusInternalServerError)
		return
	}

	if h.rdb != nil {
		if err := h.rdb.Set(r.Context(), cacheKey, payload, facetCacheTTL).Err(); err != nil {
			log.Printf("[api] Facet cache write %s: %v", name, err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats, err := h.store.GetStats(r.Context())
	if err != nil {
		log.Printf("[api] Get stats failed: %v", err)
		jsonError(w, "failed to retrieve job statistics", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// refreshJobs handles POST /api/jobs/refresh?category=&limit=
// With no category (or category=all) every catalog category is refreshed.
func (h *Handler) refreshJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.refresher == nil {
		jsonError(w, "job aggregation is not configured", http.StatusServiceUnavailable)
		return
	}

	category := r.URL.Query().Get("category")
	limit := intParam(r.URL.Query().Get("limit"), 50)

	var (
		jobsAdded int
		err       error
	)
	if category == "" || category == "all" {
		log.Println("[api] Starting refresh of all job categories")
		jobsAdded, err = h.refresher.RefreshAll(r.Context())
		category = "all"
	} else {
		log.Printf("[api] Starting refresh of category %s", category)
		jobsAdded, err = h.refresher.RefreshCategory(r.Context(), category, limit)
	}

	if err != nil {
		if errors.Is(err, aggregator.ErrRefreshInProgress) {
			jsonError(w, "a refresh is already in progress", http.StatusConflict)
			return
		}
		log.Printf("[api] Refresh %s failed: %v", category, err)
		jsonError(w, "failed to refresh jobs", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "successfully refreshed jobs",
		"jobsAdded": jobsAdded,
		"category":  category,
	})
}

// addTestJob inserts a fixed posting with source "Manual Test" — a quick
// end-to-end check of the store without touching the external provider.
func (h *Handler) addTestJob(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	now := time.Now().UTC()
	job := &model.Job{
		Title:       "Test Software Engineer Position",
		Company:     "Test Company Inc",
		Description: "This is a test job created to verify database functionality.",
		Location:    "Remote",
		IsRemote:    true,
		Type:        model.TypeFullTime,
		Category:    "software-engineer",
		Tags:        []string{"Software Engineer", "Remote", "Entry Level"},
		Source:      "Manual Test",
		IsActive:    true,
		PostedDate:  now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.store.Create(r.Context(), job); err != nil {
		log.Printf("[api] Create test job failed: %v", err)
		jsonError(w, "failed to create test job", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "test job created successfully",
		"jobId":    job.ID,
		"jobTitle": job.Title,
	})
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func intParam(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return def
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] Encode response: %v", err)
	}
}

func jsonError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}
