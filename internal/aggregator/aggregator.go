// Package aggregator orchestrates job ingestion: it walks the category
// catalog, fetches postings from the external provider query by query,
// tags them, and persists the ones not already stored.
//
// Fetching is strictly sequential with pacing delays between calls — the
// provider is rate limited, so the loop must never burst.
package aggregator

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/samsondavid381/NeedAJobdotCom/internal/catalog"
	"github.com/samsondavid381/NeedAJobdotCom/internal/model"
)

const (
	queryDelay    = 1 * time.Second // between queries within a category
	categoryDelay = 2 * time.Second // between categories in a full refresh

	// jobsPerCategory caps each category during a full refresh to stay
	// within the provider's daily call budget.
	jobsPerCategory = 25
)

// ErrRefreshInProgress is returned when another refresh run holds the lock.
var ErrRefreshInProgress = errors.New("a refresh is already in progress")

// Fetcher is the provider capability the aggregator depends on.
type Fetcher interface {
	Fetch(ctx context.Context, query, location string, limit int) ([]model.ExternalJob, error)
}

// JobStore is the persistence capability the aggregator depends on.
type JobStore interface {
	Exists(ctx context.Context, externalID, source string) (bool, error)
	Create(ctx context.Context, job *model.Job) error
}

// Aggregator runs category refreshes. Safe for use from multiple triggers:
// the RefreshLock admits one run at a time.
type Aggregator struct {
	fetcher Fetcher
	store   JobStore
	lock    RefreshLock

	// pacing delays, overridable in tests
	queryDelay    time.Duration
	categoryDelay time.Duration
}

// New returns a configured Aggregator. lock may be nil when the caller
// guarantees non-overlapping triggers itself.
func New(fetcher Fetcher, store JobStore, lock RefreshLock) *Aggregator {
	return &Aggregator{
		fetcher:       fetcher,
		store:         store,
		lock:          lock,
		queryDelay:    queryDelay,
		categoryDelay: categoryDelay,
	}
}

// ─── Entry points ────────────────────────────────────────────────────────────

// RefreshCategory fetches and ingests jobs for one category, splitting
// limit across the category's queries. Unknown categories are not an
// error: they log a warning and return 0.
//
// Returns the number of newly stored jobs. Cancelling ctx stops the loop
// after the in-flight query completes; the count accumulated so far is
// still returned.
func (a *Aggregator) RefreshCategory(ctx context.Context, category string, limit int) (int, error) {
	release, err := a.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer release()

	return a.refreshCategory(ctx, category, limit), nil
}

// RefreshAll refreshes every catalog category in order, with a longer
// pacing delay between categories. Per-category failures are logged and do
// not stop the run.
func (a *Aggregator) RefreshAll(ctx context.Context) (int, error) {
	release, err := a.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer release()

	totalAdded := 0
	for _, category := range catalog.Categories() {
		if ctx.Err() != nil {
			log.Printf("[aggregator] Refresh cancelled — %d jobs added so far", totalAdded)
			break
		}

		added := a.refreshCategory(ctx, category, jobsPerCategory)
		totalAdded += added
		log.Printf("[aggregator] Category %s done — added %d jobs", category, added)

		a.pace(ctx, a.categoryDelay)
	}

	log.Printf("[aggregator] Full refresh complete — %d jobs added", totalAdded)
	return totalAdded, nil
}

// ─── Refresh loop ────────────────────────────────────────────────────────────

func (a *Aggregator) refreshCategory(ctx context.Context, category string, limit int) int {
	queries, ok := catalog.Queries(category)
	if !ok {
		log.Printf("[aggregator] Unknown category %q — nothing to refresh", category)
		return 0
	}

	perQuery := limit / len(queries)
	if perQuery < 1 {
		perQuery = 1
	}

	// Cancellation is honoured between queries only: the in-flight fetch
	// and its inserts run to completion so partial pages are never dropped.
	workCtx := context.WithoutCancel(ctx)

	added := 0
	for i, query := range queries {
		if ctx.Err() != nil {
			break
		}
		if i > 0 {
			a.pace(ctx, a.queryDelay)
		}

		drafts, err := a.fetcher.Fetch(workCtx, query, "", perQuery)
		if err != nil {
			// Provider failures are per-query: log and move on. The next
			// scheduled run is the retry mechanism.
			log.Printf("[aggregator] Fetch %q (category %s) failed: %v — continuing", query, category, err)
			continue
		}

		count := 0
		for _, draft := range drafts {
			if a.admit(workCtx, draft, category) == admitCreated {
				count++
			}
		}
		added += count
		log.Printf("[aggregator] Query %q added %d of %d fetched", query, count, len(drafts))
	}

	return added
}

// ─── Dedup/persist gate ──────────────────────────────────────────────────────

type admitOutcome int

const (
	admitCreated admitOutcome = iota
	admitSkipped
	admitFailed
)

// admit stores one draft unless a job with the same (externalID, source)
// already exists. Store failures are isolated to the single record.
func (a *Aggregator) admit(ctx context.Context, draft model.ExternalJob, category string) admitOutcome {
	exists, err := a.store.Exists(ctx, draft.ExternalID, draft.Source)
	if err != nil {
		log.Printf("[aggregator] Dedup lookup for %s/%s failed: %v", draft.Source, draft.ExternalID, err)
		return admitFailed
	}
	if exists {
		return admitSkipped
	}

	job := buildJob(draft, category, time.Now().UTC())
	if err := a.store.Create(ctx, job); err != nil {
		log.Printf("[aggregator] Insert %q at %q failed: %v", draft.Title, draft.Company, err)
		return admitFailed
	}
	return admitCreated
}

// buildJob converts a tagged draft into the canonical entity.
func buildJob(draft model.ExternalJob, category string, now time.Time) *model.Job {
	externalID := draft.ExternalID
	return &model.Job{
		Title:       draft.Title,
		Company:     draft.Company,
		CompanyLogo: draft.CompanyLogo,
		Description: draft.Description,
		Location:    draft.Location,
		IsRemote:    draft.IsRemote,
		Salary:      draft.Salary,
		Type:        draft.Type,
		Category:    category,
		Tags:        GenerateTags(draft, category),
		ApplyURL:    draft.ApplyURL,
		Source:      draft.Source,
		IsActive:    true,
		PostedDate:  draft.PostedDate,
		CreatedAt:   now,
		UpdatedAt:   now,
		ExternalID:  &externalID,
	}
}

// ─── Pacing & locking ────────────────────────────────────────────────────────

// pace sleeps for d, returning early when ctx is cancelled.
func (a *Aggregator) pace(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

// acquire takes the refresh lock when one is configured. The returned
// release function is always safe to call.
func (a *Aggregator) acquire(ctx context.Context) (func(), error) {
	if a.lock == nil {
		return func() {}, nil
	}
	ok, err := a.lock.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRefreshInProgress
	}
	return func() { a.lock.Release(context.WithoutCancel(ctx)) }, nil
}
