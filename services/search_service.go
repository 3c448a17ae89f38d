package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"events-backend/config"
	"events-backend/models"
)

// SearchService pages over filtered, ranked occurrences with a short-lived
// cache keyed by the canonical FilterSpec serialization.
//
// Cache entries expire a fixed TTL after their last full (reset) fetch;
// reads and appended pages do not extend an entry's life. A fetch that
// fails leaves the previously accumulated state untouched, and responses
// that arrive for a superseded key or a wrong offset are discarded
// silently.
type SearchService struct {
	store EventStore
	cfg   *config.Config

	mu    sync.Mutex
	cache map[string]*searchEntry

	// now is the clock used for TTL checks, overridable in tests.
	now func() time.Time
}

// searchEntry is the accumulated pagination state for one FilterSpec.
type searchEntry struct {
	key         string
	occurrences []models.Occurrence
	totalCount  int64
	nextPage    int
	hasMore     bool
	loading     bool
	resetAt     time.Time
}

// NewSearchService creates a new search service instance
func NewSearchService(cfg *config.Config, store EventStore) *SearchService {
	return &SearchService{
		store: store,
		cfg:   cfg,
		cache: make(map[string]*searchEntry),
		now:   time.Now,
	}
}

func (s *SearchService) expired(entry *searchEntry) bool {
	return s.now().Sub(entry.resetAt) >= s.cfg.SearchCacheTTL
}

// snapshot copies the entry state for callers. The occurrence slice is
// copied so later appends never race with a returned response.
func (e *searchEntry) snapshot() models.SearchStateResponse {
	occurrences := make([]models.Occurrence, len(e.occurrences))
	copy(occurrences, e.occurrences)
	return models.SearchStateResponse{
		Occurrences: occurrences,
		TotalCount:  e.totalCount,
		Loading:     e.loading,
		HasMore:     e.hasMore,
	}
}

// Fetch returns the pager state for a FilterSpec. With reset=false a live,
// non-expired cache entry is returned without touching the store;
// otherwise the first page is fetched and replaces the accumulated state.
// Requests for a key whose fetch is already in flight coalesce onto that
// fetch and return the current snapshot; a reset arriving during the
// flight is not queued, the caller retries once the flight settles.
func (s *SearchService) Fetch(ctx context.Context, spec models.FilterSpec, today time.Time, reset bool) (models.SearchStateResponse, error) {
	key := spec.CanonicalKey()

	s.mu.Lock()
	entry, ok := s.cache[key]
	if ok && !reset && !s.expired(entry) {
		resp := entry.snapshot()
		s.mu.Unlock()
		return resp, nil
	}
	if ok && entry.loading {
		// A fetch for this key is already in flight.
		resp := entry.snapshot()
		s.mu.Unlock()
		return resp, nil
	}
	if !ok {
		entry = &searchEntry{key: key}
		s.cache[key] = entry
	}
	entry.loading = true
	s.mu.Unlock()

	page, err := s.store.QueryOccurrencesPage(ctx, spec, today, s.cfg.SearchPageSize, 0)

	s.mu.Lock()
	defer s.mu.Unlock()
	entry.loading = false
	if err != nil {
		// Existing accumulated state stays intact.
		return entry.snapshot(), fmt.Errorf("search fetch failed: %w", err)
	}

	if s.cache[key] == entry {
		entry.occurrences = page.Occurrences
		entry.totalCount = page.TotalCount
		entry.nextPage = 1
		entry.hasMore = len(page.Occurrences) == s.cfg.SearchPageSize
		entry.resetAt = s.now()
	}
	return entry.snapshot(), nil
}

// LoadMore fetches the next page for a FilterSpec. It is a no-op while a
// fetch is in flight or when the store has no more rows. Without any live
// entry it degrades to a fresh Fetch.
func (s *SearchService) LoadMore(ctx context.Context, spec models.FilterSpec, today time.Time) (models.SearchStateResponse, error) {
	key := spec.CanonicalKey()

	s.mu.Lock()
	entry, ok := s.cache[key]
	if !ok || s.expired(entry) {
		s.mu.Unlock()
		return s.Fetch(ctx, spec, today, false)
	}
	if entry.loading || !entry.hasMore {
		resp := entry.snapshot()
		s.mu.Unlock()
		return resp, nil
	}
	entry.loading = true
	wantPage := entry.nextPage
	s.mu.Unlock()

	page, err := s.store.QueryOccurrencesPage(ctx, spec, today, s.cfg.SearchPageSize, wantPage*s.cfg.SearchPageSize)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		entry.loading = false
		return entry.snapshot(), fmt.Errorf("load more failed: %w", err)
	}

	s.commitAppend(key, entry, wantPage, page)

	s.mu.Lock()
	defer s.mu.Unlock()
	return entry.snapshot(), nil
}

// commitAppend folds a completed page into the pager state. The append is
// discarded when the entry has been superseded for its key, or when the
// response is for a different offset than the sequence expects; pages must
// land in fetch order.
func (s *SearchService) commitAppend(key string, entry *searchEntry, wantPage int, page models.OccurrencePage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.loading = false
	if s.cache[key] != entry {
		return false
	}
	if entry.nextPage != wantPage {
		return false
	}

	entry.occurrences = append(entry.occurrences, page.Occurrences...)
	entry.totalCount = page.TotalCount
	entry.nextPage++
	entry.hasMore = len(page.Occurrences) == s.cfg.SearchPageSize
	return true
}

// Snapshot returns the current pager state without touching the store.
// A missing or expired entry reads as empty with HasMore set, so the UI
// knows a fetch is worthwhile.
func (s *SearchService) Snapshot(spec models.FilterSpec) models.SearchStateResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.cache[spec.CanonicalKey()]
	if !ok || s.expired(entry) {
		return models.SearchStateResponse{Occurrences: []models.Occurrence{}, HasMore: true}
	}
	return entry.snapshot()
}

// InvalidateCache clears all accumulated pagination state.
func (s *SearchService) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*searchEntry)
}
