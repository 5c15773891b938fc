package store

import (
	"sync"

	"alchemist/internal/types"
)

// DefaultPageLimit is the page size used until the caller sets one.
const DefaultPageLimit = 20

// Pagination is the flat pagination state for the current entity view.
type Pagination struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// DataStore holds the entity browser state: the selected entity type,
// cached record pages per entity, filters, pagination and the multi-select
// list.
type DataStore struct {
	mu        sync.RWMutex
	entity    types.EntityType
	records   map[types.EntityType][]types.Record
	filters   map[string]string
	page      Pagination
	selection []string
}

// NewDataStore creates a data store showing clients first.
func NewDataStore() *DataStore {
	return &DataStore{
		entity:  types.EntityClients,
		records: make(map[types.EntityType][]types.Record),
		filters: make(map[string]string),
		page:    Pagination{Page: 1, Limit: DefaultPageLimit},
	}
}

// Entity returns the currently selected entity type.
func (s *DataStore) Entity() types.EntityType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entity
}

// SetEntity switches the browser to another entity type. Filters, selection
// and pagination belong to the previous view and reset with it.
func (s *DataStore) SetEntity(e types.EntityType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entity == e {
		return
	}
	s.entity = e
	s.filters = make(map[string]string)
	s.selection = nil
	s.page.Page = 1
	s.page.Total = 0
	s.page.TotalPages = 0
}

// SetRecords caches a fetched page for an entity along with its pagination.
func (s *DataStore) SetRecords(e types.EntityType, recs []types.Record, p Pagination) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[e] = append([]types.Record(nil), recs...)
	if e == s.entity {
		s.page = p
	}
}

// Records returns the cached page for an entity.
func (s *DataStore) Records(e types.EntityType) []types.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.Record(nil), s.records[e]...)
}

// SetFilter sets one filter and resets the page to 1, preserving the limit.
// Stale page numbers against a freshly narrowed result set are the classic
// way to render an empty table.
func (s *DataStore) SetFilter(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == "" {
		delete(s.filters, key)
	} else {
		s.filters[key] = value
	}
	s.page.Page = 1
}

// ClearFilters drops all filters and resets the page to 1.
func (s *DataStore) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = make(map[string]string)
	s.page.Page = 1
}

// Filters returns a copy of the active filters.
func (s *DataStore) Filters() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.filters))
	for k, v := range s.filters {
		out[k] = v
	}
	return out
}

// Pagination returns the current pagination state.
func (s *DataStore) Pagination() Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// SetPage moves to a page, clamped to [1, totalPages] when the total is
// known.
func (s *DataStore) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if page < 1 {
		page = 1
	}
	if s.page.TotalPages > 0 && page > s.page.TotalPages {
		page = s.page.TotalPages
	}
	s.page.Page = page
}

// SetLimit changes the page size and resets to page 1.
func (s *DataStore) SetLimit(limit int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit < 1 {
		limit = DefaultPageLimit
	}
	s.page.Limit = limit
	s.page.Page = 1
}

// ToggleSelect adds or removes a record ID from the multi-select list.
func (s *DataStore) ToggleSelect(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sel := range s.selection {
		if sel == id {
			s.selection = append(s.selection[:i], s.selection[i+1:]...)
			return
		}
	}
	s.selection = append(s.selection, id)
}

// Selected reports whether a record ID is in the selection.
func (s *DataStore) Selected(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sel := range s.selection {
		if sel == id {
			return true
		}
	}
	return false
}

// Selection returns a snapshot of the selected record IDs.
func (s *DataStore) Selection() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.selection...)
}

// ClearSelection empties the multi-select list.
func (s *DataStore) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = nil
}
