package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"alchemist/internal/types"
)

// DataService wraps the /data resource family: entity listing, single-record
// CRUD and export blobs.
type DataService struct {
	c *Client
}

// ListQuery holds pagination and filter parameters for a list call.
type ListQuery struct {
	Page    int
	Limit   int
	Filters map[string]string
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys) // stable query strings for logging and tests
	for _, k := range keys {
		v.Set(k, q.Filters[k])
	}
	return v
}

// List fetches one page of raw records for an entity type.
func (s *DataService) List(ctx context.Context, entity types.EntityType, q ListQuery) (*PageResult[types.Record], error) {
	return ListAs[types.Record](ctx, s, entity, q)
}

// ListAs fetches one page of records decoded into a typed slice. The table
// renderers use it to get properly typed Client/Worker/Task rows.
func ListAs[T any](ctx context.Context, s *DataService, entity types.EntityType, q ListQuery) (*PageResult[T], error) {
	path := fmt.Sprintf("/data/%s", entity)
	if enc := q.values().Encode(); enc != "" {
		path += "?" + enc
	}
	body, err := s.c.doRaw(ctx, s.c.std, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	page, err := decodePage[T](body, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", entity, err)
	}
	return page, nil
}

// Get fetches a single record.
func (s *DataService) Get(ctx context.Context, entity types.EntityType, id string) (types.Record, error) {
	var rec types.Record
	path := fmt.Sprintf("/data/%s/%s", entity, url.PathEscape(id))
	if err := s.c.do(ctx, s.c.std, http.MethodGet, path, nil, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update patches a record with the given partial fields and returns the
// updated copy.
func (s *DataService) Update(ctx context.Context, entity types.EntityType, id string, patch map[string]any) (types.Record, error) {
	var rec types.Record
	path := fmt.Sprintf("/data/%s/%s", entity, url.PathEscape(id))
	if err := s.c.do(ctx, s.c.std, http.MethodPatch, path, patch, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes a record.
func (s *DataService) Delete(ctx context.Context, entity types.EntityType, id string) error {
	path := fmt.Sprintf("/data/%s/%s", entity, url.PathEscape(id))
	return s.c.do(ctx, s.c.std, http.MethodDelete, path, nil, nil)
}

// Summary fetches the record count for every entity type concurrently.
func (s *DataService) Summary(ctx context.Context) (map[types.EntityType]int, error) {
	var mu sync.Mutex
	counts := make(map[types.EntityType]int, len(types.Entities))

	g, gctx := errgroup.WithContext(ctx)
	for _, entity := range types.Entities {
		g.Go(func() error {
			page, err := s.List(gctx, entity, ListQuery{Page: 1, Limit: 1})
			if err != nil {
				return err
			}
			mu.Lock()
			counts[entity] = page.Total
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}

// ExportConfig configures a combined export.
type ExportConfig struct {
	Format       string             `json:"format,omitempty"` // csv, xlsx
	Entities     []types.EntityType `json:"entities,omitempty"`
	IncludeRules bool               `json:"includeRules,omitempty"`
}

// ExportEntity streams a single entity's export blob into w.
func (s *DataService) ExportEntity(ctx context.Context, entity types.EntityType, w io.Writer) error {
	path := fmt.Sprintf("/data/%s/export", entity)
	return s.c.download(ctx, s.c.std, http.MethodGet, path, nil, w)
}

// Export streams a combined export blob into w.
func (s *DataService) Export(ctx context.Context, cfg ExportConfig, w io.Writer) error {
	return s.c.download(ctx, s.c.std, http.MethodPost, "/data/export", cfg, w)
}
