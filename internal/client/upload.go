package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"alchemist/internal/types"
)

// UploadService wraps spreadsheet ingestion: the multipart upload itself and
// the per-entity status poll.
type UploadService struct {
	c *Client
}

// UploadResult is the backend's report of a processed upload.
type UploadResult struct {
	Files     []string       `json:"files"`
	Processed map[string]int `json:"processed"` // entity -> row count
}

// Upload sends one spreadsheet. The multipart field name is the entity type;
// the backend routes parsing on it.
func (s *UploadService) Upload(ctx context.Context, entity types.EntityType, filename string, r io.Reader) (*UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(string(entity), filename)
	if err != nil {
		return nil, fmt.Errorf("upload %s: create form: %w", filename, err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("upload %s: read file: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("upload %s: finalize form: %w", filename, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.c.baseURL+"/upload", &buf)
	if err != nil {
		return nil, fmt.Errorf("upload %s: create request: %w", filename, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	data, err := s.c.roundTrip(s.c.std, req)
	if err != nil {
		return nil, err
	}

	var result UploadResult
	if err := decodeEnvelope(data, &result); err != nil {
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}
	return &result, nil
}

// entityStatus is the wire shape of one entry in the status-by-entity map.
type entityStatus struct {
	HasData  bool   `json:"hasData"`
	Count    int    `json:"count"`
	Status   string `json:"status"`
	FileName string `json:"fileName,omitempty"`
	FileSize int64  `json:"fileSize,omitempty"`
}

// Status derives the file list from the backend's status-by-entity map. The
// backend has no per-file records, so this synthesizes one pseudo-file per
// entity that has data; an entity whose upload failed before any data landed
// produces no entry at all.
func (s *UploadService) Status(ctx context.Context) ([]types.UploadFile, error) {
	var byEntity map[string]entityStatus
	if err := s.c.do(ctx, s.c.short, http.MethodGet, "/upload/status", nil, &byEntity); err != nil {
		return nil, err
	}

	var files []types.UploadFile
	for _, entity := range types.Entities { // stable display order
		st, ok := byEntity[string(entity)]
		if !ok || !st.HasData {
			continue
		}
		name := st.FileName
		if name == "" {
			name = string(entity) + ".csv"
		}
		files = append(files, types.UploadFile{
			ID:       string(entity),
			Name:     name,
			Entity:   entity,
			Size:     st.FileSize,
			RowCount: st.Count,
			Status:   uploadState(st.Status),
			Progress: uploadProgress(st.Status),
		})
	}
	return files, nil
}

func uploadState(s string) types.UploadState {
	switch types.UploadState(s) {
	case types.UploadPending, types.UploadProcessing, types.UploadCompleted, types.UploadFailed:
		return types.UploadState(s)
	default:
		// An entity with data but no explicit status has finished processing.
		return types.UploadCompleted
	}
}

func uploadProgress(s string) int {
	switch types.UploadState(s) {
	case types.UploadProcessing:
		return 50
	case types.UploadPending:
		return 0
	default:
		return 100
	}
}
