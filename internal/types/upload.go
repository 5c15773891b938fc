package types

// UploadState is the processing state of an uploaded spreadsheet.
type UploadState string

const (
	UploadPending    UploadState = "pending"
	UploadProcessing UploadState = "processing"
	UploadCompleted  UploadState = "completed"
	UploadFailed     UploadState = "failed"
)

// UploadFile is a derived view of the backend's per-entity upload status.
// The backend only exposes a status-by-entity map, so a "file" here is one
// pseudo-record per entity that has data; a failed upload of an entity with
// no prior data leaves no entry at all.
type UploadFile struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Entity   EntityType  `json:"entity"`
	Size     int64       `json:"size,omitempty"`
	RowCount int         `json:"rowCount,omitempty"`
	Status   UploadState `json:"status"`
	Progress int         `json:"progress"` // 0-100
}

// HealthStatus is the shape of the /health and /ai/health responses.
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
	Version string `json:"version,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}
