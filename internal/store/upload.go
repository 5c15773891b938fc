package store

import (
	"sync"

	"alchemist/internal/types"
)

// UploadStore tracks known upload files, per-file progress and the global
// in-flight flag the UI uses to serialize uploads.
type UploadStore struct {
	mu       sync.RWMutex
	files    []types.UploadFile
	progress map[string]int
	status   map[string]types.UploadState
	inFlight bool
}

// NewUploadStore creates an empty upload store.
func NewUploadStore() *UploadStore {
	return &UploadStore{
		progress: make(map[string]int),
		status:   make(map[string]types.UploadState),
	}
}

// SetFiles replaces the known file list.
func (s *UploadStore) SetFiles(files []types.UploadFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = append(s.files[:0:0], files...)
}

// Files returns a snapshot of the file list.
func (s *UploadStore) Files() []types.UploadFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.UploadFile(nil), s.files...)
}

// SetProgress records upload progress (0-100) for a file.
func (s *UploadStore) SetProgress(id string, pct int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress[id] = pct
}

// Progress returns the recorded progress for a file, 0 if unknown.
func (s *UploadStore) Progress(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress[id]
}

// SetStatus records the processing state for a file.
func (s *UploadStore) SetStatus(id string, st types.UploadState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[id] = st
}

// Status returns the recorded state for a file.
func (s *UploadStore) Status(id string) (types.UploadState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.status[id]
	return st, ok
}

// SetInFlight flips the global "an upload is running" flag.
func (s *UploadStore) SetInFlight(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = v
}

// InFlight reports whether an upload is running.
func (s *UploadStore) InFlight() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight
}

// Reset clears all upload state.
func (s *UploadStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = nil
	s.progress = make(map[string]int)
	s.status = make(map[string]types.UploadState)
	s.inFlight = false
}
