package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alchemist/internal/types"
)

func TestUploadStoreRoundTrip(t *testing.T) {
	s := NewUploadStore()

	s.SetFiles([]types.UploadFile{
		{ID: "clients", Name: "clients.csv", Status: types.UploadCompleted, Progress: 100},
	})
	files := s.Files()
	require.Len(t, files, 1)
	assert.Equal(t, "clients.csv", files[0].Name)

	s.SetProgress("clients", 50)
	assert.Equal(t, 50, s.Progress("clients"))

	s.SetStatus("clients", types.UploadProcessing)
	st, ok := s.Status("clients")
	require.True(t, ok)
	assert.Equal(t, types.UploadProcessing, st)

	s.SetInFlight(true)
	assert.True(t, s.InFlight())
}

func TestUploadStoreStatusUnknownID(t *testing.T) {
	s := NewUploadStore()

	_, ok := s.Status("tasks")
	assert.False(t, ok)
}

func TestUploadStoreReset(t *testing.T) {
	s := NewUploadStore()
	s.SetFiles([]types.UploadFile{{ID: "tasks", Name: "tasks.csv"}})
	s.SetProgress("tasks", 80)
	s.SetStatus("tasks", types.UploadProcessing)
	s.SetInFlight(true)

	s.Reset()

	assert.Empty(t, s.Files())
	assert.Zero(t, s.Progress("tasks"))
	_, ok := s.Status("tasks")
	assert.False(t, ok)
	assert.False(t, s.InFlight())
}
