// Package types defines the domain records mirrored from the Data Alchemist
// backend. The backend owns the canonical form of every record; these structs
// only carry what the client displays and edits. JSON tags match the wire
// names exactly.
package types

import "fmt"

// EntityType identifies one of the three spreadsheet-backed record families.
type EntityType string

const (
	EntityClients EntityType = "clients"
	EntityWorkers EntityType = "workers"
	EntityTasks   EntityType = "tasks"
)

// Entities lists all entity types in display order.
var Entities = []EntityType{EntityClients, EntityWorkers, EntityTasks}

// ValidEntity reports whether e names a known entity type.
func ValidEntity(e EntityType) bool {
	switch e {
	case EntityClients, EntityWorkers, EntityTasks:
		return true
	}
	return false
}

// Record is a raw entity row as returned by the list endpoints. The generic
// table UI works on records; typed structs below are used where a command
// needs specific fields.
type Record map[string]any

// ID returns the record's numeric ID rendered as a string, or "" when absent.
func (r Record) ID() string {
	v, ok := r["id"]
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case string:
		return id
	case float64: // JSON numbers decode as float64
		return fmt.Sprintf("%.0f", id)
	default:
		return fmt.Sprintf("%v", id)
	}
}

// RecordMetadata is the optional ingestion metadata the backend attaches
// under "_metadata".
type RecordMetadata struct {
	ProcessedAt string `json:"processedAt,omitempty"`
	Source      string `json:"source,omitempty"`
}

// Client is a customer record.
type Client struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	PriorityLevel int             `json:"priorityLevel"`
	Budget        float64         `json:"budget"`
	Metadata      *RecordMetadata `json:"_metadata,omitempty"`
}

// Availability is a worker's scheduling state.
type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityBusy        Availability = "busy"
	AvailabilityUnavailable Availability = "unavailable"
)

// Worker is a workforce record. Skills is ordered; the backend treats the
// first skill as primary.
type Worker struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Skills       []string     `json:"skills"`
	HourlyRate   float64      `json:"hourlyRate"`
	Availability Availability `json:"availability"`
}

// TaskStatus is a task's lifecycle state.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

// Task is a unit of allocatable work.
type Task struct {
	ID             int        `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	ClientID       int        `json:"clientId"`
	WorkerID       *int       `json:"workerId,omitempty"`
	Priority       int        `json:"priority"`
	EstimatedHours float64    `json:"estimatedHours"`
	Status         TaskStatus `json:"status"`
	Deadline       string     `json:"deadline,omitempty"`
}
