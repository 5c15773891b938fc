package rulegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoRunFieldsEmptySelection(t *testing.T) {
	fields, warn := CoRunFields(CoRunForm{})

	assert.Empty(t, fields.Condition)
	assert.Empty(t, fields.Action)
	assert.True(t, warn)
}

func TestCoRunFieldsTwoTasks(t *testing.T) {
	fields, warn := CoRunFields(CoRunForm{TaskIDs: []string{"3", "7"}})

	assert.False(t, warn)
	assert.Contains(t, fields.Condition, "3")
	assert.Contains(t, fields.Condition, "7")
	assert.Equal(t, "task.id IN (3, 7)", fields.Condition)
	assert.Equal(t, "Run tasks 3, 7 together in the same phase", fields.Action)
}

func TestCoRunFieldsSingleTaskWarns(t *testing.T) {
	fields, warn := CoRunFields(CoRunForm{TaskIDs: []string{"5"}})

	assert.True(t, warn, "one task cannot co-run with anything")
	assert.Equal(t, "task.id IN (5)", fields.Condition)
}

func TestCoRunFieldsDuplicatesCollapse(t *testing.T) {
	fields, warn := CoRunFields(CoRunForm{TaskIDs: []string{"3", "3", " 3 "}})

	assert.True(t, warn, "duplicates of one task are still one task")
	assert.Equal(t, "task.id IN (3)", fields.Condition)
}

func TestCoRunFieldsIdempotent(t *testing.T) {
	form := CoRunForm{TaskIDs: []string{"3", "7"}}
	first, _ := CoRunFields(form)
	second, _ := CoRunFields(form)

	assert.Equal(t, first, second)
}

func TestLoadLimitFields(t *testing.T) {
	fields := LoadLimitFields(LoadLimitForm{WorkerGroup: "GroupA", MaxSlots: 5})

	assert.Equal(t, "worker.group === 'GroupA'", fields.Condition)
	assert.Equal(t, "Limit GroupA workers to max 5 slots per phase", fields.Action)
}

func TestLoadLimitFieldsEmptyGroup(t *testing.T) {
	fields := LoadLimitFields(LoadLimitForm{MaxSlots: 5})

	assert.Empty(t, fields.Condition)
	assert.Empty(t, fields.Action)
}

func TestLoadLimitFieldsFloorsSlots(t *testing.T) {
	fields := LoadLimitFields(LoadLimitForm{WorkerGroup: "GroupB", MaxSlots: 0})

	assert.Contains(t, fields.Action, "max 1 slots")
}

func TestPhaseWindowFields(t *testing.T) {
	fields := PhaseWindowFields(PhaseWindowForm{TaskID: "12", Phases: []int{2, 3, 4}})

	assert.Equal(t, "task.id === '12'", fields.Condition)
	assert.Equal(t, "Allow task 12 only in phases 2, 3, 4", fields.Action)
}

func TestPhaseWindowFieldsIncomplete(t *testing.T) {
	assert.Empty(t, PhaseWindowFields(PhaseWindowForm{Phases: []int{1}}).Condition)
	assert.Empty(t, PhaseWindowFields(PhaseWindowForm{TaskID: "9"}).Condition)
}
