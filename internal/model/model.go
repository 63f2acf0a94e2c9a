package model

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

// MaxDurationMins bounds a task's duration so it always fits the persisted
// integer field.
const MaxDurationMins = math.MaxInt32

// Task is one timed entry of the timetable.
type Task struct {
	ID           string        `json:"id"`
	Time         string        `json:"time"`
	DurationMins int           `json:"durationMins"`
	Title        string        `json:"title"`
	Notes        string        `json:"notes"`
	Steps        []Step        `json:"steps"`
	Required     []Requirement `json:"required"`
}

// Step is one how-to line of a task, optionally pointing at a link.
type Step struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// Requirement references an inventory item by name (the join key) with an
// optional needed quantity.
type Requirement struct {
	Name string   `json:"name"`
	Qty  Quantity `json:"qty"`
	Unit string   `json:"unit"`
}

// InventoryItem is stored under its normalized name; the name itself is the map key.
type InventoryItem struct {
	Qty  float64 `json:"qty"`
	Unit string  `json:"unit"`
}

// EndTime returns the task's end clock time, wrapping past midnight.
func (t Task) EndTime() string {
	return EndTime(t.Time, t.DurationMins)
}

// NormalizeName is the canonical form of an item or task name used for keys.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// NewTaskID returns an opaque id of the form task-<12 hex>.
func NewTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	hex := strings.ReplaceAll(id.String(), "-", "")
	// The leading bytes of a v7 id are the timestamp; use the random tail.
	return "task-" + hex[len(hex)-12:]
}

// IsTaskID reports whether s looks like an id produced by NewTaskID.
func IsTaskID(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "task-") && len(s) > len("task-")
}
