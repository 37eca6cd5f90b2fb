package domain

import (
	"strings"
)

// Task represents a task in the domain model.
// The backend is the source of truth: ID and timestamps are assigned
// remotely, and local copies are always replaced by the canonical record
// returned from a mutation.
type Task struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	PhotoURL     string `json:"photoUrl"`
	LocationName string `json:"locationName"`
	Completed    bool   `json:"completed"`
	CreatedAt    int64  `json:"createdAt"`
	UpdatedAt    int64  `json:"updatedAt"`
}

// IsValid checks if the task satisfies the persisted-task invariants:
// title, photo reference and location name are always present.
func (t Task) IsValid() bool {
	if strings.TrimSpace(t.Title) == "" {
		return false
	}
	if t.PhotoURL == "" {
		return false
	}
	if strings.TrimSpace(t.LocationName) == "" {
		return false
	}
	return t.UpdatedAt >= t.CreatedAt
}

// MatchesSearch reports whether the task title contains the query,
// case-insensitively. An empty query matches everything.
func (t Task) MatchesSearch(query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), strings.ToLower(query))
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}

// TaskDraft holds the transient, unpersisted field values of an
// in-progress task creation or edit. PhotoRef is a device-local
// reference before upload, never a remote URL.
type TaskDraft struct {
	Title        string
	Description  string
	PhotoRef     string
	LocationName string
}

// Trimmed returns a copy of the draft with title, description and
// location name trimmed of surrounding whitespace.
func (d TaskDraft) Trimmed() TaskDraft {
	return TaskDraft{
		Title:        strings.TrimSpace(d.Title),
		Description:  strings.TrimSpace(d.Description),
		PhotoRef:     d.PhotoRef,
		LocationName: strings.TrimSpace(d.LocationName),
	}
}
