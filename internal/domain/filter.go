package domain

import (
	"fmt"
)

// Filter selects which tasks a derived view includes.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

// ParseFilter parses a filter mode from user input.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case FilterAll, FilterPending, FilterCompleted:
		return Filter(s), nil
	default:
		return "", fmt.Errorf("invalid filter: %s (expected all, pending or completed)", s)
	}
}

// Matches reports whether the task passes the filter mode.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterPending:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// FilterTasks returns the tasks passing the filter mode and the
// case-insensitive title search, preserving the input order.
func FilterTasks(tasks []Task, filter Filter, search string) []Task {
	result := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !filter.Matches(t) {
			continue
		}
		if !t.MatchesSearch(search) {
			continue
		}
		result = append(result, t)
	}
	return result
}

// CountByCompletion partitions the unfiltered list into pending and
// completed counts.
func CountByCompletion(tasks []Task) (pending int, completed int) {
	for _, t := range tasks {
		if t.Completed {
			completed++
		} else {
			pending++
		}
	}
	return pending, completed
}
