// Package tasks holds the client's task collection. The remote backend
// is authoritative: the local collection changes only after the remote
// acknowledges a mutation, so a failed request leaves the collection
// exactly as it was.
package tasks

import (
	"context"
	"sync"

	"fieldtask/internal/device"
	"fieldtask/internal/domain"
	"fieldtask/internal/logging"
)

// Backend defines the remote operations the store depends on.
// Satisfied by the transport client.
type Backend interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, draft domain.TaskDraft) (*domain.Task, error)
	SetCompleted(ctx context.Context, id string, completed bool) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// Store holds the task collection plus the view state applied to it
type Store struct {
	mu sync.Mutex

	backend Backend
	media   device.MediaReleaser

	tasks   []domain.Task
	filter  domain.Filter
	search  string
	loading bool
	lastErr error
}

// NewStore creates a task store. The media releaser may be nil when no
// local capture cache exists.
func NewStore(backend Backend, media device.MediaReleaser) *Store {
	return &Store{
		backend: backend,
		media:   media,
		filter:  domain.FilterAll,
	}
}

// Load replaces the collection with the remote list. The loading flag
// is cleared whether or not the request succeeds; on failure the
// previous collection is kept.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	remote, err := s.backend.ListTasks(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		return err
	}
	s.tasks = remote
	s.lastErr = nil
	return nil
}

// Add creates a task remotely and prepends the canonical result to the
// collection. Returns false when the remote rejects it.
func (s *Store) Add(ctx context.Context, draft domain.TaskDraft) bool {
	created, err := s.backend.CreateTask(ctx, draft)
	if err != nil {
		s.setError(err)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append([]domain.Task{*created}, s.tasks...)
	s.lastErr = nil
	return true
}

// Update rewrites a task remotely and replaces it in place with the
// canonical result. Position in the collection is preserved.
func (s *Store) Update(ctx context.Context, id string, draft domain.TaskDraft) bool {
	updated, err := s.backend.UpdateTask(ctx, id, draft)
	if err != nil {
		s.setError(err)
		return false
	}

	s.replace(*updated)
	return true
}

// Toggle flips a task's completion state. The negation is taken from
// the local copy at call time; the canonical remote result wins.
func (s *Store) Toggle(ctx context.Context, id string) bool {
	s.mu.Lock()
	current, ok := s.find(id)
	s.mu.Unlock()
	if !ok {
		return false
	}

	updated, err := s.backend.SetCompleted(ctx, id, !current.Completed)
	if err != nil {
		s.setError(err)
		return false
	}

	s.replace(*updated)
	return true
}

// Remove deletes a task remotely, then locally
func (s *Store) Remove(ctx context.Context, id string) bool {
	if err := s.backend.DeleteTask(ctx, id); err != nil {
		s.setError(err)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.delete(id)
	s.lastErr = nil
	return true
}

// ClearCompleted deletes every completed task. Deletes run
// concurrently; only tasks whose delete succeeded are removed locally,
// so a partial failure leaves the survivors in place. Returns the
// number of tasks removed.
func (s *Store) ClearCompleted(ctx context.Context) int {
	s.mu.Lock()
	var completed []domain.Task
	for _, task := range s.tasks {
		if task.Completed {
			completed = append(completed, task)
		}
	}
	s.mu.Unlock()

	if len(completed) == 0 {
		return 0
	}

	results := make([]error, len(completed))
	var wg sync.WaitGroup
	for i, task := range completed {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			results[i] = s.backend.DeleteTask(ctx, id)
		}(i, task.ID)
	}
	wg.Wait()

	s.mu.Lock()
	removed := 0
	var failed error
	for i, task := range completed {
		if results[i] != nil {
			failed = results[i]
			continue
		}
		s.delete(task.ID)
		removed++
		s.releaseMedia(ctx, task.PhotoURL)
	}
	s.lastErr = failed
	s.mu.Unlock()
	return removed
}

// SetFilter changes the completion filter applied by Filtered
func (s *Store) SetFilter(filter domain.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = filter
}

// SetSearch changes the title search applied by Filtered
func (s *Store) SetSearch(search string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = search
}

// Filtered returns the visible tasks under the current filter and
// search, in collection order.
func (s *Store) Filtered() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.FilterTasks(s.tasks, s.filter, s.search)
}

// All returns a copy of the full collection
func (s *Store) All() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns the task with the given id from the local collection
func (s *Store) Get(id string) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(id)
}

// PendingCount returns the number of incomplete tasks, ignoring the
// active filter and search.
func (s *Store) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending, _ := domain.CountByCompletion(s.tasks)
	return pending
}

// CompletedCount returns the number of completed tasks, ignoring the
// active filter and search.
func (s *Store) CompletedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, completed := domain.CountByCompletion(s.tasks)
	return completed
}

// Loading reports whether a Load is in flight
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the error from the most recent failed operation,
// or nil when the last operation succeeded.
func (s *Store) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) setError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

// find returns the task with the given id. Caller holds the lock.
func (s *Store) find(id string) (domain.Task, bool) {
	for _, task := range s.tasks {
		if task.ID == id {
			return task, true
		}
	}
	return domain.Task{}, false
}

// replace swaps in the canonical copy of a task, keeping its position
func (s *Store) replace(updated domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, task := range s.tasks {
		if task.ID == updated.ID {
			s.tasks[i] = updated
			break
		}
	}
	s.lastErr = nil
}

// delete removes the task with the given id. Caller holds the lock.
func (s *Store) delete(id string) {
	for i, task := range s.tasks {
		if task.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return
		}
	}
}

// releaseMedia drops any locally-cached capture for a deleted task.
// Best effort. Caller holds the lock.
func (s *Store) releaseMedia(ctx context.Context, ref string) {
	if s.media == nil || ref == "" {
		return
	}
	if err := s.media.Release(ctx, ref); err != nil {
		logging.Debugf("media release failed for %s: %v", ref, err)
	}
}
