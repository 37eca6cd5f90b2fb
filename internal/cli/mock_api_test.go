package cli

import (
	"bytes"
	"context"

	"fieldtask/internal/config"
	"fieldtask/internal/device"
	"fieldtask/internal/domain"
)

// Mock session API for testing
type mockSessionAPI struct {
	signInOK      bool
	authenticated bool
	loading       bool
	user          *domain.User

	signInCalls  int
	signOutCalls int
	restoreCalls int
	lastEmail    string
	lastPass     string
}

func (m *mockSessionAPI) SignIn(ctx context.Context, email string, password string) bool {
	m.signInCalls++
	m.lastEmail = email
	m.lastPass = password
	if m.signInOK {
		m.authenticated = true
	}
	return m.signInOK
}

func (m *mockSessionAPI) SignOut(ctx context.Context) {
	m.signOutCalls++
	m.authenticated = false
	m.user = nil
}

func (m *mockSessionAPI) Restore(ctx context.Context) {
	m.restoreCalls++
	m.loading = false
}

func (m *mockSessionAPI) Authenticated() bool       { return m.authenticated }
func (m *mockSessionAPI) Loading() bool             { return m.loading }
func (m *mockSessionAPI) CurrentUser() *domain.User { return m.user }

// Mock tasks API for testing
type mockTasksAPI struct {
	tasks    []domain.Task
	loadErr  error
	toggleOK bool
	removeOK bool
	cleared  int
	lastErr  error
	filter   domain.Filter
	search   string

	loadCalls   int
	toggleCalls []string
	removeCalls []string
	clearCalls  int
}

func (m *mockTasksAPI) Load(ctx context.Context) error {
	m.loadCalls++
	return m.loadErr
}

func (m *mockTasksAPI) Toggle(ctx context.Context, id string) bool {
	m.toggleCalls = append(m.toggleCalls, id)
	if m.toggleOK {
		for i, task := range m.tasks {
			if task.ID == id {
				m.tasks[i].Completed = !task.Completed
			}
		}
	}
	return m.toggleOK
}

func (m *mockTasksAPI) Remove(ctx context.Context, id string) bool {
	m.removeCalls = append(m.removeCalls, id)
	return m.removeOK
}

func (m *mockTasksAPI) ClearCompleted(ctx context.Context) int {
	m.clearCalls++
	return m.cleared
}

func (m *mockTasksAPI) SetFilter(filter domain.Filter) { m.filter = filter }
func (m *mockTasksAPI) SetSearch(search string)        { m.search = search }

func (m *mockTasksAPI) Filtered() []domain.Task {
	return domain.FilterTasks(m.tasks, m.filter, m.search)
}

func (m *mockTasksAPI) Get(id string) (domain.Task, bool) {
	for _, task := range m.tasks {
		if task.ID == id {
			return task, true
		}
	}
	return domain.Task{}, false
}

func (m *mockTasksAPI) PendingCount() int {
	pending, _ := domain.CountByCompletion(m.tasks)
	return pending
}

func (m *mockTasksAPI) CompletedCount() int {
	_, completed := domain.CountByCompletion(m.tasks)
	return completed
}

func (m *mockTasksAPI) LastError() error { return m.lastErr }

// Mock form API for testing
type mockFormAPI struct {
	captureOK bool
	detectOK  bool
	submitOK  bool
	errMsg    string

	title        string
	description  string
	location     string
	editedTask   *domain.Task
	captureCalls int
	detectCalls  int
	submitCalls  int
}

func (m *mockFormAPI) SetTitle(title string)             { m.title = title }
func (m *mockFormAPI) SetDescription(description string) { m.description = description }
func (m *mockFormAPI) SetLocationName(name string)       { m.location = name }

func (m *mockFormAPI) StartEdit(task domain.Task) {
	m.editedTask = &task
	m.title = task.Title
	m.description = task.Description
	m.location = task.LocationName
}

func (m *mockFormAPI) CapturePhoto(ctx context.Context) bool {
	m.captureCalls++
	return m.captureOK
}

func (m *mockFormAPI) DetectLocation(ctx context.Context) bool {
	m.detectCalls++
	return m.detectOK
}

func (m *mockFormAPI) Submit(ctx context.Context) bool {
	m.submitCalls++
	return m.submitOK
}

func (m *mockFormAPI) ErrorMessage() string { return m.errMsg }

// Test fixture wiring the mocks into an App with captured output
type appFixture struct {
	app     *App
	session *mockSessionAPI
	tasks   *mockTasksAPI
	form    *mockFormAPI
	out     *bytes.Buffer

	lastPhotoSource string
	lastPosition    *device.Position
}

func newAppFixture() *appFixture {
	f := &appFixture{
		session: &mockSessionAPI{},
		tasks:   &mockTasksAPI{toggleOK: true, removeOK: true},
		form:    &mockFormAPI{captureOK: true, detectOK: true, submitOK: true},
		out:     &bytes.Buffer{},
	}
	forms := func(photoSource string, position *device.Position) FormAPI {
		f.lastPhotoSource = photoSource
		f.lastPosition = position
		return f.form
	}
	f.app = NewApp(config.NewConfig(), f.session, f.tasks, forms)
	f.app.SetOutput(f.out)
	return f
}
