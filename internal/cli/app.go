package cli

import (
	"context"
	"io"
	"os"

	"fieldtask/internal/config"
	"fieldtask/internal/device"
	"fieldtask/internal/domain"
)

// SessionAPI is the session surface the commands drive
type SessionAPI interface {
	SignIn(ctx context.Context, email string, password string) bool
	SignOut(ctx context.Context)
	Restore(ctx context.Context)
	Authenticated() bool
	Loading() bool
	CurrentUser() *domain.User
}

// TasksAPI is the task collection surface the commands drive
type TasksAPI interface {
	Load(ctx context.Context) error
	Toggle(ctx context.Context, id string) bool
	Remove(ctx context.Context, id string) bool
	ClearCompleted(ctx context.Context) int
	SetFilter(filter domain.Filter)
	SetSearch(search string)
	Filtered() []domain.Task
	Get(id string) (domain.Task, bool)
	PendingCount() int
	CompletedCount() int
	LastError() error
}

// FormAPI is the draft surface the add and edit commands drive
type FormAPI interface {
	SetTitle(title string)
	SetDescription(description string)
	SetLocationName(name string)
	StartEdit(task domain.Task)
	CapturePhoto(ctx context.Context) bool
	DetectLocation(ctx context.Context) bool
	Submit(ctx context.Context) bool
	ErrorMessage() string
}

// FormFactory builds a draft form bound to a photo source file and an
// optional position override. A nil position falls back to the
// configured one.
type FormFactory func(photoSource string, position *device.Position) FormAPI

// App represents the main CLI application
type App struct {
	config  *config.Config
	session SessionAPI
	tasks   TasksAPI
	forms   FormFactory
	out     io.Writer
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(cfg *config.Config, session SessionAPI, tasks TasksAPI, forms FormFactory) *App {
	return &App{
		config:  cfg,
		session: session,
		tasks:   tasks,
		forms:   forms,
		out:     os.Stdout,
	}
}

// SetOutput redirects command output, used by tests
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// Run executes the CLI application with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	root := NewRootCommand(a)
	return root.Execute(ctx, args)
}
