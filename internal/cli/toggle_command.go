package cli

import (
	"context"
	"fmt"

	"fieldtask/internal/errors"
)

// ToggleCommand handles the toggle command
type ToggleCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewToggleCommand creates a new toggle command handler
func NewToggleCommand(app *App) *ToggleCommand {
	return &ToggleCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the toggle command
func (c *ToggleCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "toggle", "usage: ft toggle TASK_ID")
	}
	id := args[0]

	if err := c.app.tasks.Load(ctx); err != nil {
		return c.errorHandler.Handle("toggle task", err)
	}

	if _, found := c.app.tasks.Get(id); !found {
		return errors.NewNotFoundError("task", id)
	}

	if !c.app.tasks.Toggle(ctx, id) {
		return c.errorHandler.Handle("toggle task", c.app.tasks.LastError())
	}

	task, _ := c.app.tasks.Get(id)
	if task.Completed {
		fmt.Fprintf(c.app.out, "Completed: %s\n", task.Title)
	} else {
		fmt.Fprintf(c.app.out, "Reopened: %s\n", task.Title)
	}
	return nil
}
