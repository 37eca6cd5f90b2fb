package cli

import (
	"context"
	"fmt"

	"fieldtask/internal/errors"
)

// RemoveCommand handles the rm command
type RemoveCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewRemoveCommand creates a new rm command handler
func NewRemoveCommand(app *App) *RemoveCommand {
	return &RemoveCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the rm command
func (c *RemoveCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "rm", "usage: ft rm TASK_ID")
	}
	id := args[0]

	if err := c.app.tasks.Load(ctx); err != nil {
		return c.errorHandler.Handle("remove task", err)
	}

	task, found := c.app.tasks.Get(id)
	if !found {
		return errors.NewNotFoundError("task", id)
	}

	if !c.app.tasks.Remove(ctx, id) {
		return c.errorHandler.Handle("remove task", c.app.tasks.LastError())
	}

	fmt.Fprintf(c.app.out, "Removed: %s\n", task.Title)
	return nil
}
