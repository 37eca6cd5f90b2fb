package cli

import (
	"context"
	"fmt"
)

// ClearCommand handles the clear command
type ClearCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewClearCommand creates a new clear command handler
func NewClearCommand(app *App) *ClearCommand {
	return &ClearCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the clear command. Tasks whose delete fails are kept
// and reported.
func (c *ClearCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.tasks.Load(ctx); err != nil {
		return c.errorHandler.Handle("clear completed tasks", err)
	}

	before := c.app.tasks.CompletedCount()
	removed := c.app.tasks.ClearCompleted(ctx)

	switch {
	case before == 0:
		fmt.Fprintln(c.app.out, "No completed tasks to clear")
	case removed == before:
		fmt.Fprintf(c.app.out, "Cleared %d completed task(s)\n", removed)
	default:
		fmt.Fprintf(c.app.out, "Cleared %d of %d completed task(s)\n", removed, before)
		return c.errorHandler.Handle("clear completed tasks", c.app.tasks.LastError())
	}
	return nil
}
