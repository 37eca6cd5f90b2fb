package cli

import (
	"context"
	"fmt"
)

// StatsCommand handles the stats command
type StatsCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStatsCommand creates a new stats command handler
func NewStatsCommand(app *App) *StatsCommand {
	return &StatsCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the stats command
func (c *StatsCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.tasks.Load(ctx); err != nil {
		return c.errorHandler.Handle("load tasks", err)
	}

	pending := c.app.tasks.PendingCount()
	completed := c.app.tasks.CompletedCount()

	fmt.Fprintf(c.app.out, "Total:     %d\n", pending+completed)
	fmt.Fprintf(c.app.out, "Pending:   %d\n", pending)
	fmt.Fprintf(c.app.out, "Completed: %d\n", completed)
	return nil
}
