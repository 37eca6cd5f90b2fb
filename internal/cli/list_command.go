package cli

import (
	"context"
	"fmt"

	"fieldtask/internal/domain"
	"fieldtask/internal/errors"
)

// ListCommand handles the list command
type ListCommand struct {
	app          *App
	errorHandler *ErrorHandler

	// Flag values, set by the cobra layer before Execute
	Filter string
	Search string
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
		Filter:       app.config.Commands.ListDefaultFilter,
	}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	filter, err := domain.ParseFilter(c.Filter)
	if err != nil {
		return errors.NewInvalidInputError("filter", c.Filter, "must be all, pending, or completed")
	}

	if err := c.app.tasks.Load(ctx); err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}

	c.app.tasks.SetFilter(filter)
	c.app.tasks.SetSearch(c.Search)

	visible := c.app.tasks.Filtered()
	if len(visible) == 0 {
		fmt.Fprintln(c.app.out, "No tasks to show")
		return nil
	}

	for _, task := range visible {
		fmt.Fprintln(c.app.out, formatTaskLine(task))
	}
	fmt.Fprintf(c.app.out, "\n%d pending\n", c.app.tasks.PendingCount())
	return nil
}

// formatTaskLine renders one task as a single list row
func formatTaskLine(task domain.Task) string {
	mark := " "
	if task.Completed {
		mark = "x"
	}
	line := fmt.Sprintf("[%s] %s  %s", mark, task.ID, task.Title)
	if task.LocationName != "" {
		line += fmt.Sprintf("  (%s)", task.LocationName)
	}
	return line
}
