package cli

import (
	"context"
	"fmt"

	"fieldtask/internal/errors"
)

// EditCommand handles the edit command
type EditCommand struct {
	app          *App
	errorHandler *ErrorHandler

	// Flag values, set by the cobra layer before Execute. Nil string
	// pointers mean the flag was not given and the existing value is
	// kept.
	Title          *string
	Description    *string
	Location       *string
	Photo          string
	DetectLocation bool
	Position       string
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the edit command. An edit replaces the whole task on
// the backend, so the photo must be captured again.
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "edit", "usage: ft edit TASK_ID [flags]")
	}
	id := args[0]

	c.app.session.Restore(ctx)

	if err := c.app.tasks.Load(ctx); err != nil {
		return c.errorHandler.Handle("edit task", err)
	}
	task, found := c.app.tasks.Get(id)
	if !found {
		return errors.NewNotFoundError("task", id)
	}

	pos, err := parsePositionFlag(c.Position)
	if err != nil {
		return err
	}

	form := c.app.forms(c.Photo, pos)
	form.StartEdit(task)

	if c.Title != nil {
		form.SetTitle(*c.Title)
	}
	if c.Description != nil {
		form.SetDescription(*c.Description)
	}

	if c.Photo != "" {
		if !form.CapturePhoto(ctx) {
			return fmt.Errorf("photo capture failed: %s", form.ErrorMessage())
		}
	}

	switch {
	case c.Location != nil:
		form.SetLocationName(*c.Location)
	case c.DetectLocation:
		if !form.DetectLocation(ctx) {
			return fmt.Errorf("location detection failed: %s", form.ErrorMessage())
		}
	}

	if !form.Submit(ctx) {
		return fmt.Errorf("%s", form.ErrorMessage())
	}

	fmt.Fprintf(c.app.out, "Updated: %s\n", id)
	return nil
}
