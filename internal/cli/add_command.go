package cli

import (
	"context"
	"fmt"

	"fieldtask/internal/config"
	"fieldtask/internal/device"
	"fieldtask/internal/errors"
)

// AddCommand handles the add command
type AddCommand struct {
	app          *App
	errorHandler *ErrorHandler

	// Flag values, set by the cobra layer before Execute
	Title          string
	Description    string
	Photo          string
	Location       string
	DetectLocation bool
	Position       string
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	c.app.session.Restore(ctx)

	pos, err := parsePositionFlag(c.Position)
	if err != nil {
		return err
	}

	form := c.app.forms(c.Photo, pos)
	form.SetTitle(c.Title)
	form.SetDescription(c.Description)

	if c.Photo != "" {
		if !form.CapturePhoto(ctx) {
			return fmt.Errorf("photo capture failed: %s", form.ErrorMessage())
		}
	}

	switch {
	case c.Location != "":
		form.SetLocationName(c.Location)
	case c.DetectLocation:
		if !form.DetectLocation(ctx) {
			return fmt.Errorf("location detection failed: %s", form.ErrorMessage())
		}
	}

	if !form.Submit(ctx) {
		return fmt.Errorf("%s", form.ErrorMessage())
	}

	fmt.Fprintf(c.app.out, "Added: %s\n", c.Title)
	return nil
}

// parsePositionFlag parses a "lat,lon" override into a position
func parsePositionFlag(value string) (*device.Position, error) {
	if value == "" {
		return nil, nil
	}
	lat, lon, ok := config.ParsePosition(value)
	if !ok {
		return nil, errors.NewInvalidInputError("position", value, "expected \"lat,lon\"")
	}
	return &device.Position{Latitude: lat, Longitude: lon}, nil
}
