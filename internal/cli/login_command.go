package cli

import (
	"context"
	"fmt"

	"fieldtask/internal/errors"
)

// LoginCommand handles the login command
type LoginCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewLoginCommand creates a new login command handler
func NewLoginCommand(app *App) *LoginCommand {
	return &LoginCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the login command
func (c *LoginCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("command", "login", "usage: ft login EMAIL PASSWORD")
	}

	if !c.app.session.SignIn(ctx, args[0], args[1]) {
		return fmt.Errorf("sign in failed: check your email and password")
	}

	if user := c.app.session.CurrentUser(); user != nil {
		fmt.Fprintf(c.app.out, "Signed in as %s <%s>\n", user.Name, user.Email)
	} else {
		fmt.Fprintln(c.app.out, "Signed in")
	}
	return nil
}
