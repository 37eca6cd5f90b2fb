package cli

import (
	"context"
	"fmt"
)

// LogoutCommand handles the logout command
type LogoutCommand struct {
	app *App
}

// NewLogoutCommand creates a new logout command handler
func NewLogoutCommand(app *App) *LogoutCommand {
	return &LogoutCommand{app: app}
}

// Execute runs the logout command. Signing out when no session is held
// is not an error.
func (c *LogoutCommand) Execute(ctx context.Context, args []string) error {
	c.app.session.SignOut(ctx)
	fmt.Fprintln(c.app.out, "Signed out")
	return nil
}
