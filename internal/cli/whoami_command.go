package cli

import (
	"context"
	"fmt"
)

// WhoamiCommand handles the whoami command
type WhoamiCommand struct {
	app *App
}

// NewWhoamiCommand creates a new whoami command handler
func NewWhoamiCommand(app *App) *WhoamiCommand {
	return &WhoamiCommand{app: app}
}

// Execute runs the whoami command
func (c *WhoamiCommand) Execute(ctx context.Context, args []string) error {
	c.app.session.Restore(ctx)

	user := c.app.session.CurrentUser()
	switch {
	case user != nil:
		fmt.Fprintf(c.app.out, "Signed in as %s <%s>\n", user.Name, user.Email)
	case c.app.session.Authenticated():
		// A restored session holds a token but no identity
		fmt.Fprintln(c.app.out, "Signed in")
	default:
		fmt.Fprintln(c.app.out, "Not signed in")
	}
	return nil
}
