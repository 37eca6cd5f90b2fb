package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"fieldtask/internal/config"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd *cobra.Command
	app *App
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(app *App) *RootCommand {
	root := &RootCommand{app: app}

	root.cmd = &cobra.Command{
		Use:   "ft",
		Short: "A command-line field task client",
		Long: `Fieldtask (ft) is a command-line client for a shared task backend.

FEATURES:
  • Sign in once; the session token persists across invocations
  • List, filter, and search tasks held on the backend
  • Create tasks with an attached photo and a named location
  • Resolve a position to a location name automatically
  • Toggle, edit, remove, and bulk-clear completed tasks

EXAMPLES:
  ft login maria@example.com secret         # Sign in and persist the session
  ft list                                   # List every task
  ft list --filter pending --search pump    # Pending tasks matching "pump"
  ft add -t "Inspect the pump" --photo pump.jpg --detect-location
  ft toggle 42                              # Flip a task's completion state
  ft clear                                  # Delete all completed tasks

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

  Backend Configuration:
    FT_API_URL                             Backend base URL
    FT_GEOCODE_URL                         Reverse geocoding endpoint
    FT_API_TIMEOUT                         Request timeout (default: 30s)
    FT_API_MULTIPART                       Send tasks as multipart uploads (default: false)

  Keystore Configuration:
    FT_DB_DIR                              Keystore directory (default: ~/.ft)
    FT_DB_FILENAME                         Keystore filename (default: ft.db)

  Capture Configuration:
    FT_CAPTURE_DIR                         Photo capture directory (default: ~/.ft/captures)
    FT_POSITION                            Device position as "lat,lon"

  Application Configuration:
    FT_APP_TIMEOUT                         Application timeout (default: 60s)
    FT_APP_VERBOSE                         Enable verbose output (default: false)

GETTING HELP:
  ft [command] --help                      # Get help for any specific command`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.getConfigFromFlags()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command with the given arguments
func (r *RootCommand) Execute(ctx context.Context, args []string) error {
	r.cmd.SetArgs(args)
	return r.cmd.ExecuteContext(ctx)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("capture-dir", "", "Photo capture directory (overrides FT_CAPTURE_DIR)")
	flags.String("position", "", "Device position as \"lat,lon\" (overrides FT_POSITION)")
	flags.Duration("app-timeout", 0, "Application timeout (overrides FT_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides FT_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	loginCmd := &cobra.Command{
		Use:   "login EMAIL PASSWORD",
		Short: "Sign in to the backend",
		Long:  "Sign in with email and password. The session token is persisted until logout.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()
			return NewLoginCommand(r.app).Execute(ctx, args)
		},
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and discard the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()
			return NewLogoutCommand(r.app).Execute(ctx, args)
		},
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()
			return NewWhoamiCommand(r.app).Execute(ctx, args)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks with optional filtering.

The filter narrows by completion state; the search matches within task
titles (case-insensitive partial matching).

Examples:
  ft list                              # List every task
  ft list --filter pending             # Pending tasks only
  ft list --search biblioteca          # Tasks whose title contains "biblioteca"
  ft list --filter completed --search informe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()

			handler := NewListCommand(r.app)
			if cmd.Flags().Changed("filter") {
				handler.Filter, _ = cmd.Flags().GetString("filter")
			}
			handler.Search, _ = cmd.Flags().GetString("search")
			return handler.Execute(ctx, args)
		},
	}
	listCmd.Flags().String("filter", "", "Completion filter: all, pending, or completed")
	listCmd.Flags().String("search", "", "Match within task titles")

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		Long: `Create a task on the backend.

A task needs a title, a photo, and a location name. The photo is taken
from a local file; the location is either given directly or detected
from the configured position.

Examples:
  ft add -t "Inspect the pump" --photo pump.jpg -l "Planta Norte"
  ft add -t "Inspect the pump" --photo pump.jpg --detect-location`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()

			handler := NewAddCommand(r.app)
			handler.Title, _ = cmd.Flags().GetString("title")
			handler.Description, _ = cmd.Flags().GetString("description")
			handler.Photo, _ = cmd.Flags().GetString("photo")
			handler.Location, _ = cmd.Flags().GetString("location")
			handler.DetectLocation, _ = cmd.Flags().GetBool("detect-location")
			handler.Position, _ = r.cmd.PersistentFlags().GetString("position")
			return handler.Execute(ctx, args)
		},
	}
	addCmd.Flags().StringP("title", "t", "", "Task title")
	addCmd.Flags().StringP("description", "d", "", "Task description")
	addCmd.Flags().String("photo", "", "Path to the photo file")
	addCmd.Flags().StringP("location", "l", "", "Location name")
	addCmd.Flags().Bool("detect-location", false, "Resolve the location name from the configured position")

	editCmd := &cobra.Command{
		Use:   "edit TASK_ID",
		Short: "Edit a task",
		Long: `Edit an existing task.

Fields not given keep their current value, except the photo: an edit
replaces the whole task on the backend, so the photo must be captured
again.

Example:
  ft edit 42 -t "Inspect the spare pump" --photo pump2.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()

			handler := NewEditCommand(r.app)
			if cmd.Flags().Changed("title") {
				title, _ := cmd.Flags().GetString("title")
				handler.Title = &title
			}
			if cmd.Flags().Changed("description") {
				description, _ := cmd.Flags().GetString("description")
				handler.Description = &description
			}
			if cmd.Flags().Changed("location") {
				location, _ := cmd.Flags().GetString("location")
				handler.Location = &location
			}
			handler.Photo, _ = cmd.Flags().GetString("photo")
			handler.DetectLocation, _ = cmd.Flags().GetBool("detect-location")
			handler.Position, _ = r.cmd.PersistentFlags().GetString("position")
			return handler.Execute(ctx, args)
		},
	}
	editCmd.Flags().StringP("title", "t", "", "Task title")
	editCmd.Flags().StringP("description", "d", "", "Task description")
	editCmd.Flags().String("photo", "", "Path to the new photo file")
	editCmd.Flags().StringP("location", "l", "", "Location name")
	editCmd.Flags().Bool("detect-location", false, "Resolve the location name from the configured position")

	toggleCmd := &cobra.Command{
		Use:   "toggle TASK_ID",
		Short: "Flip a task's completion state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()
			return NewToggleCommand(r.app).Execute(ctx, args)
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm TASK_ID",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()
			return NewRemoveCommand(r.app).Execute(ctx, args)
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all completed tasks",
		Long:  "Delete every completed task. Tasks whose delete fails on the backend are kept.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()
			return NewClearCommand(r.app).Execute(ctx, args)
		},
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()
			return NewStatsCommand(r.app).Execute(ctx, args)
		},
	}

	r.cmd.AddCommand(
		loginCmd,
		logoutCmd,
		whoamiCmd,
		listCmd,
		addCmd,
		editCmd,
		toggleCmd,
		rmCmd,
		clearCmd,
		statsCmd,
	)
}

// commandContext derives a per-command timeout from the parent context
func (r *RootCommand) commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), r.getAppTimeout())
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.app.config != nil {
		return r.app.config.Application.Timeout
	}
	return 60 * time.Second
}

// getConfigFromFlags updates the configuration with values from command-line flags
func (r *RootCommand) getConfigFromFlags() error {
	if r.app.config == nil {
		return nil
	}

	flags := r.cmd.PersistentFlags()

	if captureDir, _ := flags.GetString("capture-dir"); captureDir != "" {
		r.app.config.Capture.Dir = captureDir
	}
	if position, _ := flags.GetString("position"); position != "" {
		if lat, lon, ok := config.ParsePosition(position); ok {
			r.app.config.Capture.Latitude = lat
			r.app.config.Capture.Longitude = lon
			r.app.config.Capture.HasPosition = true
		}
	}
	if appTimeout, _ := flags.GetDuration("app-timeout"); appTimeout > 0 {
		r.app.config.Application.Timeout = appTimeout
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		r.app.config.Application.Verbose = verbose
	}

	return nil
}
