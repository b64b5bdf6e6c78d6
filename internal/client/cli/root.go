package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophportal/internal/buildinfo"
	"github.com/dmitrijs2005/gophportal/internal/client/config"
	"github.com/dmitrijs2005/gophportal/internal/client/views"
	"github.com/dmitrijs2005/gophportal/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Streams are the standard streams a command runs with.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Execute runs the portal command line and returns the process exit code.
// args excludes the program name.
func Execute(ctx context.Context, args []string, s Streams) int {
	root := newRootCommand(s)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		if !isShown(err) {
			fmt.Fprintln(s.Err, renderAlert(err.Error()))
		}
		return 1
	}
	return 0
}

// newRootCommand builds the command tree. The configuration flags are
// persistent; config.LoadFlags reads them after cobra has parsed the line.
func newRootCommand(s Streams) *cobra.Command {
	var app *App

	root := &cobra.Command{
		Use:   "portal",
		Short: "Terminal client for the account portal",
		Long: `portal logs you in to the account API, registers new accounts and shows
your profile. The session is kept in a local database between runs.

Settings come from defaults, a JSON or YAML file (-c), PORTAL_* environment
variables and flags, later sources winning.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFlags(cmd.Flags())
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.LogFormat, cfg.LogLevel, s.Err)
			if err != nil {
				return err
			}
			app, err = NewApp(cmd.Context(), cfg, log, s.In, s.Out)
			return err
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if app == nil {
				return nil
			}
			return app.Close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Shell(cmd.Context())
		},
	}
	root.SetIn(s.In)
	root.SetOut(s.Out)
	root.SetErr(s.Err)

	config.BindFlags(root.PersistentFlags())

	// cobra skips the post-run hooks when RunE fails, so a failing command
	// closes the App itself.
	run := func(fn func(*App, context.Context) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			err := fn(app, cmd.Context())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			if err != nil {
				_ = app.Close()
				app = nil
			}
			return err
		}
	}

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and show your profile",
		Example: `  portal login
  portal login --email user@example.com`,
		Args: cobra.NoArgs,
		RunE: run((*App).Login),
	}
	loginCmd.Flags().String("email", "", "account email (prompted when empty)")

	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long: `Create an account. Fields not given as flags are prompted for; the
password is always prompted for.`,
		Args: cobra.NoArgs,
		RunE: run((*App).Register),
	}
	for _, field := range views.RegisterFields {
		if field == views.FieldPassword {
			continue
		}
		registerCmd.Flags().String(flagForField(field), "", strings.ToLower(fieldPrompts[field]))
	}

	profileCmd := &cobra.Command{
		Use:     "profile",
		Aliases: []string{"me"},
		Short:   "Show your profile",
		Args:    cobra.NoArgs,
		RunE:    run((*App).Profile),
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE:  run((*App).Logout),
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show who is logged in",
		Args:  cobra.NoArgs,
		RunE:  run((*App).Status),
	}

	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell (default)",
		Args:  cobra.NoArgs,
		RunE:  run((*App).Shell),
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// No App needed.
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}

	// Field flags that were set become prompt presets.
	for _, cmd := range []*cobra.Command{loginCmd, registerCmd} {
		cmd.PreRun = func(cmd *cobra.Command, _ []string) {
			cmd.Flags().Visit(func(f *pflag.Flag) {
				if field, ok := flagFields[f.Name]; ok {
					app.presets[field] = f.Value.String()
				}
			})
		}
	}

	root.AddCommand(loginCmd, registerCmd, profileCmd, logoutCmd, statusCmd, shellCmd, versionCmd)
	return root
}

func flagForField(field string) string {
	return strings.ReplaceAll(field, "_", "-")
}

// flagFields maps the field flags of login and register to form fields.
var flagFields = func() map[string]string {
	m := make(map[string]string, len(views.RegisterFields))
	for _, field := range views.RegisterFields {
		if field != views.FieldPassword {
			m[flagForField(field)] = field
		}
	}
	return m
}()
