package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophportal/internal/client/client"
	"github.com/dmitrijs2005/gophportal/internal/client/config"
	"github.com/dmitrijs2005/gophportal/internal/client/services"
	"github.com/dmitrijs2005/gophportal/internal/client/session"
	"github.com/dmitrijs2005/gophportal/internal/client/storage"
	"github.com/dmitrijs2005/gophportal/internal/client/views"
	"github.com/dmitrijs2005/gophportal/internal/cryptox"
	"github.com/dmitrijs2005/gophportal/internal/filex"
	"github.com/dmitrijs2005/gophportal/internal/logging"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	api     client.Client
	session *session.Manager
	auth    services.AuthService
	loader  *services.ProfileLoader
	router  *router

	// scheduler drives the post-registration redirect; nil means real timers.
	scheduler views.Scheduler
	// presets holds field values given as flags; prompts skip those fields.
	presets map[string]string

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens local storage under c.DataDir, restores the stored session and
// wires the API client, services and router. The caller must Close the App.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	dir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	c.DataDir = dir

	db, err := storage.Open(ctx, storage.FileDSN(c.DBPath()))
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DBPath(), "error", err)
		return nil, err
	}

	key, err := cryptox.LoadOrCreateKey(c.KeyPath())
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	api := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, log)
	sess := session.NewManager(session.NewSQLStore(db, key), api, log)
	if err := sess.Hydrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	initial := views.RouteLogin
	if sess.IsAuthenticated() {
		initial = views.RouteProfile
	}

	return &App{
		config:  c,
		log:     log,
		db:      db,
		api:     api,
		session: sess,
		auth:    services.NewAuthService(api, log),
		loader:  services.NewProfileLoader(api, sess, log),
		router:  newRouter(initial, log),
		presets: map[string]string{},
		reader:  bufio.NewReader(in),
		out:     out,
	}, nil
}

// Close releases the API client and the database, and flushes the logger
// when it buffers.
func (a *App) Close() error {
	errs := []error{a.auth.Close(), a.db.Close()}
	if s, ok := a.log.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// getStatus is the REPL prompt decoration, e.g. "(a@b.com /profile)".
func (a *App) getStatus() string {
	who := "guest"
	if u := a.session.User(); u != nil {
		who = u.Email
	}
	return fmt.Sprintf("(%s %s)", who, a.router.Current())
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
