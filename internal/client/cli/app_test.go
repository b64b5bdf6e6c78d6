package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophportal/internal/client/apitest"
	"github.com/dmitrijs2005/gophportal/internal/client/client"
	"github.com/dmitrijs2005/gophportal/internal/client/config"
	"github.com/dmitrijs2005/gophportal/internal/client/models"
	"github.com/dmitrijs2005/gophportal/internal/client/services"
	"github.com/dmitrijs2005/gophportal/internal/client/views"
	"github.com/dmitrijs2005/gophportal/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ------------ helpers ------------

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(*bufio.Reader, io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func testConfig(t *testing.T, srv *apitest.Server, dataDir string) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = srv.URL
	cfg.DataDir = dataDir
	cfg.RequestTimeout = 5 * time.Second
	cfg.RedirectDelay = 10 * time.Millisecond
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config, input string) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	app, err := NewApp(context.Background(), cfg, nil, strings.NewReader(input), &out)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app, &out
}

func seedUser(srv *apitest.Server) models.Profile {
	return srv.AddUser(models.Profile{
		Name:     "Ana",
		UserName: "ana",
		Email:    "a@b.com",
		Country:  &models.Country{ID: 179, Name: "Peru"},
	}, "x")
}

// ------------ tests ------------

func TestApp_LoginShowsProfile(t *testing.T) {
	srv := apitest.New(t)
	seedUser(srv)
	stubPassword(t, "x")
	app, out := newTestApp(t, testConfig(t, srv, t.TempDir()), "a@b.com\n")

	require.NoError(t, app.Login(context.Background()))

	assert.True(t, app.isLoggedIn())
	assert.Equal(t, views.RouteProfile, app.router.Current())
	assert.Contains(t, out.String(), "Logged in as a@b.com")
	assert.Contains(t, out.String(), "@ana")
	assert.Contains(t, out.String(), "Peru")
	assert.Equal(t, "(a@b.com /profile)", app.getStatus())
}

func TestApp_LoginRejected(t *testing.T) {
	srv := apitest.New(t)
	seedUser(srv)
	stubPassword(t, "wrong")
	app, _ := newTestApp(t, testConfig(t, srv, t.TempDir()), "a@b.com\n")

	err := app.Login(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.True(t, services.IsLoginFailure(err, services.LoginFailureRejected))
	assert.Contains(t, err.Error(), "invalid credentials")
	assert.False(t, isShown(err))
	assert.False(t, app.isLoggedIn())
}

func TestApp_LoginWithoutToken(t *testing.T) {
	srv := apitest.New(t)
	seedUser(srv)
	srv.OmitToken = true
	stubPassword(t, "x")
	app, out := newTestApp(t, testConfig(t, srv, t.TempDir()), "a@b.com\n")

	err := app.Login(context.Background())
	require.ErrorIs(t, err, common.ErrMissingToken)
	assert.True(t, isShown(err))
	assert.Contains(t, out.String(), "started no session")
	assert.False(t, app.isLoggedIn())
}

func TestApp_LoginServerDown(t *testing.T) {
	srv := apitest.New(t)
	stubPassword(t, "x")
	cfg := testConfig(t, srv, t.TempDir())
	app, out := newTestApp(t, cfg, "a@b.com\n")
	srv.Close()

	err := app.Login(context.Background())
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.True(t, services.IsLoginFailure(err, services.LoginFailureTransport))
	assert.True(t, isShown(err))
	assert.Contains(t, out.String(), "Could not reach "+cfg.APIBaseURL)
	assert.False(t, app.isLoggedIn())
}

func TestApp_RegisterThenRedirect(t *testing.T) {
	srv := apitest.New(t)
	stubPassword(t, "secret123")
	input := strings.Join([]string{
		"12345678", "Juan", "Perez", "Gomez", "juan@example.com", "999888777", "juanperez",
	}, "\n") + "\n"
	app, out := newTestApp(t, testConfig(t, srv, t.TempDir()), input)

	require.NoError(t, app.Register(context.Background()))

	assert.Equal(t, views.RouteLogin, app.router.Current())
	assert.Contains(t, out.String(), "Account created")
	assert.Contains(t, out.String(), "You can log in now.")

	require.Len(t, srv.Registrations, 1)
	reg := srv.Registrations[0]
	assert.Equal(t, "juanperez", reg.UserName)
	assert.Equal(t, config.DefaultDocumentTypeID, reg.DocumentTypeID)
	assert.Equal(t, config.DefaultCountryID, reg.CountryID)
	assert.True(t, reg.AccountStatement)
	assert.Equal(t, time.Now().Format(services.LastSessionLayout), reg.LastSession)
}

func TestApp_RegisterInvalidForm(t *testing.T) {
	srv := apitest.New(t)
	stubPassword(t, "short")
	input := strings.Repeat("value\n", 4) + "juan@example.com\n" + "999\n" + "juan\n"
	app, _ := newTestApp(t, testConfig(t, srv, t.TempDir()), input)

	err := app.Register(context.Background())
	require.ErrorIs(t, err, views.ErrValidation)
	assert.Contains(t, err.Error(), "password")
	assert.Empty(t, srv.Registrations)
	assert.Equal(t, views.RouteRegister, app.router.Current())
}

func TestApp_RegisterUsesPresets(t *testing.T) {
	srv := apitest.New(t)
	stubPassword(t, "secret123")
	app, _ := newTestApp(t, testConfig(t, srv, t.TempDir()), "")
	app.presets = map[string]string{
		views.FieldDocumentNumber:   "1",
		views.FieldName:             "Juan",
		views.FieldPaternalLastname: "Perez",
		views.FieldMaternalLastname: "Gomez",
		views.FieldEmail:            "juan@example.com",
		views.FieldPhone:            "999",
		views.FieldUserName:         "juan",
	}

	require.NoError(t, app.Register(context.Background()))
	require.Len(t, srv.Registrations, 1)
}

func TestApp_ProfileAuthErrorEndsSession(t *testing.T) {
	srv := apitest.New(t)
	seedUser(srv)
	app, out := newTestApp(t, testConfig(t, srv, t.TempDir()), "")
	ctx := context.Background()

	expired := srv.IssueToken("a@b.com", -time.Minute)
	require.NoError(t, app.session.Login(ctx, expired, &models.UserSummary{Email: "a@b.com"}))

	err := app.Profile(ctx)
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.True(t, isShown(err))
	assert.False(t, app.isLoggedIn())
	assert.Equal(t, views.RouteLogin, app.router.Current())
	assert.Contains(t, out.String(), "token expired")
	assert.Contains(t, out.String(), "Please log in again")
	assert.Zero(t, srv.LogoutCalls)
}

func TestApp_ProfileGenericErrorRetry(t *testing.T) {
	srv := apitest.New(t)
	seedUser(srv)
	app, out := newTestApp(t, testConfig(t, srv, t.TempDir()), "y\n")
	ctx := context.Background()

	require.NoError(t, app.session.Login(ctx, srv.IssueToken("a@b.com", time.Hour), &models.UserSummary{Email: "a@b.com"}))
	srv.FailNext(client.ProfilePath, apitest.Failure{Status: http.StatusInternalServerError, Message: "db down"})

	require.NoError(t, app.Profile(ctx))
	assert.Contains(t, out.String(), "db down")
	assert.Contains(t, out.String(), "@ana")
	assert.True(t, app.isLoggedIn())
}

func TestApp_ProfileGenericErrorGoesHome(t *testing.T) {
	srv := apitest.New(t)
	seedUser(srv)
	app, _ := newTestApp(t, testConfig(t, srv, t.TempDir()), "n\n")
	ctx := context.Background()

	require.NoError(t, app.session.Login(ctx, srv.IssueToken("a@b.com", time.Hour), &models.UserSummary{Email: "a@b.com"}))
	srv.FailNext(client.ProfilePath, apitest.Failure{Status: http.StatusInternalServerError})

	err := app.Profile(ctx)
	require.Error(t, err)
	assert.True(t, isShown(err))
	assert.Equal(t, views.RouteHome, app.router.Current())
	assert.True(t, app.isLoggedIn())
}

func TestApp_Logout(t *testing.T) {
	srv := apitest.New(t)
	seedUser(srv)
	app, out := newTestApp(t, testConfig(t, srv, t.TempDir()), "")
	ctx := context.Background()

	require.ErrorIs(t, app.Logout(ctx), common.ErrNotAuthenticated)

	token := srv.IssueToken("a@b.com", time.Hour)
	require.NoError(t, app.session.Login(ctx, token, &models.UserSummary{Email: "a@b.com"}))
	require.NoError(t, app.Logout(ctx))

	assert.True(t, srv.Revoked(token))
	assert.False(t, app.isLoggedIn())
	assert.Equal(t, views.RouteLogin, app.router.Current())
	assert.Contains(t, out.String(), "Logged out")
}

func TestApp_LogoutWhileServerDown(t *testing.T) {
	srv := apitest.New(t)
	app, _ := newTestApp(t, testConfig(t, srv, t.TempDir()), "")
	ctx := context.Background()

	require.NoError(t, app.session.Login(ctx, "t1", &models.UserSummary{Email: "a@b.com"}))
	srv.Close()

	require.NoError(t, app.Logout(ctx))
	assert.False(t, app.isLoggedIn())
}

func TestApp_SessionSurvivesRestart(t *testing.T) {
	srv := apitest.New(t)
	seedUser(srv)
	stubPassword(t, "x")
	dir := t.TempDir()

	first, _ := newTestApp(t, testConfig(t, srv, dir), "a@b.com\n")
	require.NoError(t, first.Login(context.Background()))
	require.NoError(t, first.Close())

	second, out := newTestApp(t, testConfig(t, srv, dir), "")
	assert.True(t, second.isLoggedIn())
	assert.Equal(t, views.RouteProfile, second.router.Current())

	require.NoError(t, second.Status(context.Background()))
	assert.Contains(t, out.String(), "Logged in as a@b.com")
	assert.Contains(t, out.String(), "Expires")
}

func TestApp_ShellRunsCommands(t *testing.T) {
	lines := capturePrintln(t)
	srv := apitest.New(t)
	app, out := newTestApp(t, testConfig(t, srv, t.TempDir()), "status\nlogout\nexit\n")

	require.NoError(t, app.Shell(context.Background()))

	assert.Contains(t, out.String(), "Account portal")
	assert.Contains(t, out.String(), "Not logged in")
	joined := strings.Join(*lines, "\n")
	assert.Contains(t, joined, "portal (guest /login)> ")
	assert.Contains(t, joined, common.ErrNotAuthenticated.Error())
	assert.Contains(t, joined, "Bye!")
}
