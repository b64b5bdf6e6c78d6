package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophportal/internal/client/services"
	"github.com/dmitrijs2005/gophportal/internal/client/views"
	"github.com/dmitrijs2005/gophportal/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

var fieldPrompts = map[string]string{
	views.FieldDocumentNumber:   "Document number",
	views.FieldName:             "First name",
	views.FieldPaternalLastname: "Paternal last name",
	views.FieldMaternalLastname: "Maternal last name",
	views.FieldEmail:            "Email",
	views.FieldPhone:            "Phone",
	views.FieldUserName:         "Username",
}

// ask returns the preset value of field or prompts for it. Passwords are read
// without echo.
func (a *App) ask(field string) (string, error) {
	if v, ok := a.presets[field]; ok && v != "" {
		return v, nil
	}
	if field == views.FieldPassword {
		pw, err := getPassword(a.reader, a.out)
		if err != nil {
			return "", err
		}
		defer common.WipeByteArray(pw)
		return string(pw), nil
	}
	return getSimpleText(a.reader, "Enter "+strings.ToLower(fieldPrompts[field]), a.out)
}

// Login prompts for credentials and logs in. On success the profile is shown,
// following the navigation the login page makes.
func (a *App) Login(ctx context.Context) error {
	page := views.NewLoginPage(a.auth, a.session, a.router)

	for _, field := range []string{views.FieldEmail, views.FieldPassword} {
		v, err := a.ask(field)
		if err != nil {
			return err
		}
		if err := page.SetField(field, v); err != nil {
			return err
		}
	}

	if err := page.Submit(ctx); err != nil {
		switch {
		case services.IsLoginFailure(err, services.LoginFailureMissingToken):
			a.println(renderAlert(err.Error()))
			a.println(mutedStyle.Render("The server accepted the credentials but started no session. Try again later."))
			return shown(err)
		case services.IsLoginFailure(err, services.LoginFailureTransport):
			a.println(renderAlert(err.Error()))
			a.println(mutedStyle.Render("Could not reach " + a.config.APIBaseURL + ". Check --api or try again later."))
			return shown(err)
		}
		return fmt.Errorf("login: %w", err)
	}

	a.println(renderLoggedIn(a.session.User()))
	if a.router.Current() == views.RouteProfile {
		return a.Profile(ctx)
	}
	return nil
}

// Register prompts for every registration field and submits the form. After
// the success view it waits for the redirect to the login page.
func (a *App) Register(ctx context.Context) error {
	a.router.Navigate(views.RouteRegister)

	page := views.NewRegisterPage(a.auth, a.router, views.RegisterOptions{
		DocumentTypeID: a.config.DocumentTypeID,
		CountryID:      a.config.CountryID,
		RedirectDelay:  a.config.RedirectDelay,
		Scheduler:      a.scheduler,
	})
	defer page.Close()

	for _, field := range views.RegisterFields {
		v, err := a.ask(field)
		if err != nil {
			return err
		}
		if err := page.SetField(field, v); err != nil {
			return err
		}
	}

	if err := page.Submit(ctx); err != nil {
		return err
	}

	a.println(renderRegistered(page.RedirectDelay()))
	if err := a.router.Wait(ctx, views.RouteLogin); err != nil {
		return err
	}
	a.println(mutedStyle.Render("You can log in now."))
	return nil
}

// Profile loads and renders the profile. An auth failure ends the session and
// returns to login; any other failure offers a retry and otherwise goes home.
func (a *App) Profile(ctx context.Context) error {
	a.router.Navigate(views.RouteProfile)
	page := views.NewProfilePage(a.loader, a.session, a.router)

	for {
		err := page.Open(ctx)
		if err == nil {
			a.println(renderProfile(page.State().Profile))
			return nil
		}

		st := page.State()
		a.println(renderAlert(st.Error))

		if st.Kind == services.ErrorKindAuth {
			if rerr := page.Recover(ctx); rerr != nil {
				a.log.Warn(ctx, "clearing session failed", "error", rerr)
			}
			a.println(mutedStyle.Render("Your session has ended. Please log in again."))
			return shown(err)
		}

		answer, rerr := getSimpleText(a.reader, "Retry? [y/N]", a.out)
		if rerr == nil && confirmed(answer) {
			continue
		}
		_ = page.Recover(ctx)
		return shown(err)
	}
}

// Logout ends the session. The server is told on a best-effort basis.
func (a *App) Logout(ctx context.Context) error {
	if !a.session.IsAuthenticated() {
		return common.ErrNotAuthenticated
	}

	page := views.NewProfilePage(a.loader, a.session, a.router)
	if err := page.SignOut(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	a.println(successStyle.Render("✓ Logged out"))
	return nil
}

// Status prints who is logged in.
func (a *App) Status(ctx context.Context) error {
	exp, ok := a.session.TokenExpiry()
	a.println(renderStatus(a.session.Snapshot(), exp, ok, a.router.Current(), a.config.APIBaseURL))
	return nil
}

// Shell runs the REPL until the user exits or input ends.
func (a *App) Shell(ctx context.Context) error {
	a.println(titleStyle.Render("Account portal") + mutedStyle.Render(" (type 'help' for commands)"))
	if a.isLoggedIn() {
		_ = a.Status(ctx)
	}
	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}
