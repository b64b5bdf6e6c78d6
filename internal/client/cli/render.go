package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/gophportal/internal/client/models"
	"github.com/dmitrijs2005/gophportal/internal/client/session"
	"github.com/dmitrijs2005/gophportal/internal/client/views"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	labelStyle   = lipgloss.NewStyle().Width(10).Foreground(lipgloss.Color("241"))

	avatarStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("63"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

func renderAlert(msg string) string {
	return errorStyle.Render("✗ " + msg)
}

// renderRegistered is the success view shown until the redirect to login.
func renderRegistered(delay time.Duration) string {
	body := successStyle.Render("✓ Account created") + "\n" +
		mutedStyle.Render(fmt.Sprintf("Redirecting to login in %s...", delay))
	return cardStyle.BorderForeground(lipgloss.Color("42")).Render(body)
}

func renderLoggedIn(u *models.UserSummary) string {
	who := ""
	if u != nil {
		who = u.Email
	}
	return successStyle.Render("✓ Logged in as " + who)
}

func renderProfile(p *models.Profile) string {
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		avatarStyle.Render(p.Initial()),
		" ",
		titleStyle.Render(p.DisplayName()),
		" ",
		mutedStyle.Render(p.Handle()),
	)

	rows := []string{
		header,
		"",
		labelStyle.Render("Email") + p.Email,
		labelStyle.Render("Phone") + p.PhoneOrFallback(),
		labelStyle.Render("Country") + p.CountryName(),
		labelStyle.Render("Role") + p.RoleName(),
	}
	return cardStyle.Render(strings.Join(rows, "\n"))
}

func renderStatus(s session.Snapshot, expiry time.Time, hasExpiry bool, route views.Route, apiURL string) string {
	var b strings.Builder

	if !s.IsAuthenticated() {
		b.WriteString(mutedStyle.Render("Not logged in"))
	} else {
		b.WriteString(titleStyle.Render("Logged in as " + s.User.Email))
		if s.User.Name != "" {
			b.WriteString(mutedStyle.Render(" (" + s.User.Name + ")"))
		}
		if hasExpiry {
			b.WriteString("\n" + labelStyle.Render("Expires") + expiry.Local().Format(time.RFC1123))
		}
	}
	b.WriteString("\n" + labelStyle.Render("Page") + string(route))
	b.WriteString("\n" + labelStyle.Render("API") + apiURL)
	return b.String()
}
