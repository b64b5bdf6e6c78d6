package cli

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/gophportal/internal/client/models"
	"github.com/dmitrijs2005/gophportal/internal/client/session"
	"github.com/dmitrijs2005/gophportal/internal/client/views"
	"github.com/stretchr/testify/assert"
)

func TestRenderProfile_Fallbacks(t *testing.T) {
	out := renderProfile(&models.Profile{Email: "a@b.com"})

	for _, want := range []string{
		models.FallbackInitial,
		models.FallbackName,
		"@" + models.FallbackUserName,
		"a@b.com",
		models.FallbackPhone,
		models.FallbackCountry,
		models.FallbackRole,
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderProfile_Fields(t *testing.T) {
	out := renderProfile(&models.Profile{
		Name:     "ana",
		UserName: "ana1",
		Email:    "a@b.com",
		Phone:    "+51 999",
		Country:  &models.Country{Name: "Peru"},
		Role:     &models.Role{Name: "Admin"},
	})

	for _, want := range []string{"A", "ana", "@ana1", "+51 999", "Peru", "Admin"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, models.FallbackCountry)
}

func TestRenderStatus(t *testing.T) {
	out := renderStatus(session.Snapshot{}, time.Time{}, false, views.RouteLogin, "http://api")
	assert.Contains(t, out, "Not logged in")
	assert.Contains(t, out, "/login")
	assert.Contains(t, out, "http://api")

	snap := session.Snapshot{Token: "t1", User: &models.UserSummary{Email: "a@b.com", Name: "Ana"}}
	out = renderStatus(snap, time.Now().Add(time.Hour), true, views.RouteProfile, "http://api")
	assert.Contains(t, out, "Logged in as a@b.com")
	assert.Contains(t, out, "(Ana)")
	assert.Contains(t, out, "Expires")
}

func TestRenderRegistered(t *testing.T) {
	out := renderRegistered(2 * time.Second)
	assert.Contains(t, out, "Account created")
	assert.Contains(t, out, "2s")
}
