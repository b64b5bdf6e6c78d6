package views

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/gophportal/internal/client/client"
	"github.com/dmitrijs2005/gophportal/internal/client/models"
	"github.com/dmitrijs2005/gophportal/internal/client/services"
	"github.com/dmitrijs2005/gophportal/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionUnderTest struct {
	*session.Manager
	store *session.SQLStore
}

func newProfilePage(t *testing.T, fc *fakeClient) (*ProfilePage, *recordingNav, *session.Manager) {
	t.Helper()
	sess, _ := newSession(t, fc)
	require.NoError(t, sess.Login(context.Background(), "t1", &models.UserSummary{Email: "a@b.com"}))
	nav := newRecordingNav()
	loader := services.NewProfileLoader(fc, sess, nil)
	return NewProfilePage(loader, sess, nav), nav, sess
}

func TestProfilePage_Open(t *testing.T) {
	fc := &fakeClient{ProfileRet: &models.Profile{Name: "ana", UserName: "ana1"}}
	page, nav, _ := newProfilePage(t, fc)

	require.NoError(t, page.Open(context.Background()))
	st := page.State()
	require.NotNil(t, st.Profile)
	assert.Equal(t, "A", st.Profile.Initial())
	assert.Equal(t, "@ana1", st.Profile.Handle())
	assert.Equal(t, models.FallbackPhone, st.Profile.PhoneOrFallback())
	assert.Equal(t, models.FallbackCountry, st.Profile.CountryName())
	assert.Equal(t, models.FallbackRole, st.Profile.RoleName())
	assert.Empty(t, nav.Routes())
}

func TestProfilePage_RecoverFromAuthError(t *testing.T) {
	fc := &fakeClient{ProfileErr: &client.APIError{StatusCode: 401, Message: "token expired"}}
	page, nav, sess := newProfilePage(t, fc)
	ctx := context.Background()

	require.Error(t, page.Open(ctx))
	assert.Equal(t, services.ErrorKindAuth, page.State().Kind)

	require.NoError(t, page.Recover(ctx))
	assert.False(t, sess.IsAuthenticated())
	assert.Empty(t, fc.LogoutTokens)
	assert.Equal(t, []Route{RouteLogin}, nav.Routes())
}

func TestProfilePage_RecoverFromGenericError(t *testing.T) {
	fc := &fakeClient{ProfileErr: client.ErrUnavailable}
	page, nav, sess := newProfilePage(t, fc)
	ctx := context.Background()

	require.Error(t, page.Open(ctx))
	assert.Equal(t, services.ErrorKindGeneric, page.State().Kind)

	require.NoError(t, page.Recover(ctx))
	assert.True(t, sess.IsAuthenticated())
	assert.Equal(t, []Route{RouteHome}, nav.Routes())

	fc.ProfileErr = nil
	fc.ProfileRet = &models.Profile{Name: "Ana"}
	require.NoError(t, page.Retry(ctx))
	assert.Equal(t, "Ana", page.State().Profile.DisplayName())
}

func TestProfilePage_RecoverWithoutErrorDoesNothing(t *testing.T) {
	page, nav, _ := newProfilePage(t, &fakeClient{ProfileRet: &models.Profile{}})
	require.NoError(t, page.Open(context.Background()))
	require.NoError(t, page.Recover(context.Background()))
	assert.Empty(t, nav.Routes())
}

func TestProfilePage_SignOutEvenIfRemoteFails(t *testing.T) {
	fc := &fakeClient{
		ProfileRet: &models.Profile{Name: "Ana"},
		LogoutErr:  errors.New("server unavailable"),
	}
	page, nav, sess := newProfilePage(t, fc)

	require.NoError(t, page.SignOut(context.Background()))
	assert.False(t, sess.IsAuthenticated())
	assert.False(t, page.LogoutLoading())
	assert.Equal(t, []Route{RouteLogin}, nav.Routes())
}
