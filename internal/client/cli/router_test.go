package cli

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophportal/internal/client/views"
	"github.com/dmitrijs2005/gophportal/internal/logging"
	"github.com/stretchr/testify/require"
)

func TestRouter_Wait(t *testing.T) {
	r := newRouter(views.RouteRegister, logging.Nop())

	timer := time.AfterFunc(10*time.Millisecond, func() { r.Navigate(views.RouteLogin) })
	defer timer.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, r.Wait(ctx, views.RouteLogin))
	require.Equal(t, views.RouteLogin, r.Current())
}

func TestRouter_WaitAlreadyThere(t *testing.T) {
	r := newRouter(views.RouteLogin, logging.Nop())
	require.NoError(t, r.Wait(context.Background(), views.RouteLogin))
}

func TestRouter_WaitCanceled(t *testing.T) {
	r := newRouter(views.RouteHome, logging.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, r.Wait(ctx, views.RouteLogin), context.Canceled)
}
