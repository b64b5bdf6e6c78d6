package cli

import (
	"context"

	"github.com/dmitrijs2005/gophportal/internal/client/state"
	"github.com/dmitrijs2005/gophportal/internal/client/views"
	"github.com/dmitrijs2005/gophportal/internal/logging"
)

// router is the terminal's views.Navigator: it only remembers the active
// route, and commands react to it.
type router struct {
	routes *state.Store[views.Route]
	log    logging.Logger
}

func newRouter(initial views.Route, log logging.Logger) *router {
	return &router{routes: state.New(initial), log: log}
}

func (r *router) Navigate(to views.Route) {
	r.log.Debug(context.Background(), "navigate", "route", string(to))
	r.routes.Set(to)
}

func (r *router) Current() views.Route {
	return r.routes.Get()
}

// Wait blocks until the active route is want or ctx is done.
func (r *router) Wait(ctx context.Context, want views.Route) error {
	reached := make(chan struct{}, 1)
	unsubscribe := r.routes.Subscribe(func(to views.Route) {
		if to == want {
			select {
			case reached <- struct{}{}:
			default:
			}
		}
	})
	defer unsubscribe()

	if r.Current() == want {
		return nil
	}

	select {
	case <-reached:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ views.Navigator = (*router)(nil)
