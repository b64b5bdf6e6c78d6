// Package asyncop tracks the loading and error flags of one logical request,
// such as a form submission.
package asyncop

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/dmitrijs2005/gophportal/internal/client/state"
)

// ErrBusy is returned by Execute when the operation is already in flight.
var ErrBusy = errors.New("operation already in progress")

// DefaultErrorMessage is used when a failure carries no message.
const DefaultErrorMessage = "an unexpected error occurred"

// State is the observable part of an Operation.
type State struct {
	Loading bool
	Error   string
}

// Failed reports whether the last run ended with an error.
func (s State) Failed() bool { return s.Error != "" }

// Operation holds the state of a single in-flight request at a time.
type Operation struct {
	store          *state.Store[State]
	defaultMessage string
	running        atomic.Bool
}

// New returns an idle Operation. defaultMessage replaces empty error
// messages; when empty, DefaultErrorMessage is used.
func New(defaultMessage string) *Operation {
	if defaultMessage == "" {
		defaultMessage = DefaultErrorMessage
	}
	return &Operation{
		store:          state.New(State{}),
		defaultMessage: defaultMessage,
	}
}

func (o *Operation) State() State  { return o.store.Get() }
func (o *Operation) Loading() bool { return o.store.Get().Loading }
func (o *Operation) Err() string   { return o.store.Get().Error }

// Subscribe calls fn after every state change.
func (o *Operation) Subscribe(fn func(State)) (unsubscribe func()) {
	return o.store.Subscribe(fn)
}

// Busy reports whether a run is in flight.
func (o *Operation) Busy() bool { return o.running.Load() }

// Reset clears the error and the loading flag.
func (o *Operation) Reset() {
	o.store.Set(State{})
}

// SetError records message and clears the loading flag.
func (o *Operation) SetError(message string) {
	if message == "" {
		message = o.defaultMessage
	}
	o.store.Set(State{Error: message})
}

// Execute runs fn while tracking it on op. The loading flag is set and the
// previous error cleared before fn starts; when fn fails its message is
// recorded and the error is returned unchanged. A call made while another is
// running returns ErrBusy and leaves the state alone.
func Execute[T any](ctx context.Context, op *Operation, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if !op.running.CompareAndSwap(false, true) {
		return zero, ErrBusy
	}
	defer op.running.Store(false)

	op.store.Set(State{Loading: true})

	v, err := fn(ctx)
	if err != nil {
		op.SetError(err.Error())
		return zero, err
	}

	op.store.Set(State{})
	return v, nil
}

// Run is Execute for actions without a result.
func Run(ctx context.Context, op *Operation, fn func(ctx context.Context) error) error {
	_, err := Execute(ctx, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
