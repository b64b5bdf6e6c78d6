package cli

import "errors"

// shownError marks an error the command has already rendered, so callers
// do not print it a second time.
type shownError struct {
	err error
}

func (e shownError) Error() string { return e.err.Error() }
func (e shownError) Unwrap() error { return e.err }

func shown(err error) error {
	if err == nil {
		return nil
	}
	return shownError{err: err}
}

func isShown(err error) bool {
	var s shownError
	return errors.As(err, &s)
}
