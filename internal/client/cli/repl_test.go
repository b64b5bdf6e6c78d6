package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	err      error

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return f.err
}
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return f.err
}
func (f *fakeExec) Profile(ctx context.Context) error {
	f.calls = append(f.calls, "profile")
	return f.err
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return f.err
}
func (f *fakeExec) Status(ctx context.Context) error {
	f.calls = append(f.calls, "status")
	return nil
}

// capturePrintln swaps printlnFn for one that records lines.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_Commands(t *testing.T) {
	lines := capturePrintln(t)

	input := strings.Join([]string{
		"help",
		"register",
		"login",
		"help",
		"",
		"me",
		"status",
		"logout",
		"foobar",
		"exit",
		"login",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(s)" }, rdr(input))

	assert.Equal(t, []string{"register", "login", "profile", "status", "logout"}, exec.calls)
	assert.Contains(t, *lines, "Available commands: login, register, status, exit")
	assert.Contains(t, *lines, "Available commands: profile, status, logout, exit")
	assert.Contains(t, *lines, "Unknown command: foobar")
	assert.Contains(t, *lines, "portal (s)> ")
	assert.Equal(t, "Bye!", (*lines)[len(*lines)-1])
}

func TestRunREPL_ReportsErrors(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{err: errors.New("invalid credentials")}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("login\n"))

	require.Len(t, exec.calls, 1)
	assert.Contains(t, strings.Join(*lines, "\n"), "invalid credentials")
}

func TestRunREPL_ShownErrorsNotRepeated(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{err: shown(errors.New("token expired"))}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("profile\nquit\n"))

	assert.NotContains(t, strings.Join(*lines, "\n"), "token expired")
}

func TestRunREPL_StopsOnCanceledContext(t *testing.T) {
	capturePrintln(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, rdr("login\n"))
	assert.Empty(t, exec.calls)
}
