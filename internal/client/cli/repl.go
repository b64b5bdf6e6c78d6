package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Profile(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the portal.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, when ctx is done, or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help            show available commands
//	  - login           authenticate
//	  - register        create an account
//	  - status          show session status
//	  - exit | quit     leave the program
//
//	Logged in:
//	  - help            show available commands
//	  - profile | me    show your profile
//	  - status          show session status
//	  - logout          log out
//	  - exit | quit     leave the program
//
// Errors returned by command handlers are printed unless the handler has
// already shown them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	report := func(err error) {
		if err != nil && !isShown(err) {
			printlnFn(renderAlert(err.Error()))
		}
	}

	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("portal %s> ", statusFn()))

		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: profile, status, logout, exit")
			} else {
				printlnFn("Available commands: login, register, status, exit")
			}

		case "login":
			report(a.Login(ctx))

		case "register":
			report(a.Register(ctx))

		case "profile", "me":
			report(a.Profile(ctx))

		case "logout":
			report(a.Logout(ctx))

		case "status":
			report(a.Status(ctx))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
