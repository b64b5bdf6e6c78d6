// Package cli provides the portal's terminal front-end.
//
// It wires configuration, local session storage, the API client and the
// pages from package views, and exposes them as cobra commands and an
// interactive REPL. Typical flow: restore the stored session, then log in,
// register or show the profile.
//
// Commands:
//   - login / register / profile / logout
//   - status: who is logged in and until when
//   - shell: the REPL, also started when no command is given
//
// The REPL is started via App.Shell(ctx), which blocks until the user exits.
// See App, Execute and runREPL for details.
package cli
