// Package views holds the page logic of the portal: the login, registration
// and profile flows, independent of how they are rendered.
//
// Pages keep their form fields and an asyncop.Operation for the submit in
// flight. They move between pages through a Navigator, which the front-end
// implements.
package views
