// Package models defines the client-side data shapes exchanged with the
// account API and kept in the local session.
package models
