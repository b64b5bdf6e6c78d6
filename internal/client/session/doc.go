// Package session owns the authenticated identity of the portal client.
//
// A Manager keeps the token and user summary in memory, mirrors them to a
// Store on login and clears both on logout. Hydrate restores a previously
// stored session at start-up. The token and the user are always present or
// absent together.
package session
