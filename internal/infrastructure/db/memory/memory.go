// Package memory provides in-memory implementations of the repository
// interfaces for development without a reachable MongoDB and for tests.
// It is selected at construction time in the process bootstrap, never
// swapped in at runtime. Data does not survive a restart.
package memory

import "github.com/google/uuid"

func newID() string {
	return uuid.NewString()
}
