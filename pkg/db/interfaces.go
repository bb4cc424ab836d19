package db

import "context"

// Fixed keys the schedule state is stored under
const (
	KeyVolunteers  = "gestor_volunteers"
	KeyAssignments = "gestor_assignments"
	KeyManagerMode = "gestor_is_manager"
)

// KV defines the key-value persistence operations the store needs.
// The bolt, sqlite, postgres and in-memory backends all implement this interface.
type KV interface {
	// Get returns the value for key and whether it was present
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}
