package history

import "context"

// Repository persists history records. Implementations must tolerate being
// absent: the rest of the system treats history as best-effort.
type Repository interface {
	// Save stores a record, generating its ID when empty.
	Save(ctx context.Context, record *Record) error

	// List returns record summaries, newest first.
	List(ctx context.Context, limit int) ([]Summary, error)

	// Get returns one full record including its snapshot.
	Get(ctx context.Context, id string) (Record, error)
}
