package ports

import "context"

// IdempotencyRecord is what a key currently maps to. ID is empty while the
// request that reserved the key is still running.
type IdempotencyRecord struct {
	ID          string
	Fingerprint string
}

// IdempotencyStore serializes requests that share a client-supplied key.
// Reserve must be atomic: exactly one caller gets owned=true per key.
type IdempotencyStore interface {
	// Reserve claims key for a request with the given payload fingerprint.
	// When the key is already taken it returns the existing record and false.
	Reserve(ctx context.Context, key, fingerprint string) (rec IdempotencyRecord, owned bool, err error)
	// Complete stores the created resource ID under a reserved key.
	Complete(ctx context.Context, key, fingerprint, id string) error
	// Release drops a reservation whose request failed, so a retry can run.
	Release(ctx context.Context, key string) error
}
