package store

import "github.com/google/uuid"

// UUIDv7Generator generates time-ordered run IDs.
//
// Thread-safety: safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7 string.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
