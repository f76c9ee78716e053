package port

import "context"

// ArchiveStore persists submitted import archives for later auditing.
// Implementations are best-effort collaborators: a failed store never
// affects the import outcome.
type ArchiveStore interface {
	Store(ctx context.Context, key string, data []byte) error
}
