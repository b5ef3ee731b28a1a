// Package blob stores opaque byte payloads outside the metadata store.
package blob

import "context"

// Store writes and reads content blobs. Write generates a fresh
// collision-resistant identifier for every payload, so concurrent uploads
// never clash.
type Store interface {
	// Write persists data under a newly generated identifier and returns
	// the reference to store in metadata.
	Write(ctx context.Context, data []byte) (string, error)

	// Read returns the full payload for a previously written reference.
	Read(ctx context.Context, ref string) ([]byte, error)

	// Remove deletes a blob. Used to compensate for a failed metadata
	// insert after a successful write.
	Remove(ctx context.Context, ref string) error
}
