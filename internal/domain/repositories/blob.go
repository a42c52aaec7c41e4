package repositories

import "context"

// BlobStore abstracts the object storage service holding video binaries
// and thumbnails. The access control core only ever deletes binaries
// (cascade cleanup); uploads go straight from clients to storage via
// presigned URLs minted here.
type BlobStore interface {
	// Delete removes the object under key. Deleting a missing key is not
	// an error.
	Delete(ctx context.Context, key string) error

	// PresignPut returns a short-lived URL a client can PUT the binary to
	PresignPut(ctx context.Context, key string) (string, error)
}
