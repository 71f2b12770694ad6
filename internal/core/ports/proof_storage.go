package ports

import "context"

// ProofStorage keeps proof-of-delivery images and returns a reference to
// record on the assignment.
type ProofStorage interface {
	Save(ctx context.Context, key, contentType string, data []byte) (string, error)
}
