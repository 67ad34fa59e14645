package service

import (
	"context"
	"io"
)

// FileUploader stores a named blob and returns its public URL. The blob store
// is append-only from this service's point of view; names must be
// deterministic so retries overwrite rather than duplicate.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}
