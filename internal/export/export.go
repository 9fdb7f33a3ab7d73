package export

import "context"

// Uploader relays a rendered report to remote file hosting and returns
// a shareable link. Callers treat failures as best-effort: the primary
// delivery of the report never depends on the upload.
type Uploader interface {
	Upload(ctx context.Context, localPath, remotePath string) (string, error)
}
