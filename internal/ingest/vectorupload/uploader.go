package vectorupload

import (
	"context"

	"github.com/akolanti/IngestAPI/internal/domain/docmodel"
)

// Uploader persists one page's chunk/summary pairs into the vector
// index. EnsureCollection is idempotent and safe under concurrent runs
// targeting the same collection.
type Uploader interface {
	EnsureCollection(ctx context.Context, collectionName string) error
	UploadPage(ctx context.Context, page docmodel.PageUpload) error

	// DeleteByFile removes every record of one file. Called by the
	// deletion endpoint, never by the ingestion pipeline.
	DeleteByFile(ctx context.Context, collectionName string, fileID string) error
}
