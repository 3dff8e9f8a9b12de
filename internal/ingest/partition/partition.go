package partition

import (
	"context"

	"github.com/akolanti/IngestAPI/internal/domain/docmodel"
)

// Partitioner invokes a document-partitioning engine on a PDF already
// written to disk and returns its typed elements ordered by page number
// and then by original document order. imageDir is where the engine may
// drop extracted image files; the caller owns and removes it.
//
// This is the single longest-running step of a run and is not retried.
type Partitioner interface {
	Partition(ctx context.Context, filePath string, imageDir string) ([]docmodel.ContentElement, error)
}
