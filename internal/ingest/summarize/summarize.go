package summarize

import (
	"context"
	"fmt"

	"github.com/akolanti/IngestAPI/internal/domain/docmodel"
)

// Summarizer produces one short summary for one chunk of page text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// SummarizeChunks produces one summary per chunk, same order, same
// length. A failure on any chunk fails the whole page - partial
// summaries are never returned.
func SummarizeChunks(ctx context.Context, summarizer Summarizer, chunks []docmodel.SemanticChunk) ([]string, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	summaries := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		summary, err := summarizer.Summarize(ctx, chunk.Text)
		if err != nil {
			return nil, fmt.Errorf("summarizing chunk %d: %w", chunk.Index, err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
