package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/akolanti/IngestAPI/internal/domain/docmodel"
)

type MockSummarizer struct {
	OnSummarize func(ctx context.Context, text string) (string, error)
}

func (m *MockSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	if m.OnSummarize != nil {
		return m.OnSummarize(ctx, text)
	}
	return "summary of: " + text, nil
}

func makeChunks(texts ...string) []docmodel.SemanticChunk {
	chunks := make([]docmodel.SemanticChunk, len(texts))
	for i, text := range texts {
		chunks[i] = docmodel.SemanticChunk{Index: i, Text: text}
	}
	return chunks
}

func TestSummarizeChunks_OnePerChunkInOrder(t *testing.T) {
	chunks := makeChunks("first chunk", "second chunk", "third chunk")

	summaries, err := SummarizeChunks(context.Background(), &MockSummarizer{}, chunks)
	if err != nil {
		t.Fatalf("SummarizeChunks failed: %v", err)
	}

	if len(summaries) != len(chunks) {
		t.Fatalf("got %d summaries for %d chunks", len(summaries), len(chunks))
	}
	for i, summary := range summaries {
		if !strings.Contains(summary, chunks[i].Text) {
			t.Errorf("summary %d is %q, want one derived from %q", i, summary, chunks[i].Text)
		}
	}
}

func TestSummarizeChunks_EmptyInput(t *testing.T) {
	summaries, err := SummarizeChunks(context.Background(), &MockSummarizer{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summaries != nil {
		t.Errorf("expected nil summaries for no chunks, got %v", summaries)
	}
}

func TestSummarizeChunks_FirstFailureAborts(t *testing.T) {
	chunks := makeChunks("chunk zero", "chunk one", "chunk two")

	calls := 0
	mock := &MockSummarizer{
		OnSummarize: func(ctx context.Context, text string) (string, error) {
			calls++
			if text == "chunk one" {
				return "", errors.New("model overloaded")
			}
			return "ok", nil
		},
	}

	_, err := SummarizeChunks(context.Background(), mock, chunks)
	if err == nil {
		t.Fatal("expected an error when one chunk fails")
	}
	if !strings.Contains(err.Error(), fmt.Sprintf("chunk %d", 1)) {
		t.Errorf("error %q should name the failing chunk", err)
	}
	if calls != 2 {
		t.Errorf("expected the failure to stop further calls, got %d calls", calls)
	}
}
