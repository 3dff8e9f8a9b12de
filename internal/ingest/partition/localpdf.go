package partition

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dslipak/pdf"

	"github.com/akolanti/IngestAPI/internal/domain/docmodel"
	"github.com/akolanti/IngestAPI/pkg/logger_i"
)

// LocalPDFPartitioner is the fallback engine when no partitioning
// endpoint is configured. Text only - no embedded images, no table
// inference - one element per page.
type LocalPDFPartitioner struct {
	logger *logger_i.Logger
}

func NewLocalPDFPartitioner() *LocalPDFPartitioner {
	return &LocalPDFPartitioner{
		logger: logger_i.NewLogger("LocalPartitioner"),
	}
}

func (p *LocalPDFPartitioner) Partition(ctx context.Context, filePath string, imageDir string) ([]docmodel.ContentElement, error) {
	p.logger.Debug("attempting local extraction", "path", filePath)
	f, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	var elements []docmodel.ContentElement
	numPages := f.NumPage()
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			// Log warning but continue with other pages
			p.logger.Error("Error parsing page content", "page", i, "error", err)
			continue
		}

		elements = append(elements, docmodel.ContentElement{
			PageNumber: i,
			Kind:       docmodel.KindText,
			Text:       content,
		})
	}
	if len(elements) == 0 {
		return nil, errors.New("no extractable pages in document")
	}
	return elements, nil
}

// protectExtract guards against the extractor hanging on malformed
// content streams.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		return "", errors.New("timeout")
	}
}
