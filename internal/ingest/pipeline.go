package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/akolanti/IngestAPI/internal/config"
	"github.com/akolanti/IngestAPI/internal/domain/docmodel"
	"github.com/akolanti/IngestAPI/internal/domain/filemodel"
	"github.com/akolanti/IngestAPI/internal/ingest/caption"
	"github.com/akolanti/IngestAPI/internal/ingest/chunker"
	"github.com/akolanti/IngestAPI/internal/ingest/cleaner"
	"github.com/akolanti/IngestAPI/internal/ingest/partition"
	"github.com/akolanti/IngestAPI/internal/ingest/status"
	"github.com/akolanti/IngestAPI/internal/ingest/summarize"
	"github.com/akolanti/IngestAPI/internal/ingest/vectorupload"
	"github.com/akolanti/IngestAPI/internal/metrics"
	"github.com/akolanti/IngestAPI/pkg/logger_i"
)

// Processor drives one end-to-end ingestion run per uploaded file:
// partition, then per page clean -> chunk -> summarize -> upload ->
// status update, strictly sequential. Every collaborator is injected;
// the processor holds no global state and is safe to share across
// concurrent runs for different files.
type Processor struct {
	partitioner  partition.Partitioner
	describer    caption.Describer
	summarizer   summarize.Summarizer
	uploader     vectorupload.Uploader
	tracker      *status.Tracker
	collection   string
	maxChunkUnit int
	workDir      string
	logger       *logger_i.Logger
}

type ProcessorConfig struct {
	Partitioner  partition.Partitioner
	Describer    caption.Describer
	Summarizer   summarize.Summarizer
	Uploader     vectorupload.Uploader
	Tracker      *status.Tracker
	Collection   string
	MaxChunkUnit int
	WorkDir      string
}

func NewProcessor(cfg ProcessorConfig) *Processor {
	if cfg.MaxChunkUnit <= 0 {
		cfg.MaxChunkUnit = config.MaxChunkUnit
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = os.TempDir()
	}
	if cfg.Collection == "" {
		cfg.Collection = config.DefaultCollectionName
	}
	return &Processor{
		partitioner:  cfg.Partitioner,
		describer:    cfg.Describer,
		summarizer:   cfg.Summarizer,
		uploader:     cfg.Uploader,
		tracker:      cfg.Tracker,
		collection:   cfg.Collection,
		maxChunkUnit: cfg.MaxChunkUnit,
		workDir:      cfg.WorkDir,
		logger:       logger_i.NewLogger("Ingestion Pipeline"),
	}
}

// ProcessPDF runs the whole pipeline for one document. On any failure
// the file status becomes "Failed" and the error is returned; pages
// already uploaded stay in the vector index. The transient PDF copy and
// image-extraction directory are removed on every exit path.
func (p *Processor) ProcessPDF(ctx context.Context, doc docmodel.SourceDocument) error {
	log := p.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "fileId", doc.FileID)
	start := time.Now()

	tempPDF := filepath.Join(p.workDir, "temp_"+doc.FileID+".pdf")
	imageDir := filepath.Join(p.workDir, "figures_"+doc.FileID)

	defer p.cleanup(tempPDF, imageDir, log)

	if err := p.run(ctx, doc, tempPDF, imageDir, log); err != nil {
		log.Error("ingestion run failed", "error", err)
		metrics.CaptureRunMetrics(config.StatusFailed, time.Since(start))
		if statusErr := p.tracker.Update(ctx, doc.FileID, config.StatusFailed); statusErr != nil {
			log.Error("could not record failure status", "error", statusErr)
		}
		return err
	}

	metrics.CaptureRunMetrics(config.StatusCompleted, time.Since(start))
	return p.tracker.Update(ctx, doc.FileID, config.StatusCompleted)
}

func (p *Processor) run(ctx context.Context, doc docmodel.SourceDocument, tempPDF string, imageDir string, log *logger_i.Logger) error {
	if err := p.uploader.EnsureCollection(ctx, p.collection); err != nil {
		return fmt.Errorf("ensuring collection %q: %w", p.collection, err)
	}

	if err := os.WriteFile(tempPDF, doc.Content, 0o600); err != nil {
		return fmt.Errorf("writing transient pdf: %w", err)
	}
	if err := os.MkdirAll(imageDir, 0o750); err != nil {
		return fmt.Errorf("creating image dir: %w", err)
	}

	partitionStart := time.Now()
	elements, err := p.partitioner.Partition(ctx, tempPDF, imageDir)
	metrics.CaptureExecutionMetrics("partition", time.Since(partitionStart))
	if err != nil {
		return fmt.Errorf("partitioning document: %w", err)
	}

	totalPages := 0
	for _, element := range elements {
		if element.PageNumber > totalPages {
			totalPages = element.PageNumber
		}
	}
	log.Debug("partitioning done", "elements", len(elements), "totalPages", totalPages)

	currentPage := 0
	var contentParts []string

	for _, element := range elements {
		if element.PageNumber != currentPage {
			if currentPage > 0 {
				if err := p.flushPage(ctx, doc, contentParts, currentPage, totalPages, log); err != nil {
					return err
				}
			}
			currentPage = element.PageNumber
			contentParts = contentParts[:0]
		}

		switch element.Kind {
		case docmodel.KindImage:
			captionStart := time.Now()
			described := caption.CaptionElement(ctx, p.describer, element, log)
			metrics.CaptureExecutionMetrics("caption", time.Since(captionStart))
			contentParts = append(contentParts, described)
		default:
			contentParts = append(contentParts, element.Text)
		}
	}

	// the last page never sees a page-number transition
	if currentPage > 0 {
		if err := p.flushPage(ctx, doc, contentParts, currentPage, totalPages, log); err != nil {
			return err
		}
	}

	return nil
}

// flushPage runs clean -> chunk -> summarize -> upload -> status for one
// completed page. Progress is only reported after the page's records are
// accepted by the vector index.
func (p *Processor) flushPage(ctx context.Context, doc docmodel.SourceDocument, contentParts []string, pageNumber int, totalPages int, log *logger_i.Logger) error {
	pageContent := cleaner.JoinElements(contentParts)
	cleanedContent := cleaner.CleanPageContent(pageContent)

	chunks := chunker.SplitSemantic(cleanedContent, p.maxChunkUnit)

	summarizeStart := time.Now()
	summaries, err := summarize.SummarizeChunks(ctx, p.summarizer, chunks)
	metrics.CaptureExecutionMetrics("summarize", time.Since(summarizeStart))
	if err != nil {
		return fmt.Errorf("page %d: %w", pageNumber, err)
	}

	if len(chunks) != len(summaries) {
		return fmt.Errorf("page %d: %d chunks but %d summaries, refusing upload", pageNumber, len(chunks), len(summaries))
	}

	if len(chunks) > 0 {
		uploadStart := time.Now()
		err = p.uploader.UploadPage(ctx, docmodel.PageUpload{
			FileID:     doc.FileID,
			FileURL:    doc.FileURL,
			FileName:   doc.FileName,
			PageNumber: pageNumber,
			Chunks:     chunks,
			Summaries:  summaries,
			Collection: p.collection,
		})
		metrics.CaptureExecutionMetrics("vector_upload", time.Since(uploadStart))
		if err != nil {
			return fmt.Errorf("page %d: %w", pageNumber, err)
		}
	} else {
		log.Debug("page has no content, nothing to upload", "page", pageNumber)
	}

	metrics.IncrementPagesProcessed()
	if err := p.tracker.Update(ctx, doc.FileID, filemodel.ProgressStatus(pageNumber, totalPages)); err != nil {
		return fmt.Errorf("page %d: %w", pageNumber, err)
	}

	log.Debug("page flushed", "page", pageNumber, "chunks", len(chunks))
	return nil
}

// cleanup removes the transient resources of one run. Best effort -
// a leftover file is logged, never fatal.
func (p *Processor) cleanup(tempPDF string, imageDir string, log *logger_i.Logger) {
	if err := os.Remove(tempPDF); err != nil && !os.IsNotExist(err) {
		log.Error("could not remove transient pdf", "path", tempPDF, "error", err)
	}
	if err := os.RemoveAll(imageDir); err != nil {
		log.Error("could not remove image dir", "path", imageDir, "error", err)
	}
}
