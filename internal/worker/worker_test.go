package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akolanti/IngestAPI/internal/config"
	"github.com/akolanti/IngestAPI/internal/domain/docmodel"
	"github.com/akolanti/IngestAPI/internal/domain/filemodel"
	"github.com/akolanti/IngestAPI/internal/domain/jobModel"
	"github.com/akolanti/IngestAPI/internal/ingest"
	"github.com/akolanti/IngestAPI/internal/ingest/status"
	"github.com/akolanti/IngestAPI/internal/job"
)

type MockJobStore struct {
	mu     sync.Mutex
	Saved  []jobModel.Job
	OnSave func(ctx context.Context, job jobModel.Job) error
}

func (m *MockJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.Saved) - 1; i >= 0; i-- {
		if m.Saved[i].Id == jobId {
			return m.Saved[i], true
		}
	}
	return jobModel.Job{}, false
}

func (m *MockJobStore) DeleteJob(ctx context.Context, jobID string) {}

func (m *MockJobStore) SaveJob(ctx context.Context, j jobModel.Job) error {
	if m.OnSave != nil {
		if err := m.OnSave(ctx, j); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.Saved = append(m.Saved, j)
	m.mu.Unlock()
	return nil
}

// MockObjectStore serves canned bytes for any key.
type MockObjectStore struct {
	Fetched int32
	OnGet   func(ctx context.Context, key string) ([]byte, error)
}

func (m *MockObjectStore) UploadFile(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	return "https://example/" + key, nil
}

func (m *MockObjectStore) GetFile(ctx context.Context, key string) ([]byte, error) {
	atomic.AddInt32(&m.Fetched, 1)
	if m.OnGet != nil {
		return m.OnGet(ctx, key)
	}
	return []byte("%PDF-1.4"), nil
}

func (m *MockObjectStore) DeleteFile(ctx context.Context, key string) error { return nil }

type stubPartitioner struct{}

func (stubPartitioner) Partition(ctx context.Context, filePath string, imageDir string) ([]docmodel.ContentElement, error) {
	return []docmodel.ContentElement{{PageNumber: 1, Kind: docmodel.KindText, Text: "worker test page"}}, nil
}

type stubDescriber struct{}

func (stubDescriber) DescribeImage(ctx context.Context, b64 string) (string, error) {
	return "image", nil
}

type stubSummarizer struct{}

func (stubSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	return "summary", nil
}

type stubUploader struct{ Pages int32 }

func (s *stubUploader) EnsureCollection(ctx context.Context, name string) error { return nil }
func (s *stubUploader) UploadPage(ctx context.Context, page docmodel.PageUpload) error {
	atomic.AddInt32(&s.Pages, 1)
	return nil
}
func (s *stubUploader) DeleteByFile(ctx context.Context, name string, fileID string) error {
	return nil
}

type stubFileStore struct{}

func (stubFileStore) CreateFile(ctx context.Context, record filemodel.FileRecord) error { return nil }
func (stubFileStore) GetFile(ctx context.Context, fileID string) (filemodel.FileRecord, bool) {
	return filemodel.FileRecord{}, false
}
func (stubFileStore) ListFiles(ctx context.Context, skip int, limit int) ([]filemodel.FileRecord, error) {
	return nil, nil
}
func (stubFileStore) UpdateStatus(ctx context.Context, fileID string, status string) error {
	return nil
}
func (stubFileStore) UpdateFile(ctx context.Context, fileID string, fileName string) error {
	return nil
}
func (stubFileStore) DeleteFile(ctx context.Context, fileID string) error { return nil }

func testProcessor(t *testing.T, uploader *stubUploader) *ingest.Processor {
	t.Helper()
	return ingest.NewProcessor(ingest.ProcessorConfig{
		Partitioner:  stubPartitioner{},
		Describer:    stubDescriber{},
		Summarizer:   stubSummarizer{},
		Uploader:     uploader,
		Tracker:      status.NewTracker(stubFileStore{}, nil),
		Collection:   "worker-test",
		MaxChunkUnit: config.MaxChunkUnit,
		WorkDir:      t.TempDir(),
	})
}

func TestWorkerPool_Flow(t *testing.T) {
	// 1. Setup
	jobStore := &MockJobStore{}
	jobSvc := &job.Service{
		JobChannel:        make(chan jobModel.Job, 10),
		DispatcherChannel: make(chan bool, 10),
		JobStore:          jobStore,
	}
	uploader := &stubUploader{}
	objectStore := &MockObjectStore{}
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}

	InitServices(jobSvc, testProcessor(t, uploader), objectStore)
	InitWorkerPool(stopChan, wg)

	// Reset global state for test
	atomic.StoreInt64(&currentWorkerCount, 0)

	t.Run("Dispatcher creates worker on signal", func(t *testing.T) {
		// Signal dispatcher to create a worker
		jobSvc.DispatcherChannel <- true

		// Give it a millisecond to spawn
		time.Sleep(50 * time.Millisecond)

		count := atomic.LoadInt64(&currentWorkerCount)
		if count < 1 {
			t.Errorf("Expected at least 1 worker, got %d", count)
		}
	})

	t.Run("Worker runs an ingestion job", func(t *testing.T) {
		testJob := jobModel.Job{Id: "test-1", FileID: "file-1", ObjectKey: "uploads/file-1.pdf", TraceId: "trace-1"}
		jobSvc.JobChannel <- testJob

		// Wait for the worker to pick up, process, and save the final state
		deadline := time.After(2 * time.Second)
		for {
			final, found := jobStore.GetJob(context.Background(), "test-1")
			if found && final.Status == jobModel.JobStatusComplete {
				break
			}
			select {
			case <-deadline:
				t.Fatalf("job never reached %v, last state: %+v", jobModel.JobStatusComplete, final)
			case <-time.After(20 * time.Millisecond):
			}
		}

		if atomic.LoadInt32(&objectStore.Fetched) == 0 {
			t.Error("worker never fetched the stored pdf")
		}
		if atomic.LoadInt32(&uploader.Pages) == 0 {
			t.Error("no page was uploaded for the processed job")
		}
	})

	t.Run("Stop signal retires workers", func(t *testing.T) {
		// Send stop signal
		close(stopChan)

		// Wait for workers to exit
		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			// Success
		case <-time.After(2 * time.Second):
			t.Error("Workers did not stop within timeout")
		}
	})
}
