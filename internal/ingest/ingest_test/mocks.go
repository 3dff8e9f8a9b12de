package ingest_test

import (
	"context"
	"sync"

	"github.com/akolanti/IngestAPI/internal/domain/docmodel"
	"github.com/akolanti/IngestAPI/internal/domain/filemodel"
)

// MockPartitioner implements partition.Partitioner
type MockPartitioner struct {
	OnPartition func(ctx context.Context, filePath string, imageDir string) ([]docmodel.ContentElement, error)
}

func (m *MockPartitioner) Partition(ctx context.Context, filePath string, imageDir string) ([]docmodel.ContentElement, error) {
	if m.OnPartition != nil {
		return m.OnPartition(ctx, filePath, imageDir)
	}
	return nil, nil
}

// MockDescriber implements caption.Describer
type MockDescriber struct {
	OnDescribeImage func(ctx context.Context, base64Image string) (string, error)
}

func (m *MockDescriber) DescribeImage(ctx context.Context, base64Image string) (string, error) {
	if m.OnDescribeImage != nil {
		return m.OnDescribeImage(ctx, base64Image)
	}
	return "a diagram", nil
}

// MockSummarizer implements summarize.Summarizer
type MockSummarizer struct {
	OnSummarize func(ctx context.Context, text string) (string, error)
}

func (m *MockSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	if m.OnSummarize != nil {
		return m.OnSummarize(ctx, text)
	}
	return "mock summary", nil
}

// MockUploader implements vectorupload.Uploader and records every page
// it accepts.
type MockUploader struct {
	mu                 sync.Mutex
	Uploaded           []docmodel.PageUpload
	OnEnsureCollection func(ctx context.Context, name string) error
	OnUploadPage       func(ctx context.Context, page docmodel.PageUpload) error
	OnDeleteByFile     func(ctx context.Context, name string, fileID string) error
}

func (m *MockUploader) EnsureCollection(ctx context.Context, name string) error {
	if m.OnEnsureCollection != nil {
		return m.OnEnsureCollection(ctx, name)
	}
	return nil
}

func (m *MockUploader) UploadPage(ctx context.Context, page docmodel.PageUpload) error {
	if m.OnUploadPage != nil {
		if err := m.OnUploadPage(ctx, page); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.Uploaded = append(m.Uploaded, page)
	m.mu.Unlock()
	return nil
}

func (m *MockUploader) DeleteByFile(ctx context.Context, name string, fileID string) error {
	if m.OnDeleteByFile != nil {
		return m.OnDeleteByFile(ctx, name, fileID)
	}
	return nil
}

// MockFileStore implements filemodel.FileStore and records the status
// values written for each file, in order.
type MockFileStore struct {
	mu             sync.Mutex
	StatusHistory  []string
	OnUpdateStatus func(ctx context.Context, fileID string, status string) error
}

func (m *MockFileStore) CreateFile(ctx context.Context, record filemodel.FileRecord) error {
	return nil
}

func (m *MockFileStore) GetFile(ctx context.Context, fileID string) (filemodel.FileRecord, bool) {
	return filemodel.FileRecord{}, false
}

func (m *MockFileStore) ListFiles(ctx context.Context, skip int, limit int) ([]filemodel.FileRecord, error) {
	return nil, nil
}

func (m *MockFileStore) UpdateStatus(ctx context.Context, fileID string, status string) error {
	if m.OnUpdateStatus != nil {
		if err := m.OnUpdateStatus(ctx, fileID, status); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.StatusHistory = append(m.StatusHistory, status)
	m.mu.Unlock()
	return nil
}

func (m *MockFileStore) UpdateFile(ctx context.Context, fileID string, fileName string) error {
	return nil
}

func (m *MockFileStore) DeleteFile(ctx context.Context, fileID string) error {
	return nil
}

func (m *MockFileStore) History() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.StatusHistory))
	copy(out, m.StatusHistory)
	return out
}
