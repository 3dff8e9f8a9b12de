package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/akolanti/IngestAPI/internal/domain/filemodel"
	"github.com/akolanti/IngestAPI/pkg/logger_i"
)

var inMemFileLogger = logger_i.NewLogger("InMem FileStore")

// InMemoryFileStore is the fallback catalog when Postgres is offline.
// Records do not survive a restart.
type InMemoryFileStore struct {
	fileMutex *sync.RWMutex
	fileMap   map[string]filemodel.FileRecord
}

func InitInMemoryFileStore() *InMemoryFileStore {
	return &InMemoryFileStore{
		fileMutex: new(sync.RWMutex),
		fileMap:   make(map[string]filemodel.FileRecord),
	}
}

func (store *InMemoryFileStore) CreateFile(ctx context.Context, record filemodel.FileRecord) error {
	store.fileMutex.Lock()
	defer store.fileMutex.Unlock()
	if record.UploadedAt.IsZero() {
		record.UploadedAt = time.Now()
	}
	store.fileMap[record.FileID] = record
	inMemFileLogger.Debug("Saved file record", "fileId", record.FileID)
	return nil
}

func (store *InMemoryFileStore) GetFile(ctx context.Context, fileID string) (filemodel.FileRecord, bool) {
	store.fileMutex.RLock()
	defer store.fileMutex.RUnlock()
	record, found := store.fileMap[fileID]
	return record, found
}

func (store *InMemoryFileStore) ListFiles(ctx context.Context, skip int, limit int) ([]filemodel.FileRecord, error) {
	store.fileMutex.RLock()
	defer store.fileMutex.RUnlock()

	records := make([]filemodel.FileRecord, 0, len(store.fileMap))
	for _, record := range store.fileMap {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].UploadedAt.After(records[j].UploadedAt)
	})

	if skip >= len(records) {
		return nil, nil
	}
	records = records[skip:]
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records, nil
}

func (store *InMemoryFileStore) UpdateStatus(ctx context.Context, fileID string, status string) error {
	store.fileMutex.Lock()
	defer store.fileMutex.Unlock()
	record, found := store.fileMap[fileID]
	if !found {
		return fmt.Errorf("file %s not found", fileID)
	}
	record.Status = status
	store.fileMap[fileID] = record
	return nil
}

func (store *InMemoryFileStore) UpdateFile(ctx context.Context, fileID string, fileName string) error {
	store.fileMutex.Lock()
	defer store.fileMutex.Unlock()
	record, found := store.fileMap[fileID]
	if !found {
		return fmt.Errorf("file %s not found", fileID)
	}
	record.FileName = fileName
	store.fileMap[fileID] = record
	return nil
}

func (store *InMemoryFileStore) DeleteFile(ctx context.Context, fileID string) error {
	store.fileMutex.Lock()
	defer store.fileMutex.Unlock()
	delete(store.fileMap, fileID)
	return nil
}
