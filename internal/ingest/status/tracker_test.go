package status

import (
	"context"
	"errors"
	"testing"

	"github.com/akolanti/IngestAPI/internal/data/redisStore"
	"github.com/akolanti/IngestAPI/internal/domain/filemodel"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type fakeFileStore struct {
	statuses map[string]string
	failWith error
}

func (f *fakeFileStore) CreateFile(ctx context.Context, record filemodel.FileRecord) error {
	return nil
}
func (f *fakeFileStore) GetFile(ctx context.Context, fileID string) (filemodel.FileRecord, bool) {
	return filemodel.FileRecord{}, false
}
func (f *fakeFileStore) ListFiles(ctx context.Context, skip int, limit int) ([]filemodel.FileRecord, error) {
	return nil, nil
}
func (f *fakeFileStore) UpdateStatus(ctx context.Context, fileID string, status string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.statuses[fileID] = status
	return nil
}
func (f *fakeFileStore) UpdateFile(ctx context.Context, fileID string, fileName string) error {
	return nil
}
func (f *fakeFileStore) DeleteFile(ctx context.Context, fileID string) error { return nil }

func TestTracker_UpdateWritesCatalogAndMirror(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mirror := redisStore.NewTestStore(client)

	files := &fakeFileStore{statuses: map[string]string{}}
	tracker := NewTracker(files, mirror)

	ctx := context.Background()
	if err := tracker.Update(ctx, "file-1", "2/5"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if files.statuses["file-1"] != "2/5" {
		t.Errorf("catalog status got %q, want 2/5", files.statuses["file-1"])
	}

	live, ok := tracker.Peek(ctx, "file-1")
	if !ok || live != "2/5" {
		t.Errorf("mirror peek got %q (%v), want 2/5", live, ok)
	}
}

func TestTracker_CatalogFailurePropagates(t *testing.T) {
	files := &fakeFileStore{statuses: map[string]string{}, failWith: errors.New("connection reset")}
	tracker := NewTracker(files, nil)

	if err := tracker.Update(context.Background(), "file-1", "1/2"); err == nil {
		t.Fatal("expected catalog failure to propagate")
	}
}

func TestTracker_NoMirrorPeeksNothing(t *testing.T) {
	tracker := NewTracker(&fakeFileStore{statuses: map[string]string{}}, nil)
	if _, ok := tracker.Peek(context.Background(), "file-1"); ok {
		t.Error("peek without a mirror should report nothing")
	}
}
