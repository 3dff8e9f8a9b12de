package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/akolanti/IngestAPI/internal/config"
	"github.com/akolanti/IngestAPI/internal/data/store"
	"github.com/akolanti/IngestAPI/internal/domain/filemodel"
)

func TestInMemoryFileStore_Lifecycle(t *testing.T) {
	fileStore := store.InitInMemoryFileStore()
	ctx := context.Background()

	record := filemodel.FileRecord{
		FileID:     "file-1",
		FileName:   "report.pdf",
		UploaderID: "user-7",
		FileURL:    "https://bucket.s3.us-east-2.amazonaws.com/uploads/file-1.pdf",
		Status:     config.StatusParsing,
		UploadedAt: time.Now(),
	}

	t.Run("Create and Get", func(t *testing.T) {
		if err := fileStore.CreateFile(ctx, record); err != nil {
			t.Fatalf("CreateFile failed: %v", err)
		}
		got, found := fileStore.GetFile(ctx, "file-1")
		if !found {
			t.Fatal("file was created but not found")
		}
		if got.Status != config.StatusParsing {
			t.Errorf("initial status got %q, want %q", got.Status, config.StatusParsing)
		}
	})

	t.Run("Status Progression", func(t *testing.T) {
		for _, statusValue := range []string{"1/3", "2/3", "3/3", config.StatusCompleted} {
			if err := fileStore.UpdateStatus(ctx, "file-1", statusValue); err != nil {
				t.Fatalf("UpdateStatus(%q) failed: %v", statusValue, err)
			}
		}
		got, _ := fileStore.GetFile(ctx, "file-1")
		if got.Status != config.StatusCompleted {
			t.Errorf("final status got %q, want %q", got.Status, config.StatusCompleted)
		}
	})

	t.Run("UpdateStatus Unknown File", func(t *testing.T) {
		if err := fileStore.UpdateStatus(ctx, "ghost-file", config.StatusFailed); err == nil {
			t.Error("expected an error for an unknown file id")
		}
	})

	t.Run("Rename", func(t *testing.T) {
		if err := fileStore.UpdateFile(ctx, "file-1", "renamed.pdf"); err != nil {
			t.Fatalf("UpdateFile failed: %v", err)
		}
		got, _ := fileStore.GetFile(ctx, "file-1")
		if got.FileName != "renamed.pdf" {
			t.Errorf("file name got %q, want renamed.pdf", got.FileName)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := fileStore.DeleteFile(ctx, "file-1"); err != nil {
			t.Fatalf("DeleteFile failed: %v", err)
		}
		if _, found := fileStore.GetFile(ctx, "file-1"); found {
			t.Error("file still present after delete")
		}
	})
}

func TestInMemoryFileStore_ListOrderingAndPaging(t *testing.T) {
	fileStore := store.InitInMemoryFileStore()
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 5; i++ {
		_ = fileStore.CreateFile(ctx, filemodel.FileRecord{
			FileID:     filemodel.ProgressStatus(i, 5), // cheap unique ids
			FileName:   "doc.pdf",
			Status:     config.StatusParsing,
			UploadedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	records, err := fileStore.ListFiles(ctx, 0, 3)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if !records[0].UploadedAt.After(records[1].UploadedAt) {
		t.Error("records not ordered newest first")
	}

	rest, err := fileStore.ListFiles(ctx, 3, 10)
	if err != nil {
		t.Fatalf("ListFiles with skip failed: %v", err)
	}
	if len(rest) != 2 {
		t.Errorf("got %d records after skip, want 2", len(rest))
	}

	none, err := fileStore.ListFiles(ctx, 100, 10)
	if err != nil || none != nil {
		t.Errorf("skip past the end should yield nothing, got %v (%v)", none, err)
	}
}

func TestProgressStatus(t *testing.T) {
	if got := filemodel.ProgressStatus(3, 12); got != "3/12" {
		t.Errorf("ProgressStatus got %q, want 3/12", got)
	}
}
