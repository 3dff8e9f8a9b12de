package filemodel

import (
	"context"
	"fmt"
	"time"
)

// FileRecord mirrors the fileinfo row in the catalog. Status is the only
// field the ingestion pipeline ever writes back.
type FileRecord struct {
	FileID     string    `json:"file_id"`
	FileName   string    `json:"file_name"`
	UploaderID string    `json:"uploader_id"`
	FileURL    string    `json:"file_url"`
	Status     string    `json:"status"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ProgressStatus renders the "k/total" page progress marker.
func ProgressStatus(done int, total int) string {
	return fmt.Sprintf("%d/%d", done, total)
}

type FileStore interface {
	CreateFile(ctx context.Context, record FileRecord) error
	GetFile(ctx context.Context, fileID string) (FileRecord, bool)
	ListFiles(ctx context.Context, skip int, limit int) ([]FileRecord, error)
	UpdateStatus(ctx context.Context, fileID string, status string) error
	UpdateFile(ctx context.Context, fileID string, fileName string) error
	DeleteFile(ctx context.Context, fileID string) error
}
