package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/akolanti/IngestAPI/internal/config"
	"github.com/akolanti/IngestAPI/internal/domain/filemodel"
	"github.com/akolanti/IngestAPI/pkg/logger_i"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bootstrapDDL = `
CREATE TABLE IF NOT EXISTS fileinfo (
	file_id     UUID PRIMARY KEY,
	file_name   TEXT NOT NULL,
	uploader_id TEXT NOT NULL DEFAULT '',
	file_url    TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'parsing...',
	uploaded_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// PostgresFileStore is the catalog of uploaded files. The pipeline only
// ever touches UpdateStatus - the rest serves the CRUD surface.
type PostgresFileStore struct {
	pool   *pgxpool.Pool
	logger *logger_i.Logger
}

func GetPostgresFileStore(ctx context.Context) *PostgresFileStore {
	log := logger_i.NewLogger("FileStore")

	dsn := config.Env("DATABASE_URL", "")
	if dsn == "" {
		log.Error("DATABASE_URL not set")
		return nil
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Error("could not open file catalog pool", "error", err)
		return nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, config.PostgresConnectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		log.Error("file catalog is offline", "error", err)
		pool.Close()
		return nil
	}

	if _, err := pool.Exec(ctx, bootstrapDDL); err != nil {
		log.Error("file catalog bootstrap failed", "error", err)
		pool.Close()
		return nil
	}

	go func() {
		<-ctx.Done()
		log.Info("Closing file catalog pool")
		pool.Close()
	}()

	log.Info("File catalog init successfully")
	return &PostgresFileStore{pool: pool, logger: log}
}

func (s *PostgresFileStore) CreateFile(ctx context.Context, record filemodel.FileRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO fileinfo (file_id, file_name, uploader_id, file_url, status, uploaded_at)
		 VALUES ($1, $2, $3, $4, $5, now())`,
		record.FileID, record.FileName, record.UploaderID, record.FileURL, record.Status)
	if err != nil {
		return fmt.Errorf("insert file record: %w", err)
	}
	return nil
}

func (s *PostgresFileStore) GetFile(ctx context.Context, fileID string) (filemodel.FileRecord, bool) {
	var record filemodel.FileRecord
	err := s.pool.QueryRow(ctx,
		`SELECT file_id, file_name, uploader_id, file_url, status, uploaded_at
		 FROM fileinfo WHERE file_id = $1`, fileID).
		Scan(&record.FileID, &record.FileName, &record.UploaderID, &record.FileURL, &record.Status, &record.UploadedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return record, false
	}
	if err != nil {
		s.logger.Error("get file record failed", "fileId", fileID, "error", err)
		return record, false
	}
	return record, true
}

func (s *PostgresFileStore) ListFiles(ctx context.Context, skip int, limit int) ([]filemodel.FileRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT file_id, file_name, uploader_id, file_url, status, uploaded_at
		 FROM fileinfo ORDER BY uploaded_at DESC OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list file records: %w", err)
	}
	defer rows.Close()

	var records []filemodel.FileRecord
	for rows.Next() {
		var record filemodel.FileRecord
		if err := rows.Scan(&record.FileID, &record.FileName, &record.UploaderID, &record.FileURL, &record.Status, &record.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan file record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *PostgresFileStore) UpdateStatus(ctx context.Context, fileID string, status string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE fileinfo SET status = $2 WHERE file_id = $1`, fileID, status)
	if err != nil {
		return fmt.Errorf("update file status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("file %s not found", fileID)
	}
	return nil
}

func (s *PostgresFileStore) UpdateFile(ctx context.Context, fileID string, fileName string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE fileinfo SET file_name = $2 WHERE file_id = $1`, fileID, fileName)
	if err != nil {
		return fmt.Errorf("update file record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("file %s not found", fileID)
	}
	return nil
}

func (s *PostgresFileStore) DeleteFile(ctx context.Context, fileID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM fileinfo WHERE file_id = $1`, fileID)
	if err != nil {
		return fmt.Errorf("delete file record: %w", err)
	}
	return nil
}
