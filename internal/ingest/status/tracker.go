package status

import (
	"context"

	"github.com/akolanti/IngestAPI/internal/config"
	"github.com/akolanti/IngestAPI/internal/data/redisStore"
	"github.com/akolanti/IngestAPI/internal/domain/filemodel"
	"github.com/akolanti/IngestAPI/pkg/logger_i"
)

// Tracker writes the human-readable progress marker straight into the
// file catalog - no HTTP round trip back into our own API. A copy lands
// in Redis so the status endpoint can poll without touching Postgres.
type Tracker struct {
	files  filemodel.FileStore
	mirror *redisStore.Store
	logger *logger_i.Logger
}

func NewTracker(files filemodel.FileStore, mirror *redisStore.Store) *Tracker {
	return &Tracker{
		files:  files,
		mirror: mirror,
		logger: logger_i.NewLogger("StatusTracker"),
	}
}

// Update sets the file's status field. Last write wins; the pipeline
// never reads status back.
func (t *Tracker) Update(ctx context.Context, fileID string, statusValue string) error {
	log := t.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "fileId", fileID)

	if err := t.files.UpdateStatus(ctx, fileID, statusValue); err != nil {
		log.Error("status update failed", "status", statusValue, "error", err)
		return err
	}

	if t.mirror != nil {
		if err := t.mirror.Set(ctx, statusKey(fileID), statusValue, config.RedisStatusStoreTTL); err != nil {
			// mirror is a cache - catalog already has the value
			log.Warn("status mirror write failed", "error", err)
		}
	}

	log.Debug("status updated", "status", statusValue)
	return nil
}

// Peek returns the mirrored status when present.
func (t *Tracker) Peek(ctx context.Context, fileID string) (string, bool) {
	if t.mirror == nil {
		return "", false
	}
	val, err := t.mirror.Get(ctx, statusKey(fileID))
	if err != nil {
		return "", false
	}
	return val, true
}

func statusKey(fileID string) string {
	return "filestatus:" + fileID
}
