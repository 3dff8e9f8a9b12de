package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/IngestAPI/internal/config"
	"github.com/akolanti/IngestAPI/internal/data/objectstore"
	"github.com/akolanti/IngestAPI/internal/domain/filemodel"
	"github.com/akolanti/IngestAPI/internal/domain/jobModel"
	"github.com/akolanti/IngestAPI/internal/ingest/status"
	"github.com/akolanti/IngestAPI/internal/ingest/vectorupload"
	"github.com/akolanti/IngestAPI/internal/job"
	"github.com/akolanti/IngestAPI/internal/metrics"
	"github.com/akolanti/IngestAPI/pkg/logger_i"
)

var (
	handlerInstance *FileJobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

// FileJobHandler holds every collaborator the HTTP surface needs. One
// instance serves all requests.
type FileJobHandler struct {
	service    *job.Service
	files      filemodel.FileStore
	objects    objectstore.ObjectClient
	vectors    vectorupload.Uploader
	tracker    *status.Tracker
	collection string
}

type HandlerConfig struct {
	Service    *job.Service
	Files      filemodel.FileStore
	Objects    objectstore.ObjectClient
	Vectors    vectorupload.Uploader
	Tracker    *status.Tracker
	Collection string
}

func InitFileJobHandler(cfg HandlerConfig) {
	once.Do(func() {
		if cfg.Collection == "" {
			cfg.Collection = config.DefaultCollectionName
		}
		handlerInstance = &FileJobHandler{
			service:    cfg.Service,
			files:      cfg.Files,
			objects:    cfg.Objects,
			vectors:    cfg.Vectors,
			tracker:    cfg.Tracker,
			collection: cfg.Collection,
		}

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Starting file job handler")
	})

}

func CreateNewJob(newJob newJobData) {
	logJH.With("traceId", newJob.traceId, "job id", newJob.id)
	logJH.Info("To create new job")
	handlerInstance.pushToJobChannel(newJob)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

// private methods
func (h *FileJobHandler) pushToJobChannel(newJob newJobData) {

	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.Status = jobModel.JobStatusQueued
	_job.CurrentStep = jobModel.IngestInit
	_job.FileID = newJob.fileId
	_job.FileURL = newJob.fileURL
	_job.FileName = newJob.fileName
	_job.ObjectKey = newJob.objectKey

	//metrics
	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //this is a blocking send to prevent the system from being overwhelmed
	logJH.Info("Created new job")

	//every job here is an ingestion run - batch work that can block a
	//worker for minutes on an external call - so each accepted upload
	//signals the dispatcher; idle workers retire on their own
	atomic.AddInt64(&h.service.RequestCount, 1)
	metrics.StartDispatcherSignalCount() //metrics
	h.service.DispatcherChannel <- true
}
