package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/akolanti/IngestAPI/internal/config"
	"github.com/akolanti/IngestAPI/internal/domain/docmodel"
	jobmodel "github.com/akolanti/IngestAPI/internal/domain/jobModel"
	"github.com/akolanti/IngestAPI/internal/metrics"
)

func executeJob(job jobmodel.Job) {
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.IngestRunTimeout)
	defer cancel()
	logger.With("trace Id ", job.TraceId)
	logger.Debug("Processing job:", "job Id:", job.Id)

	saveJobState(ctx, job, jobmodel.JobStatusRunning)

	job = runIngestion(ctx, job)

	job.EndTime = time.Now()
	if job.Status != jobmodel.JobStatusError {
		job.Status = jobmodel.JobStatusComplete
		job.CurrentStep = jobmodel.Complete
	}
	saveJobState(ctx, job, job.Status)
}

// runIngestion fetches the stored PDF and runs one pipeline pass. The
// pipeline owns the file status transitions; the job record only tracks
// the worker-side lifecycle.
func runIngestion(ctx context.Context, job jobmodel.Job) jobmodel.Job {
	job.CurrentStep = jobmodel.IngestInit

	content, err := _objectStore.GetFile(ctx, job.ObjectKey)
	if err != nil {
		logger.Error("Failed to fetch stored pdf", "err", err, "key", job.ObjectKey)
		return failJob(job, "could not fetch stored pdf: "+err.Error())
	}

	job.CurrentStep = jobmodel.PageProcessing
	doc := docmodel.SourceDocument{
		FileID:   job.FileID,
		FileURL:  job.FileURL,
		FileName: job.FileName,
		Content:  content,
	}

	if err := _processor.ProcessPDF(ctx, doc); err != nil {
		logger.Error("Ingestion run failed", "err", err, "fileId", job.FileID)
		return failJob(job, err.Error())
	}

	return job
}

func failJob(job jobmodel.Job, message string) jobmodel.Job {
	job.Status = jobmodel.JobStatusError
	job.CurrentStep = jobmodel.Error
	job.Error = jobmodel.JobError{
		Code:    500,
		Message: message,
		Retry:   true,
	}
	return job
}

func removeWorker(reason string) {

	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker ", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()

}

func saveJobState(ctx context.Context, job jobmodel.Job, jobStatus jobmodel.JobStatus) {
	job.Status = jobStatus
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update job state", "err", err)
	}
}
