package jobModel

import (
	"context"
	"time"
)

type JobStatus string
type InternalStatus string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	IngestInit     InternalStatus = "IngestInit"
	PageProcessing InternalStatus = "PageProcessing"
	Error          InternalStatus = "Error"
	Complete       InternalStatus = "Complete"
)

// Job is one scheduled ingestion run for an uploaded file. The PDF
// bytes themselves stay in object storage - the job only carries the
// identifiers the worker needs to fetch them.
type Job struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	FileID      string         `json:"file_id"`
	FileURL     string         `json:"file_url"`
	FileName    string         `json:"file_name"`
	ObjectKey   string         `json:"object_key"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}
