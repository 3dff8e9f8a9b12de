package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	FileId    string            `json:"file_id" example:"file_550"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type Result struct {
	Status      string `json:"status"`
	CurrentStep string `json:"current_step,omitempty"`
}

type InitUploadResponse struct {
	FileId    string `json:"file_id"`
	JobId     string `json:"job_id"`
	StatusURL string `json:"status_url"`
}

type FileResponse struct {
	FileId     string    `json:"file_id"`
	FileName   string    `json:"file_name"`
	UploaderId string    `json:"uploader_id"`
	FileURL    string    `json:"file_url"`
	Status     string    `json:"status"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type FileListResponse struct {
	Files []FileResponse `json:"files"`
	Count int            `json:"count"`
}

type DeleteFileResponse struct {
	FileId  string `json:"file_id"`
	Deleted bool   `json:"deleted"`
}

// requests---------------------

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type UpdateFileRequest struct {
	FileName string `json:"file_name" validate:"required"`
}

type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}
