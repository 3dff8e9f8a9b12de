package adapter

import (
	"fmt"
	"time"

	"github.com/akolanti/IngestAPI/internal/api"
	"github.com/akolanti/IngestAPI/internal/domain/filemodel"
	"github.com/akolanti/IngestAPI/internal/domain/jobModel"
)

func ToInitUploadResponse(fileId string, jobId string) api.InitUploadResponse {
	return api.InitUploadResponse{
		FileId:    fileId,
		JobId:     jobId,
		StatusURL: fmt.Sprintf("status/%s", jobId),
	}
}

func ToFileResponse(record filemodel.FileRecord) api.FileResponse {
	return api.FileResponse{
		FileId:     record.FileID,
		FileName:   record.FileName,
		UploaderId: record.UploaderID,
		FileURL:    record.FileURL,
		Status:     record.Status,
		UploadedAt: record.UploadedAt,
	}
}

func ToFileListResponse(records []filemodel.FileRecord) api.FileListResponse {
	files := make([]api.FileResponse, 0, len(records))
	for _, record := range records {
		files = append(files, ToFileResponse(record))
	}
	return api.FileListResponse{Files: files, Count: len(files)}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:      string(job.Status),
		CurrentStep: string(job.CurrentStep),
	}

	return api.JobResponse{
		Id:        job.Id,
		FileId:    job.FileID,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		FileId:    "",
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
