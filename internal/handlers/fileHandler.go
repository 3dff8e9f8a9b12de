package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/akolanti/IngestAPI/internal/adapter"
	"github.com/akolanti/IngestAPI/internal/adapter/utils"
	"github.com/akolanti/IngestAPI/internal/api"
	"github.com/akolanti/IngestAPI/internal/config"
	"github.com/akolanti/IngestAPI/internal/domain/filemodel"
	"github.com/akolanti/IngestAPI/pkg/logger_i"
)

var logRH *logger_i.Logger

// newJobData carries everything the upload handler collects before it
// hands off to the job pipeline.
type newJobData struct {
	id        string
	fileId    string
	fileName  string
	fileURL   string
	objectKey string
	traceId   string
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	return
}

// UploadFileHandler godoc
// @Summary      Upload a PDF for ingestion
// @Description  Receives a PDF via multipart/form-data, stores it in object storage, registers the file with status "parsing...", and queues a background ingestion job.
// @Tags         Files
// @Accept       multipart/form-data
// @Produce      json
// @Param        document     formData  file    true   "The PDF file to upload"
// @Param        uploader_id  formData  string  false  "Identifier of the uploading user"
// @Success      202  {object}  api.InitUploadResponse  "Accepted - ingestion queued"
// @Failure      400  {object}  api.JobResponse  "Missing file, wrong type, or file too large"
// @Failure      500  {object}  api.JobResponse  "Storage or catalog error"
// @Router       /files [post]
func UploadFileHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		const maxUploadSize = 32 << 20 //32mb
		err := r.ParseMultipartForm(maxUploadSize)
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
			return
		}

		fileReader, fileMetadata, err := r.FormFile("document")
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "Could not retrieve file")
			return
		}
		defer fileReader.Close()

		if !isPDFUpload(fileMetadata.Header.Get("Content-Type"), fileMetadata.Filename) {
			WriteErrorResponse(w, http.StatusBadRequest, fileMetadata.Filename, "Only PDF files are accepted")
			return
		}

		content, err := io.ReadAll(fileReader)
		if err != nil || len(content) == 0 {
			WriteErrorResponse(w, http.StatusBadRequest, fileMetadata.Filename, "Could not read file")
			return
		}

		fileId := utils.GetNewUUID()
		objectKey := objectKeyForFile(fileId)

		fileURL, err := handlerInstance.objects.UploadFile(r.Context(), objectKey, content, "application/pdf")
		if err != nil {
			logRH.Error("Object storage upload failed", "err", err)
			WriteErrorResponse(w, http.StatusInternalServerError, fileId, "Storage error")
			return
		}

		record := filemodel.FileRecord{
			FileID:     fileId,
			FileName:   fileMetadata.Filename,
			UploaderID: r.FormValue("uploader_id"),
			FileURL:    fileURL,
			Status:     config.StatusParsing,
			UploadedAt: time.Now(),
		}
		if err := handlerInstance.files.CreateFile(r.Context(), record); err != nil {
			logRH.Error("File catalog insert failed", "err", err)
			WriteErrorResponse(w, http.StatusInternalServerError, fileId, "Catalog error")
			return
		}

		newData := newJobData{
			id:        utils.GetNewUUID(),
			fileId:    fileId,
			fileName:  fileMetadata.Filename,
			fileURL:   fileURL,
			objectKey: objectKey,
			traceId:   r.Context().Value(config.TRACE_ID_KEY).(string),
		}
		CreateNewJob(newData)

		writeJsonResponse(w, http.StatusAccepted, adapter.ToInitUploadResponse(fileId, newData.id))
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// GetFileHandler godoc
// @Summary      Get a file record
// @Description  Returns one file's catalog entry. Status reflects live ingestion progress when a run is in flight.
// @Tags         Files
// @Produce      json
// @Param        id   path      string  true  "File ID"
// @Success      200  {object}  api.FileResponse
// @Failure      404  {object}  api.JobResponse  "File not found"
// @Router       /files/{id} [get]
func GetFileHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		fileId := utils.GetChiURLParam(r, "id")
		record, found := handlerInstance.files.GetFile(r.Context(), fileId)
		if !found {
			WriteErrorResponse(w, http.StatusNotFound, fileId, "File not found")
			return
		}

		// the mirror is fresher than the catalog mid-run
		if live, ok := handlerInstance.tracker.Peek(r.Context(), fileId); ok {
			record.Status = live
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToFileResponse(record))
	}
}

// ListFilesHandler godoc
// @Summary      List file records
// @Tags         Files
// @Produce      json
// @Param        skip   query     int  false  "Offset"   default(0)
// @Param        limit  query     int  false  "Max rows"  default(50)
// @Success      200  {object}  api.FileListResponse
// @Failure      500  {object}  api.JobResponse  "Catalog error"
// @Router       /files [get]
func ListFilesHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		skip := parseQueryInt(r, "skip", 0)
		limit := parseQueryInt(r, "limit", 50)

		records, err := handlerInstance.files.ListFiles(r.Context(), skip, limit)
		if err != nil {
			logRH.Error("File catalog list failed", "err", err)
			WriteErrorResponse(w, http.StatusInternalServerError, "", "Catalog error")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToFileListResponse(records))
	}
}

// UpdateFileHandler godoc
// @Summary      Rename a file
// @Description  Updates the stored file name for a catalog entry.
// @Tags         Files
// @Accept       json
// @Produce      json
// @Param        id       path  string                 true  "File ID"
// @Param        request  body  api.UpdateFileRequest  true  "New file name"
// @Success      200  {object}  api.FileResponse
// @Failure      400  {object}  api.JobResponse  "Missing file name"
// @Failure      404  {object}  api.JobResponse  "File not found"
// @Router       /files/{id} [put]
func UpdateFileHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		fileId := utils.GetChiURLParam(r, "id")

		var requestData api.UpdateFileRequest
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				logRH.Error("Couldn't close the rename handler reader :", err)
			}
		}(r.Body)
		if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || requestData.FileName == "" {
			WriteErrorResponse(w, http.StatusBadRequest, fileId, "file_name is required")
			return
		}

		if _, found := handlerInstance.files.GetFile(r.Context(), fileId); !found {
			WriteErrorResponse(w, http.StatusNotFound, fileId, "File not found")
			return
		}

		if err := handlerInstance.files.UpdateFile(r.Context(), fileId, requestData.FileName); err != nil {
			logRH.Error("File rename failed", "err", err, "fileId", fileId)
			WriteErrorResponse(w, http.StatusInternalServerError, fileId, "Catalog error")
			return
		}

		record, _ := handlerInstance.files.GetFile(r.Context(), fileId)
		writeJsonResponse(w, http.StatusOK, adapter.ToFileResponse(record))
	}
}

// UpdateFileStatusHandler godoc
// @Summary      Update a file's status
// @Description  Writes a status value for the file. Used by pipeline callbacks and operator tooling.
// @Tags         Files
// @Accept       json
// @Produce      json
// @Param        id       path  string                   true  "File ID"
// @Param        request  body  api.UpdateStatusRequest  true  "New status"
// @Success      200  {object}  api.FileResponse
// @Failure      400  {object}  api.JobResponse  "Missing status"
// @Failure      404  {object}  api.JobResponse  "File not found"
// @Router       /files/{id}/status [put]
func UpdateFileStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		fileId := utils.GetChiURLParam(r, "id")

		var requestData api.UpdateStatusRequest
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				logRH.Error("Couldn't close the status handler reader :", err)
			}
		}(r.Body)
		if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || requestData.Status == "" {
			WriteErrorResponse(w, http.StatusBadRequest, fileId, "status is required")
			return
		}

		if _, found := handlerInstance.files.GetFile(r.Context(), fileId); !found {
			WriteErrorResponse(w, http.StatusNotFound, fileId, "File not found")
			return
		}

		if err := handlerInstance.tracker.Update(r.Context(), fileId, requestData.Status); err != nil {
			logRH.Error("Status update failed", "err", err, "fileId", fileId)
			WriteErrorResponse(w, http.StatusInternalServerError, fileId, "Catalog error")
			return
		}

		record, _ := handlerInstance.files.GetFile(r.Context(), fileId)
		writeJsonResponse(w, http.StatusOK, adapter.ToFileResponse(record))
	}
}

// DeleteFileHandler godoc
// @Summary      Delete a file
// @Description  Removes the stored PDF, every vector record of the file, and the catalog entry.
// @Tags         Files
// @Produce      json
// @Param        id   path      string  true  "File ID"
// @Success      200  {object}  api.DeleteFileResponse
// @Failure      404  {object}  api.JobResponse  "File not found"
// @Failure      500  {object}  api.JobResponse  "Deletion error"
// @Router       /files/{id} [delete]
func DeleteFileHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		fileId := utils.GetChiURLParam(r, "id")
		if _, found := handlerInstance.files.GetFile(r.Context(), fileId); !found {
			WriteErrorResponse(w, http.StatusNotFound, fileId, "File not found")
			return
		}

		if err := handlerInstance.objects.DeleteFile(r.Context(), objectKeyForFile(fileId)); err != nil {
			logRH.Error("Object storage delete failed", "err", err, "fileId", fileId)
			WriteErrorResponse(w, http.StatusInternalServerError, fileId, "Storage error")
			return
		}

		if err := handlerInstance.vectors.DeleteByFile(r.Context(), handlerInstance.collection, fileId); err != nil {
			logRH.Error("Vector index delete failed", "err", err, "fileId", fileId)
			WriteErrorResponse(w, http.StatusInternalServerError, fileId, "Vector index error")
			return
		}

		if err := handlerInstance.files.DeleteFile(r.Context(), fileId); err != nil {
			logRH.Error("File catalog delete failed", "err", err, "fileId", fileId)
			WriteErrorResponse(w, http.StatusInternalServerError, fileId, "Catalog error")
			return
		}

		writeJsonResponse(w, http.StatusOK, api.DeleteFileResponse{FileId: fileId, Deleted: true})
	}
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current lifecycle state of an ingestion job using its ID.
// @Tags         Job Status
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse
// @Failure      404  {object}  api.JobResponse  "Job not found"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		idString := utils.GetChiURLParam(r, "id")
		result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

		logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
	}
}

func parseQueryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
