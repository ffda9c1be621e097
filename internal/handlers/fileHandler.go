package handlers

import (
	"net/http"

	"github.com/akolanti/DocChatAPI/internal/adapter"
	"github.com/akolanti/DocChatAPI/internal/api"
	"github.com/akolanti/DocChatAPI/internal/config"
	"github.com/akolanti/DocChatAPI/internal/ingestion"
)

// UploadFileHandler godoc
// @Summary      Upload a document
// @Description  Receives a file via multipart/form-data, stores it under an opaque name, dispatches it to the processing engine, and records chunk/page counts.
// @Tags         Files
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file    true   "The document to upload"
// @Param        tags  formData  string  false  "Comma-separated tags"
// @Success      200  {object}  api.UploadResponse
// @Failure      400  {object}  api.ErrorResponse "No file, disallowed type, or unparseable document"
// @Failure      406  {object}  api.ErrorResponse "Storage quota exceeded"
// @Failure      429  {object}  api.ErrorResponse "Rate limit exceeded"
// @Failure      500  {object}  api.ErrorResponse "Processing or cleanup failure"
// @Router       /files/upload [post]
func UploadFileHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityOrFail(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxMultipartBytes)
	if err := r.ParseMultipartForm(config.MaxMultipartBytes); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "File too large or bad request")
		return
	}

	fileReader, fileMetadata, err := r.FormFile("file")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer fileReader.Close()

	if fileMetadata.Size > config.MaxUploadBytes {
		WriteErrorResponse(w, http.StatusBadRequest, "File exceeds the single-file size limit")
		return
	}

	upload := ingestion.Upload{
		OriginalName: fileMetadata.Filename,
		SizeBytes:    fileMetadata.Size,
		Content:      fileReader,
		Tags:         splitTags(r.FormValue("tags")),
	}

	record, err := ingestService.IngestUpload(r.Context(), identity.UserId, identity.Plan, upload)
	if err != nil {
		logH.Warn("upload rejected or failed", "userId", identity.UserId, "error", err)
		respondError(w, err)
		return
	}

	writeJsonResponse(w, http.StatusOK, api.UploadResponse{
		StatusCode: http.StatusOK,
		Message:    "File uploaded & processed successfully",
		File:       adapter.ToFileInfo(record),
	})
}

// ListFilesHandler godoc
// @Summary      List the caller's files
// @Tags         Files
// @Produce      json
// @Success      200  {object}  api.FileListResponse
// @Failure      400  {object}  api.ErrorResponse
// @Router       /files [get]
func ListFilesHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityOrFail(w, r)
	if !ok {
		return
	}

	files, err := ingestService.ListFiles(r.Context(), identity.UserId)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToFileListResponse(files))
}

// EvaluateFilesHandler godoc
// @Summary      Probe candidate file names for duplicates
// @Description  Reports, per candidate name, whether the caller already stores a file under it. Lets clients catch duplicates before spending an upload.
// @Tags         Files
// @Accept       json
// @Produce      json
// @Param        request  body  api.EvaluateFilesRequest  true  "Candidate file names"
// @Success      200  {object}  api.EvaluateFilesResponse
// @Failure      400  {object}  api.ErrorResponse
// @Router       /files/evaluate [post]
func EvaluateFilesHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityOrFail(w, r)
	if !ok {
		return
	}

	var req api.EvaluateFilesRequest
	if !decodeJsonBody(w, r, &req) {
		return
	}

	evaluations, err := ingestService.EvaluateFiles(r.Context(), identity.UserId, req.Files)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToEvaluateFilesResponse(evaluations))
}

// DeleteFileHandler godoc
// @Summary      Soft-delete a file
// @Description  Flags the record removed; it drops out of quota accounting and resolution but is never physically purged here.
// @Tags         Files
// @Accept       json
// @Produce      json
// @Param        request  body  api.DeleteFileRequest  true  "File to delete"
// @Success      200  {object}  api.StatusResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /files [delete]
func DeleteFileHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityOrFail(w, r)
	if !ok {
		return
	}

	var req api.DeleteFileRequest
	if !decodeJsonBody(w, r, &req) {
		return
	}
	if req.FileId == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "fileId is required")
		return
	}

	if err := ingestService.DeleteFile(r.Context(), identity.UserId, req.FileId); err != nil {
		respondError(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, api.StatusResponse{StatusCode: http.StatusOK, Message: "File deleted successfully"})
}

// UpdateFileTagsHandler godoc
// @Summary      Replace a file's tag set
// @Tags         Files
// @Accept       json
// @Produce      json
// @Param        request  body  api.UpdateFileTagsRequest  true  "File and tags"
// @Success      200  {object}  api.StatusResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /files/tags [put]
func UpdateFileTagsHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityOrFail(w, r)
	if !ok {
		return
	}

	var req api.UpdateFileTagsRequest
	if !decodeJsonBody(w, r, &req) {
		return
	}
	if req.FileId == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "fileId is required")
		return
	}

	if err := ingestService.UpdateFileTags(r.Context(), identity.UserId, req.FileId, req.Tags); err != nil {
		respondError(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, api.StatusResponse{StatusCode: http.StatusOK, Message: "Tags updated successfully"})
}
