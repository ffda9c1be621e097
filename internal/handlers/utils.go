package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/akolanti/DocChatAPI/internal/admission"
	"github.com/akolanti/DocChatAPI/internal/api"
	"github.com/akolanti/DocChatAPI/internal/domain/chatModel"
	"github.com/akolanti/DocChatAPI/internal/domain/userModel"
	"github.com/akolanti/DocChatAPI/internal/ingestion"
	"github.com/akolanti/DocChatAPI/internal/resolver"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logH.Error("Error encoding response", "error", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, message string) {
	writeJsonResponse(w, httpCode, api.ErrorResponse{
		StatusCode: httpCode,
		Message:    message,
	})
}

// WriteThrottledResponse is the one rejection that carries a retry hint, in
// both the Retry-After header and the body.
func WriteThrottledResponse(w http.ResponseWriter, message string, retryAfterSeconds int) {
	if retryAfterSeconds > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
	}
	writeJsonResponse(w, http.StatusTooManyRequests, api.ErrorResponse{
		StatusCode:        http.StatusTooManyRequests,
		Message:           message,
		RetryAfterSeconds: retryAfterSeconds,
	})
}

// respondError maps the pipeline error taxonomy onto the HTTP boundary.
// Admission and input errors keep their specific statuses; upstream and
// persistence failures surface as a generic server error.
func respondError(w http.ResponseWriter, err error) {
	var denied *admission.DeniedError
	if errors.As(err, &denied) {
		WriteThrottledResponse(w, denied.Error(), denied.RetryAfterSeconds())
		return
	}

	switch {
	case errors.Is(err, admission.ErrQuotaExceeded):
		WriteErrorResponse(w, http.StatusNotAcceptable,
			"Your allowed quota has been overwhelmed. Please upgrade your plan or delete some files to continue using our services.")
	case errors.Is(err, ingestion.ErrDisallowedType),
		errors.Is(err, ingestion.ErrUnreadableDocument),
		errors.Is(err, resolver.ErrNoDocuments),
		errors.Is(err, resolver.ErrInvalidPageRange),
		errors.Is(err, resolver.ErrKnowledgeBaseUnsupported):
		WriteErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, chatModel.ErrModelNotFound),
		errors.Is(err, chatModel.ErrChatNotFound),
		errors.Is(err, ingestion.ErrFileNotFound):
		WriteErrorResponse(w, http.StatusNotFound, err.Error())
	default:
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func identityOrFail(w http.ResponseWriter, r *http.Request) (userModel.Identity, bool) {
	identity, ok := userModel.IdentityFromContext(r.Context())
	if !ok {
		WriteErrorResponse(w, http.StatusBadRequest, "User ID not found in request")
		return userModel.Identity{}, false
	}
	return identity, true
}

func decodeJsonBody(w http.ResponseWriter, r *http.Request, into any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Bad Request")
		return false
	}
	return true
}
