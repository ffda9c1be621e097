package handlers

import (
	"net/http"

	"github.com/akolanti/DocChatAPI/internal/api"
	"github.com/akolanti/DocChatAPI/internal/domain/chatModel"
)

// UpdateApiKeyHandler godoc
// @Summary      Register or update a model credential
// @Description  Upserts the server-held API key for a model. Disabled models are rejected at query time.
// @Tags         Models
// @Accept       json
// @Produce      json
// @Param        request  body  api.UpdateApiKeyRequest  true  "Model name, key, and optional enabled flag"
// @Success      200  {object}  api.StatusResponse
// @Failure      400  {object}  api.ErrorResponse
// @Router       /models/apiKey [put]
func UpdateApiKeyHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := identityOrFail(w, r); !ok {
		return
	}

	var req api.UpdateApiKeyRequest
	if !decodeJsonBody(w, r, &req) {
		return
	}
	if req.ModelName == "" || req.ApiKey == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "modelName and apiKey are required")
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	record := chatModel.ModelRecord{
		Name:    req.ModelName,
		ApiKey:  req.ApiKey,
		Enabled: enabled,
	}
	if err := modelStore.UpdateModel(r.Context(), record); err != nil {
		respondError(w, err)
		return
	}

	logH.Info("model credential updated", "model", req.ModelName, "enabled", enabled)
	writeJsonResponse(w, http.StatusOK, api.StatusResponse{StatusCode: http.StatusOK, Message: "Model updated successfully"})
}
