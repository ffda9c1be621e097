package handlers

import (
	"net/http"

	"github.com/akolanti/DocChatAPI/internal/adapter"
	"github.com/akolanti/DocChatAPI/internal/api"
	"github.com/akolanti/DocChatAPI/internal/query"
)

// AskHandler godoc
// @Summary      Ask a question against the caller's documents
// @Description  Resolves the document set, dispatches the question to the query engine, and persists the exchange to chat history.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body  api.AskRequest  true  "Question, model, and document selectors"
// @Success      200  {object}  api.AskResponse
// @Failure      400  {object}  api.ErrorResponse "No documents resolvable or invalid page ranges"
// @Failure      404  {object}  api.ErrorResponse "Unknown or disabled model"
// @Failure      429  {object}  api.ErrorResponse "Rate limit exceeded"
// @Failure      500  {object}  api.ErrorResponse "Engine failure"
// @Router       /chat/ask [post]
func AskHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityOrFail(w, r)
	if !ok {
		return
	}

	var req api.AskRequest
	if !decodeJsonBody(w, r, &req) {
		return
	}
	if req.Question == "" || req.ModelId == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "question and modelId are required")
		return
	}

	ask := query.Ask{
		Question:        req.Question,
		ModelId:         req.ModelId,
		ReferencesCount: req.ReferencesCount,
		SelectedDocs:    adapter.ToSelectedDocuments(req.SelectedDocs),
		FileTags:        req.FileTags,
		KnowledgeBaseId: req.KnowledgeBaseId,
		UseCustomApiKey: req.UseCustomApiKey,
		CustomApiKey:    req.CustomApiKey,
	}

	answer, err := queryService.Ask(r.Context(), identity.UserId, ask)
	if err != nil {
		logH.Warn("ask rejected or failed", "userId", identity.UserId, "error", err)
		respondError(w, err)
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToAskResponse(answer))
}

// ChatHistoryHandler godoc
// @Summary      List the caller's chat history
// @Tags         Chat
// @Produce      json
// @Success      200  {object}  api.ChatHistoryResponse
// @Router       /chat [get]
func ChatHistoryHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityOrFail(w, r)
	if !ok {
		return
	}

	chats, err := queryService.GetHistory(r.Context(), identity.UserId)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToChatHistoryResponse(chats))
}

// FeatureChatHandler godoc
// @Summary      Toggle a chat's featured flag
// @Description  Flips the flag and returns the new state. Toggling twice restores the original state.
// @Tags         Chat
// @Produce      json
// @Param        chatId  query  string  true  "Chat to toggle"
// @Success      200  {object}  api.FeatureChatResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /chat/featureChat [put]
func FeatureChatHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityOrFail(w, r)
	if !ok {
		return
	}

	chatId := r.URL.Query().Get("chatId")
	if chatId == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "chatId is required")
		return
	}

	featured, err := queryService.FeatureChat(r.Context(), identity.UserId, chatId)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, api.FeatureChatResponse{
		StatusCode: http.StatusOK,
		Message:    "Chat updated successfully",
		ChatId:     chatId,
		Featured:   featured,
	})
}
