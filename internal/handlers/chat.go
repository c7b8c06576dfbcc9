package handlers

import (
	"context"
	"net/http"

	"bookbot-backend/internal/metrics"
	"bookbot-backend/internal/models"
	"bookbot-backend/internal/services"
)

type chatService interface {
	Chat(ctx context.Context, req models.ChatRequest) (*services.ChatResult, error)
}

type ChatHandler struct {
	chat chatService
}

func NewChatHandler(chat chatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp(err.Error()))
		return
	}

	result, err := h.chat.Chat(r.Context(), req)
	if err != nil {
		switch err.(type) {
		case *services.ValidationError, *services.EmptyResponseError, *services.ProviderError:
			// Counted by the service.
		default:
			metrics.RecordChatOutcome(metrics.OutcomeInternal)
		}
		handleServiceError(w, r, err)
		return
	}

	if !result.InScope {
		bookRelated := false
		writeJSON(w, http.StatusOK, models.ChatResponse{
			Response:      result.Text,
			IsBookRelated: &bookRelated,
		})
		return
	}

	ts := result.Timestamp
	writeJSON(w, http.StatusOK, models.ChatResponse{
		Response:  result.Text,
		Timestamp: &ts,
	})
}
