package handlers

import (
	"context"
	"net/http"

	"bookbot-backend/internal/models"
)

type feedbackService interface {
	Submit(ctx context.Context, req models.FeedbackRequest) (*models.FeedbackEvent, error)
}

type FeedbackHandler struct {
	feedback feedbackService
}

func NewFeedbackHandler(feedback feedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.FeedbackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp(err.Error()))
		return
	}

	if _, err := h.feedback.Submit(r.Context(), req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.FeedbackResponse{
		Status:  "success",
		Message: "Feedback received",
	})
}
