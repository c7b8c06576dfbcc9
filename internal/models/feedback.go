package models

import "time"

type FeedbackRequest struct {
	MessageID    string `json:"messageId" validate:"required,max=256"`
	IsPositive   bool   `json:"isPositive"`
	FeedbackText string `json:"feedbackText" validate:"max=4000"`
}

type FeedbackResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// FeedbackEvent is what gets published to listeners of the feedback stream.
type FeedbackEvent struct {
	ID           string    `json:"id"`
	MessageID    string    `json:"message_id"`
	IsPositive   bool      `json:"is_positive"`
	FeedbackText string    `json:"feedback_text,omitempty"`
	ReceivedAt   time.Time `json:"received_at"`
}
