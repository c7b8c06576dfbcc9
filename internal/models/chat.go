package models

import "time"

// ChatMessage represents a single prior turn in a conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message  string        `json:"message"`
	History  []ChatMessage `json:"history"`
	Mood     string        `json:"mood"`
	Language string        `json:"language"`
}

// ChatResponse is the reply from the chat endpoint. Out-of-scope replies carry
// IsBookRelated=false and no timestamp.
type ChatResponse struct {
	Response      string     `json:"response"`
	Timestamp     *time.Time `json:"timestamp,omitempty"`
	IsBookRelated *bool      `json:"is_book_related,omitempty"`
}

type DailyBookResponse struct {
	Book      string    `json:"book"`
	Timestamp time.Time `json:"timestamp"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Book    string `json:"book,omitempty"`
}

// GenericErrorMessage is the only detail clients get for unexpected faults.
const GenericErrorMessage = "Sorry, I encountered an issue processing your request. Please try again."
