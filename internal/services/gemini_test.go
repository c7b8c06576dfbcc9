package services

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"

	"bookbot-backend/internal/config"
)

func TestExtractText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("• Dune"), genai.Blob{MIMEType: "image/png"}, genai.Text("\n• Emma")}}},
			{Content: nil},
		},
	}
	if got := extractText(resp); got != "• Dune\n• Emma" {
		t.Fatalf("unexpected text %q", got)
	}
	if got := extractText(nil); got != "" {
		t.Fatalf("expected empty text for nil response, got %q", got)
	}
	if got := extractText(&genai.GenerateContentResponse{}); got != "" {
		t.Fatalf("expected empty text without candidates, got %q", got)
	}
}

func TestToContents(t *testing.T) {
	contents := toContents([]Turn{{Role: RoleUser, Text: "persona"}, {Role: RoleModel, Text: "hi"}})
	if len(contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(contents))
	}
	if contents[1].Role != RoleModel {
		t.Fatalf("expected model role, got %q", contents[1].Role)
	}
	if txt, ok := contents[0].Parts[0].(genai.Text); !ok || string(txt) != "persona" {
		t.Fatalf("unexpected first part %#v", contents[0].Parts[0])
	}
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	if _, err := NewGeminiProvider(context.Background(), config.GeminiConfig{Model: "gemini-2.0-flash"}); err == nil {
		t.Fatalf("expected error for missing API key")
	}
}
