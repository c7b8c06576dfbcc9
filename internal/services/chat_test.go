package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"bookbot-backend/internal/logging"
	"bookbot-backend/internal/models"
	"bookbot-backend/internal/persona"
	"bookbot-backend/internal/scope"
)

type stubProvider struct {
	reply string
	err   error
	calls int
	turns []Turn
}

func (s *stubProvider) Generate(_ context.Context, turns []Turn) (string, error) {
	s.calls++
	s.turns = turns
	return s.reply, s.err
}

// 2024-01-03 is a Wednesday.
var wednesday = time.Date(2024, 1, 3, 14, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return wednesday }

func newTestChatService(p Provider) *ChatService {
	return NewChatService(p, scope.NewDefaultGate(), fixedClock)
}

func TestChat_EmptyMessage(t *testing.T) {
	for _, msg := range []string{"", "   ", "\n\t "} {
		p := &stubProvider{reply: "• Dune"}
		_, err := newTestChatService(p).Chat(context.Background(), models.ChatRequest{Message: msg, Mood: "romantic"})

		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError for %q, got %v", msg, err)
		}
		if verr.Message != "Empty message" {
			t.Errorf("expected 'Empty message', got %q", verr.Message)
		}
		if p.calls != 0 {
			t.Errorf("provider must not be called, got %d calls", p.calls)
		}
	}
}

func TestChat_OutOfScopeRefused(t *testing.T) {
	p := &stubProvider{reply: "sunny"}
	res, err := newTestChatService(p).Chat(context.Background(), models.ChatRequest{Message: "What's the weather today?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.InScope {
		t.Fatalf("expected out-of-scope result")
	}
	if res.Text != persona.RefusalText {
		t.Errorf("expected refusal text, got %q", res.Text)
	}
	if p.calls != 0 {
		t.Errorf("provider must not be called, got %d calls", p.calls)
	}
}

func TestChat_Success(t *testing.T) {
	p := &stubProvider{reply: "Dune by Frank Herbert\n\nFoundation by Isaac Asimov"}
	res, err := newTestChatService(p).Chat(context.Background(), models.ChatRequest{Message: "Can you recommend a sci-fi novel?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.InScope {
		t.Fatalf("expected in-scope result")
	}
	if res.Text != "• Dune by Frank Herbert\n• Foundation by Isaac Asimov" {
		t.Errorf("unexpected normalized text %q", res.Text)
	}
	if !res.Timestamp.Equal(wednesday) {
		t.Errorf("expected timestamp %v, got %v", wednesday, res.Timestamp)
	}
	if len(p.turns) != 2 {
		t.Fatalf("expected persona + message, got %d turns", len(p.turns))
	}
	if p.turns[1].Role != RoleUser || p.turns[1].Text != "Can you recommend a sci-fi novel?" {
		t.Errorf("unexpected final turn %+v", p.turns[1])
	}
}

func TestChat_ConversationShape(t *testing.T) {
	p := &stubProvider{reply: "• Emma"}
	req := models.ChatRequest{
		Message: "Something like that book?",
		History: []models.ChatMessage{
			{Role: "user", Content: "I liked Pride and Prejudice"},
			{Role: "assistant", Content: "Great choice"},
			{Role: "system", Content: "odd role"},
		},
		Mood:     "ROMANTIC",
		Language: "fr",
	}
	if _, err := newTestChatService(p).Chat(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantRoles := []string{RoleUser, RoleUser, RoleModel, RoleModel, RoleUser}
	if len(p.turns) != len(wantRoles) {
		t.Fatalf("expected %d turns, got %d", len(wantRoles), len(p.turns))
	}
	for i, role := range wantRoles {
		if p.turns[i].Role != role {
			t.Errorf("turn %d: expected role %q, got %q", i, role, p.turns[i].Role)
		}
	}

	system := p.turns[0].Text
	for _, want := range []string{
		"Language: fr",
		persona.MoodContextFor("romantic"),
		"Wednesday, January 03, 2024",
		persona.FeaturedBookFor(2),
		persona.RefusalText,
	} {
		if !strings.Contains(system, want) {
			t.Errorf("persona turn missing %q", want)
		}
	}
	if p.turns[2].Text != "Great choice" {
		t.Errorf("history content not carried over: %q", p.turns[2].Text)
	}
}

func TestChat_Defaults(t *testing.T) {
	turns := BuildConversation(wednesday, "", "", nil, "any good books?")
	if !strings.Contains(turns[0].Text, "Language: en") {
		t.Errorf("expected default language en")
	}
	if !strings.Contains(turns[0].Text, persona.MoodContextFor(persona.DefaultMood)) {
		t.Errorf("expected default mood phrase")
	}
}

func TestChat_EmptyResponse(t *testing.T) {
	for _, reply := range []string{"", "  \n "} {
		p := &stubProvider{reply: reply}
		_, err := newTestChatService(p).Chat(context.Background(), models.ChatRequest{Message: "recommend a book"})

		var eerr *EmptyResponseError
		if !errors.As(err, &eerr) {
			t.Fatalf("expected EmptyResponseError for %q, got %v", reply, err)
		}
	}
}

func TestChat_ProviderError(t *testing.T) {
	p := &stubProvider{err: errors.New("quota exceeded")}
	_, err := newTestChatService(p).Chat(context.Background(), models.ChatRequest{Message: "recommend a book"})

	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if perr.Error() != "quota exceeded" {
		t.Errorf("expected provider detail, got %q", perr.Error())
	}
	if p.calls != 1 {
		t.Errorf("expected exactly one provider call, got %d", p.calls)
	}
}

func TestNewChatService_DefaultClock(t *testing.T) {
	s := NewChatService(&stubProvider{}, scope.NewDefaultGate(), nil)
	if s.now == nil {
		t.Fatalf("expected default clock")
	}
}

func TestChat_LogsMatchedKeyword(t *testing.T) {
	var buf bytes.Buffer
	logging.Init(logging.Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { logging.Init(logging.Config{}) })

	p := &stubProvider{reply: "• Dune"}
	if _, err := newTestChatService(p).Chat(context.Background(), models.ChatRequest{Message: "Any good LIBRARY picks?"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(buf.String(), `"keyword":"library"`) {
		t.Errorf("expected the matched keyword in the debug log, got %s", buf.String())
	}
}
