package services

import (
	"context"
	"strings"
	"time"

	"bookbot-backend/internal/logging"
	"bookbot-backend/internal/metrics"
	"bookbot-backend/internal/models"
	"bookbot-backend/internal/persona"
	"bookbot-backend/internal/scope"
)

const DefaultLanguage = "en"

// ChatResult is a successful or refused chat turn.
type ChatResult struct {
	Text      string
	Timestamp time.Time
	InScope   bool
}

type ChatService struct {
	provider Provider
	gate     *scope.Gate
	now      func() time.Time
}

// NewChatService wires the gateway. A nil now uses time.Now.
func NewChatService(provider Provider, gate *scope.Gate, now func() time.Time) *ChatService {
	if now == nil {
		now = time.Now
	}
	return &ChatService{provider: provider, gate: gate, now: now}
}

// Chat answers one user message. Errors are *ValidationError,
// *EmptyResponseError or *ProviderError.
func (s *ChatService) Chat(ctx context.Context, req models.ChatRequest) (*ChatResult, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		metrics.RecordChatOutcome(metrics.OutcomeInvalid)
		return nil, &ValidationError{Message: "Empty message"}
	}

	keyword, ok := s.gate.MatchedKeyword(message)
	if !ok {
		metrics.RecordChatOutcome(metrics.OutcomeRefused)
		logging.Ctx(ctx).Debug().Msg("message refused by scope gate")
		return &ChatResult{Text: persona.RefusalText, InScope: false}, nil
	}
	logging.Ctx(ctx).Debug().Str("keyword", keyword).Msg("message accepted by scope gate")

	turns := BuildConversation(s.now(), req.Mood, req.Language, req.History, message)

	start := time.Now()
	text, err := s.provider.Generate(ctx, turns)
	metrics.RecordProviderCall(time.Since(start))
	if err != nil {
		metrics.RecordChatOutcome(metrics.OutcomeProviderError)
		logging.Ctx(ctx).Error().Err(err).Int("turns", len(turns)).Msg("provider call failed")
		return nil, &ProviderError{Err: err}
	}
	if strings.TrimSpace(text) == "" {
		metrics.RecordChatOutcome(metrics.OutcomeEmptyResponse)
		logging.Ctx(ctx).Warn().Msg("provider returned no text")
		return nil, &EmptyResponseError{}
	}

	metrics.RecordChatOutcome(metrics.OutcomeOK)
	return &ChatResult{
		Text:      FormatCheckAndNormalize(text),
		Timestamp: s.now(),
		InScope:   true,
	}, nil
}

// BuildConversation lays out persona, history and the new message as
// provider turns.
func BuildConversation(now time.Time, mood, language string, history []models.ChatMessage, message string) []Turn {
	if mood == "" {
		mood = persona.DefaultMood
	}
	if language == "" {
		language = DefaultLanguage
	}

	turns := make([]Turn, 0, len(history)+2)
	turns = append(turns, Turn{Role: RoleUser, Text: persona.Render(persona.NewContext(now, mood, language))})
	for _, msg := range history {
		turns = append(turns, Turn{Role: providerRole(msg.Role), Text: msg.Content})
	}
	return append(turns, Turn{Role: RoleUser, Text: message})
}

func providerRole(role string) string {
	if role == "user" {
		return RoleUser
	}
	return RoleModel
}
