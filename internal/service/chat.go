package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sahay-labs/sahay/internal/clients"
	"github.com/sahay-labs/sahay/internal/models"
	"github.com/sahay-labs/sahay/internal/repository"
	"go.uber.org/zap"
)

const hintSystemPrompt = "You are a helpful academic tutor. Provide a short, " +
	"encouraging hint (max 1 sentence) based on the students' conversation."

const quizSystemPrompt = "You are an educational assistant. Based ONLY on the " +
	"topics in the tutoring transcript you are given, generate 3 multiple choice " +
	"questions. Format each as: Q<n>: [question], A) B) C) D) options, and a " +
	"Correct Answer line."

// hintContextMessages is how many trailing messages feed the AI hint.
const hintContextMessages = 3

// Token budgets per completion. A hint is a single sentence; a quiz is
// three full questions with four options and an answer line each, so it
// needs several times the room or the model gets cut off mid-question.
const (
	hintMaxTokens = 100
	quizMaxTokens = 500
)

// ChatService handles session chat: append, ordered listing, and the
// best-effort AI tutor features. The AI client may be nil (no API key
// configured); hint and quiz requests then fail softly.
type ChatService struct {
	matches  repository.MatchRepository
	messages repository.MessageRepository
	ai       clients.AIClient
	logger   *zap.Logger
}

func NewChatService(
	matches repository.MatchRepository,
	messages repository.MessageRepository,
	ai clients.AIClient,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		matches:  matches,
		messages: messages,
		ai:       ai,
		logger:   logger,
	}
}

// authorize loads the match and checks the user participates in it.
func (s *ChatService) authorize(ctx context.Context, matchID string, userID uuid.UUID) (*models.Match, error) {
	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("load match: %w", err)
	}
	if match == nil {
		return nil, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}
	if match.MentorID != userID && match.MenteeID != userID {
		return nil, ErrForbidden
	}
	return match, nil
}

// Append persists one message on the session thread.
func (s *ChatService) Append(ctx context.Context, matchID string, userID uuid.UUID, sender, body, fileURL, fileType string) (*models.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: message body is empty", ErrInvalid)
	}
	if _, err := s.authorize(ctx, matchID, userID); err != nil {
		return nil, err
	}

	msg, err := s.messages.Create(ctx, &models.Message{
		MatchID:  matchID,
		Sender:   sender,
		Body:     body,
		FileURL:  fileURL,
		FileType: fileType,
	})
	if err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}
	return msg, nil
}

// List returns the thread oldest first. Clients poll this; after the
// partner ends the session the thread comes back empty.
func (s *ChatService) List(ctx context.Context, matchID string, userID uuid.UUID) ([]models.Message, error) {
	if _, err := s.authorize(ctx, matchID, userID); err != nil {
		return nil, err
	}
	msgs, err := s.messages.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

// Hint asks the AI tutor for a one-sentence nudge based on the last few
// messages and appends it to the thread under the AI sender name.
func (s *ChatService) Hint(ctx context.Context, matchID string, userID uuid.UUID) (*models.Message, error) {
	if _, err := s.authorize(ctx, matchID, userID); err != nil {
		return nil, err
	}
	if s.ai == nil {
		return nil, fmt.Errorf("%w: not configured", ErrAIUnavailable)
	}

	msgs, err := s.messages.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("load hint context: %w", err)
	}

	reply, err := s.ai.Complete(ctx, hintSystemPrompt,
		"Conversation Context: "+hintContext(msgs), hintMaxTokens)
	if err != nil {
		s.logger.Warn("hint completion failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}

	hint, err := s.messages.Create(ctx, &models.Message{
		MatchID: matchID,
		Sender:  models.SenderAI,
		Body:    reply,
	})
	if err != nil {
		return nil, fmt.Errorf("append hint: %w", err)
	}
	return hint, nil
}

// Quiz asks the AI tutor to turn the session transcript into three
// multiple-choice questions. Unlike Hint, the result is returned to the
// caller rather than written to the thread.
func (s *ChatService) Quiz(ctx context.Context, matchID string, userID uuid.UUID) (string, error) {
	if _, err := s.authorize(ctx, matchID, userID); err != nil {
		return "", err
	}
	if s.ai == nil {
		return "", fmt.Errorf("%w: not configured", ErrAIUnavailable)
	}

	msgs, err := s.messages.ListByMatch(ctx, matchID)
	if err != nil {
		return "", fmt.Errorf("load quiz context: %w", err)
	}
	if len(msgs) == 0 {
		return "", fmt.Errorf("%w: nothing discussed yet", ErrInvalid)
	}

	var transcript strings.Builder
	for _, m := range msgs {
		if m.FileURL != "" {
			continue
		}
		fmt.Fprintf(&transcript, "%s: %s\n", m.Sender, m.Body)
	}

	quiz, err := s.ai.Complete(ctx, quizSystemPrompt, transcript.String(), quizMaxTokens)
	if err != nil {
		s.logger.Warn("quiz completion failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}
	return quiz, nil
}

// hintContext joins the last few non-attachment message bodies.
func hintContext(msgs []models.Message) string {
	bodies := make([]string, 0, hintContextMessages)
	for i := len(msgs) - 1; i >= 0 && len(bodies) < hintContextMessages; i-- {
		if msgs[i].FileURL != "" || msgs[i].Body == "" {
			continue
		}
		bodies = append([]string{msgs[i].Body}, bodies...)
	}
	if len(bodies) == 0 {
		return "No context."
	}
	return strings.Join(bodies, " ")
}
