package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mindmate/mindmate-api/internal/api/metrics"
	"github.com/mindmate/mindmate-api/internal/core/domain"
	"github.com/mindmate/mindmate-api/internal/core/ports"
)

const (
	recentTaskWindow = 7 * 24 * time.Hour
	recentTaskLimit  = 5
)

// ChatService runs chat turns against a hosted model, personalising the
// system prompt with the user's name and recent tasks, and records the
// finished exchange.
type ChatService struct {
	users           ports.UserRepository
	tasks           ports.TaskRepository
	conversations   ports.ConversationRepository
	providers       map[string]ports.ChatModel
	defaultProvider string
	log             zerolog.Logger
}

func NewChatService(
	users ports.UserRepository,
	tasks ports.TaskRepository,
	conversations ports.ConversationRepository,
	models []ports.ChatModel,
	defaultProvider string,
	log zerolog.Logger,
) *ChatService {
	providers := make(map[string]ports.ChatModel, len(models))
	for _, m := range models {
		providers[m.Name()] = m
	}
	return &ChatService{
		users:           users,
		tasks:           tasks,
		conversations:   conversations,
		providers:       providers,
		defaultProvider: defaultProvider,
		log:             log,
	}
}

// Chat streams one assistant reply. The conversation is persisted after the
// stream completes; a persistence failure is logged but does not fail the
// turn the client already received.
func (s *ChatService) Chat(ctx context.Context, userID string, messages []domain.ChatMessage, onDelta func(string) error) (string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	model := s.pickModel(user.Preferences.AIProvider)
	if model == nil || !model.Configured() {
		return "", domain.ErrProviderUnavailable
	}

	recent, err := s.tasks.ListRecent(ctx, userID, time.Now().UTC().Add(-recentTaskWindow), recentTaskLimit)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("could not load recent tasks for chat context")
	}

	start := time.Now()
	reply, err := model.StreamChat(ctx, systemPrompt(user, recent), messages, onDelta)
	metrics.ChatDuration.WithLabelValues(model.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ChatRequestsTotal.WithLabelValues(model.Name(), "error").Inc()
		return "", fmt.Errorf("chat: %w", err)
	}
	metrics.ChatRequestsTotal.WithLabelValues(model.Name(), "ok").Inc()

	conv := &domain.Conversation{
		UserID:    userID,
		Messages:  append(append([]domain.ChatMessage{}, messages...), domain.ChatMessage{Role: domain.RoleAssistant, Content: reply}),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.conversations.Insert(ctx, conv); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to persist conversation")
	}

	return reply, nil
}

func (s *ChatService) pickModel(preferred string) ports.ChatModel {
	if m, ok := s.providers[preferred]; ok && m.Configured() {
		return m
	}
	return s.providers[s.defaultProvider]
}

func systemPrompt(user *domain.User, recent []*domain.Task) string {
	titles := make([]string, 0, len(recent))
	for _, t := range recent {
		titles = append(titles, t.Title)
	}
	taskList := strings.Join(titles, ", ")
	if taskList == "" {
		taskList = "None"
	}
	name := user.Name
	if name == "" {
		name = "User"
	}

	return fmt.Sprintf(`You are MindMate, a personal AI assistant. You help users with:
- Daily routine suggestions and optimization
- Task and reminder management
- Goal tracking and motivation
- English sentence correction
- Code generation and programming help
- General productivity advice

User context:
- Name: %s
- Recent tasks: %s

Be helpful, encouraging, and personalized. Keep responses concise but informative.`, name, taskList)
}
