package services

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/excollo/aipersona-backend/internal/apperr"
  "github.com/excollo/aipersona-backend/internal/logger"
  "github.com/excollo/aipersona-backend/internal/repos"
  "github.com/excollo/aipersona-backend/internal/types"
)

// FilterAll is the query sentinel that disables a persona or session filter.
const FilterAll = "all"

type ChatService interface {
  SaveExchange(ctx context.Context, userID uuid.UUID, persona, sessionID, userMessage, aiResponse string) (*types.ChatMessage, error)
  GetMessages(ctx context.Context, userID uuid.UUID, persona, sessionID string) ([]*types.ChatMessage, error)
  GetSessionSummaries(ctx context.Context, userID uuid.UUID, persona string) ([]SessionSummary, error)
}

type chatService struct {
  db              *gorm.DB
  log             *logger.Logger
  chatMessageRepo repos.ChatMessageRepo
}

func NewChatService(db *gorm.DB, log *logger.Logger, chatMessageRepo repos.ChatMessageRepo) ChatService {
  return &chatService{
    db:              db,
    log:             log.With("service", "ChatService"),
    chatMessageRepo: chatMessageRepo,
  }
}

// SaveExchange appends one immutable (user message, AI response) pair. The
// timestamp is always server-assigned.
func (cs *chatService) SaveExchange(ctx context.Context, userID uuid.UUID, persona, sessionID, userMessage, aiResponse string) (*types.ChatMessage, error) {
  if userID == uuid.Nil || persona == "" || sessionID == "" || userMessage == "" || aiResponse == "" {
    return nil, apperr.Validation("Missing required fields: user, persona, session_id, user_message, ai_response.")
  }
  msg := &types.ChatMessage{
    UserID:      userID,
    Persona:     persona,
    SessionID:   sessionID,
    UserMessage: userMessage,
    AIResponse:  aiResponse,
  }
  created, err := cs.chatMessageRepo.CreateMessages(ctx, nil, []*types.ChatMessage{msg})
  if err != nil {
    return nil, apperr.Store("Error saving chat message", err)
  }
  return created[0], nil
}

// GetMessages returns the user's history ordered by timestamp ascending.
// persona and sessionID are optional; "" or "all" disables that filter.
func (cs *chatService) GetMessages(ctx context.Context, userID uuid.UUID, persona, sessionID string) ([]*types.ChatMessage, error) {
  if userID == uuid.Nil {
    return nil, apperr.Validation("Missing required query parameters.")
  }
  if persona == FilterAll {
    persona = ""
  }
  if sessionID == FilterAll {
    sessionID = ""
  }
  msgs, err := cs.chatMessageRepo.GetByUser(ctx, nil, userID, persona, sessionID)
  if err != nil {
    return nil, apperr.Store("Error fetching chat messages", err)
  }
  if msgs == nil {
    msgs = []*types.ChatMessage{}
  }
  return msgs, nil
}

// GetSessionSummaries reconstructs the session list from the flat store.
// Grouping happens at read time; nothing about sessions is persisted.
func (cs *chatService) GetSessionSummaries(ctx context.Context, userID uuid.UUID, persona string) ([]SessionSummary, error) {
  msgs, err := cs.GetMessages(ctx, userID, persona, "")
  if err != nil {
    return nil, err
  }
  return SummarizeSessions(msgs), nil
}
