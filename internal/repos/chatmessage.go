package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/excollo/aipersona-backend/internal/logger"
  "github.com/excollo/aipersona-backend/internal/types"
)

type ChatMessageRepo interface {
  // CREATE
  CreateMessages(ctx context.Context, tx *gorm.DB, msgs []*types.ChatMessage) ([]*types.ChatMessage, error)

  // READ
  GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, persona, sessionID string) ([]*types.ChatMessage, error)
}

type chatMessageRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewChatMessageRepo(db *gorm.DB, baseLog *logger.Logger) ChatMessageRepo {
  return &chatMessageRepo{
    db:  db,
    log: baseLog.With("repo", "ChatMessageRepo"),
  }
}

// CreateMessages assigns ids and server-side timestamps; rows are never
// touched again once written.
func (cmr *chatMessageRepo) CreateMessages(ctx context.Context, tx *gorm.DB, msgs []*types.ChatMessage) ([]*types.ChatMessage, error) {
  transaction := tx
  if transaction == nil {
    transaction = cmr.db
  }
  if len(msgs) == 0 {
    return msgs, nil
  }
  now := time.Now().UTC()
  for _, msg := range msgs {
    if msg.ID == uuid.Nil {
      msg.ID = uuid.New()
    }
    if msg.Timestamp.IsZero() {
      msg.Timestamp = now
    }
  }
  if err := transaction.WithContext(ctx).Create(&msgs).Error; err != nil {
    cmr.log.Error("failed to create chat messages", "error", err)
    return nil, err
  }
  return msgs, nil
}

// GetByUser returns the user's exchanges ordered by timestamp ascending
// (id breaks exact-timestamp ties so reads stay deterministic). Empty
// persona or sessionID disables that filter.
func (cmr *chatMessageRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, persona, sessionID string) ([]*types.ChatMessage, error) {
  transaction := tx
  if transaction == nil {
    transaction = cmr.db
  }
  query := transaction.WithContext(ctx).Where("user_id = ?", userID)
  if persona != "" {
    query = query.Where("persona = ?", persona)
  }
  if sessionID != "" {
    query = query.Where("session_id = ?", sessionID)
  }
  var msgs []*types.ChatMessage
  if err := query.
    Order("timestamp ASC").
    Order("id ASC").
    Find(&msgs).Error; err != nil {
    cmr.log.Error("failed to get chat messages by user", "error", err)
    return nil, err
  }
  return msgs, nil
}
