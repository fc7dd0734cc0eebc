package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"
)

// ChatMessage is one request/response exchange, not a single utterance.
// Rows are append-only: nothing in the API updates or deletes them.
type ChatMessage struct {
  gorm.Model
  ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  UserID      uuid.UUID `gorm:"type:uuid;index;not null;column:user_id" json:"user"`
  Persona     string    `gorm:"index;not null;column:persona" json:"persona"`
  SessionID   string    `gorm:"index;column:session_id" json:"session_id"`
  UserMessage string    `gorm:"type:text;not null;column:user_message" json:"user_message"`
  AIResponse  string    `gorm:"type:text;not null;column:ai_response" json:"ai_response"`
  Timestamp   time.Time `gorm:"index;not null;column:timestamp" json:"timestamp"`
  CreatedAt   time.Time `gorm:"not null" json:"-"`
  UpdatedAt   time.Time `gorm:"not null" json:"-"`
}

func (ChatMessage) TableName() string {
  return "chat_message"
}
