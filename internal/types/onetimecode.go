package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"
)

// OneTimeCode backs the password-reset flow. A code is single-use and
// expires on its own clock regardless of use.
type OneTimeCode struct {
  gorm.Model
  ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
  UserID    uuid.UUID `gorm:"type:uuid;index;not null;column:user_id"`
  User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID"`
  Code      string    `gorm:"uniqueIndex;not null;column:code"`
  ExpiresAt time.Time `gorm:"column:expires_at"`
  Used      bool      `gorm:"not null;default:false;column:used"`
  CreatedAt time.Time `gorm:"not null"`
  UpdatedAt time.Time `gorm:"not null"`
}

func (OneTimeCode) TableName() string {
  return "one_time_code"
}
