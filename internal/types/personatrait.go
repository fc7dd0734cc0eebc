package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
)

// PersonaTrait is the normalized trait document: one row per persona,
// always upserted wholesale.
type PersonaTrait struct {
  gorm.Model
  ID                  uuid.UUID                  `gorm:"type:uuid;primaryKey" json:"id"`
  PersonaID           string                     `gorm:"uniqueIndex;not null;column:persona_id" json:"personaId"`
  About               string                     `gorm:"type:text;column:about" json:"about"`
  CoreExpertise       datatypes.JSONSlice[string] `gorm:"column:core_expertise" json:"coreExpertise"`
  CommunicationStyle  string                     `gorm:"type:text;column:communication_style" json:"communicationStyle"`
  Traits              datatypes.JSONSlice[string] `gorm:"column:traits" json:"traits"`
  PainPoints          datatypes.JSONSlice[string] `gorm:"column:pain_points" json:"painPoints"`
  KeyResponsibilities datatypes.JSONSlice[string] `gorm:"column:key_responsibilities" json:"keyResponsibilities"`
  Timestamp           time.Time                  `gorm:"not null;column:timestamp" json:"timestamp"`
  CreatedAt           time.Time                  `gorm:"not null" json:"-"`
  UpdatedAt           time.Time                  `gorm:"not null" json:"-"`
}

func (PersonaTrait) TableName() string {
  return "persona_trait"
}
