package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"
)

// Trait is the legacy flat form produced by the trait-file import: a titled
// block of text with no persona linkage. Category is free text.
type Trait struct {
  gorm.Model
  ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
  Title       string    `gorm:"not null;column:title" json:"title"`
  Category    string    `gorm:"not null;column:category" json:"category"`
  Description string    `gorm:"type:text;not null;column:description" json:"description"`
  CreatedAt   time.Time `gorm:"not null" json:"-"`
  UpdatedAt   time.Time `gorm:"not null" json:"-"`
}

func (Trait) TableName() string {
  return "trait"
}
