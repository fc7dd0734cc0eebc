package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"
)

type User struct {
  gorm.Model
  ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  Name      string    `gorm:"not null;column:name" json:"name"`
  Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
  Password  string    `gorm:"not null;column:password" json:"-"`
  CreatedAt time.Time `gorm:"not null" json:"createdAt"`
  UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string {
  return "user"
}
