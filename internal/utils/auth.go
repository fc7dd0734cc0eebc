package utils

import (
  "regexp"

  "golang.org/x/crypto/bcrypt"

  "github.com/excollo/aipersona-backend/internal/apperr"
  "github.com/excollo/aipersona-backend/internal/types"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateRegistration checks the already-normalized user fields. Field
// messages surface straight to the client as 422s.
func ValidateRegistration(user *types.User) error {
  if user == nil {
    return apperr.Validation("No user given, cannot proceed any further.")
  }
  if user.Name == "" {
    return apperr.Validation("a name is required to register.")
  }
  if user.Email == "" {
    return apperr.Validation("an email is required to register.")
  }
  if !emailPattern.MatchString(user.Email) {
    return apperr.Validation("a valid email is required to register.")
  }
  if user.Password == "" {
    return apperr.Validation("a password is required to register.")
  }
  if len(user.Password) < 8 {
    return apperr.Validation("password must be at least 8 characters.")
  }
  return nil
}

func ValidateLogin(email, password string) error {
  if email == "" {
    return apperr.Validation("an email is required to log in.")
  }
  if password == "" {
    return apperr.Validation("a password is required to log in.")
  }
  return nil
}

func HashPassword(user *types.User) error {
  hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
  if err != nil {
    return apperr.Store("failed to hash password for user", err)
  }
  user.Password = string(hashed)
  return nil
}
