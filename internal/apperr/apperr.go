package apperr

import (
  "errors"
  "fmt"
)

// Kind classifies a failure so route handlers can pick an HTTP status
// without string-matching error text.
type Kind int

const (
  KindUnknown Kind = iota
  KindValidation
  KindConflict
  KindAuth
  KindNotFound
  KindStore
  KindWebhook
)

type Error struct {
  Kind    Kind
  Message string
  Err     error
}

func (e *Error) Error() string {
  if e.Err != nil {
    return fmt.Sprintf("%s: %v", e.Message, e.Err)
  }
  return e.Message
}

func (e *Error) Unwrap() error {
  return e.Err
}

func Validation(msg string) *Error {
  return &Error{Kind: KindValidation, Message: msg}
}

func Conflict(msg string) *Error {
  return &Error{Kind: KindConflict, Message: msg}
}

func Auth(msg string) *Error {
  return &Error{Kind: KindAuth, Message: msg}
}

func NotFound(msg string) *Error {
  return &Error{Kind: KindNotFound, Message: msg}
}

func Store(msg string, err error) *Error {
  return &Error{Kind: KindStore, Message: msg, Err: err}
}

func Webhook(msg string, err error) *Error {
  return &Error{Kind: KindWebhook, Message: msg, Err: err}
}

// KindOf walks the wrap chain and returns the first classified kind.
func KindOf(err error) Kind {
  var ae *Error
  if errors.As(err, &ae) {
    return ae.Kind
  }
  return KindUnknown
}
