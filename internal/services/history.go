package services

import (
  "fmt"
  "sort"

  "github.com/excollo/aipersona-backend/internal/types"
)

// SessionKeyKind tags the two disjoint sources of a session key.
type SessionKeyKind int

const (
  // SessionKeyExplicit means the message carried its own session id.
  SessionKeyExplicit SessionKeyKind = iota
  // SessionKeyLegacy means the key was synthesized from persona + UTC
  // calendar day for rows written before session ids existed.
  SessionKeyLegacy
)

// SessionKey is a tagged variant rather than a prefixed string: an explicit
// id that happens to read "legacy_session_..." can never land in the legacy
// key space because the kind is part of the map key.
type SessionKey struct {
  Kind    SessionKeyKind
  ID      string
  Persona string
  Day     string
}

// String renders the key the way clients see session ids. Legacy days are
// unpadded (2024-5-1, not 2024-05-01).
func (k SessionKey) String() string {
  if k.Kind == SessionKeyExplicit {
    return k.ID
  }
  return fmt.Sprintf("legacy_session_%s_%s", k.Persona, k.Day)
}

func sessionKeyFor(msg *types.ChatMessage) SessionKey {
  if msg.SessionID != "" {
    return SessionKey{Kind: SessionKeyExplicit, ID: msg.SessionID}
  }
  t := msg.Timestamp.UTC()
  return SessionKey{
    Kind:    SessionKeyLegacy,
    Persona: msg.Persona,
    Day:     fmt.Sprintf("%d-%d-%d", t.Year(), int(t.Month()), t.Day()),
  }
}

// GroupIntoSessions buckets messages by session key. Per-group order follows
// input order, so callers must hand in messages already sorted by timestamp
// — the repo read does that — to get a deterministic grouping.
func GroupIntoSessions(msgs []*types.ChatMessage) map[SessionKey][]*types.ChatMessage {
  groups := make(map[SessionKey][]*types.ChatMessage, len(msgs))
  for _, msg := range msgs {
    key := sessionKeyFor(msg)
    groups[key] = append(groups[key], msg)
  }
  return groups
}

// SessionSummary is the derived, never-persisted view of one conversation.
type SessionSummary struct {
  SessionID   string               `json:"session_id"`
  Persona     string               `json:"persona"`
  LastMessage string               `json:"last_message"`
  Date        string               `json:"date"`
  Messages    []*types.ChatMessage `json:"messages"`
}

// SummarizeSessions groups and then derives one summary per session, newest
// session first. LastMessage is the final exchange's AI response, falling
// back to its user message when the response is empty.
func SummarizeSessions(msgs []*types.ChatMessage) []SessionSummary {
  groups := GroupIntoSessions(msgs)
  summaries := make([]SessionSummary, 0, len(groups))
  for key, group := range groups {
    last := group[len(group)-1]
    lastMessage := last.AIResponse
    if lastMessage == "" {
      lastMessage = last.UserMessage
    }
    summaries = append(summaries, SessionSummary{
      SessionID:   key.String(),
      Persona:     last.Persona,
      LastMessage: lastMessage,
      Date:        last.Timestamp.UTC().Format("1/2/2006"),
      Messages:    group,
    })
  }
  sort.SliceStable(summaries, func(i, j int) bool {
    a := summaries[i].Messages[len(summaries[i].Messages)-1].Timestamp
    b := summaries[j].Messages[len(summaries[j].Messages)-1].Timestamp
    if !a.Equal(b) {
      return a.After(b)
    }
    return summaries[i].SessionID < summaries[j].SessionID
  })
  return summaries
}
