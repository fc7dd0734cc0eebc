package services

import (
  "reflect"
  "testing"
  "time"

  "github.com/google/uuid"

  "github.com/excollo/aipersona-backend/internal/types"
)

func msgAt(persona, sessionID, userMessage, aiResponse string, ts time.Time) *types.ChatMessage {
  return &types.ChatMessage{
    ID:          uuid.New(),
    UserID:      uuid.New(),
    Persona:     persona,
    SessionID:   sessionID,
    UserMessage: userMessage,
    AIResponse:  aiResponse,
    Timestamp:   ts,
  }
}

func TestLegacyKeyUsesUnpaddedUTCDay(t *testing.T) {
  // 01:30 on May 1 in UTC; the day must not be zero padded.
  ts := time.Date(2024, time.May, 1, 1, 30, 0, 0, time.UTC)
  key := sessionKeyFor(msgAt("2", "", "hi", "hello", ts))
  if key.Kind != SessionKeyLegacy {
    t.Fatalf("expected legacy kind, got %v", key.Kind)
  }
  if got, want := key.String(), "legacy_session_2_2024-5-1"; got != want {
    t.Fatalf("legacy key = %q, want %q", got, want)
  }
}

func TestLegacyDayBoundaryIsUTC(t *testing.T) {
  loc := time.FixedZone("UTC+5", 5*3600)
  // 03:00 local on May 2 is 22:00 UTC on May 1.
  ts := time.Date(2024, time.May, 2, 3, 0, 0, 0, loc)
  key := sessionKeyFor(msgAt("1", "", "hi", "hello", ts))
  if got, want := key.String(), "legacy_session_1_2024-5-1"; got != want {
    t.Fatalf("legacy key = %q, want %q", got, want)
  }
}

func TestExplicitAndLegacyKeysStayDisjoint(t *testing.T) {
  ts := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
  legacy := msgAt("2", "", "old", "old reply", ts)
  // An explicit id that reads exactly like the synthesized legacy key.
  explicit := msgAt("2", "legacy_session_2_2024-5-1", "new", "new reply", ts)

  groups := GroupIntoSessions([]*types.ChatMessage{legacy, explicit})
  if len(groups) != 2 {
    t.Fatalf("expected 2 disjoint groups, got %d", len(groups))
  }
  for key, group := range groups {
    if len(group) != 1 {
      t.Fatalf("key %v collected %d messages, want 1", key, len(group))
    }
  }
}

func TestGroupIntoSessionsKeepsInputOrder(t *testing.T) {
  base := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
  first := msgAt("1", "session_a", "one", "r1", base)
  second := msgAt("1", "session_a", "two", "r2", base.Add(time.Minute))
  third := msgAt("1", "session_a", "three", "r3", base.Add(2*time.Minute))

  groups := GroupIntoSessions([]*types.ChatMessage{first, second, third})
  group := groups[SessionKey{Kind: SessionKeyExplicit, ID: "session_a"}]
  if len(group) != 3 {
    t.Fatalf("expected 3 messages in group, got %d", len(group))
  }
  if group[0] != first || group[1] != second || group[2] != third {
    t.Fatalf("group order does not follow input order")
  }
}

func TestSummarizeSessionsNewestFirst(t *testing.T) {
  base := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
  msgs := []*types.ChatMessage{
    msgAt("1", "session_old", "old q", "old a", base),
    msgAt("2", "session_new", "new q", "new a", base.Add(time.Hour)),
  }
  summaries := SummarizeSessions(msgs)
  if len(summaries) != 2 {
    t.Fatalf("expected 2 summaries, got %d", len(summaries))
  }
  if summaries[0].SessionID != "session_new" || summaries[1].SessionID != "session_old" {
    t.Fatalf("summaries not newest-first: %q then %q", summaries[0].SessionID, summaries[1].SessionID)
  }
  if summaries[0].LastMessage != "new a" {
    t.Fatalf("last_message = %q, want %q", summaries[0].LastMessage, "new a")
  }
  if summaries[0].Date != "6/10/2024" {
    t.Fatalf("date = %q, want %q", summaries[0].Date, "6/10/2024")
  }
}

func TestSummarizeSessionsFallsBackToUserMessage(t *testing.T) {
  ts := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
  summaries := SummarizeSessions([]*types.ChatMessage{
    msgAt("1", "session_a", "only the question", "", ts),
  })
  if len(summaries) != 1 {
    t.Fatalf("expected 1 summary, got %d", len(summaries))
  }
  if summaries[0].LastMessage != "only the question" {
    t.Fatalf("last_message = %q, want the user message fallback", summaries[0].LastMessage)
  }
}

func TestSummarizeSessionsIsDeterministic(t *testing.T) {
  base := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
  // Two sessions whose last messages share a timestamp; the tie breaks
  // on session id so repeated calls agree.
  msgs := []*types.ChatMessage{
    msgAt("1", "session_b", "q1", "a1", base),
    msgAt("1", "session_a", "q2", "a2", base),
    msgAt("2", "", "q3", "a3", base.Add(time.Minute)),
  }
  first := SummarizeSessions(msgs)
  second := SummarizeSessions(msgs)
  if !reflect.DeepEqual(first, second) {
    t.Fatalf("summaries differ across calls over identical input")
  }
  if first[1].SessionID != "session_a" || first[2].SessionID != "session_b" {
    t.Fatalf("tied sessions not ordered by id: %q then %q", first[1].SessionID, first[2].SessionID)
  }
}

func TestSummarizeSessionsStableUnderAppends(t *testing.T) {
  base := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
  var msgs []*types.ChatMessage
  for i := 0; i < 3; i++ {
    msgs = append(msgs, msgAt("1", "session_a", "q", "a", base.Add(time.Duration(i)*time.Minute)))
    summaries := SummarizeSessions(msgs)
    if len(summaries) != 1 {
      t.Fatalf("append %d: expected 1 session, got %d", i, len(summaries))
    }
    if got := len(summaries[0].Messages); got != i+1 {
      t.Fatalf("append %d: session has %d messages, want %d", i, got, i+1)
    }
  }
}
