package services

import (
  "context"
  "encoding/json"
  "net/http"
  "net/http/httptest"
  "regexp"
  "testing"
  "time"

  "github.com/excollo/aipersona-backend/internal/logger"
)

func newTestWebhookService(t *testing.T, url string) WebhookService {
  t.Helper()
  ws, err := NewWebhookService(logger.NewNop(), nil, WebhookConfig{
    URL:               url,
    AllowedPersonaIDs: []string{"1", "2"},
    LocalReplyDelay:   time.Millisecond,
  })
  if err != nil {
    t.Fatalf("NewWebhookService: %v", err)
  }
  return ws
}

func TestSendForwardsPayload(t *testing.T) {
  var got map[string]interface{}
  server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
      t.Errorf("decode payload: %v", err)
    }
    w.Write([]byte(`{"response":"On it."}`))
  }))
  defer server.Close()

  ws := newTestWebhookService(t, server.URL)
  reply, sessionID := ws.Send(context.Background(), "What changed?", "2", "David Lee", "session_123")
  if reply != "On it." {
    t.Fatalf("reply = %q, want %q", reply, "On it.")
  }
  if sessionID != "session_123" {
    t.Fatalf("session id = %q, want the caller's id back", sessionID)
  }
  for field, want := range map[string]string{
    "message":      "What changed?",
    "persona_id":   "2",
    "persona_name": "David Lee",
    "session_id":   "session_123",
    "user_id":      "current_user",
  } {
    if got[field] != want {
      t.Fatalf("payload %s = %v, want %q", field, got[field], want)
    }
  }
}

func TestSendInactiveWorkflow(t *testing.T) {
  server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    w.WriteHeader(http.StatusNotFound)
    w.Write([]byte(`{"message":"webhook POST is not registered"}`))
  }))
  defer server.Close()

  ws := newTestWebhookService(t, server.URL)
  reply, _ := ws.Send(context.Background(), "hi", "1", "Ethan Carter", "session_1")
  if reply != workflowInactiveReply {
    t.Fatalf("reply = %q, want the workflow-inactive advisory", reply)
  }
}

func TestSendServerErrorFallsBack(t *testing.T) {
  server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    w.WriteHeader(http.StatusInternalServerError)
  }))
  defer server.Close()

  ws := newTestWebhookService(t, server.URL)
  reply, _ := ws.Send(context.Background(), "hi", "1", "Ethan Carter", "session_1")
  if reply != technicalDifficultiesReply {
    t.Fatalf("reply = %q, want the technical-difficulties fallback", reply)
  }
}

func TestSendUnreachableHostFallsBack(t *testing.T) {
  ws := newTestWebhookService(t, "http://127.0.0.1:1")
  reply, _ := ws.Send(context.Background(), "hi", "2", "David Lee", "session_1")
  if reply != technicalDifficultiesReply {
    t.Fatalf("reply = %q, want the technical-difficulties fallback", reply)
  }
}

func TestSendLocalPersona(t *testing.T) {
  // Persona 3 is not on the allow-list; no request may reach the server.
  server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    t.Errorf("unexpected webhook call for local persona")
  }))
  defer server.Close()

  ws := newTestWebhookService(t, server.URL)
  reply, sessionID := ws.Send(context.Background(), "hi", "3", "Emily Carter", "")
  if reply != defaultLocalReply {
    t.Fatalf("reply = %q, want the canned local reply", reply)
  }
  if ok, _ := regexp.MatchString(`^session_\d+_[0-9a-z]{13}$`, sessionID); !ok {
    t.Fatalf("minted session id %q does not match session_<ms>_<13 base36>", sessionID)
  }
}

func TestExtractReplyPriority(t *testing.T) {
  cases := []struct {
    name string
    body string
    want string
  }{
    {"response wins", `{"response":"a","output":"b","message":"c"}`, "a"},
    {"output next", `{"output":"b","message":"c"}`, "b"},
    {"message last", `{"message":"c"}`, "c"},
    {"raw text", `plain text answer`, "plain text answer"},
    {"raw json without known fields", `{"foo":"bar"}`, `{"foo":"bar"}`},
    {"empty body", ``, defaultWebhookReply},
    {"empty known fields", `{"response":"","output":""}`, `{"response":"","output":""}`},
  }
  for _, tc := range cases {
    if got := extractReply(tc.body); got != tc.want {
      t.Fatalf("%s: extractReply(%q) = %q, want %q", tc.name, tc.body, got, tc.want)
    }
  }
}

func TestCleanReplyStripsOneQuoteLayer(t *testing.T) {
  if got := cleanReply(`"hello"`); got != "hello" {
    t.Fatalf("cleanReply = %q, want %q", got, "hello")
  }
  if got := cleanReply(`""hello""`); got != `"hello"` {
    t.Fatalf("cleanReply strips more than one layer: %q", got)
  }
  if got := cleanReply(`  spaced  `); got != "spaced" {
    t.Fatalf("cleanReply = %q, want trimmed", got)
  }
}
