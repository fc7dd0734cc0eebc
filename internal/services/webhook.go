package services

import (
  "bytes"
  "context"
  "encoding/json"
  "fmt"
  "io"
  "math/rand"
  "net/http"
  "strconv"
  "strings"
  "time"

  "github.com/excollo/aipersona-backend/internal/apperr"
  "github.com/excollo/aipersona-backend/internal/logger"
  "github.com/excollo/aipersona-backend/internal/requestdata"
)

const (
  // notRegisteredMarker is how the workflow host signals an inactive
  // workflow inside a 404 body.
  notRegisteredMarker = "not registered"

  workflowInactiveReply = "The AI workflow is not currently active. Please activate the workflow and try again."

  defaultWebhookReply = "I've processed your payment query."

  technicalDifficultiesReply = "I'm experiencing some technical difficulties accessing the AI systems. Please try again in a moment, or contact support if the issue persists."

  defaultLocalReply = "This is a sample response from your AI Persona."

  defaultLocalReplyDelay = 800 * time.Millisecond
)

// WebhookConfig is injected at construction; the endpoint URL and the
// persona allow-list never live in file-level constants.
type WebhookConfig struct {
  URL               string
  AllowedPersonaIDs []string
  LocalReply        string
  LocalReplyDelay   time.Duration
}

type WebhookService interface {
  // Send resolves to a display string no matter what went wrong on the
  // wire; the chat transcript has no separate error channel.
  Send(ctx context.Context, message, personaID, personaName, sessionID string) (reply string, usedSessionID string)
  IsWebhookPersona(personaID string) bool
}

type webhookService struct {
  log    *logger.Logger
  client *http.Client
  cfg    WebhookConfig
}

func NewWebhookService(log *logger.Logger, client *http.Client, cfg WebhookConfig) (WebhookService, error) {
  serviceLog := log.With("service", "WebhookService")
  if cfg.URL == "" {
    return nil, fmt.Errorf("missing webhook URL")
  }
  if client == nil {
    client = &http.Client{}
  }
  if cfg.LocalReply == "" {
    cfg.LocalReply = defaultLocalReply
  }
  if cfg.LocalReplyDelay == 0 {
    cfg.LocalReplyDelay = defaultLocalReplyDelay
  }
  return &webhookService{log: serviceLog, client: client, cfg: cfg}, nil
}

func (ws *webhookService) IsWebhookPersona(personaID string) bool {
  for _, id := range ws.cfg.AllowedPersonaIDs {
    if id == personaID {
      return true
    }
  }
  return false
}

func (ws *webhookService) Send(ctx context.Context, message, personaID, personaName, sessionID string) (string, string) {
  if sessionID == "" {
    sessionID = newClientSessionID()
  }
  if !ws.IsWebhookPersona(personaID) {
    // Canned local reply after a short typing delay; no network call.
    select {
    case <-time.After(ws.cfg.LocalReplyDelay):
    case <-ctx.Done():
    }
    return ws.cfg.LocalReply, sessionID
  }
  reply, err := ws.forward(ctx, message, personaID, personaName, sessionID)
  if err != nil {
    ws.log.Warn("webhook call failed, returning fallback reply", "error", err, "personaID", personaID)
    return technicalDifficultiesReply, sessionID
  }
  return reply, sessionID
}

type webhookPayload struct {
  Message     string `json:"message"`
  PersonaID   string `json:"persona_id"`
  PersonaName string `json:"persona_name"`
  UserID      string `json:"user_id"`
  SessionID   string `json:"session_id"`
  Timestamp   string `json:"timestamp"`
}

// forward issues exactly one POST. No retry, no backoff.
func (ws *webhookService) forward(ctx context.Context, message, personaID, personaName, sessionID string) (string, error) {
  userID := "current_user"
  if rd := requestdata.GetRequestData(ctx); rd != nil {
    userID = rd.UserID.String()
  }
  payload := webhookPayload{
    Message:     message,
    PersonaID:   personaID,
    PersonaName: personaName,
    UserID:      userID,
    SessionID:   sessionID,
    Timestamp:   time.Now().UTC().Format(time.RFC3339),
  }
  body, err := json.Marshal(payload)
  if err != nil {
    return "", apperr.Webhook("failed to encode webhook payload", err)
  }
  req, err := http.NewRequestWithContext(ctx, http.MethodPost, ws.cfg.URL, bytes.NewReader(body))
  if err != nil {
    return "", apperr.Webhook("failed to build webhook request", err)
  }
  req.Header.Set("Content-Type", "application/json")
  req.Header.Set("Accept", "application/json")

  resp, err := ws.client.Do(req)
  if err != nil {
    return "", apperr.Webhook("webhook request failed", err)
  }
  defer resp.Body.Close()

  respBody, err := io.ReadAll(resp.Body)
  if err != nil {
    return "", apperr.Webhook("failed to read webhook response body", err)
  }
  respText := string(respBody)

  if resp.StatusCode < 200 || resp.StatusCode > 299 {
    if resp.StatusCode == http.StatusNotFound && strings.Contains(respText, notRegisteredMarker) {
      return workflowInactiveReply, nil
    }
    return "", apperr.Webhook(fmt.Sprintf("webhook request failed: %d - %s", resp.StatusCode, respText), nil)
  }

  return extractReply(respText), nil
}

// extractReply parses the body defensively: the provider does not fix a
// response shape. Priority: response, output, message, raw text, fallback.
func extractReply(respText string) string {
  var data map[string]interface{}
  if err := json.Unmarshal([]byte(respText), &data); err != nil {
    if respText != "" {
      return cleanReply(respText)
    }
    return defaultWebhookReply
  }
  for _, field := range []string{"response", "output", "message"} {
    if v, ok := data[field].(string); ok && v != "" {
      return cleanReply(v)
    }
  }
  if respText != "" {
    return cleanReply(respText)
  }
  return defaultWebhookReply
}

// cleanReply strips one layer of surrounding quotes.
func cleanReply(s string) string {
  if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
    s = s[1 : len(s)-1]
  }
  return strings.TrimSpace(s)
}

const sessionIDCharset = "0123456789abcdefghijklmnopqrstuvwxyz"

// newClientSessionID mints ids in the same shape clients persist locally:
// session_<unix-ms>_<13 base36 chars>.
func newClientSessionID() string {
  suffix := make([]byte, 13)
  for i := range suffix {
    suffix[i] = sessionIDCharset[rand.Intn(len(sessionIDCharset))]
  }
  return "session_" + strconv.FormatInt(time.Now().UnixMilli(), 10) + "_" + string(suffix)
}
