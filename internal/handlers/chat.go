package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/excollo/aipersona-backend/internal/apperr"
  "github.com/excollo/aipersona-backend/internal/requestdata"
  "github.com/excollo/aipersona-backend/internal/services"
)

type ChatHandler struct {
  chatService    services.ChatService
  webhookService services.WebhookService
}

func NewChatHandler(chatService services.ChatService, webhookService services.WebhookService) *ChatHandler {
  return &ChatHandler{chatService: chatService, webhookService: webhookService}
}

// resolveUserID prefers an explicit user field (the original API carried
// one) and falls back to the authenticated identity.
func resolveUserID(c *gin.Context, explicit string) uuid.UUID {
  if explicit != "" {
    if id, err := uuid.Parse(explicit); err == nil {
      return id
    }
    return uuid.Nil
  }
  if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
    return rd.UserID
  }
  return uuid.Nil
}

func (ch *ChatHandler) SaveMessage(c *gin.Context) {
  var req struct {
    User        string `json:"user"`
    Persona     string `json:"persona"`
    SessionID   string `json:"session_id"`
    UserMessage string `json:"user_message"`
    AIResponse  string `json:"ai_response"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields: user, persona, session_id, user_message, ai_response."})
    return
  }
  userID := resolveUserID(c, req.User)
  chat, err := ch.chatService.SaveExchange(c.Request.Context(), userID, req.Persona, req.SessionID, req.UserMessage, req.AIResponse)
  if err != nil {
    switch apperr.KindOf(err) {
    case apperr.KindValidation:
      c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
    default:
      c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error saving chat message", "error": err.Error()})
    }
    return
  }
  c.JSON(http.StatusCreated, gin.H{"success": true, "chat": chat})
}

func (ch *ChatHandler) GetMessages(c *gin.Context) {
  userID := resolveUserID(c, c.Query("user"))
  persona := c.Query("persona")
  sessionID := c.Query("session_id")

  chats, err := ch.chatService.GetMessages(c.Request.Context(), userID, persona, sessionID)
  if err != nil {
    switch apperr.KindOf(err) {
    case apperr.KindValidation:
      c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
    default:
      c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching chat messages", "error": err.Error()})
    }
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true, "chats": chats})
}

func (ch *ChatHandler) GetSessions(c *gin.Context) {
  userID := resolveUserID(c, c.Query("user"))
  persona := c.Query("persona")

  sessions, err := ch.chatService.GetSessionSummaries(c.Request.Context(), userID, persona)
  if err != nil {
    switch apperr.KindOf(err) {
    case apperr.KindValidation:
      c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
    default:
      c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching chat sessions", "error": err.Error()})
    }
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true, "sessions": sessions})
}

// SendWebhook forwards one user message to the AI endpoint and returns the
// normalized reply. Transport failures arrive as reply text, never as an
// HTTP error, so the transcript stays consistent.
func (ch *ChatHandler) SendWebhook(c *gin.Context) {
  var req struct {
    Message     string `json:"message"`
    PersonaID   string `json:"persona_id"`
    PersonaName string `json:"persona_name"`
    SessionID   string `json:"session_id"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
    return
  }
  if req.Message == "" || req.PersonaID == "" {
    c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields: message, persona_id."})
    return
  }
  reply, sessionID := ch.webhookService.Send(c.Request.Context(), req.Message, req.PersonaID, req.PersonaName, req.SessionID)
  c.JSON(http.StatusOK, gin.H{"success": true, "reply": reply, "session_id": sessionID})
}
