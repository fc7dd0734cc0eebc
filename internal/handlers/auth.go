package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/excollo/aipersona-backend/internal/apperr"
  "github.com/excollo/aipersona-backend/internal/services"
  "github.com/excollo/aipersona-backend/internal/types"
)

type AuthHandler struct {
  authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
  return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
  var req struct {
    Name     string `json:"name"`
    Email    string `json:"email"`
    Password string `json:"password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
    return
  }
  user := types.User{
    Name:     req.Name,
    Email:    req.Email,
    Password: req.Password,
  }
  if err := ah.authService.Register(c.Request.Context(), &user); err != nil {
    switch apperr.KindOf(err) {
    case apperr.KindValidation:
      c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
    case apperr.KindConflict:
      c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    default:
      c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
    }
    return
  }
  c.JSON(http.StatusCreated, gin.H{"message": "Registered successfully."})
}

func (ah *AuthHandler) Login(c *gin.Context) {
  var req struct {
    Email    string `json:"email"`
    Password string `json:"password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  token, user, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
  if err != nil {
    switch apperr.KindOf(err) {
    case apperr.KindValidation, apperr.KindAuth:
      c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    default:
      c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
    }
    return
  }
  c.JSON(http.StatusOK, gin.H{
    "token": token,
    "user": gin.H{
      "id":    user.ID,
      "name":  user.Name,
      "email": user.Email,
    },
  })
}

func (ah *AuthHandler) ForgotPassword(c *gin.Context) {
  var req struct {
    Email string `json:"email"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
    return
  }
  if err := ah.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
    switch apperr.KindOf(err) {
    case apperr.KindValidation:
      c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
    default:
      c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
    }
    return
  }
  c.JSON(http.StatusOK, gin.H{"message": "If the email exists, a reset code has been sent."})
}

func (ah *AuthHandler) ResetPassword(c *gin.Context) {
  var req struct {
    Email       string `json:"email"`
    Code        string `json:"code"`
    NewPassword string `json:"new_password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  if err := ah.authService.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
    switch apperr.KindOf(err) {
    case apperr.KindValidation, apperr.KindAuth:
      c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    default:
      c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
    }
    return
  }
  c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully."})
}
