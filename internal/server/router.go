package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/excollo/aipersona-backend/internal/handlers"
  "github.com/excollo/aipersona-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler    *handlers.AuthHandler
  ChatHandler    *handlers.ChatHandler
  PersonaHandler *handlers.PersonaHandler
  AuthMiddleware *middleware.AuthMiddleware
  RateLimiter    *middleware.RateLimiter
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  //-----------------------------------------
  // Cors Setup
  //-----------------------------------------
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:3000",
      "http://localhost:5173",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  //-----------------------------------------
  // Health Routes
  //-----------------------------------------
  router.GET("/healthz", handlers.Healthz)

  //-----------------------------------------
  // Public Routes
  //-----------------------------------------
  api := router.Group("/api")

  auth := api.Group("/auth")
  auth.POST("/register", cfg.RateLimiter.Limit("auth", 10), cfg.AuthHandler.Register)
  auth.POST("/login", cfg.RateLimiter.Limit("auth", 10), cfg.AuthHandler.Login)
  auth.POST("/forgot-password", cfg.RateLimiter.Limit("otp", 5), cfg.AuthHandler.ForgotPassword)
  auth.POST("/reset-password", cfg.RateLimiter.Limit("otp", 5), cfg.AuthHandler.ResetPassword)

  personas := api.Group("/personas")
  personas.GET("", cfg.PersonaHandler.ListPersonas)
  personas.GET("/traits", cfg.PersonaHandler.GetAllTraits)
  personas.GET("/traits/:personaId", cfg.PersonaHandler.GetPersonaTraits)
  personas.POST("/store-persona", cfg.PersonaHandler.StorePersona)

  //------------------------------------------
  // Protected Routes
  //------------------------------------------
  // Chat routes MUST be registered before /:id so "chats" is not swallowed
  // by the persona id parameter.
  chats := personas.Group("/chats")
  chats.Use(cfg.AuthMiddleware.RequireAuth())
  chats.POST("", cfg.ChatHandler.SaveMessage)
  chats.GET("", cfg.ChatHandler.GetMessages)
  chats.GET("/sessions", cfg.ChatHandler.GetSessions)

  webhook := personas.Group("/webhook")
  webhook.Use(cfg.AuthMiddleware.RequireAuth())
  webhook.POST("", cfg.ChatHandler.SendWebhook)

  personas.GET("/:id", cfg.PersonaHandler.GetPersona)

  return router
}
