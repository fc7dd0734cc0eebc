package main

import (
  "fmt"
  "net/http"
  "os"
  "strings"
  "time"

  "github.com/joho/godotenv"
  "github.com/redis/go-redis/v9"

  "github.com/excollo/aipersona-backend/internal/db"
  "github.com/excollo/aipersona-backend/internal/handlers"
  "github.com/excollo/aipersona-backend/internal/logger"
  "github.com/excollo/aipersona-backend/internal/middleware"
  "github.com/excollo/aipersona-backend/internal/repos"
  "github.com/excollo/aipersona-backend/internal/server"
  "github.com/excollo/aipersona-backend/internal/services"
  "github.com/excollo/aipersona-backend/internal/types"
  "github.com/excollo/aipersona-backend/internal/utils"
)

func main() {
  // Logger Setup
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Environment Variables
  log.Info("Attempting to load environment variables for Main now...")
  if err := godotenv.Load(); err != nil {
    log.Debug("No .env file found, relying on process environment")
  }
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 86400, log)
  redisAddress := utils.GetEnv("REDIS_ADDRESS", "localhost:6379", log)
  redisPassword := utils.GetEnv("REDIS_PASSWORD", "", log)
  webhookURL := utils.GetEnv("WEBHOOK_URL", "", log)
  webhookPersonaIDs := utils.GetEnv("WEBHOOK_PERSONA_IDS", "1,2", log)
  log.Debug("Environment variables loaded for Main :)",
    "accessTokenTTL", accessTokenTTL,
    "redisAddress", redisAddress,
    "webhookURL", webhookURL,
    "webhookPersonaIDs", webhookPersonaIDs,
  )

  // Postgres Setup
  log.Info("Setting Up Postgres from Main now...")
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("DB init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()
  log.Info("Postgres Setup From Main Successful :)")

  // Repositories Setup
  log.Info("Setting Up Repositories from Main now...")
  userRepo := repos.NewUserRepo(thePG, log)
  oneTimeCodeRepo := repos.NewOneTimeCodeRepo(thePG, log)
  chatMessageRepo := repos.NewChatMessageRepo(thePG, log)
  personaTraitRepo := repos.NewPersonaTraitRepo(thePG, log)
  traitRepo := repos.NewTraitRepo(thePG, log)
  log.Info("Repositories Set Up From Main Successful :)")

  // Redis Setup (rate limiting only; the server runs open when absent)
  log.Info("Setting Up Redis From Main Now :)")
  var redisClient *redis.Client
  if redisAddress != "" {
    redisClient = redis.NewClient(&redis.Options{
      Addr:     redisAddress,
      Password: redisPassword,
    })
  } else {
    log.Warn("REDIS_ADDRESS is empty; rate limiting disabled")
  }

  // Services Setup
  log.Info("Setting up Services from Main now...")
  emailService, err := services.NewEmailService(log)
  if err != nil {
    log.Warn("Could not init EmailService", "error", err)
  }
  authService := services.NewAuthService(thePG, log, userRepo, oneTimeCodeRepo, emailService, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
  chatService := services.NewChatService(thePG, log, chatMessageRepo)
  var webhookService services.WebhookService
  webhookService, err = services.NewWebhookService(log, &http.Client{Timeout: 30 * time.Second}, services.WebhookConfig{
    URL:               webhookURL,
    AllowedPersonaIDs: splitCSV(webhookPersonaIDs),
  })
  if err != nil {
    log.Warn("Could not init WebhookService; all personas will answer locally", "error", err)
    webhookService, _ = services.NewWebhookService(log, nil, services.WebhookConfig{URL: "local-only"})
  }
  personaService := services.NewPersonaService(thePG, log, types.SeedPersonas(), personaTraitRepo, traitRepo)
  traitService := services.NewTraitService(thePG, log, personaTraitRepo, traitRepo)
  log.Info("Services Set Up From Main Successful :)")

  // Handler Setup
  log.Info("Setting Up Handlers from Main now...")
  authHandler := handlers.NewAuthHandler(authService)
  chatHandler := handlers.NewChatHandler(chatService, webhookService)
  personaHandler := handlers.NewPersonaHandler(personaService, traitService)
  log.Info("Handlers Set Up From Main Successful :)")

  // MiddleWare Setup
  log.Info("Setting Up Middleware from Main now...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)
  rateLimiter := middleware.NewRateLimiter(log, redisClient)
  log.Info("Middleware Set Up From Main Successful :)")

  // Router Setup
  log.Info("Setting Up Router from Main now...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:    authHandler,
    ChatHandler:    chatHandler,
    PersonaHandler: personaHandler,
    AuthMiddleware: authMiddleware,
    RateLimiter:    rateLimiter,
  })
  log.Info("Router Set Up From Main Successful :)")

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}

func splitCSV(raw string) []string {
  var out []string
  for _, part := range strings.Split(raw, ",") {
    part = strings.TrimSpace(part)
    if part != "" {
      out = append(out, part)
    }
  }
  return out
}
