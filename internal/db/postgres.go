package db

import (
  "fmt"
  "time"

  "gorm.io/driver/postgres"
  "gorm.io/gorm"

  "github.com/excollo/aipersona-backend/internal/logger"
  "github.com/excollo/aipersona-backend/internal/types"
  "github.com/excollo/aipersona-backend/internal/utils"
)

// PostgresService owns the single long-lived, pooled connection. Handlers
// receive scoped handles from it; nothing reconnects per request.
type PostgresService struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  //1) Get and Set Environment Variables
  log.Info("Attempting to load environment variables for Postgres now...")
  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "aipersona", log)
  maxOpenConns := utils.GetEnvAsInt("POSTGRES_MAX_OPEN_CONNS", 25, log)
  maxIdleConns := utils.GetEnvAsInt("POSTGRES_MAX_IDLE_CONNS", 5, log)

  //2) Construct DSN From Environment Variables
  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  //3) Attempt DB Connection
  log.Info("Attempting to connect to Postgres DB now...")
  db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    serviceLog.Error("Failed to connect to Postgres DB", "error", err)
    return nil, fmt.Errorf("failed to connect to Postgres DB: %w", err)
  }

  //4) Pool Settings
  sqlDB, err := db.DB()
  if err != nil {
    serviceLog.Error("Failed to access underlying sql.DB", "error", err)
    return nil, fmt.Errorf("failed to access underlying sql.DB: %w", err)
  }
  sqlDB.SetMaxOpenConns(maxOpenConns)
  sqlDB.SetMaxIdleConns(maxIdleConns)
  sqlDB.SetConnMaxLifetime(time.Hour)

  //5) Enable uuid-ossp Extension
  if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
    serviceLog.Error("Failed to enable uuid-ossp extension :(", "error", err)
    return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
  }
  serviceLog.Info("Successfully Connected to Postgres DB :)")

  return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Starting AutoMigrateAll for all GORM models now...")

  err := s.db.AutoMigrate(
    &types.User{},
    &types.OneTimeCode{},
    &types.ChatMessage{},
    &types.PersonaTrait{},
    &types.Trait{},
  )
  if err != nil {
    s.log.Error("AutoMigrateAll failed for Base Tables :(", "error", err)
    return err
  }
  s.log.Info("AutoMigrateAll completed successfully for Base Tables :)")

  s.log.Info("Configuring Foreign Key Relationships for Base Tables now...")
  // -- ChatMessage.user_id => user.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "chat_message"
      ADD CONSTRAINT "fk_chat_message_user_id"
      FOREIGN KEY ("user_id")
      REFERENCES "user"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_chat_message_user_id: %w", err)
  }
  // -- OneTimeCode.user_id => user.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "one_time_code"
      ADD CONSTRAINT "fk_one_time_code_user_id"
      FOREIGN KEY ("user_id")
      REFERENCES "user"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_one_time_code_user_id: %w", err)
  }
  s.log.Info("Successfully Added Foreign Key Relationships to Base Tables :)")

  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
