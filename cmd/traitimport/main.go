package main

import (
  "context"
  "encoding/json"
  "flag"
  "fmt"
  "os"

  "github.com/joho/godotenv"

  "github.com/excollo/aipersona-backend/internal/db"
  "github.com/excollo/aipersona-backend/internal/logger"
  "github.com/excollo/aipersona-backend/internal/repos"
  "github.com/excollo/aipersona-backend/internal/traitfile"
  "github.com/excollo/aipersona-backend/internal/types"
)

// traitimport loads a flat persona trait text file into the store.
//
//   traitimport -file traits.txt                      replace the legacy flat rows
//   traitimport -file traits.txt -legacy              force the dash format parser
//   traitimport -file traits.txt -persona 3           upsert one persona's document
//   traitimport -export traits.json                   dump the legacy rows as JSON
//   traitimport -export mindset.json -category mind   dump only loosely matching categories
func main() {
  filePath := flag.String("file", "", "path to the trait text file")
  legacy := flag.Bool("legacy", false, "parse the dash format instead of sectioned headings")
  personaID := flag.String("persona", "", "upsert the normalized document for this persona id")
  exportPath := flag.String("export", "", "write the stored legacy traits to this JSON file and exit")
  category := flag.String("category", "", "with -export, keep only traits whose category loosely matches")
  flag.Parse()

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

  if err := godotenv.Load(); err != nil {
    log.Debug("No .env file found, relying on process environment")
  }

  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("DB init failed", "error", err)
    os.Exit(1)
  }
  if err := postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()
  traitRepo := repos.NewTraitRepo(thePG, log)
  personaTraitRepo := repos.NewPersonaTraitRepo(thePG, log)
  ctx := context.Background()

  if *exportPath != "" {
    var traits []*types.Trait
    if *category != "" {
      traits, err = traitRepo.GetByCategory(ctx, nil, *category)
    } else {
      traits, err = traitRepo.GetAll(ctx, nil)
    }
    if err != nil {
      log.Error("Failed to load traits", "error", err)
      os.Exit(1)
    }
    data, err := json.MarshalIndent(traits, "", "  ")
    if err != nil {
      log.Error("Failed to marshal traits", "error", err)
      os.Exit(1)
    }
    if err := os.WriteFile(*exportPath, data, 0o644); err != nil {
      log.Error("Failed to write export file", "error", err)
      os.Exit(1)
    }
    log.Info("Exported traits :)", "count", len(traits), "path", *exportPath)
    return
  }

  if *filePath == "" {
    fmt.Println("usage: traitimport -file <path> [-legacy] [-persona <id>] | -export <path>")
    os.Exit(2)
  }
  raw, err := os.ReadFile(*filePath)
  if err != nil {
    log.Error("Failed to read trait file", "error", err)
    os.Exit(1)
  }

  var sections []traitfile.Section
  if *legacy {
    sections = traitfile.ParseLegacy(string(raw))
  } else {
    sections = traitfile.ParseSections(string(raw))
  }
  if len(sections) == 0 {
    log.Error("No trait sections found in file", "path", *filePath)
    os.Exit(1)
  }
  log.Info("Parsed trait sections", "count", len(sections))

  if err := importSections(ctx, traitRepo, personaTraitRepo, *personaID, sections); err != nil {
    log.Error("Failed to import trait sections", "error", err)
    os.Exit(1)
  }
  if *personaID != "" {
    log.Info("Persona traits upserted :)", "personaId", *personaID)
  } else {
    log.Info("Legacy traits replaced :)", "count", len(sections))
  }
}

// importSections writes parsed sections to the store: the normalized
// per-persona document when a persona id is given, otherwise a wholesale
// replace of the legacy flat rows.
func importSections(ctx context.Context, traitRepo repos.TraitRepo, personaTraitRepo repos.PersonaTraitRepo, personaID string, sections []traitfile.Section) error {
  if personaID != "" {
    _, err := personaTraitRepo.Upsert(ctx, nil, traitfile.ToPersonaTrait(personaID, sections))
    return err
  }
  _, err := traitRepo.ReplaceAll(ctx, nil, traitfile.ToTraits(sections))
  return err
}
