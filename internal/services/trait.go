package services

import (
  "context"
  "errors"

  "gorm.io/gorm"

  "github.com/excollo/aipersona-backend/internal/apperr"
  "github.com/excollo/aipersona-backend/internal/logger"
  "github.com/excollo/aipersona-backend/internal/repos"
  "github.com/excollo/aipersona-backend/internal/types"
)

type TraitService interface {
  GetPersonaTraits(ctx context.Context, personaID string) (*types.PersonaTrait, error)
  ListPersonaTraits(ctx context.Context) ([]*types.PersonaTrait, error)
  UpsertPersonaTraits(ctx context.Context, trait *types.PersonaTrait) (*types.PersonaTrait, error)

  ListLegacyTraits(ctx context.Context) ([]*types.Trait, error)
  ReplaceLegacyTraits(ctx context.Context, traits []*types.Trait) ([]*types.Trait, error)
}

type traitService struct {
  db               *gorm.DB
  log              *logger.Logger
  personaTraitRepo repos.PersonaTraitRepo
  traitRepo        repos.TraitRepo
}

func NewTraitService(db *gorm.DB, log *logger.Logger, personaTraitRepo repos.PersonaTraitRepo, traitRepo repos.TraitRepo) TraitService {
  return &traitService{
    db:               db,
    log:              log.With("service", "TraitService"),
    personaTraitRepo: personaTraitRepo,
    traitRepo:        traitRepo,
  }
}

func (ts *traitService) GetPersonaTraits(ctx context.Context, personaID string) (*types.PersonaTrait, error) {
  if personaID == "" {
    return nil, apperr.Validation("a persona id is required.")
  }
  trait, err := ts.personaTraitRepo.GetByPersonaID(ctx, nil, personaID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apperr.NotFound("Persona traits not found")
    }
    return nil, apperr.Store("Failed to fetch persona traits", err)
  }
  return trait, nil
}

func (ts *traitService) ListPersonaTraits(ctx context.Context) ([]*types.PersonaTrait, error) {
  traits, err := ts.personaTraitRepo.GetAll(ctx, nil)
  if err != nil {
    return nil, apperr.Store("Failed to fetch persona traits", err)
  }
  if traits == nil {
    traits = []*types.PersonaTrait{}
  }
  return traits, nil
}

// UpsertPersonaTraits replaces the whole document; there are no partial
// field updates on persona traits.
func (ts *traitService) UpsertPersonaTraits(ctx context.Context, trait *types.PersonaTrait) (*types.PersonaTrait, error) {
  if trait == nil || trait.PersonaID == "" {
    return nil, apperr.Validation("Missing required fields: personaId or traits")
  }
  stored, err := ts.personaTraitRepo.Upsert(ctx, nil, trait)
  if err != nil {
    return nil, apperr.Store("Error storing persona data", err)
  }
  return stored, nil
}

func (ts *traitService) ListLegacyTraits(ctx context.Context) ([]*types.Trait, error) {
  traits, err := ts.traitRepo.GetAll(ctx, nil)
  if err != nil {
    return nil, apperr.Store("Error fetching traits", err)
  }
  if traits == nil {
    traits = []*types.Trait{}
  }
  return traits, nil
}

func (ts *traitService) ReplaceLegacyTraits(ctx context.Context, traits []*types.Trait) ([]*types.Trait, error) {
  stored, err := ts.traitRepo.ReplaceAll(ctx, nil, traits)
  if err != nil {
    return nil, apperr.Store("Error importing traits", err)
  }
  return stored, nil
}
