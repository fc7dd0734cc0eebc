package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "github.com/excollo/aipersona-backend/internal/logger"
  "github.com/excollo/aipersona-backend/internal/types"
)

type PersonaTraitRepo interface {
  // UPSERT (wholesale; there are no partial field updates on this table)
  Upsert(ctx context.Context, tx *gorm.DB, trait *types.PersonaTrait) (*types.PersonaTrait, error)

  // READ
  GetByPersonaID(ctx context.Context, tx *gorm.DB, personaID string) (*types.PersonaTrait, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.PersonaTrait, error)
}

type personaTraitRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPersonaTraitRepo(db *gorm.DB, baseLog *logger.Logger) PersonaTraitRepo {
  return &personaTraitRepo{db: db, log: baseLog.With("repo", "PersonaTraitRepo")}
}

func (ptr *personaTraitRepo) Upsert(ctx context.Context, tx *gorm.DB, trait *types.PersonaTrait) (*types.PersonaTrait, error) {
  transaction := tx
  if transaction == nil {
    transaction = ptr.db
  }
  if trait.ID == uuid.Nil {
    trait.ID = uuid.New()
  }
  if trait.Timestamp.IsZero() {
    trait.Timestamp = time.Now().UTC()
  }
  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "persona_id"}},
      DoUpdates: clause.AssignmentColumns([]string{"about", "core_expertise", "communication_style", "traits", "pain_points", "key_responsibilities", "timestamp", "updated_at"}),
    }).
    Create(trait).Error; err != nil {
    ptr.log.Error("failed to upsert persona trait", "error", err)
    return nil, err
  }
  return trait, nil
}

func (ptr *personaTraitRepo) GetByPersonaID(ctx context.Context, tx *gorm.DB, personaID string) (*types.PersonaTrait, error) {
  transaction := tx
  if transaction == nil {
    transaction = ptr.db
  }
  var trait types.PersonaTrait
  if err := transaction.WithContext(ctx).
    Where("persona_id = ?", personaID).
    First(&trait).Error; err != nil {
    return nil, err
  }
  return &trait, nil
}

func (ptr *personaTraitRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.PersonaTrait, error) {
  transaction := tx
  if transaction == nil {
    transaction = ptr.db
  }
  var traits []*types.PersonaTrait
  if err := transaction.WithContext(ctx).
    Order("persona_id ASC").
    Find(&traits).Error; err != nil {
    ptr.log.Error("failed to get all persona traits", "error", err)
    return nil, err
  }
  return traits, nil
}
