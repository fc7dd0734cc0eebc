package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/excollo/aipersona-backend/internal/logger"
  "github.com/excollo/aipersona-backend/internal/types"
)

type TraitRepo interface {
  // REPLACE (the import wipes and reloads the whole table)
  ReplaceAll(ctx context.Context, tx *gorm.DB, traits []*types.Trait) ([]*types.Trait, error)

  // READ
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Trait, error)
  GetByCategory(ctx context.Context, tx *gorm.DB, category string) ([]*types.Trait, error)
}

type traitRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewTraitRepo(db *gorm.DB, baseLog *logger.Logger) TraitRepo {
  return &traitRepo{db: db, log: baseLog.With("repo", "TraitRepo")}
}

func (tr *traitRepo) ReplaceAll(ctx context.Context, tx *gorm.DB, traits []*types.Trait) ([]*types.Trait, error) {
  run := func(transaction *gorm.DB) error {
    if err := transaction.WithContext(ctx).
      Session(&gorm.Session{AllowGlobalUpdate: true}).
      Unscoped().
      Delete(&types.Trait{}).Error; err != nil {
      return err
    }
    if len(traits) == 0 {
      return nil
    }
    for _, trait := range traits {
      if trait.ID == uuid.Nil {
        trait.ID = uuid.New()
      }
    }
    return transaction.WithContext(ctx).Create(&traits).Error
  }
  var err error
  if tx != nil {
    err = run(tx)
  } else {
    err = tr.db.WithContext(ctx).Transaction(run)
  }
  if err != nil {
    tr.log.Error("failed to replace traits", "error", err)
    return nil, err
  }
  return traits, nil
}

func (tr *traitRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Trait, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  var traits []*types.Trait
  if err := transaction.WithContext(ctx).
    Order("created_at ASC").
    Find(&traits).Error; err != nil {
    tr.log.Error("failed to get all traits", "error", err)
    return nil, err
  }
  return traits, nil
}

// GetByCategory matches loosely by name; category in the flat form is free
// text typed by whoever wrote the trait file.
func (tr *traitRepo) GetByCategory(ctx context.Context, tx *gorm.DB, category string) ([]*types.Trait, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  var traits []*types.Trait
  if err := transaction.WithContext(ctx).
    Where("LOWER(category) LIKE LOWER(?)", "%"+category+"%").
    Order("created_at ASC").
    Find(&traits).Error; err != nil {
    tr.log.Error("failed to get traits by category", "error", err)
    return nil, err
  }
  return traits, nil
}
