package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/excollo/aipersona-backend/internal/logger"
  "github.com/excollo/aipersona-backend/internal/types"
)

type OneTimeCodeRepo interface {
  // CREATE
  Create(ctx context.Context, tx *gorm.DB, codes []*types.OneTimeCode) ([]*types.OneTimeCode, error)

  // READ
  GetByCodes(ctx context.Context, tx *gorm.DB, codes []string) ([]*types.OneTimeCode, error)

  // PARTIAL UPDATE
  MarkUsed(ctx context.Context, tx *gorm.DB, codeID uuid.UUID) error

  // FULL (HARD) DELETE
  FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error
}

type oneTimeCodeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewOneTimeCodeRepo(db *gorm.DB, baseLog *logger.Logger) OneTimeCodeRepo {
  return &oneTimeCodeRepo{db: db, log: baseLog.With("repo", "OneTimeCodeRepo")}
}

func (ocr *oneTimeCodeRepo) Create(ctx context.Context, tx *gorm.DB, codes []*types.OneTimeCode) ([]*types.OneTimeCode, error) {
  transaction := tx
  if transaction == nil {
    transaction = ocr.db
  }
  if len(codes) == 0 {
    return codes, nil
  }
  for _, code := range codes {
    if code.ID == uuid.Nil {
      code.ID = uuid.New()
    }
  }
  if err := transaction.WithContext(ctx).Create(&codes).Error; err != nil {
    ocr.log.Error("failed to create one time codes", "error", err)
    return nil, err
  }
  return codes, nil
}

func (ocr *oneTimeCodeRepo) GetByCodes(ctx context.Context, tx *gorm.DB, codes []string) ([]*types.OneTimeCode, error) {
  transaction := tx
  if transaction == nil {
    transaction = ocr.db
  }
  var results []*types.OneTimeCode
  if len(codes) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("code IN ?", codes).
    Find(&results).Error; err != nil {
    ocr.log.Error("failed to get one time codes", "error", err)
    return nil, err
  }
  return results, nil
}

func (ocr *oneTimeCodeRepo) MarkUsed(ctx context.Context, tx *gorm.DB, codeID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = ocr.db
  }
  if err := transaction.WithContext(ctx).
    Model(&types.OneTimeCode{}).
    Where("id = ?", codeID).
    Update("used", true).Error; err != nil {
    ocr.log.Error("failed to mark one time code used", "error", err)
    return err
  }
  return nil
}

func (ocr *oneTimeCodeRepo) FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = ocr.db
  }
  if len(userIDs) == 0 {
    return nil
  }
  if err := transaction.WithContext(ctx).
    Unscoped().
    Where("user_id IN ?", userIDs).
    Delete(&types.OneTimeCode{}).Error; err != nil {
    ocr.log.Error("failed to delete one time codes by user ids", "error", err)
    return err
  }
  return nil
}
