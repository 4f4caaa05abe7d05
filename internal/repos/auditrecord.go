package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/smartlocker-backend/internal/logger"
	"github.com/yungbote/smartlocker-backend/internal/types"
)

// AuditRecordRepo has no Save: records are append-only.
type AuditRecordRepo interface {
	Create(ctx context.Context, tx *gorm.DB, record *types.AuditRecord) (*types.AuditRecord, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AuditRecord, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.AuditRecord, error)
	ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type auditRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuditRecordRepo(db *gorm.DB, baseLog *logger.Logger) AuditRecordRepo {
	return &auditRecordRepo{db: db, log: baseLog.With("repo", "AuditRecordRepo")}
}

func (r *auditRecordRepo) Create(ctx context.Context, tx *gorm.DB, record *types.AuditRecord) (*types.AuditRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (r *auditRecordRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AuditRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.AuditRecord
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *auditRecordRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.AuditRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.AuditRecord
	if err := transaction.WithContext(ctx).
		Order("timestamp DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *auditRecordRepo) ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.AuditRecord{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *auditRecordRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.AuditRecord{}).Error; err != nil {
		return err
	}
	return nil
}
