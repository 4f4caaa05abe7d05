package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/smartlocker-backend/internal/logger"
	"github.com/yungbote/smartlocker-backend/internal/types"
)

type PackageRepo interface {
	Create(ctx context.Context, tx *gorm.DB, pkg *types.Package) (*types.Package, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Package, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Package, error)
	GetByTrackingCode(ctx context.Context, tx *gorm.DB, trackingCode string) (*types.Package, error)
	ExistsByTrackingCode(ctx context.Context, tx *gorm.DB, trackingCode string) (bool, error)
	ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	Save(ctx context.Context, tx *gorm.DB, pkg *types.Package) (*types.Package, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type packageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPackageRepo(db *gorm.DB, baseLog *logger.Logger) PackageRepo {
	return &packageRepo{db: db, log: baseLog.With("repo", "PackageRepo")}
}

func (r *packageRepo) Create(ctx context.Context, tx *gorm.DB, pkg *types.Package) (*types.Package, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(pkg).Error; err != nil {
		return nil, err
	}
	return pkg, nil
}

func (r *packageRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Package, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Package
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

func (r *packageRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Package, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Package
	if err := transaction.WithContext(ctx).
		Order("received_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *packageRepo) GetByTrackingCode(ctx context.Context, tx *gorm.DB, trackingCode string) (*types.Package, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Package
	err := transaction.WithContext(ctx).
		Where("tracking_code = ?", trackingCode).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *packageRepo) ExistsByTrackingCode(ctx context.Context, tx *gorm.DB, trackingCode string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Package{}).
		Where("tracking_code = ?", trackingCode).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *packageRepo) ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Package{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *packageRepo) Save(ctx context.Context, tx *gorm.DB, pkg *types.Package) (*types.Package, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Save(pkg).Error; err != nil {
		return nil, err
	}
	return pkg, nil
}

func (r *packageRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Package{}).Error; err != nil {
		return err
	}
	return nil
}
