package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/smartlocker-backend/internal/logger"
	"github.com/yungbote/smartlocker-backend/internal/types"
)

type CompartmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, compartment *types.Compartment) (*types.Compartment, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Compartment, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Compartment, error)
	GetByLockerID(ctx context.Context, tx *gorm.DB, lockerID uuid.UUID) ([]*types.Compartment, error)
	ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	Save(ctx context.Context, tx *gorm.DB, compartment *types.Compartment) (*types.Compartment, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type compartmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCompartmentRepo(db *gorm.DB, baseLog *logger.Logger) CompartmentRepo {
	return &compartmentRepo{db: db, log: baseLog.With("repo", "CompartmentRepo")}
}

func (r *compartmentRepo) Create(ctx context.Context, tx *gorm.DB, compartment *types.Compartment) (*types.Compartment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(compartment).Error; err != nil {
		return nil, err
	}
	return compartment, nil
}

func (r *compartmentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Compartment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Compartment
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

func (r *compartmentRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Compartment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Compartment
	if err := transaction.WithContext(ctx).
		Order("number ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *compartmentRepo) GetByLockerID(ctx context.Context, tx *gorm.DB, lockerID uuid.UUID) ([]*types.Compartment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Compartment
	if lockerID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("locker_id = ?", lockerID).
		Order("number ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *compartmentRepo) ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Compartment{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *compartmentRepo) Save(ctx context.Context, tx *gorm.DB, compartment *types.Compartment) (*types.Compartment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Save(compartment).Error; err != nil {
		return nil, err
	}
	return compartment, nil
}

func (r *compartmentRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Compartment{}).Error; err != nil {
		return err
	}
	return nil
}
