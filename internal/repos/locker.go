package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/smartlocker-backend/internal/logger"
	"github.com/yungbote/smartlocker-backend/internal/types"
)

type LockerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, locker *types.Locker) (*types.Locker, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Locker, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Locker, error)
	GetByNumber(ctx context.Context, tx *gorm.DB, number string) (*types.Locker, error)
	ExistsByNumber(ctx context.Context, tx *gorm.DB, number string) (bool, error)
	ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	GetByStatus(ctx context.Context, tx *gorm.DB, status types.LockerStatus) ([]*types.Locker, error)
	GetByLocation(ctx context.Context, tx *gorm.DB, location string) ([]*types.Locker, error)
	GetByStatusAndLocation(ctx context.Context, tx *gorm.DB, status types.LockerStatus, location string) ([]*types.Locker, error)
	CountByStatus(ctx context.Context, tx *gorm.DB, status types.LockerStatus) (int64, error)
	Save(ctx context.Context, tx *gorm.DB, locker *types.Locker) (*types.Locker, error)
	UpdateStatusFrom(ctx context.Context, tx *gorm.DB, id uuid.UUID, from, to types.LockerStatus) (bool, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type lockerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLockerRepo(db *gorm.DB, baseLog *logger.Logger) LockerRepo {
	return &lockerRepo{db: db, log: baseLog.With("repo", "LockerRepo")}
}

func (r *lockerRepo) Create(ctx context.Context, tx *gorm.DB, locker *types.Locker) (*types.Locker, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(locker).Error; err != nil {
		return nil, err
	}
	return locker, nil
}

func (r *lockerRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Locker, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Locker
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

func (r *lockerRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Locker, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Locker
	if err := transaction.WithContext(ctx).
		Order("number ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *lockerRepo) GetByNumber(ctx context.Context, tx *gorm.DB, number string) (*types.Locker, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Locker
	err := transaction.WithContext(ctx).
		Where("number = ?", number).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *lockerRepo) ExistsByNumber(ctx context.Context, tx *gorm.DB, number string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Locker{}).
		Where("number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *lockerRepo) ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Locker{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *lockerRepo) GetByStatus(ctx context.Context, tx *gorm.DB, status types.LockerStatus) ([]*types.Locker, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Locker
	if err := transaction.WithContext(ctx).
		Where("status = ?", status).
		Order("number ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *lockerRepo) GetByLocation(ctx context.Context, tx *gorm.DB, location string) ([]*types.Locker, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Locker
	if err := transaction.WithContext(ctx).
		Where("location = ?", location).
		Order("number ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *lockerRepo) GetByStatusAndLocation(ctx context.Context, tx *gorm.DB, status types.LockerStatus, location string) ([]*types.Locker, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Locker
	if err := transaction.WithContext(ctx).
		Where("status = ? AND location = ?", status, location).
		Order("number ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *lockerRepo) CountByStatus(ctx context.Context, tx *gorm.DB, status types.LockerStatus) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Locker{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *lockerRepo) Save(ctx context.Context, tx *gorm.DB, locker *types.Locker) (*types.Locker, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Save(locker).Error; err != nil {
		return nil, err
	}
	return locker, nil
}

// UpdateStatusFrom is a compare-and-set: the row is updated only if it still
// holds the expected current status, so two concurrent transitions on the
// same locker cannot both succeed. Returns false when the guard missed.
func (r *lockerRepo) UpdateStatusFrom(ctx context.Context, tx *gorm.DB, id uuid.UUID, from, to types.LockerStatus) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Locker{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *lockerRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Locker{}).Error; err != nil {
		return err
	}
	return nil
}
