package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/smartlocker-backend/internal/apperr"
	"github.com/yungbote/smartlocker-backend/internal/logger"
	"github.com/yungbote/smartlocker-backend/internal/repos"
	"github.com/yungbote/smartlocker-backend/internal/types"
)

// CompartmentService owns the compartment aggregate. Compartments are
// single-package slots: occupancy flips directly between AVAILABLE and
// OCCUPIED with no transition-table restriction, and removal carries no
// occupancy guard at this layer.
type CompartmentService interface {
	Create(ctx context.Context, compartment *types.Compartment) (*types.Compartment, error)
	SetOccupied(ctx context.Context, id uuid.UUID, occupied bool) (*types.Compartment, error)
	Remove(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*types.Compartment, error)
	List(ctx context.Context) ([]*types.Compartment, error)
	ListByLocker(ctx context.Context, lockerID uuid.UUID) ([]*types.Compartment, error)
}

type compartmentService struct {
	db      *gorm.DB
	log     *logger.Logger
	repo    repos.CompartmentRepo
	lockers repos.LockerRepo
}

func NewCompartmentService(db *gorm.DB, baseLog *logger.Logger, repo repos.CompartmentRepo, lockers repos.LockerRepo) CompartmentService {
	return &compartmentService{
		db:      db,
		log:     baseLog.With("service", "CompartmentService"),
		repo:    repo,
		lockers: lockers,
	}
}

func (s *compartmentService) Create(ctx context.Context, compartment *types.Compartment) (*types.Compartment, error) {
	if compartment == nil {
		return nil, apperr.InvalidArgument("compartment cannot be nil")
	}
	if compartment.Number == "" {
		return nil, apperr.InvalidArgument("compartment number cannot be empty")
	}
	if compartment.Size <= 0 {
		return nil, apperr.InvalidArgument("compartment size must be positive")
	}
	if compartment.LockerID == uuid.Nil {
		return nil, apperr.InvalidArgument("compartment locker cannot be nil")
	}

	exists, err := s.lockers.ExistsByID(ctx, nil, compartment.LockerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("locker not found with id: %s", compartment.LockerID)
	}

	if compartment.Status == "" {
		compartment.Status = types.LockerStatusAvailable
	}
	if !compartment.Status.Valid() {
		return nil, apperr.InvalidArgument("unknown compartment status: %s", compartment.Status)
	}

	compartment.ID = uuid.New()
	s.log.Info("Creating compartment", "number", compartment.Number, "locker_id", compartment.LockerID)
	return s.repo.Create(ctx, nil, compartment)
}

// SetOccupied maps true to OCCUPIED and false to AVAILABLE directly.
func (s *compartmentService) SetOccupied(ctx context.Context, id uuid.UUID, occupied bool) (*types.Compartment, error) {
	compartment, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	if occupied {
		compartment.Status = types.LockerStatusOccupied
	} else {
		compartment.Status = types.LockerStatusAvailable
		compartment.CurrentPackageID = nil
	}

	s.log.Info("Updating compartment occupancy", "id", id, "occupied", occupied)
	return s.repo.Save(ctx, nil, compartment)
}

func (s *compartmentService) Remove(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return apperr.InvalidArgument("compartment id cannot be nil")
	}
	exists, err := s.repo.ExistsByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("compartment not found with id: %s", id)
	}

	s.log.Info("Removing compartment", "id", id)
	return s.repo.DeleteByID(ctx, nil, id)
}

func (s *compartmentService) GetByID(ctx context.Context, id uuid.UUID) (*types.Compartment, error) {
	return s.getExisting(ctx, id)
}

func (s *compartmentService) List(ctx context.Context) ([]*types.Compartment, error) {
	s.log.Debug("Listing all compartments")
	return s.repo.GetAll(ctx, nil)
}

func (s *compartmentService) ListByLocker(ctx context.Context, lockerID uuid.UUID) ([]*types.Compartment, error) {
	if lockerID == uuid.Nil {
		return nil, apperr.InvalidArgument("locker id cannot be nil")
	}
	return s.repo.GetByLockerID(ctx, nil, lockerID)
}

func (s *compartmentService) getExisting(ctx context.Context, id uuid.UUID) (*types.Compartment, error) {
	if id == uuid.Nil {
		return nil, apperr.InvalidArgument("compartment id cannot be nil")
	}
	compartment, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if compartment == nil {
		return nil, apperr.NotFound("compartment not found with id: %s", id)
	}
	return compartment, nil
}
