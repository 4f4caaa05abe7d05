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

// allowedTransitions is the locker status transition table. AVAILABLE may
// repeat itself; OCCUPIED and MAINTENANCE may not.
var allowedTransitions = map[types.LockerStatus][]types.LockerStatus{
	types.LockerStatusAvailable:   {types.LockerStatusAvailable, types.LockerStatusOccupied, types.LockerStatusMaintenance},
	types.LockerStatusOccupied:    {types.LockerStatusAvailable, types.LockerStatusMaintenance},
	types.LockerStatusMaintenance: {types.LockerStatusAvailable},
}

func transitionAllowed(from, to types.LockerStatus) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// LockerService owns the locker aggregate and its status state machine.
type LockerService interface {
	Register(ctx context.Context, locker *types.Locker) (*types.Locker, error)
	Transition(ctx context.Context, id uuid.UUID, newStatus types.LockerStatus) (*types.Locker, error)
	UpdateLocation(ctx context.Context, id uuid.UUID, location string) (*types.Locker, error)
	UpdateObservations(ctx context.Context, id uuid.UUID, observations string) (*types.Locker, error)
	AssignPackage(ctx context.Context, id, packageID uuid.UUID) (*types.Locker, error)
	ReleasePackage(ctx context.Context, id uuid.UUID) (*types.Locker, error)
	Remove(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*types.Locker, error)
	GetByNumber(ctx context.Context, number string) (*types.Locker, error)
	List(ctx context.Context) ([]*types.Locker, error)
	ListByStatus(ctx context.Context, status types.LockerStatus) ([]*types.Locker, error)
	ListByLocation(ctx context.Context, location string) ([]*types.Locker, error)
	ListByStatusAndLocation(ctx context.Context, status types.LockerStatus, location string) ([]*types.Locker, error)
	CountByStatus(ctx context.Context, status types.LockerStatus) (int64, error)
}

type lockerService struct {
	db          *gorm.DB
	log         *logger.Logger
	repo        repos.LockerRepo
	interceptor *ActionInterceptor
}

func NewLockerService(db *gorm.DB, baseLog *logger.Logger, repo repos.LockerRepo, interceptor *ActionInterceptor) LockerService {
	return &lockerService{
		db:          db,
		log:         baseLog.With("service", "LockerService"),
		repo:        repo,
		interceptor: interceptor,
	}
}

// Register is the auditable action "locker registered".
func (s *lockerService) Register(ctx context.Context, locker *types.Locker) (*types.Locker, error) {
	return Intercept(ctx, s.interceptor, ActionLockerRegistered, "New locker registered in the system", EntityKindLocker,
		func(ctx context.Context) (*types.Locker, error) {
			return s.register(ctx, locker)
		})
}

func (s *lockerService) register(ctx context.Context, locker *types.Locker) (*types.Locker, error) {
	if locker == nil {
		return nil, apperr.InvalidArgument("locker cannot be nil")
	}
	if locker.Number == "" {
		return nil, apperr.InvalidArgument("locker number cannot be empty")
	}
	if locker.Status == "" {
		return nil, apperr.InvalidArgument("locker status cannot be empty")
	}
	if !locker.Status.Valid() {
		return nil, apperr.InvalidArgument("unknown locker status: %s", locker.Status)
	}
	if locker.Location == "" {
		return nil, apperr.InvalidArgument("locker location cannot be empty")
	}

	exists, err := s.repo.ExistsByNumber(ctx, nil, locker.Number)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("locker already exists with number: %s", locker.Number)
	}

	locker.ID = uuid.New()
	s.log.Info("Registering locker", "number", locker.Number)
	return s.repo.Create(ctx, nil, locker)
}

// Transition applies the status transition table. The repo update is a
// compare-and-set against the status just read, so of two concurrent
// transitions on the same locker at most one succeeds.
func (s *lockerService) Transition(ctx context.Context, id uuid.UUID, newStatus types.LockerStatus) (*types.Locker, error) {
	if id == uuid.Nil {
		return nil, apperr.InvalidArgument("locker id cannot be nil")
	}
	if !newStatus.Valid() {
		return nil, apperr.InvalidArgument("unknown locker status: %s", newStatus)
	}

	locker, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if locker == nil {
		return nil, apperr.NotFound("locker not found with id: %s", id)
	}
	if !transitionAllowed(locker.Status, newStatus) {
		return nil, apperr.IllegalState("locker %s cannot transition from %s to %s", locker.Number, locker.Status, newStatus)
	}

	ok, err := s.repo.UpdateStatusFrom(ctx, nil, id, locker.Status, newStatus)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.IllegalState("locker %s status changed concurrently", locker.Number)
	}

	s.log.Info("Locker status transition", "number", locker.Number, "from", locker.Status, "to", newStatus)
	locker.Status = newStatus
	return locker, nil
}

func (s *lockerService) UpdateLocation(ctx context.Context, id uuid.UUID, location string) (*types.Locker, error) {
	if location == "" {
		return nil, apperr.InvalidArgument("locker location cannot be empty")
	}
	locker, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}
	locker.Location = location
	return s.repo.Save(ctx, nil, locker)
}

func (s *lockerService) UpdateObservations(ctx context.Context, id uuid.UUID, observations string) (*types.Locker, error) {
	locker, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}
	locker.Observations = observations
	return s.repo.Save(ctx, nil, locker)
}

// AssignPackage marks the locker OCCUPIED and points it at the package,
// keeping the OCCUPIED/current-package invariant in one step.
func (s *lockerService) AssignPackage(ctx context.Context, id, packageID uuid.UUID) (*types.Locker, error) {
	if packageID == uuid.Nil {
		return nil, apperr.InvalidArgument("package id cannot be nil")
	}

	var updated *types.Locker
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locker, err := s.repo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if locker == nil {
			return apperr.NotFound("locker not found with id: %s", id)
		}
		ok, err := s.repo.UpdateStatusFrom(ctx, tx, id, types.LockerStatusAvailable, types.LockerStatusOccupied)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.IllegalState("locker %s is not available", locker.Number)
		}
		locker.Status = types.LockerStatusOccupied
		locker.CurrentPackageID = &packageID
		updated, err = s.repo.Save(ctx, tx, locker)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ReleasePackage clears the package pointer and returns the locker to
// AVAILABLE.
func (s *lockerService) ReleasePackage(ctx context.Context, id uuid.UUID) (*types.Locker, error) {
	var updated *types.Locker
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locker, err := s.repo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if locker == nil {
			return apperr.NotFound("locker not found with id: %s", id)
		}
		if locker.Status == types.LockerStatusOccupied {
			ok, err := s.repo.UpdateStatusFrom(ctx, tx, id, types.LockerStatusOccupied, types.LockerStatusAvailable)
			if err != nil {
				return err
			}
			if !ok {
				return apperr.IllegalState("locker %s status changed concurrently", locker.Number)
			}
			locker.Status = types.LockerStatusAvailable
		}
		locker.CurrentPackageID = nil
		updated, err = s.repo.Save(ctx, tx, locker)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove refuses to delete a locker that is OCCUPIED or still holds a
// package reference.
func (s *lockerService) Remove(ctx context.Context, id uuid.UUID) error {
	locker, err := s.getExisting(ctx, id)
	if err != nil {
		return err
	}
	if locker.Status == types.LockerStatusOccupied {
		return apperr.IllegalState("locker %s is occupied and cannot be removed", locker.Number)
	}
	if locker.CurrentPackageID != nil {
		return apperr.IllegalState("locker %s still references a package and cannot be removed", locker.Number)
	}

	s.log.Info("Removing locker", "number", locker.Number)
	return s.repo.DeleteByID(ctx, nil, id)
}

func (s *lockerService) GetByID(ctx context.Context, id uuid.UUID) (*types.Locker, error) {
	return s.getExisting(ctx, id)
}

func (s *lockerService) GetByNumber(ctx context.Context, number string) (*types.Locker, error) {
	if number == "" {
		return nil, apperr.InvalidArgument("locker number cannot be empty")
	}
	locker, err := s.repo.GetByNumber(ctx, nil, number)
	if err != nil {
		return nil, err
	}
	if locker == nil {
		return nil, apperr.NotFound("locker not found with number: %s", number)
	}
	return locker, nil
}

func (s *lockerService) List(ctx context.Context) ([]*types.Locker, error) {
	s.log.Debug("Listing all lockers")
	return s.repo.GetAll(ctx, nil)
}

func (s *lockerService) ListByStatus(ctx context.Context, status types.LockerStatus) ([]*types.Locker, error) {
	if !status.Valid() {
		return nil, apperr.InvalidArgument("unknown locker status: %s", status)
	}
	return s.repo.GetByStatus(ctx, nil, status)
}

func (s *lockerService) ListByLocation(ctx context.Context, location string) ([]*types.Locker, error) {
	if location == "" {
		return nil, apperr.InvalidArgument("locker location cannot be empty")
	}
	return s.repo.GetByLocation(ctx, nil, location)
}

func (s *lockerService) ListByStatusAndLocation(ctx context.Context, status types.LockerStatus, location string) ([]*types.Locker, error) {
	if !status.Valid() {
		return nil, apperr.InvalidArgument("unknown locker status: %s", status)
	}
	if location == "" {
		return nil, apperr.InvalidArgument("locker location cannot be empty")
	}
	return s.repo.GetByStatusAndLocation(ctx, nil, status, location)
}

func (s *lockerService) CountByStatus(ctx context.Context, status types.LockerStatus) (int64, error) {
	if !status.Valid() {
		return 0, apperr.InvalidArgument("unknown locker status: %s", status)
	}
	return s.repo.CountByStatus(ctx, nil, status)
}

func (s *lockerService) getExisting(ctx context.Context, id uuid.UUID) (*types.Locker, error) {
	if id == uuid.Nil {
		return nil, apperr.InvalidArgument("locker id cannot be nil")
	}
	locker, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if locker == nil {
		return nil, apperr.NotFound("locker not found with id: %s", id)
	}
	return locker, nil
}
