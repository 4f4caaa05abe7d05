package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/smartlocker-backend/internal/apperr"
	"github.com/yungbote/smartlocker-backend/internal/logger"
	"github.com/yungbote/smartlocker-backend/internal/repos"
	"github.com/yungbote/smartlocker-backend/internal/types"
)

const (
	trackingCodeMinLen = 6
	trackingCodeMaxLen = 50
	descriptionMinLen  = 3
	descriptionMaxLen  = 500
	senderMinLen       = 3
	senderMaxLen       = 100
)

// PackageService owns the package lifecycle from receipt until pickup
// confirmation.
type PackageService interface {
	Receive(ctx context.Context, pkg *types.Package) (*types.Package, error)
	ConfirmPickup(ctx context.Context, id uuid.UUID) (*types.Package, error)
	Remove(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*types.Package, error)
	GetByTrackingCode(ctx context.Context, trackingCode string) (*types.Package, error)
	List(ctx context.Context) ([]*types.Package, error)
}

type packageService struct {
	db          *gorm.DB
	log         *logger.Logger
	repo        repos.PackageRepo
	interceptor *ActionInterceptor
}

func NewPackageService(db *gorm.DB, baseLog *logger.Logger, repo repos.PackageRepo, interceptor *ActionInterceptor) PackageService {
	return &packageService{
		db:          db,
		log:         baseLog.With("service", "PackageService"),
		repo:        repo,
		interceptor: interceptor,
	}
}

// Receive is the auditable action "package registered".
func (s *packageService) Receive(ctx context.Context, pkg *types.Package) (*types.Package, error) {
	return Intercept(ctx, s.interceptor, ActionPackageRegistered, "New package registered in the system", EntityKindPackage,
		func(ctx context.Context) (*types.Package, error) {
			return s.receive(ctx, pkg)
		})
}

func (s *packageService) receive(ctx context.Context, pkg *types.Package) (*types.Package, error) {
	if pkg == nil {
		return nil, apperr.InvalidArgument("package cannot be nil")
	}
	if pkg.TrackingCode == "" {
		return nil, apperr.InvalidArgument("package tracking code cannot be empty")
	}
	if len(pkg.TrackingCode) < trackingCodeMinLen || len(pkg.TrackingCode) > trackingCodeMaxLen {
		return nil, apperr.InvalidArgument("package tracking code must be between %d and %d characters", trackingCodeMinLen, trackingCodeMaxLen)
	}
	if pkg.Description == "" {
		return nil, apperr.InvalidArgument("package description cannot be empty")
	}
	if len(pkg.Description) < descriptionMinLen || len(pkg.Description) > descriptionMaxLen {
		return nil, apperr.InvalidArgument("package description must be between %d and %d characters", descriptionMinLen, descriptionMaxLen)
	}
	if pkg.Sender == "" {
		return nil, apperr.InvalidArgument("package sender cannot be empty")
	}
	if len(pkg.Sender) < senderMinLen || len(pkg.Sender) > senderMaxLen {
		return nil, apperr.InvalidArgument("package sender must be between %d and %d characters", senderMinLen, senderMaxLen)
	}
	if pkg.ReceivedAt.IsZero() {
		return nil, apperr.InvalidArgument("package received date cannot be empty")
	}
	if pkg.LockerID == uuid.Nil {
		return nil, apperr.InvalidArgument("package locker cannot be nil")
	}
	if pkg.UserID == uuid.Nil {
		return nil, apperr.InvalidArgument("package recipient cannot be nil")
	}

	exists, err := s.repo.ExistsByTrackingCode(ctx, nil, pkg.TrackingCode)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("package already exists with tracking code: %s", pkg.TrackingCode)
	}

	pkg.ID = uuid.New()
	pkg.PickupConfirmed = false
	pkg.PickedUpAt = nil

	s.log.Info("Receiving package", "tracking_code", pkg.TrackingCode)
	return s.repo.Create(ctx, nil, pkg)
}

// ConfirmPickup is the auditable action "package picked up". Confirming an
// already confirmed package is a no-op that keeps the original pickup
// timestamp.
func (s *packageService) ConfirmPickup(ctx context.Context, id uuid.UUID) (*types.Package, error) {
	return Intercept(ctx, s.interceptor, ActionPackagePickedUp, "Package pickup confirmed", EntityKindPackage,
		func(ctx context.Context) (*types.Package, error) {
			return s.confirmPickup(ctx, id)
		})
}

func (s *packageService) confirmPickup(ctx context.Context, id uuid.UUID) (*types.Package, error) {
	pkg, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg.PickupConfirmed {
		return pkg, nil
	}

	now := time.Now().UTC()
	pkg.PickupConfirmed = true
	pkg.PickedUpAt = &now

	s.log.Info("Confirming package pickup", "tracking_code", pkg.TrackingCode)
	return s.repo.Save(ctx, nil, pkg)
}

// Remove is an administrative action, not gated on pickup state.
func (s *packageService) Remove(ctx context.Context, id uuid.UUID) error {
	_, err := Intercept(ctx, s.interceptor, ActionPackageRemoved, "Package removed from the system", EntityKindPackage,
		func(ctx context.Context) (*types.Package, error) {
			return nil, s.remove(ctx, id)
		})
	return err
}

func (s *packageService) remove(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return apperr.InvalidArgument("package id cannot be nil")
	}
	exists, err := s.repo.ExistsByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("package not found with id: %s", id)
	}

	s.log.Info("Removing package", "id", id)
	return s.repo.DeleteByID(ctx, nil, id)
}

func (s *packageService) GetByID(ctx context.Context, id uuid.UUID) (*types.Package, error) {
	return s.getExisting(ctx, id)
}

func (s *packageService) GetByTrackingCode(ctx context.Context, trackingCode string) (*types.Package, error) {
	if trackingCode == "" {
		return nil, apperr.InvalidArgument("package tracking code cannot be empty")
	}
	pkg, err := s.repo.GetByTrackingCode(ctx, nil, trackingCode)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, apperr.NotFound("package not found with tracking code: %s", trackingCode)
	}
	return pkg, nil
}

func (s *packageService) List(ctx context.Context) ([]*types.Package, error) {
	s.log.Debug("Listing all packages")
	return s.repo.GetAll(ctx, nil)
}

func (s *packageService) getExisting(ctx context.Context, id uuid.UUID) (*types.Package, error) {
	if id == uuid.Nil {
		return nil, apperr.InvalidArgument("package id cannot be nil")
	}
	pkg, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, apperr.NotFound("package not found with id: %s", id)
	}
	return pkg, nil
}
