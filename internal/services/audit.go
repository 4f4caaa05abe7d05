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

// AuditService keeps the append-only trail of actions taken in the system.
// It has no business rules beyond input validation.
type AuditService interface {
	Append(ctx context.Context, record *types.AuditRecord) (*types.AuditRecord, error)
	List(ctx context.Context) ([]*types.AuditRecord, error)
	Get(ctx context.Context, id uuid.UUID) (*types.AuditRecord, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type auditService struct {
	db   *gorm.DB
	log  *logger.Logger
	repo repos.AuditRecordRepo
}

func NewAuditService(db *gorm.DB, baseLog *logger.Logger, repo repos.AuditRecordRepo) AuditService {
	return &auditService{
		db:   db,
		log:  baseLog.With("service", "AuditService"),
		repo: repo,
	}
}

func (s *auditService) Append(ctx context.Context, record *types.AuditRecord) (*types.AuditRecord, error) {
	if record == nil {
		return nil, apperr.InvalidArgument("audit record cannot be nil")
	}
	if record.Action == "" {
		return nil, apperr.InvalidArgument("audit record action cannot be empty")
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	s.log.Info("Recording action", "action", record.Action)
	return s.repo.Create(ctx, nil, record)
}

func (s *auditService) List(ctx context.Context) ([]*types.AuditRecord, error) {
	s.log.Debug("Listing all audit records")
	return s.repo.GetAll(ctx, nil)
}

func (s *auditService) Get(ctx context.Context, id uuid.UUID) (*types.AuditRecord, error) {
	if id == uuid.Nil {
		return nil, apperr.InvalidArgument("audit record id cannot be nil")
	}
	record, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperr.NotFound("audit record not found with id: %s", id)
	}
	return record, nil
}

func (s *auditService) Remove(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return apperr.InvalidArgument("audit record id cannot be nil")
	}
	exists, err := s.repo.ExistsByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("audit record not found with id: %s", id)
	}

	s.log.Info("Removing audit record", "id", id)
	return s.repo.DeleteByID(ctx, nil, id)
}
