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

// NotificationService creates and tracks read/unread notifications per user.
type NotificationService interface {
	Create(ctx context.Context, notification *types.Notification) (*types.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) (*types.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Notification, error)
	ListUnreadByUser(ctx context.Context, userID uuid.UUID) ([]*types.Notification, error)
	List(ctx context.Context) ([]*types.Notification, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Notification, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type notificationService struct {
	db   *gorm.DB
	log  *logger.Logger
	repo repos.NotificationRepo
}

func NewNotificationService(db *gorm.DB, baseLog *logger.Logger, repo repos.NotificationRepo) NotificationService {
	return &notificationService{
		db:   db,
		log:  baseLog.With("service", "NotificationService"),
		repo: repo,
	}
}

func (s *notificationService) Create(ctx context.Context, notification *types.Notification) (*types.Notification, error) {
	if notification == nil {
		return nil, apperr.InvalidArgument("notification cannot be nil")
	}
	if notification.Message == "" {
		return nil, apperr.InvalidArgument("notification message cannot be empty")
	}
	if notification.Type == "" {
		return nil, apperr.InvalidArgument("notification type cannot be empty")
	}
	if notification.UserID == uuid.Nil {
		return nil, apperr.InvalidArgument("notification recipient cannot be nil")
	}

	notification.ID = uuid.New()
	notification.Read = false
	notification.ReadAt = nil
	notification.CreatedAt = time.Now().UTC()

	s.log.Info("Creating notification", "title", notification.Title, "user_id", notification.UserID)
	return s.repo.Create(ctx, nil, notification)
}

// MarkRead is idempotent: a second call leaves Read and ReadAt untouched.
func (s *notificationService) MarkRead(ctx context.Context, id uuid.UUID) (*types.Notification, error) {
	if id == uuid.Nil {
		return nil, apperr.InvalidArgument("notification id cannot be nil")
	}
	notification, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, apperr.NotFound("notification not found with id: %s", id)
	}
	if notification.Read {
		return notification, nil
	}

	now := time.Now().UTC()
	notification.Read = true
	notification.ReadAt = &now

	s.log.Info("Marking notification as read", "id", id)
	return s.repo.Save(ctx, nil, notification)
}

func (s *notificationService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Notification, error) {
	if userID == uuid.Nil {
		return nil, apperr.InvalidArgument("user id cannot be nil")
	}
	return s.repo.GetByUserID(ctx, nil, userID)
}

func (s *notificationService) ListUnreadByUser(ctx context.Context, userID uuid.UUID) ([]*types.Notification, error) {
	if userID == uuid.Nil {
		return nil, apperr.InvalidArgument("user id cannot be nil")
	}
	return s.repo.GetUnreadByUserID(ctx, nil, userID)
}

func (s *notificationService) List(ctx context.Context) ([]*types.Notification, error) {
	s.log.Debug("Listing all notifications")
	return s.repo.GetAll(ctx, nil)
}

func (s *notificationService) Get(ctx context.Context, id uuid.UUID) (*types.Notification, error) {
	if id == uuid.Nil {
		return nil, apperr.InvalidArgument("notification id cannot be nil")
	}
	notification, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, apperr.NotFound("notification not found with id: %s", id)
	}
	return notification, nil
}

func (s *notificationService) Remove(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return apperr.InvalidArgument("notification id cannot be nil")
	}
	exists, err := s.repo.ExistsByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("notification not found with id: %s", id)
	}

	s.log.Info("Removing notification", "id", id)
	return s.repo.DeleteByID(ctx, nil, id)
}
