package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/smartlocker-backend/internal/apperr"
	"github.com/yungbote/smartlocker-backend/internal/repos"
	"github.com/yungbote/smartlocker-backend/internal/types"
)

func newNotificationFixture(t *testing.T) (NotificationService, uuid.UUID) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	userRepo := repos.NewUserRepo(db, log)
	user := &types.User{ID: uuid.New(), Name: "Resident", Email: "resident@example.com", Password: "hash", Role: types.UserRoleResident}
	if _, err := userRepo.Create(context.Background(), nil, user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return NewNotificationService(db, log, repos.NewNotificationRepo(db, log)), user.ID
}

func TestNotificationCreateDefaults(t *testing.T) {
	svc, userID := newNotificationFixture(t)

	created, err := svc.Create(context.Background(), &types.Notification{
		Title:   "New package registered",
		Message: "New package registered for you in locker L-001",
		Type:    types.NotificationTypePackage,
		UserID:  userID,
		Read:    true, // must be ignored
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("created notification has nil id")
	}
	if created.Read || created.ReadAt != nil {
		t.Fatalf("created notification not unread: read=%v readAt=%v", created.Read, created.ReadAt)
	}
	if created.CreatedAt.IsZero() {
		t.Fatalf("created notification has zero CreatedAt")
	}
}

func TestNotificationCreateValidation(t *testing.T) {
	svc, userID := newNotificationFixture(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, &types.Notification{Type: types.NotificationTypeSystem, UserID: userID}); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("empty message err=%v, want ErrInvalidArgument", err)
	}
	if _, err := svc.Create(ctx, &types.Notification{Message: "hi", UserID: userID}); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("empty type err=%v, want ErrInvalidArgument", err)
	}
	if _, err := svc.Create(ctx, &types.Notification{Message: "hi", Type: types.NotificationTypeSystem}); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("nil recipient err=%v, want ErrInvalidArgument", err)
	}
}

func TestNotificationMarkReadIdempotent(t *testing.T) {
	svc, userID := newNotificationFixture(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, &types.Notification{
		Title:   "System notice",
		Message: "Maintenance window tonight",
		Type:    types.NotificationTypeMaintenance,
		UserID:  userID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	first, err := svc.MarkRead(ctx, created.ID)
	if err != nil {
		t.Fatalf("first MarkRead: %v", err)
	}
	if !first.Read || first.ReadAt == nil {
		t.Fatalf("first MarkRead: read=%v readAt=%v", first.Read, first.ReadAt)
	}

	second, err := svc.MarkRead(ctx, created.ID)
	if err != nil {
		t.Fatalf("second MarkRead: %v", err)
	}
	if !second.ReadAt.Equal(*first.ReadAt) {
		t.Fatalf("second MarkRead re-stamped ReadAt: got %v, want %v", second.ReadAt, first.ReadAt)
	}
}

func TestNotificationUnreadFilter(t *testing.T) {
	svc, userID := newNotificationFixture(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, &types.Notification{Title: "a", Message: "first", Type: types.NotificationTypeSystem, UserID: userID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, &types.Notification{Title: "b", Message: "second", Type: types.NotificationTypeSystem, UserID: userID}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.MarkRead(ctx, a.ID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}

	unread, err := svc.ListUnreadByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListUnreadByUser: %v", err)
	}
	if len(unread) != 1 {
		t.Fatalf("unread notifications: got %d, want 1", len(unread))
	}
	if unread[0].Message != "second" {
		t.Fatalf("unread notification: got %q, want %q", unread[0].Message, "second")
	}

	all, err := svc.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all notifications: got %d, want 2", len(all))
	}
}
