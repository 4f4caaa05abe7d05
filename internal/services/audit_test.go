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

func newAuditFixture(t *testing.T) AuditService {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	return NewAuditService(db, log, repos.NewAuditRecordRepo(db, log))
}

func TestAuditAppendDefaults(t *testing.T) {
	svc := newAuditFixture(t)

	created, err := svc.Append(context.Background(), &types.AuditRecord{
		Action:  ActionLockerRegistered,
		Details: "New locker registered in the system",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("appended record has nil id")
	}
	if created.Timestamp.IsZero() {
		t.Fatalf("appended record has zero timestamp")
	}
}

func TestAuditAppendRequiresAction(t *testing.T) {
	svc := newAuditFixture(t)

	if _, err := svc.Append(context.Background(), &types.AuditRecord{Details: "orphan"}); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("Append without action err=%v, want ErrInvalidArgument", err)
	}
}

func TestAuditGetAndRemove(t *testing.T) {
	svc := newAuditFixture(t)
	ctx := context.Background()

	created, err := svc.Append(ctx, &types.AuditRecord{Action: ActionPackageRemoved})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Action != ActionPackageRemoved {
		t.Fatalf("record action: got %s, want %s", got.Action, ActionPackageRemoved)
	}

	if err := svc.Remove(ctx, created.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Get after remove err=%v, want ErrNotFound", err)
	}
	if err := svc.Remove(ctx, uuid.New()); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Remove missing err=%v, want ErrNotFound", err)
	}
}
