package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/smartlocker-backend/internal/apperr"
	"github.com/yungbote/smartlocker-backend/internal/repos"
	"github.com/yungbote/smartlocker-backend/internal/types"
)

type packageFixture struct {
	db       *gorm.DB
	svc      PackageService
	repo     repos.PackageRepo
	lockerID uuid.UUID
	userID   uuid.UUID
}

func newPackageFixture(t *testing.T) *packageFixture {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	packageRepo := repos.NewPackageRepo(db, log)
	lockerRepo := repos.NewLockerRepo(db, log)
	userRepo := repos.NewUserRepo(db, log)
	auditRepo := repos.NewAuditRecordRepo(db, log)
	notificationRepo := repos.NewNotificationRepo(db, log)
	auditService := NewAuditService(db, log, auditRepo)
	notificationService := NewNotificationService(db, log, notificationRepo)
	interceptor := NewActionInterceptor(log, auditService, notificationService, userRepo, lockerRepo)

	ctx := context.Background()
	locker := &types.Locker{ID: uuid.New(), Number: "L-900", Status: types.LockerStatusAvailable, Location: "Block C"}
	if _, err := lockerRepo.Create(ctx, nil, locker); err != nil {
		t.Fatalf("seed locker: %v", err)
	}
	user := &types.User{ID: uuid.New(), Name: "Resident", Email: "resident@example.com", Password: "hash", Role: types.UserRoleResident}
	if _, err := userRepo.Create(ctx, nil, user); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	return &packageFixture{
		db:       db,
		svc:      NewPackageService(db, log, packageRepo, interceptor),
		repo:     packageRepo,
		lockerID: locker.ID,
		userID:   user.ID,
	}
}

func (f *packageFixture) receive(t *testing.T, trackingCode string) *types.Package {
	t.Helper()
	pkg, err := f.svc.Receive(context.Background(), &types.Package{
		TrackingCode: trackingCode,
		Description:  "Small box",
		Sender:       "Online store",
		ReceivedAt:   time.Now().UTC(),
		LockerID:     f.lockerID,
		UserID:       f.userID,
	})
	if err != nil {
		t.Fatalf("receive package: %v", err)
	}
	return pkg
}

func TestPackageReceiveValidation(t *testing.T) {
	f := newPackageFixture(t)
	ctx := context.Background()
	valid := func() *types.Package {
		return &types.Package{
			TrackingCode: "BR123456789",
			Description:  "Small box",
			Sender:       "Online store",
			ReceivedAt:   time.Now().UTC(),
			LockerID:     f.lockerID,
			UserID:       f.userID,
		}
	}

	cases := []struct {
		name    string
		mutate  func(p *types.Package)
		wantMsg string
	}{
		{name: "short_tracking_code", mutate: func(p *types.Package) { p.TrackingCode = "AB1" }, wantMsg: "tracking code"},
		{name: "long_tracking_code", mutate: func(p *types.Package) { p.TrackingCode = strings.Repeat("X", 51) }, wantMsg: "tracking code"},
		{name: "short_description", mutate: func(p *types.Package) { p.Description = "ab" }, wantMsg: "description"},
		{name: "short_sender", mutate: func(p *types.Package) { p.Sender = "ab" }, wantMsg: "sender"},
		{name: "zero_received_at", mutate: func(p *types.Package) { p.ReceivedAt = time.Time{} }, wantMsg: "received date"},
		{name: "nil_locker", mutate: func(p *types.Package) { p.LockerID = uuid.Nil }, wantMsg: "locker"},
		{name: "nil_recipient", mutate: func(p *types.Package) { p.UserID = uuid.Nil }, wantMsg: "recipient"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pkg := valid()
			tc.mutate(pkg)
			_, err := f.svc.Receive(ctx, pkg)
			if !errors.Is(err, apperr.ErrInvalidArgument) {
				t.Fatalf("Receive err=%v, want ErrInvalidArgument", err)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("Receive err=%q, want it to name %q", err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestPackageReceiveDuplicateTrackingCode(t *testing.T) {
	f := newPackageFixture(t)
	ctx := context.Background()
	f.receive(t, "BR123456789")

	_, err := f.svc.Receive(ctx, &types.Package{
		TrackingCode: "BR123456789",
		Description:  "Another box",
		Sender:       "Other store",
		ReceivedAt:   time.Now().UTC(),
		LockerID:     f.lockerID,
		UserID:       f.userID,
	})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("Receive duplicate tracking code err=%v, want ErrConflict", err)
	}

	all, err := f.svc.List(ctx)
	if err != nil {
		t.Fatalf("list packages: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("packages after rejected duplicate: got %d, want 1", len(all))
	}
}

func TestPackageReceiveDefaults(t *testing.T) {
	f := newPackageFixture(t)
	pkg := f.receive(t, "BR555555555")

	if pkg.ID == uuid.Nil {
		t.Fatalf("received package has nil id")
	}
	if pkg.PickupConfirmed {
		t.Fatalf("received package starts confirmed")
	}
	if pkg.PickedUpAt != nil {
		t.Fatalf("received package has PickedUpAt=%v, want nil", pkg.PickedUpAt)
	}
}

func TestPackageConfirmPickupIdempotent(t *testing.T) {
	f := newPackageFixture(t)
	ctx := context.Background()
	pkg := f.receive(t, "BR777777777")

	first, err := f.svc.ConfirmPickup(ctx, pkg.ID)
	if err != nil {
		t.Fatalf("first ConfirmPickup: %v", err)
	}
	if !first.PickupConfirmed || first.PickedUpAt == nil {
		t.Fatalf("first confirm: confirmed=%v pickedUpAt=%v", first.PickupConfirmed, first.PickedUpAt)
	}

	second, err := f.svc.ConfirmPickup(ctx, pkg.ID)
	if err != nil {
		t.Fatalf("second ConfirmPickup: %v", err)
	}
	if !second.PickedUpAt.Equal(*first.PickedUpAt) {
		t.Fatalf("second confirm re-stamped PickedUpAt: got %v, want %v", second.PickedUpAt, first.PickedUpAt)
	}
}

func TestPackageConfirmPickupNotFound(t *testing.T) {
	f := newPackageFixture(t)

	_, err := f.svc.ConfirmPickup(context.Background(), uuid.New())
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("ConfirmPickup missing package err=%v, want ErrNotFound", err)
	}
}

func TestPackageRemove(t *testing.T) {
	f := newPackageFixture(t)
	ctx := context.Background()
	pkg := f.receive(t, "BR888888888")

	// Removal is not gated on pickup confirmation.
	if err := f.svc.Remove(ctx, pkg.ID); err != nil {
		t.Fatalf("Remove unconfirmed package: %v", err)
	}
	if err := f.svc.Remove(ctx, pkg.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Remove twice err=%v, want ErrNotFound", err)
	}
}

func TestPackageGetByTrackingCode(t *testing.T) {
	f := newPackageFixture(t)
	ctx := context.Background()
	pkg := f.receive(t, "BR999999999")

	got, err := f.svc.GetByTrackingCode(ctx, "BR999999999")
	if err != nil {
		t.Fatalf("GetByTrackingCode: %v", err)
	}
	if got.ID != pkg.ID {
		t.Fatalf("GetByTrackingCode id: got %s, want %s", got.ID, pkg.ID)
	}

	if _, err := f.svc.GetByTrackingCode(ctx, "BR000000000"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("GetByTrackingCode missing err=%v, want ErrNotFound", err)
	}
}
