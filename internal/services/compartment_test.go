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

func newCompartmentFixture(t *testing.T) (CompartmentService, uuid.UUID) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	lockerRepo := repos.NewLockerRepo(db, log)
	locker := &types.Locker{ID: uuid.New(), Number: "L-700", Status: types.LockerStatusAvailable, Location: "Block D"}
	if _, err := lockerRepo.Create(context.Background(), nil, locker); err != nil {
		t.Fatalf("seed locker: %v", err)
	}
	svc := NewCompartmentService(db, log, repos.NewCompartmentRepo(db, log), lockerRepo)
	return svc, locker.ID
}

func TestCompartmentCreateValidation(t *testing.T) {
	svc, lockerID := newCompartmentFixture(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, &types.Compartment{Size: 1, LockerID: lockerID}); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("empty number err=%v, want ErrInvalidArgument", err)
	}
	if _, err := svc.Create(ctx, &types.Compartment{Number: "C-1", Size: 0, LockerID: lockerID}); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("zero size err=%v, want ErrInvalidArgument", err)
	}
	if _, err := svc.Create(ctx, &types.Compartment{Number: "C-1", Size: -2, LockerID: lockerID}); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("negative size err=%v, want ErrInvalidArgument", err)
	}
	if _, err := svc.Create(ctx, &types.Compartment{Number: "C-1", Size: 1}); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("nil locker err=%v, want ErrInvalidArgument", err)
	}
	if _, err := svc.Create(ctx, &types.Compartment{Number: "C-1", Size: 1, LockerID: uuid.New()}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("missing locker err=%v, want ErrNotFound", err)
	}
}

func TestCompartmentCreateDefaultsToAvailable(t *testing.T) {
	svc, lockerID := newCompartmentFixture(t)

	created, err := svc.Create(context.Background(), &types.Compartment{Number: "C-1", Size: 2.5, LockerID: lockerID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != types.LockerStatusAvailable {
		t.Fatalf("default status: got %s, want %s", created.Status, types.LockerStatusAvailable)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("created compartment has nil id")
	}
}

func TestCompartmentSetOccupied(t *testing.T) {
	svc, lockerID := newCompartmentFixture(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, &types.Compartment{Number: "C-2", Size: 1, LockerID: lockerID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	occupied, err := svc.SetOccupied(ctx, created.ID, true)
	if err != nil {
		t.Fatalf("SetOccupied(true): %v", err)
	}
	if occupied.Status != types.LockerStatusOccupied {
		t.Fatalf("status after occupy: got %s, want %s", occupied.Status, types.LockerStatusOccupied)
	}

	freed, err := svc.SetOccupied(ctx, created.ID, false)
	if err != nil {
		t.Fatalf("SetOccupied(false): %v", err)
	}
	if freed.Status != types.LockerStatusAvailable {
		t.Fatalf("status after free: got %s, want %s", freed.Status, types.LockerStatusAvailable)
	}
	if freed.CurrentPackageID != nil {
		t.Fatalf("current package after free: got %v, want nil", freed.CurrentPackageID)
	}
}

func TestCompartmentListByLocker(t *testing.T) {
	svc, lockerID := newCompartmentFixture(t)
	ctx := context.Background()
	for _, number := range []string{"C-1", "C-2", "C-3"} {
		if _, err := svc.Create(ctx, &types.Compartment{Number: number, Size: 1, LockerID: lockerID}); err != nil {
			t.Fatalf("Create %s: %v", number, err)
		}
	}

	compartments, err := svc.ListByLocker(ctx, lockerID)
	if err != nil {
		t.Fatalf("ListByLocker: %v", err)
	}
	if len(compartments) != 3 {
		t.Fatalf("compartments: got %d, want 3", len(compartments))
	}
}
