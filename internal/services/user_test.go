package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/smartlocker-backend/internal/apperr"
	"github.com/yungbote/smartlocker-backend/internal/repos"
	"github.com/yungbote/smartlocker-backend/internal/types"
)

func newUserFixture(t *testing.T) (UserService, AuthService, *fakeAuditService) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	userRepo := repos.NewUserRepo(db, log)
	lockerRepo := repos.NewLockerRepo(db, log)
	audit := &fakeAuditService{}
	interceptor := NewActionInterceptor(log, audit, &fakeNotificationService{}, userRepo, lockerRepo)
	userService := NewUserService(db, log, userRepo, interceptor)
	authService := NewAuthService(db, log, userRepo, "test-secret", time.Hour)
	return userService, authService, audit
}

func TestUserRegisterHashesPasswordAndDefaultsRole(t *testing.T) {
	svc, _, audit := newUserFixture(t)

	created, err := svc.Register(context.Background(), &types.User{
		Name:     "Maria Silva",
		Email:    "maria@example.com",
		Password: "s3cret-pass",
		Phone:    "11999990000",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if created.Role != types.UserRoleResident {
		t.Fatalf("default role: got %s, want %s", created.Role, types.UserRoleResident)
	}
	if created.Password == "s3cret-pass" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("s3cret-pass")); err != nil {
		t.Fatalf("stored password does not verify: %v", err)
	}
	if len(audit.appended) != 1 || audit.appended[0].Action != ActionUserRegistered {
		t.Fatalf("audit after register: %+v", audit.appended)
	}
}

func TestUserRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &types.User{Name: "A", Email: "dup@example.com", Password: "password1"}); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register(ctx, &types.User{Name: "B", Email: "dup@example.com", Password: "password2"})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("duplicate email err=%v, want ErrConflict", err)
	}
}

func TestUserRegisterValidation(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		user *types.User
	}{
		{name: "empty_name", user: &types.User{Email: "a@example.com", Password: "password"}},
		{name: "empty_email", user: &types.User{Name: "A", Password: "password"}},
		{name: "malformed_email", user: &types.User{Name: "A", Email: "not-an-email", Password: "password"}},
		{name: "short_password", user: &types.User{Name: "A", Email: "a@example.com", Password: "abc"}},
		{name: "unknown_role", user: &types.User{Name: "A", Email: "a@example.com", Password: "password", Role: types.UserRole("JANITOR")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tc.user); !errors.Is(err, apperr.ErrInvalidArgument) {
				t.Fatalf("Register err=%v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestAuthLoginAndTokenRoundtrip(t *testing.T) {
	userService, authService, _ := newUserFixture(t)
	ctx := context.Background()

	created, err := userService.Register(ctx, &types.User{
		Name:     "Porter",
		Email:    "porter@example.com",
		Password: "door-pass-1",
		Role:     types.UserRoleDoorman,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, user, err := authService.Login(ctx, "porter@example.com", "door-pass-1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("login user id: got %s, want %s", user.ID, created.ID)
	}

	authedCtx, err := authService.SetContextFromToken(ctx, token)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestDataFromContext(t, authedCtx)
	if rd.UserID != created.ID {
		t.Fatalf("token user id: got %s, want %s", rd.UserID, created.ID)
	}
	if rd.Role != types.UserRoleDoorman {
		t.Fatalf("token role: got %s, want %s", rd.Role, types.UserRoleDoorman)
	}
}

func TestAuthLoginRejectsBadCredentials(t *testing.T) {
	userService, authService, _ := newUserFixture(t)
	ctx := context.Background()

	if _, err := userService.Register(ctx, &types.User{Name: "A", Email: "a@example.com", Password: "password1"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, _, err := authService.Login(ctx, "a@example.com", "wrong-pass"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("wrong password err=%v, want ErrUnauthorized", err)
	}
	if _, _, err := authService.Login(ctx, "missing@example.com", "password1"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("unknown email err=%v, want ErrUnauthorized", err)
	}
}

func TestAuthRejectsTamperedToken(t *testing.T) {
	userService, authService, _ := newUserFixture(t)
	ctx := context.Background()

	if _, err := userService.Register(ctx, &types.User{Name: "A", Email: "a@example.com", Password: "password1"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, _, err := authService.Login(ctx, "a@example.com", "password1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if _, err := authService.SetContextFromToken(ctx, token+"x"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("tampered token err=%v, want ErrUnauthorized", err)
	}
}
