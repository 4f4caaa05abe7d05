package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/smartlocker-backend/internal/apperr"
	"github.com/yungbote/smartlocker-backend/internal/logger"
	"github.com/yungbote/smartlocker-backend/internal/repos"
	"github.com/yungbote/smartlocker-backend/internal/types"
)

const passwordMinLen = 6

// UserService owns user accounts. Passwords are stored bcrypt-hashed and
// never leave this layer in plaintext.
type UserService interface {
	Register(ctx context.Context, user *types.User) (*types.User, error)
	Update(ctx context.Context, user *types.User) (*types.User, error)
	Remove(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*types.User, error)
	GetByEmail(ctx context.Context, email string) (*types.User, error)
	List(ctx context.Context) ([]*types.User, error)
	ListAdministrators(ctx context.Context) ([]*types.User, error)
}

type userService struct {
	db          *gorm.DB
	log         *logger.Logger
	repo        repos.UserRepo
	interceptor *ActionInterceptor
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, repo repos.UserRepo, interceptor *ActionInterceptor) UserService {
	return &userService{
		db:          db,
		log:         baseLog.With("service", "UserService"),
		repo:        repo,
		interceptor: interceptor,
	}
}

// Register is the auditable action "user registered".
func (s *userService) Register(ctx context.Context, user *types.User) (*types.User, error) {
	return Intercept(ctx, s.interceptor, ActionUserRegistered, "New user registered in the system", EntityKindUser,
		func(ctx context.Context) (*types.User, error) {
			return s.register(ctx, user)
		})
}

func (s *userService) register(ctx context.Context, user *types.User) (*types.User, error) {
	if user == nil {
		return nil, apperr.InvalidArgument("user cannot be nil")
	}
	if user.Name == "" {
		return nil, apperr.InvalidArgument("user name cannot be empty")
	}
	if user.Email == "" {
		return nil, apperr.InvalidArgument("user email cannot be empty")
	}
	if !strings.Contains(user.Email, "@") {
		return nil, apperr.InvalidArgument("user email is not valid: %s", user.Email)
	}
	if len(user.Password) < passwordMinLen {
		return nil, apperr.InvalidArgument("user password must be at least %d characters", passwordMinLen)
	}
	if user.Role == "" {
		user.Role = types.UserRoleResident
	}
	if !user.Role.Valid() {
		return nil, apperr.InvalidArgument("unknown user role: %s", user.Role)
	}

	exists, err := s.repo.ExistsByEmail(ctx, nil, user.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("user already exists with email: %s", user.Email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.ID = uuid.New()
	user.Password = string(hashed)

	s.log.Info("Registering user", "email", user.Email, "role", user.Role)
	return s.repo.Create(ctx, nil, user)
}

// Update changes name, email, phone and role. A non-empty Password is
// re-hashed; an empty one keeps the stored hash.
func (s *userService) Update(ctx context.Context, user *types.User) (*types.User, error) {
	if user == nil {
		return nil, apperr.InvalidArgument("user cannot be nil")
	}
	existing, err := s.getExisting(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if user.Name == "" {
		return nil, apperr.InvalidArgument("user name cannot be empty")
	}
	if user.Email == "" {
		return nil, apperr.InvalidArgument("user email cannot be empty")
	}
	if !user.Role.Valid() {
		return nil, apperr.InvalidArgument("unknown user role: %s", user.Role)
	}

	if user.Email != existing.Email {
		taken, err := s.repo.ExistsByEmail(ctx, nil, user.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("user already exists with email: %s", user.Email)
		}
	}

	existing.Name = user.Name
	existing.Email = user.Email
	existing.Phone = user.Phone
	existing.Role = user.Role
	if user.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		existing.Password = string(hashed)
	}

	s.log.Info("Updating user", "id", existing.ID)
	return s.repo.Save(ctx, nil, existing)
}

func (s *userService) Remove(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return apperr.InvalidArgument("user id cannot be nil")
	}
	exists, err := s.repo.ExistsByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("user not found with id: %s", id)
	}

	s.log.Info("Removing user", "id", id)
	return s.repo.DeleteByID(ctx, nil, id)
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	return s.getExisting(ctx, id)
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*types.User, error) {
	if email == "" {
		return nil, apperr.InvalidArgument("user email cannot be empty")
	}
	user, err := s.repo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found with email: %s", email)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]*types.User, error) {
	s.log.Debug("Listing all users")
	return s.repo.GetAll(ctx, nil)
}

func (s *userService) ListAdministrators(ctx context.Context) ([]*types.User, error) {
	return s.repo.GetByRole(ctx, nil, types.UserRoleAdmin)
}

func (s *userService) getExisting(ctx context.Context, id uuid.UUID) (*types.User, error) {
	if id == uuid.Nil {
		return nil, apperr.InvalidArgument("user id cannot be nil")
	}
	user, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found with id: %s", id)
	}
	return user, nil
}
