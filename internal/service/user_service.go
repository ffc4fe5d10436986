package service

import (
	"context"
	"strings"

	"ads-inventory-ws/internal/model"
	"ads-inventory-ws/internal/repository"
	"ads-inventory-ws/pkg/validator"

	"github.com/google/uuid"
)

type UserService interface {
	CreateUser(ctx context.Context, req *CreateUserRequest, creator string) (*model.User, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, req *UpdateUserRequest, updater string) (*model.User, error)
	DeleteUser(ctx context.Context, userID, requesterID uuid.UUID, deleter string) error
	GetAllUsers(ctx context.Context) ([]model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	ResetPassword(ctx context.Context, username, newPassword string) error
	SeedAdmin(ctx context.Context, username, password string) (bool, error)
}

type CreateUserRequest struct {
	Username string         `json:"username" validate:"required,min=3,max=50,alphanum"`
	Password string         `json:"password" validate:"required,min=6"`
	FullName string         `json:"full_name" validate:"required,max=255"`
	Role     model.UserRole `json:"role" validate:"required,oneof=admin staff"`
}

type UpdateUserRequest struct {
	Password *string        `json:"password,omitempty" validate:"omitempty,min=6"` // Optional
	FullName string         `json:"full_name" validate:"required,max=255"`
	Role     model.UserRole `json:"role" validate:"required,oneof=admin staff"`
	IsActive *bool          `json:"is_active"`
}

type userService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
}

func NewUserService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository) UserService {
	return &userService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

func (s *userService) CreateUser(ctx context.Context, req *CreateUserRequest, creator string) (*model.User, error) {
	if msg := validator.FirstError(req); msg != "" {
		return nil, validationError(msg)
	}
	username := strings.ToLower(req.Username)

	taken, err := s.userRepo.UsernameTaken(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameExists
	}

	user := &model.User{
		Username: username,
		FullName: req.FullName,
		Role:     req.Role,
		IsActive: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}
	user.CreatedBy = creator
	user.UpdatedBy = creator

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID uuid.UUID, req *UpdateUserRequest, updater string) (*model.User, error) {
	if msg := validator.FirstError(req); msg != "" {
		return nil, validationError(msg)
	}
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FullName = req.FullName
	user.Role = req.Role
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}
	user.UpdatedBy = updater
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	// deactivation or a new password ends every open session
	if !user.IsActive || req.Password != nil {
		if err := s.sessionRepo.DeleteByUser(ctx, user.ID); err != nil {
			return nil, err
		}
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID, requesterID uuid.UUID, deleter string) error {
	if userID == requesterID {
		return invalid("you cannot delete your own account")
	}
	if err := s.userRepo.Delete(ctx, userID, deleter); err != nil {
		return mapNotFound(err, ErrUserNotFound)
	}
	return s.sessionRepo.DeleteByUser(ctx, userID)
}

func (s *userService) GetAllUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.FindAll(ctx)
}

func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrUserNotFound)
	}
	return user, nil
}

// ResetPassword is the operator path used by cmd/reset-password.
func (s *userService) ResetPassword(ctx context.Context, username, newPassword string) error {
	if len(newPassword) < 6 {
		return invalid("password must be at least 6 characters")
	}
	user, err := s.userRepo.FindByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return mapNotFound(err, ErrUserNotFound)
	}
	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, user.Password); err != nil {
		return err
	}
	return s.sessionRepo.DeleteByUser(ctx, user.ID)
}

// SeedAdmin creates the bootstrap admin when the username was never used, deleted accounts included.
// It reports whether a user was created.
func (s *userService) SeedAdmin(ctx context.Context, username, password string) (bool, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return false, nil
	}
	taken, err := s.userRepo.UsernameTaken(ctx, username)
	if err != nil || taken {
		return false, err
	}
	admin := &model.User{
		Username: username,
		FullName: "Administrator",
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	if err := admin.SetPassword(password); err != nil {
		return false, err
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return false, err
	}
	return true, nil
}
