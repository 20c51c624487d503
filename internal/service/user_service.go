package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/dto"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/model"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/profile"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/repository"
)

var ErrUsernameTaken = errors.New("username sudah digunakan")

// UserService manages dashboard accounts and exposes the employee registry.
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	List(ctx context.Context) ([]dto.UserResponse, error)
	// Profiles lists the employee registry (user_data.json).
	Profiles(ctx context.Context) []dto.ProfileResponse
	// ReloadProfiles forces a registry re-read.
	ReloadProfiles(ctx context.Context) error
}

type userService struct {
	repo     *repository.Repository
	profiles *profile.Store
	logger   *zap.Logger
}

// NewUserService creates a UserService.
func NewUserService(repo *repository.Repository, profiles *profile.Store, logger *zap.Logger) UserService {
	return &userService{repo: repo, profiles: profiles, logger: logger}
}

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if _, err := s.repo.User.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("user lookup failed", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	shiftKind := req.Shift
	if shiftKind == "" {
		shiftKind = "morning"
	}
	user := &model.User{
		Username:     req.Username,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		Role:         req.Role,
		Shift:        shiftKind,
		IsActive:     true,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("user create failed", zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("user lookup failed", zap.Error(err))
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Shift != nil {
		user.Shift = *req.Shift
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("user update failed", zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("user listing failed", zap.Error(err))
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *toUserResponse(&users[i]))
	}
	return out, nil
}

func (s *userService) Profiles(_ context.Context) []dto.ProfileResponse {
	all := s.profiles.All()
	out := make([]dto.ProfileResponse, 0, len(all))
	for _, p := range all {
		out = append(out, dto.ProfileResponse{
			Name:  p.Name,
			Shift: string(p.Shift),
			Role:  string(p.Role),
		})
	}
	return out
}

func (s *userService) ReloadProfiles(_ context.Context) error {
	return s.profiles.Reload()
}

func toUserResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:       u.UserID,
		Username: u.Username,
		FullName: u.FullName,
		Role:     u.Role,
		Shift:    u.Shift,
		IsActive: u.IsActive,
	}
}
