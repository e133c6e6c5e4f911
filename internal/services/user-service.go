package services

import (
	"context"
	"strings"

	"github.com/forevertrendin/user_service/internal/domain"
	"github.com/forevertrendin/user_service/internal/dto"
	"github.com/forevertrendin/user_service/internal/errs"
	"github.com/forevertrendin/user_service/internal/helper"
	"github.com/forevertrendin/user_service/internal/interfaces"
	"github.com/forevertrendin/user_service/internal/repository"
	"go.uber.org/zap"
)

type UserService interface {
	// Auth
	Register(ctx context.Context, input dto.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, input dto.UserLogin) (string, *domain.User, error)

	// Profile CRUD
	GetUser(ctx context.Context, userID uint) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, userID uint, input dto.UpdateUserProfile) (*domain.User, error)
	DeleteUser(ctx context.Context, userID uint) (*domain.User, error)
}

type userService struct {
	repo     repository.UserRepository
	hasher   helper.PasswordHasher
	auth     helper.Auth
	producer interfaces.ProducerHandler
	log      *zap.Logger
}

func NewUserService(
	repo repository.UserRepository,
	hasher helper.PasswordHasher,
	auth helper.Auth,
	producer interfaces.ProducerHandler,
	log *zap.Logger,
) UserService {
	return &userService{
		repo:     repo,
		hasher:   hasher,
		auth:     auth,
		producer: producer,
		log:      log,
	}
}

// normalizeEmail fixes the case policy: emails are stored and looked up in lower
// case, so uniqueness is effectively case-insensitive.
func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func (u *userService) Register(ctx context.Context, input dto.RegisterRequest) (*domain.User, error) {
	email := normalizeEmail(input.Email)
	password := strings.TrimSpace(input.Password)

	if email == "" || password == "" || !strings.Contains(email, "@") {
		return nil, errs.ErrInvalidInput
	}
	if len(password) < 6 {
		return nil, errs.ErrInvalidInput
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		Phone:        input.Phone,
	}

	created, err := u.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	publishEvent(u.producer, u.log, dto.EventUserRegistered, dto.UserRegisteredEvent{
		UserID: created.ID,
		Email:  created.Email,
	})

	return created, nil
}

func (u *userService) Login(ctx context.Context, input dto.UserLogin) (string, *domain.User, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return "", nil, errs.ErrInvalidInput
	}

	user, err := u.repo.FindUserByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if !u.hasher.Verify(input.Password, user.PasswordHash) {
		return "", nil, errs.ErrInvalidCredentials
	}

	token, err := u.auth.GenerateToken(user.ID)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (u *userService) GetUser(ctx context.Context, userID uint) (*domain.User, error) {
	return u.repo.FindUserByID(ctx, userID)
}

func (u *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return u.repo.ListUsers(ctx)
}

func (u *userService) UpdateProfile(ctx context.Context, userID uint, input dto.UpdateUserProfile) (*domain.User, error) {
	updates := map[string]interface{}{}
	if name := strings.TrimSpace(input.DisplayName); name != "" {
		updates["display_name"] = name
	}
	if input.Phone != nil {
		updates["phone"] = input.Phone
	}
	if len(updates) == 0 {
		return u.repo.FindUserByID(ctx, userID)
	}

	if err := u.repo.UpdateUser(ctx, userID, updates); err != nil {
		return nil, err
	}
	return u.repo.FindUserByID(ctx, userID)
}

func (u *userService) DeleteUser(ctx context.Context, userID uint) (*domain.User, error) {
	return u.repo.DeleteUser(ctx, userID)
}
