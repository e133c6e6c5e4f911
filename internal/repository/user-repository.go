package repository

import (
	"context"
	"errors"

	"github.com/forevertrendin/user_service/internal/domain"
	"github.com/forevertrendin/user_service/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type UserRepository interface {
	// CreateUser persists a new user. Email uniqueness is enforced by the store;
	// a duplicate maps to errs.ErrEmailTaken.
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, id uint) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	// UpdateUser applies the given profile payload columns and nothing else.
	// profile_asset_key is never written here; CompareAndSetAssetKey stays its
	// only writer, so a profile update can never undo a concurrent swap.
	UpdateUser(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteUser(ctx context.Context, id uint) (*domain.User, error)
	// CompareAndSetAssetKey updates the profile asset key only if the stored
	// value still equals oldKey (nil matches NULL). It reports false without
	// mutating when the guard fails. This is the sole serialization point
	// between racing uploads for the same user.
	CompareAndSetAssetKey(ctx context.Context, id uint, oldKey, newKey *string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

const pgUniqueViolation = "23505"

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errs.ErrInvalidInput
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, errs.ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.WithContext(ctx).First(user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindUserByID(ctx context.Context, id uint) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.WithContext(ctx).First(user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, id uint, updates map[string]interface{}) error {
	if id == 0 || len(updates) == 0 {
		return errs.ErrInvalidInput
	}
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) DeleteUser(ctx context.Context, id uint) (*domain.User, error) {
	user, err := r.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) CompareAndSetAssetKey(ctx context.Context, id uint, oldKey, newKey *string) (bool, error) {
	// IS NOT DISTINCT FROM makes the guard NULL-safe: a nil oldKey only matches
	// a row whose profile_asset_key is still NULL.
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Where("profile_asset_key IS NOT DISTINCT FROM ?", oldKey).
		Update("profile_asset_key", newKey)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
