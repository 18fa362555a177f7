package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/auth"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/database"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/validation"
)

// UserService handles user accounts: uniqueness of usernames and email
// addresses, and password hashing. It never returns password hashes.
type UserService struct {
	db       *sql.DB
	userRepo *repository.UserRepository
	hasher   *auth.Hasher
}

// NewUserService creates a new UserService with the provided dependencies.
func NewUserService(
	db *sql.DB,
	userRepo *repository.UserRepository,
	hasher *auth.Hasher,
) *UserService {
	return &UserService{
		db:       db,
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// GetAllUsers returns every user ordered by username.
func (s *UserService) GetAllUsers(ctx context.Context) ([]model.UserView, error) {
	users, err := s.userRepo.GetUsers(ctx)
	if err != nil {
		return nil, err
	}
	return model.UserViews(users), nil
}

// GetUser returns the user with the given id, or ErrUserNotFound.
func (s *UserService) GetUser(ctx context.Context, userID string) (model.UserView, error) {
	user, err := s.userRepo.GetUser(ctx, userID)
	if err != nil {
		return model.UserView{}, err
	}
	return user.View(), nil
}

// GetUserByUsername returns the user with the given username, or ErrUserNotFound.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (model.UserView, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return model.UserView{}, err
	}
	return user.View(), nil
}

// CreateUser registers a new user.
//
// The username must be unused, and so must the email when one is given.
// A blank email is stored as NULL. The password is hashed with argon2id
// before the database transaction starts.
//
// Returns:
//   - *validation.Error for malformed input
//   - apperrors.ErrUsernameTaken or apperrors.ErrEmailInUse on conflicts
func (s *UserService) CreateUser(ctx context.Context, req request.CreateUserRequest) (*model.UserView, error) {
	if err := validation.ValidateCreateUser(req); err != nil {
		return nil, err
	}
	email := validation.NormalizeEmail(req.Email)

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.NewUser(req.Username, hash, req.Name, email)

	err = database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		userRepo := s.userRepo.WithTx(tx)

		taken, err := userRepo.ExistsByUsername(ctx, user.Username)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.ErrUsernameTaken
		}

		if email != nil {
			inUse, err := userRepo.ExistsByEmail(ctx, *email)
			if err != nil {
				return err
			}
			if inUse {
				return apperrors.ErrEmailInUse
			}
		}

		// The UNIQUE constraints still catch a concurrent insert between the checks and here.
		return userRepo.InsertUser(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	view := user.View()
	return &view, nil
}

// UpdateUser replaces the username, name and email of a user. A nil name or
// email clears the stored value. The password hash is only replaced when a
// non-empty password is supplied.
//
// A username or email that differs from the user's current one must not be
// owned by another user; keeping one's own values is always allowed.
func (s *UserService) UpdateUser(ctx context.Context, userID string, req request.UpdateUserRequest) (*model.UserView, error) {
	if err := validation.ValidateUpdateUser(req); err != nil {
		return nil, err
	}
	email := validation.NormalizeEmail(req.Email)

	var newHash string
	if req.Password != nil && *req.Password != "" {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		newHash = hash
	}

	var user model.User
	err := database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		userRepo := s.userRepo.WithTx(tx)

		var err error
		user, err = userRepo.GetUser(ctx, userID)
		if err != nil {
			return err
		}

		if req.Username != user.Username {
			taken, err := userRepo.ExistsByUsername(ctx, req.Username)
			if err != nil {
				return err
			}
			if taken {
				return apperrors.ErrUsernameTaken
			}
		}

		if email != nil && (user.Email == nil || *email != *user.Email) {
			inUse, err := userRepo.ExistsByEmail(ctx, *email)
			if err != nil {
				return err
			}
			if inUse {
				return apperrors.ErrEmailInUse
			}
		}

		user.Username = req.Username
		user.Name = req.Name
		user.Email = email
		if newHash != "" {
			user.Password = newHash
		}

		return userRepo.UpdateUser(ctx, &user)
	})
	if err != nil {
		return nil, err
	}

	view := user.View()
	return &view, nil
}

// DeleteUser removes a user and, by cascade, its portfolios and everything
// they own. Deleting an unknown id succeeds.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	return database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		return s.userRepo.WithTx(tx).DeleteUser(ctx, userID)
	})
}

// VerifyPassword reports whether password matches the stored hash of username.
// Unknown users return ErrUserNotFound.
func (s *UserService) VerifyPassword(ctx context.Context, username, password string) (bool, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return s.hasher.Verify(password, user.Password)
}
