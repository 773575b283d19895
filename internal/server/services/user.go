// Package services contains server-side business logic. This file implements
// UserService, which handles registration, credential checks, bearer token
// issuing and the per-user favourites list.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/favkeeper/internal/common"
	"github.com/dmitrijs2005/favkeeper/internal/logging"
	"github.com/dmitrijs2005/favkeeper/internal/server/auth"
	"github.com/dmitrijs2005/favkeeper/internal/server/config"
	"github.com/dmitrijs2005/favkeeper/internal/server/models"
	"github.com/dmitrijs2005/favkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/favkeeper/internal/server/repositories/users"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserService provides account and favourites operations:
//   - Register: create users with a bcrypt password hash
//   - Authenticate / Login: verify credentials and mint access tokens
//   - GetFavourites / AddFavourite / RemoveFavourite: manage the capped set
//
// Every error it returns is a *common.Error whose Message is safe to show
// to clients.
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	logger                      logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	bcryptCost                  int
	favouritesLimit             int
}

// NewUserService constructs a UserService using repositories and server config.
// db may be nil when m does not need a connection.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	limit := cfg.FavouritesLimit
	if limit <= 0 {
		limit = common.DefaultFavouritesLimit
	}
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &UserService{
		db:                          db,
		repomanager:                 m,
		logger:                      logger.With("module", "services.user"),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		bcryptCost:                  cost,
		favouritesLimit:             limit,
	}
}

func (s *UserService) users() users.Repository {
	if s.db == nil {
		return s.repomanager.Users(nil)
	}
	return s.repomanager.Users(s.db)
}

// Register creates a user and returns a confirmation message. Username
// uniqueness is left to the store so concurrent registrations of the same
// name yield exactly one success.
func (s *UserService) Register(ctx context.Context, userName, password, password2 string) (string, error) {
	if userName == "" {
		return "", common.NewError(common.KindValidation, "User name is required", common.ErrorValidation)
	}
	if password != password2 {
		return "", common.NewError(common.KindValidation, "Passwords do not match", common.ErrorValidation)
	}

	hash, err := bcrypt.GenerateFromPassword(passwordBytes(password), s.bcryptCost)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return "", common.NewError(common.KindInfrastructure, "Error hashing password", err)
	}

	user := &models.User{ID: uuid.NewString(), UserName: userName, PasswordHash: hash}
	if _, err := s.users().Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", common.NewError(common.KindConflict, "User Name already taken", err)
		}
		s.logger.Error(ctx, "user creation failed", "user", userName, "error", err)
		return "", common.NewError(common.KindInfrastructure, "There was an error creating the user", err)
	}

	s.logger.Info(ctx, "user registered", "user", userName, "id", user.ID)
	return fmt.Sprintf("User %s successfully registered", userName), nil
}

// Authenticate returns the user whose stored hash matches password.
func (s *UserService) Authenticate(ctx context.Context, userName, password string) (*models.User, error) {
	user, err := s.users().GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewError(common.KindAuthFailure, fmt.Sprintf("Unable to find user %s", userName), err)
		}
		s.logger.Error(ctx, "user lookup failed", "user", userName, "error", err)
		return nil, common.NewError(common.KindInfrastructure, "Database error while finding user", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, passwordBytes(password)); err != nil {
		return nil, common.NewError(common.KindAuthFailure, fmt.Sprintf("Incorrect password for user %s", userName), common.ErrorUnauthorized)
	}

	return user, nil
}

// Login authenticates the user and returns a signed access token.
func (s *UserService) Login(ctx context.Context, userName, password string) (string, error) {
	user, err := s.Authenticate(ctx, userName, password)
	if err != nil {
		return "", err
	}

	token, err := auth.GenerateToken(user.ID, user.UserName, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		s.logger.Error(ctx, "token signing failed", "user", userName, "error", err)
		return "", common.NewError(common.KindInfrastructure, "Error generating token", err)
	}

	return token, nil
}

// GetUserByID resolves a user by id; the bearer middleware uses it to
// confirm that a token still names an existing account.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewError(common.KindNotFound, fmt.Sprintf("User not found with id: %s", id), err)
		}
		s.logger.Error(ctx, "user lookup failed", "id", id, "error", err)
		return nil, common.NewError(common.KindInfrastructure, fmt.Sprintf("Unable to find user with id: %s", id), err)
	}
	return user, nil
}

// GetFavourites returns the user's favourites; never nil on success.
func (s *UserService) GetFavourites(ctx context.Context, userID string) ([]string, error) {
	favourites, err := s.users().GetFavourites(ctx, userID)
	if err != nil {
		return nil, s.favouritesError(ctx, userID, err)
	}
	return nonNil(favourites), nil
}

// AddFavourite inserts itemID unless already present. A new item is
// rejected once the list holds favouritesLimit entries.
func (s *UserService) AddFavourite(ctx context.Context, userID, itemID string) ([]string, error) {
	if itemID == "" {
		return nil, common.NewError(common.KindValidation, "Item id is required", common.ErrorValidation)
	}
	favourites, err := s.users().AddFavourite(ctx, userID, itemID, s.favouritesLimit)
	if err != nil {
		return nil, s.favouritesError(ctx, userID, err)
	}
	return nonNil(favourites), nil
}

// RemoveFavourite deletes itemID if present; removing an absent item is a no-op.
func (s *UserService) RemoveFavourite(ctx context.Context, userID, itemID string) ([]string, error) {
	if itemID == "" {
		return nil, common.NewError(common.KindValidation, "Item id is required", common.ErrorValidation)
	}
	favourites, err := s.users().RemoveFavourite(ctx, userID, itemID)
	if err != nil {
		return nil, s.favouritesError(ctx, userID, err)
	}
	return nonNil(favourites), nil
}

func (s *UserService) favouritesError(ctx context.Context, userID string, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return common.NewError(common.KindNotFound, fmt.Sprintf("User not found with id: %s", userID), err)
	case errors.Is(err, common.ErrorFavouritesLimit):
		return common.NewError(common.KindValidation, fmt.Sprintf("Favourites limit of %d reached", s.favouritesLimit), err)
	}
	s.logger.Error(ctx, "favourites update failed", "id", userID, "error", err)
	return common.NewError(common.KindInfrastructure, fmt.Sprintf("Unable to update favourites for user with id: %s", userID), err)
}

// bcrypt only reads the first 72 bytes of a password and rejects longer
// input, so both hashing and comparison see the same truncated prefix.
const maxPasswordBytes = 72

func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
