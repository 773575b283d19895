// Package users persists user records and their favourites.
package users

import (
	"context"

	"github.com/dmitrijs2005/favkeeper/internal/server/models"
)

// Repository is the storage contract for users. Implementations enforce
// username uniqueness themselves (common.ErrorAlreadyExists) and apply
// favourite changes atomically per user.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetFavourites(ctx context.Context, userID string) ([]string, error)
	// AddFavourite inserts itemID unless present. It fails with
	// common.ErrorFavouritesLimit when the user already holds limit items
	// and itemID is new.
	AddFavourite(ctx context.Context, userID, itemID string, limit int) ([]string, error)
	RemoveFavourite(ctx context.Context, userID, itemID string) ([]string, error)
}
