package users

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/favkeeper/internal/common"
	"github.com/dmitrijs2005/favkeeper/internal/server/models"
)

// InMemoryRepository keeps users in process memory. A single mutex makes
// each operation atomic, matching the guarantees of the Postgres store.
type InMemoryRepository struct {
	mu     sync.RWMutex
	byID   map[string]*models.User
	byName map[string]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:   make(map[string]*models.User),
		byName: make(map[string]string),
	}
}

func (r *InMemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byName[user.UserName]; taken {
		return nil, common.ErrorAlreadyExists
	}
	if _, taken := r.byID[user.ID]; taken {
		return nil, common.ErrorAlreadyExists
	}

	stored := *user
	stored.CreatedAt = time.Now().UTC()
	stored.Favourites = []string{}
	r.byID[stored.ID] = &stored
	r.byName[stored.UserName] = stored.ID

	return clone(&stored), nil
}

func (r *InMemoryRepository) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(r.byID[id]), nil
}

func (r *InMemoryRepository) GetUserByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(u), nil
}

func (r *InMemoryRepository) GetFavourites(_ context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return slices.Clone(u.Favourites), nil
}

func (r *InMemoryRepository) AddFavourite(_ context.Context, userID, itemID string, limit int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if !u.HasFavourite(itemID) {
		if len(u.Favourites) >= limit {
			return nil, common.ErrorFavouritesLimit
		}
		u.Favourites = append(u.Favourites, itemID)
	}
	return slices.Clone(u.Favourites), nil
}

func (r *InMemoryRepository) RemoveFavourite(_ context.Context, userID, itemID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u.Favourites = slices.DeleteFunc(u.Favourites, func(f string) bool { return f == itemID })
	return slices.Clone(u.Favourites), nil
}

func clone(u *models.User) *models.User {
	c := *u
	c.PasswordHash = slices.Clone(u.PasswordHash)
	c.Favourites = slices.Clone(u.Favourites)
	return &c
}
