package users

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/favkeeper/internal/common"
	"github.com/dmitrijs2005/favkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, r *InMemoryRepository, id, name string) {
	t.Helper()
	_, err := r.Create(context.Background(), &models.User{ID: id, UserName: name, PasswordHash: []byte("h")})
	require.NoError(t, err)
}

func TestInMemory_CreateAndLookup(t *testing.T) {
	r := NewInMemoryRepository()
	ctx := context.Background()

	created, err := r.Create(ctx, &models.User{ID: "u1", UserName: "alice", PasswordHash: []byte("h")})
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, []string{}, created.Favourites)

	byName, err := r.GetUserByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", byName.ID)

	byID, err := r.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.UserName)

	_, err = r.GetUserByLogin(ctx, "Alice")
	assert.ErrorIs(t, err, common.ErrorNotFound, "usernames are case-sensitive")

	_, err = r.GetUserByID(ctx, "u2")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestInMemory_ConcurrentDuplicateRegistration(t *testing.T) {
	r := NewInMemoryRepository()

	const n = 20
	var ok, conflicts atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := r.Create(context.Background(), &models.User{ID: fmt.Sprintf("u%d", i), UserName: "alice"})
			switch {
			case err == nil:
				ok.Add(1)
			case err == common.ErrorAlreadyExists:
				conflicts.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, ok.Load())
	assert.EqualValues(t, n-1, conflicts.Load())
}

func TestInMemory_Favourites(t *testing.T) {
	r := NewInMemoryRepository()
	ctx := context.Background()
	seedUser(t, r, "u1", "alice")

	favs, err := r.AddFavourite(ctx, "u1", "item42", 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"item42"}, favs)

	favs, err = r.AddFavourite(ctx, "u1", "item42", 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"item42"}, favs, "adding twice is a no-op")

	favs, err = r.RemoveFavourite(ctx, "u1", "absent")
	require.NoError(t, err)
	assert.Equal(t, []string{"item42"}, favs)

	favs, err = r.RemoveFavourite(ctx, "u1", "item42")
	require.NoError(t, err)
	assert.Empty(t, favs)
	assert.NotNil(t, favs)

	_, err = r.AddFavourite(ctx, "ghost", "x", 50)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = r.RemoveFavourite(ctx, "ghost", "x")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = r.GetFavourites(ctx, "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestInMemory_FavouritesLimit(t *testing.T) {
	r := NewInMemoryRepository()
	ctx := context.Background()
	seedUser(t, r, "u1", "alice")

	for i := 0; i < 50; i++ {
		_, err := r.AddFavourite(ctx, "u1", fmt.Sprintf("item%d", i), 50)
		require.NoError(t, err)
	}

	_, err := r.AddFavourite(ctx, "u1", "item50", 50)
	assert.ErrorIs(t, err, common.ErrorFavouritesLimit)

	favs, err := r.AddFavourite(ctx, "u1", "item7", 50)
	require.NoError(t, err, "re-adding a present item at capacity succeeds")
	assert.Len(t, favs, 50)
}

func TestInMemory_ConcurrentAddsRespectLimit(t *testing.T) {
	r := NewInMemoryRepository()
	ctx := context.Background()
	seedUser(t, r, "u1", "alice")

	var wg sync.WaitGroup
	for i := 0; i < 80; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = r.AddFavourite(ctx, "u1", fmt.Sprintf("item%d", i), 50)
		}(i)
	}
	wg.Wait()

	favs, err := r.GetFavourites(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, favs, 50)
}

func TestInMemory_ReturnsCopies(t *testing.T) {
	r := NewInMemoryRepository()
	ctx := context.Background()
	seedUser(t, r, "u1", "alice")

	favs, err := r.AddFavourite(ctx, "u1", "a", 50)
	require.NoError(t, err)
	favs[0] = "mutated"

	got, err := r.GetFavourites(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got)
}
