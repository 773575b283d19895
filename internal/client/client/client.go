package client

import "context"

// Client is the transport-agnostic contract for talking to the favkeeper
// backend. Favourites calls take the bearer token returned by Login.
type Client interface {
	Register(ctx context.Context, userName, password, password2 string) (string, error)
	Login(ctx context.Context, userName, password string) (string, error)
	Favourites(ctx context.Context, token string) ([]string, error)
	AddFavourite(ctx context.Context, token, itemID string) ([]string, error)
	RemoveFavourite(ctx context.Context, token, itemID string) ([]string, error)
	Health(ctx context.Context) error
}
