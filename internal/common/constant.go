package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token in the Authorization header.
const BearerPrefix = "Bearer "

// DefaultFavouritesLimit is the maximum number of distinct favourites per user.
const DefaultFavouritesLimit = 50
