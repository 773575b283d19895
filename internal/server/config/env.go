package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays values from the process environment. Variables from
// the given dotenv files (".env" when none) are loaded first; they never
// override variables that are already set. Missing dotenv files are ignored.
//
// Recognised variables:
//
//	PORT               HTTP port, bound on all interfaces
//	HTTP_ADDR          full HTTP bind address, wins over PORT
//	GRPC_ADDR          gRPC health service bind address
//	DATABASE_URL       PostgreSQL DSN (MONGO_URL accepted as a legacy alias)
//	JWT_SECRET         token signing secret
//	TOKEN_TTL          token lifetime, Go duration syntax
//	BCRYPT_COST        bcrypt work factor
//	FAVOURITES_LIMIT   favourites cap per user
//	LOG_FORMAT         json, text or zap
//	SHUTDOWN_TIMEOUT   Go duration syntax
//	HEALTH_CHECK_INTERVAL  Go duration syntax
func parseEnv(config *Config, dotenvFiles ...string) error {
	_ = godotenv.Load(dotenvFiles...)

	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		config.EndpointAddrHTTP = ":" + v
	}
	setString(&config.EndpointAddrHTTP, "HTTP_ADDR")
	setString(&config.EndpointAddrGRPC, "GRPC_ADDR")
	setString(&config.DatabaseDSN, "MONGO_URL")
	setString(&config.DatabaseDSN, "DATABASE_URL")
	setString(&config.SecretKey, "JWT_SECRET")
	setString(&config.LogFormat, "LOG_FORMAT")

	if err := setDuration(&config.AccessTokenValidityDuration, "TOKEN_TTL"); err != nil {
		return err
	}
	if err := setDuration(&config.ShutdownTimeout, "SHUTDOWN_TIMEOUT"); err != nil {
		return err
	}
	if err := setDuration(&config.HealthCheckInterval, "HEALTH_CHECK_INTERVAL"); err != nil {
		return err
	}
	if err := setInt(&config.BcryptCost, "BCRYPT_COST"); err != nil {
		return err
	}
	if err := setInt(&config.FavouritesLimit, "FAVOURITES_LIMIT"); err != nil {
		return err
	}

	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}
