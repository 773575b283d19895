package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/favkeeper/internal/common"
	"github.com/dmitrijs2005/favkeeper/internal/dbx"
	"github.com/dmitrijs2005/favkeeper/internal/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// textArray scans a TEXT[] column. pgtype.Map is not safe for concurrent
// use, so each scan gets its own.
func textArray(dst *[]string) sql.Scanner {
	return pgtype.NewMap().SQLScanner(dst)
}

// mapError translates driver errors into repository errors.
func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, pgErr.ConstraintName)
		case pgerrcode.InvalidTextRepresentation:
			// malformed uuid can never match a row
			return common.ErrorNotFound
		}
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (id, username, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.UserName, user.PasswordHash).Scan(&user.CreatedAt)

	if err != nil {
		return nil, mapError(err)
	}

	if user.Favourites == nil {
		user.Favourites = []string{}
	}

	return user, nil
}

func (r *PostgresRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	query :=
		`SELECT id, username, password_hash, favourites, created_at FROM users
		 WHERE username = $1
		 `

	return r.getOne(ctx, query, userName)
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, username, password_hash, favourites, created_at FROM users
		 WHERE id = $1
		 `

	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.UserName, &user.PasswordHash, textArray(&user.Favourites), &user.CreatedAt)

	if err != nil {
		return nil, mapError(err)
	}

	return user, nil
}

func (r *PostgresRepository) GetFavourites(ctx context.Context, userID string) ([]string, error) {
	query :=
		`SELECT favourites FROM users
		 WHERE id = $1
		 `

	var favourites []string
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(textArray(&favourites)); err != nil {
		return nil, mapError(err)
	}

	return favourites, nil
}

// AddFavourite performs the capacity check and the insert in one UPDATE so
// concurrent adds for the same user cannot jointly exceed the limit. When
// no row is updated a second query tells a missing user from a full list.
func (r *PostgresRepository) AddFavourite(ctx context.Context, userID, itemID string, limit int) ([]string, error) {
	query :=
		`UPDATE users
		 SET favourites = CASE WHEN $2 = ANY(favourites) THEN favourites ELSE array_append(favourites, $2) END
		 WHERE id = $1 AND ($2 = ANY(favourites) OR cardinality(favourites) < $3)
		 RETURNING favourites
		 `

	var favourites []string
	err := r.db.QueryRowContext(ctx, query, userID, itemID, limit).Scan(textArray(&favourites))
	if err == nil {
		return favourites, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, mapError(err)
	}

	exists, err := r.exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, common.ErrorNotFound
	}
	return nil, common.ErrorFavouritesLimit
}

func (r *PostgresRepository) RemoveFavourite(ctx context.Context, userID, itemID string) ([]string, error) {
	query :=
		`UPDATE users
		 SET favourites = array_remove(favourites, $2)
		 WHERE id = $1
		 RETURNING favourites
		 `

	var favourites []string
	if err := r.db.QueryRowContext(ctx, query, userID, itemID).Scan(textArray(&favourites)); err != nil {
		return nil, mapError(err)
	}

	return favourites, nil
}

func (r *PostgresRepository) exists(ctx context.Context, userID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, mapError(err)
	}
	return exists, nil
}
