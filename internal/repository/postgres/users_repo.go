package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/madeee1/exercise-tracker/internal/models"
	"github.com/madeee1/exercise-tracker/internal/repository"
)

type usersRepo struct{ pool *pgxpool.Pool }

func NewUsers(pool *pgxpool.Pool) repository.Users {
	return &usersRepo{pool: pool}
}

const uniqueViolation = "23505"

func (r *usersRepo) Create(ctx context.Context, username string) (models.User, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users(id, username, log) VALUES($1, $2, '[]'::jsonb)`,
		id, username,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.User{}, repository.ErrDuplicateUsername
		}
		return models.User{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	return r.get(ctx, `SELECT id, username, log FROM users WHERE id=$1`, id)
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return r.get(ctx, `SELECT id, username, log FROM users WHERE username=$1`, username)
}

func (r *usersRepo) get(ctx context.Context, query, arg string) (models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Username, &u.Log)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, repository.ErrNotFound
	}
	return u, err
}

func (r *usersRepo) List(ctx context.Context) ([]models.UserRef, error) {
	// no ORDER BY: listing shows store-native order
	rows, err := r.pool.Query(ctx, `SELECT id, username FROM users`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.UserRef
	for rows.Next() {
		var ref models.UserRef
		if err := rows.Scan(&ref.ID, &ref.Username); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

func (r *usersRepo) AppendExercise(ctx context.Context, id string, e models.Exercise) (models.User, error) {
	entry, err := json.Marshal(e)
	if err != nil {
		return models.User{}, err
	}

	var u models.User
	err = r.pool.QueryRow(ctx,
		`UPDATE users SET log = log || $2::jsonb WHERE id=$1 RETURNING id, username, log`,
		id, entry,
	).Scan(&u.ID, &u.Username, &u.Log)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, repository.ErrNotFound
	}
	return u, err
}
