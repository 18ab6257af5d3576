package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/cardlink/cardlink-services/internal/apisvc/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a row does not exist or belongs to
// someone else.
var ErrNotFound = errors.New("not found")

type UserStore struct {
	db *pgxpool.Pool
}

func NewUserStore(db *pgxpool.Pool) *UserStore {
	return &UserStore{db: db}
}

func (r *UserStore) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	query := `
        INSERT INTO users (id, name, email, password, avatar)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at;
    `

	err := r.db.QueryRow(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Avatar,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("could not create user: %v", err)
	}

	return &user, nil
}

func (r *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, name, email, password, avatar, created_at, updated_at
        FROM users
        WHERE email = $1
    `, email)

	u := &models.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Avatar, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (r *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, name, email, password, avatar, created_at, updated_at
        FROM users
        WHERE id = $1
    `, id)

	u := &models.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Avatar, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (r *UserStore) UpdateProfile(ctx context.Context, id, name, avatar string) (*models.User, error) {
	row := r.db.QueryRow(ctx, `
        UPDATE users
        SET name = $2, avatar = $3, updated_at = now()
        WHERE id = $1
        RETURNING id, name, email, password, avatar, created_at, updated_at
    `, id, name, avatar)

	u := &models.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Avatar, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return u, nil
}
