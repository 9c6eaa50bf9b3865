package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"flight_tracker/internal/common"
	"flight_tracker/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateCredentials(ctx context.Context, username string, salt, hashedPassword []byte) error
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, username, salt, hashed_password)
	          VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Username, user.Salt, user.HashedPassword)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("user with given username already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT id, username, salt, hashed_password, created_at, updated_at
	          FROM users WHERE username = $1`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.Salt, &user.HashedPassword, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByUsername: %w", err)
	}
	return user, nil
}

// UpdateCredentials replaces the stored salt and digest in place. The row keeps
// its id; only the password material and updated_at change.
func (r *pgUserRepository) UpdateCredentials(ctx context.Context, username string, salt, hashedPassword []byte) error {
	query := `UPDATE users SET salt = $2, hashed_password = $3, updated_at = now()
	          WHERE username = $1`
	res, err := r.db.ExecContext(ctx, query, username, salt, hashedPassword)
	if err != nil {
		return fmt.Errorf("pgUserRepository.UpdateCredentials: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgUserRepository.UpdateCredentials: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
