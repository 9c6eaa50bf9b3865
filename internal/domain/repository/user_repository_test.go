package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"flight_tracker/internal/common"
	"flight_tracker/internal/domain/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRepoWithMock(t *testing.T) (UserRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPgUserRepository(db), mock, db
}

func TestPgUserRepository_Create(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("u-1", "alice", []byte("salt"), []byte("digest")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &model.User{
		ID: "u-1", Username: "alice", Salt: []byte("salt"), HashedPassword: []byte("digest"),
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgUserRepository_Create_DuplicateUsername(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &model.User{
		ID: "u-1", Username: "alice", Salt: []byte("salt"), HashedPassword: []byte("digest"),
	})
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestPgUserRepository_FindByUsername(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "username", "salt", "hashed_password", "created_at", "updated_at"}).
		AddRow("u-1", "alice", []byte("salt"), []byte("digest"), now, now)
	mock.ExpectQuery(`SELECT id, username, salt, hashed_password, created_at, updated_at`).
		WithArgs("alice").
		WillReturnRows(rows)

	user, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, []byte("salt"), user.Salt)
	assert.Equal(t, []byte("digest"), user.HashedPassword)
}

func TestPgUserRepository_FindByUsername_NotFound(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, username, salt, hashed_password`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestPgUserRepository_UpdateCredentials(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET salt`).
		WithArgs("alice", []byte("new-salt"), []byte("new-digest")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateCredentials(context.Background(), "alice", []byte("new-salt"), []byte("new-digest"))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgUserRepository_UpdateCredentials_NoRow(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET salt`).
		WithArgs("ghost", []byte("s"), []byte("d")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateCredentials(context.Background(), "ghost", []byte("s"), []byte("d"))
	assert.ErrorIs(t, err, common.ErrNotFound)
}
