package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horrygame/ficarchive/internal/logger"
)

func newMockUserRepo(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db := &DB{DB: conn, logger: logger.Nop()}
	return NewSQLUserRepository(db, logger.Nop()), mock
}

func TestSQLUserRepository_CreateUser(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	user := testUser("id-1", "alice", "100")
	query, _, err := buildInsertUserQuery(user, user.TelegramChatID)
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(query)).
		WithArgs(user.ID, user.Username, user.PasswordHash, user.TelegramChatID, user.IsAdmin, user.CreatedAt, user.LastLoginAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	created, err := repo.CreateUser(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, user, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLUserRepository_CreateUser_ConstraintFailure(t *testing.T) {
	repo, mock := newMockUserRepo(t)
	user := testUser("id-1", "alice", "")

	driverErr := sqlite3.Error{
		Code:         sqlite3.ErrConstraint,
		ExtendedCode: sqlite3.ErrConstraintUnique,
	}
	mock.ExpectExec("INSERT INTO users").WillReturnError(driverErr)

	_, err := repo.CreateUser(context.Background(), user)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoUserWasFound)
}

func TestSQLUserRepository_FindUserByUsername(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	createdAt := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	query, _, err := buildSelectUserByUsernameQuery("alice")
	require.NoError(t, err)

	rows := sqlmock.NewRows(userColumns).
		AddRow("id-1", "alice", "$2a$10$hash", "100", false, createdAt, createdAt)
	mock.ExpectQuery(regexp.QuoteMeta(query)).WithArgs("alice").WillReturnRows(rows)

	user, err := repo.FindUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "id-1", user.ID)
	assert.Equal(t, "100", user.TelegramChatID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLUserRepository_FindUserByUsername_NullChatID(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	createdAt := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(userColumns).
		AddRow("id-1", "alice", "$2a$10$hash", nil, false, createdAt, createdAt)
	mock.ExpectQuery("SELECT .+ FROM users").WillReturnRows(rows)

	user, err := repo.FindUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, user.TelegramChatID, "a NULL chat id scans to the unbound state")
}

func TestSQLUserRepository_FindUserByUsername_NotFound(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectQuery("SELECT .+ FROM users").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestSQLUserRepository_UpdateUser_NoRowsAffected(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.UpdateUser(context.Background(), testUser("ghost", "nobody", ""))
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}
