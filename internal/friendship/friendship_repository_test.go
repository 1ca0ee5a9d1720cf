package friendship

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockRepo(t *testing.T) (FriendshipRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	return NewFriendshipRepository(gdb), mock
}

func TestCountFriends(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "friendships"`).
		WithArgs("u1", string(StatusAccepted)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))

	count, err := repo.CountFriends(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemove(t *testing.T) {
	t.Run("DeletesBothRowsInOneTransaction", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "friendships"`).
			WithArgs("u1", "u2", "u2", "u1").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		require.NoError(t, repo.Remove(context.Background(), "u1", "u2"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NoRowsMeansNotFriends", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "friendships"`).
			WithArgs("u1", "u2", "u2", "u1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.Remove(context.Background(), "u1", "u2"), ErrNotFriends)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAcceptRequest(t *testing.T) {
	t.Run("FlipsRowAndMaterializesReverse", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "friendships" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "friendships"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.AcceptRequest(context.Background(), "requester", "target"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MissingPendingRowRollsBack", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "friendships" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.AcceptRequest(context.Background(), "requester", "target"), ErrRequestNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreateRequest(t *testing.T) {
	t.Run("LocksPairThenInserts", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "friendships"`).
			WithArgs("u1", "u2", "u2", "u1").
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "friend_id", "status"}))
		mock.ExpectExec(`INSERT INTO "friendships"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.CreateRequest(context.Background(), "u1", "u2"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ConcurrentOppositeRequestIsRejected", func(t *testing.T) {
		// The pair lock serialises both writers; the loser sees the row
		// the winner inserted and backs off.
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "friendships"`).
			WithArgs("u1", "u2", "u2", "u1").
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "friend_id", "status"}).
				AddRow("u2", "u1", string(StatusPending)))
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.CreateRequest(context.Background(), "u1", "u2"), ErrRequestExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ExistingFriendshipIsRejected", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "friendships"`).
			WithArgs("u1", "u2", "u2", "u1").
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "friend_id", "status"}).
				AddRow("u1", "u2", string(StatusAccepted)).
				AddRow("u2", "u1", string(StatusAccepted)))
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.CreateRequest(context.Background(), "u1", "u2"), ErrAlreadyFriends)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMarkInviteUsed(t *testing.T) {
	t.Run("ConsumesUnusedCode", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "invites" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.MarkInviteUsed(context.Background(), "abc123def456", "u1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AlreadyUsedCodeFails", func(t *testing.T) {
		// A racing redemption that lost the update still gets a clean
		// failure instead of a silent success.
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "invites" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		assert.ErrorIs(t, repo.MarkInviteUsed(context.Background(), "abc123def456", "u2"), ErrInviteInvalid)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFindBetweenEmptyInput(t *testing.T) {
	repo, mock := newMockRepo(t)

	// No IDs, no query.
	rows, err := repo.FindBetween(context.Background(), "u1", nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
