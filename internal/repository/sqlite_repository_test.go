package repository

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supportbot/internal/database"
	"supportbot/internal/model"
)

func setupMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	db, mockDB, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mockDB.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewSQLiteRepository(db), mockDB
}

func TestSQLiteRepository_CreateConversation(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	conv := &model.Conversation{SessionID: "s1", UserMessage: "hi", LLMProvider: "echo", LLMResponse: "hello", Timestamp: now}

	t.Run("Success", func(t *testing.T) {
		repo, mockDB := setupMockRepo(t)
		mockDB.ExpectExec("INSERT INTO conversations").
			WithArgs("s1", "hi", "echo", "hello", now).
			WillReturnResult(sqlmock.NewResult(7, 1))

		id, err := repo.CreateConversation(ctx, conv)

		require.NoError(t, err)
		assert.Equal(t, int64(7), id)
		assert.Equal(t, int64(7), conv.ID)
	})

	t.Run("Failure - insert fails", func(t *testing.T) {
		repo, mockDB := setupMockRepo(t)
		mockDB.ExpectExec("INSERT INTO conversations").WillReturnError(errors.New("disk full"))

		_, err := repo.CreateConversation(ctx, conv)

		assert.ErrorContains(t, err, "disk full")
	})
}

func TestSQLiteRepository_GetConversation(t *testing.T) {
	ctx := context.Background()

	t.Run("Not found", func(t *testing.T) {
		repo, mockDB := setupMockRepo(t)
		mockDB.ExpectQuery("SELECT (.+) FROM conversations WHERE id = ?").
			WithArgs(int64(3)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetConversation(ctx, 3)

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Found", func(t *testing.T) {
		repo, mockDB := setupMockRepo(t)
		now := time.Now().UTC()
		mockDB.ExpectQuery("SELECT (.+) FROM conversations WHERE id = ?").
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "user_message", "llm_provider", "llm_response", "timestamp"}).
				AddRow(3, "s1", "hi", "echo", "hello", now))

		conv, err := repo.GetConversation(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, "echo", conv.LLMProvider)
		assert.Equal(t, now, conv.Timestamp)
	})
}

func TestSQLiteRepository_ListConversations(t *testing.T) {
	repo, mockDB := setupMockRepo(t)
	now := time.Now().UTC()
	mockDB.ExpectQuery("SELECT (.+) FROM conversations c LEFT JOIN ratings r").
		WithArgs("", "", 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "llm_provider", "user_message", "llm_response", "timestamp", "rating", "feedback"}).
			AddRow(2, "echo", "b", "B", now, 4, "nice").
			AddRow(1, "echo", "a", "A", now.Add(-time.Minute), nil, nil))

	records, err := repo.ListConversations(context.Background(), "", 10)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, model.ConversationID("2"), records[0].ID)
	require.NotNil(t, records[0].Rating)
	assert.Equal(t, 4, *records[0].Rating)
	assert.Equal(t, "nice", *records[0].Feedback)
	assert.Nil(t, records[1].Rating)
	assert.Nil(t, records[1].Feedback)
}

func TestSQLiteRepository_UpsertRating(t *testing.T) {
	repo, mockDB := setupMockRepo(t)
	now := time.Now().UTC()
	feedback := "great"
	mockDB.ExpectExec("INSERT INTO ratings (.+) ON CONFLICT").
		WithArgs(int64(5), 4, &feedback, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.UpsertRating(context.Background(), &model.Rating{ConversationID: 5, Rating: 4, Feedback: &feedback, Timestamp: now})

	assert.NoError(t, err)
}

// TestSQLiteRepository_RealDatabase runs the queries against a migrated
// SQLite file so the SQL itself is exercised.
func TestSQLiteRepository_RealDatabase(t *testing.T) {
	ctx := context.Background()
	db, err := database.InitDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := NewSQLiteRepository(db)

	now := time.Now().UTC()
	old := now.Add(-10 * 24 * time.Hour)
	first, err := repo.CreateConversation(ctx, &model.Conversation{SessionID: "s1", UserMessage: "old", LLMProvider: "echo", LLMResponse: "r", Timestamp: old})
	require.NoError(t, err)
	second, err := repo.CreateConversation(ctx, &model.Conversation{SessionID: "s2", UserMessage: "new", LLMProvider: "ollama", LLMResponse: "r", Timestamp: now})
	require.NoError(t, err)

	require.NoError(t, repo.UpsertRating(ctx, &model.Rating{ConversationID: first, Rating: 2, Timestamp: now}))
	require.NoError(t, repo.UpsertRating(ctx, &model.Rating{ConversationID: first, Rating: 5, Timestamp: now}))
	require.NoError(t, repo.UpsertRating(ctx, &model.Rating{ConversationID: second, Rating: 3, Timestamp: now}))

	t.Run("History is newest first and filterable", func(t *testing.T) {
		all, err := repo.ListConversations(ctx, "", 50)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "new", all[0].UserMessage)
		assert.Equal(t, 5, *all[1].Rating, "a second rating replaces the first")

		mine, err := repo.ListConversations(ctx, "s1", 50)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, "old", mine[0].UserMessage)
	})

	t.Run("Stats", func(t *testing.T) {
		week, err := repo.StatsSince(ctx, now.Add(-7*24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, model.StatBlock{TotalConversations: 1, TotalRatings: 1, AverageRating: 3}, week)

		byProvider, err := repo.ProviderStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, model.StatBlock{TotalConversations: 1, TotalRatings: 1, AverageRating: 5}, byProvider["echo"])
		assert.Equal(t, model.StatBlock{TotalConversations: 1, TotalRatings: 1, AverageRating: 3}, byProvider["ollama"])
	})

	t.Run("Rating an unknown conversation violates the foreign key", func(t *testing.T) {
		err := repo.UpsertRating(ctx, &model.Rating{ConversationID: 999, Rating: 3, Timestamp: now})
		assert.Error(t, err)
	})
}
