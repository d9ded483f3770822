package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"supportbot/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateConversation(ctx context.Context, conv *model.Conversation) (int64, error) {
	query := "INSERT INTO conversations (session_id, user_message, llm_provider, llm_response, timestamp) VALUES (?, ?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, query, conv.SessionID, conv.UserMessage, conv.LLMProvider, conv.LLMResponse, conv.Timestamp)
	if err != nil {
		return 0, fmt.Errorf("could not insert conversation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("could not read conversation id: %w", err)
	}
	conv.ID = id
	return id, nil
}

func (r *sqliteRepository) GetConversation(ctx context.Context, id int64) (*model.Conversation, error) {
	query := "SELECT id, session_id, user_message, llm_provider, llm_response, timestamp FROM conversations WHERE id = ?"
	row := r.db.QueryRowContext(ctx, query, id)
	var conv model.Conversation
	err := row.Scan(&conv.ID, &conv.SessionID, &conv.UserMessage, &conv.LLMProvider, &conv.LLMResponse, &conv.Timestamp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// ListConversations returns the newest conversations first, with their
// rating when one exists. An empty sessionID lists every session.
func (r *sqliteRepository) ListConversations(ctx context.Context, sessionID string, limit int) ([]model.ConversationRecord, error) {
	query := `
		SELECT c.id, c.llm_provider, c.user_message, c.llm_response, c.timestamp, r.rating, r.feedback
		FROM conversations c
		LEFT JOIN ratings r ON r.conversation_id = c.id
		WHERE (? = '' OR c.session_id = ?)
		ORDER BY c.timestamp DESC, c.id DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, sessionID, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.ConversationRecord{}
	for rows.Next() {
		var rec model.ConversationRecord
		var id int64
		var rating sql.NullInt64
		var feedback sql.NullString
		if err := rows.Scan(&id, &rec.LLMProvider, &rec.UserMessage, &rec.LLMResponse, &rec.Timestamp.Time, &rating, &feedback); err != nil {
			return nil, err
		}
		rec.ID = model.ConversationID(strconv.FormatInt(id, 10))
		if rating.Valid {
			n := int(rating.Int64)
			rec.Rating = &n
		}
		if feedback.Valid {
			rec.Feedback = &feedback.String
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// UpsertRating stores the rating for a conversation, replacing any earlier one.
func (r *sqliteRepository) UpsertRating(ctx context.Context, rating *model.Rating) error {
	query := `
		INSERT INTO ratings (conversation_id, rating, feedback, timestamp)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(conversation_id) DO UPDATE SET
			rating = excluded.rating,
			feedback = excluded.feedback,
			timestamp = excluded.timestamp
	`
	_, err := r.db.ExecContext(ctx, query, rating.ConversationID, rating.Rating, rating.Feedback, rating.Timestamp)
	if err != nil {
		return fmt.Errorf("could not save rating: %w", err)
	}
	return nil
}

// StatsSince aggregates conversations started at or after since.
func (r *sqliteRepository) StatsSince(ctx context.Context, since time.Time) (model.StatBlock, error) {
	query := `
		SELECT COUNT(c.id), COUNT(r.id), COALESCE(AVG(r.rating), 0)
		FROM conversations c
		LEFT JOIN ratings r ON r.conversation_id = c.id
		WHERE c.timestamp >= ?
	`
	var stats model.StatBlock
	err := r.db.QueryRowContext(ctx, query, since).Scan(&stats.TotalConversations, &stats.TotalRatings, &stats.AverageRating)
	if err != nil {
		return model.StatBlock{}, fmt.Errorf("could not aggregate stats: %w", err)
	}
	return stats, nil
}

func (r *sqliteRepository) ProviderStats(ctx context.Context) (map[string]model.StatBlock, error) {
	query := `
		SELECT c.llm_provider, COUNT(c.id), COUNT(r.id), COALESCE(AVG(r.rating), 0)
		FROM conversations c
		LEFT JOIN ratings r ON r.conversation_id = c.id
		GROUP BY c.llm_provider
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]model.StatBlock)
	for rows.Next() {
		var provider string
		var stats model.StatBlock
		if err := rows.Scan(&provider, &stats.TotalConversations, &stats.TotalRatings, &stats.AverageRating); err != nil {
			return nil, err
		}
		out[provider] = stats
	}
	return out, rows.Err()
}
