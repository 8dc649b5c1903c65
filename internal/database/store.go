package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrNoPendingTopics is returned by NextPendingTopic when every topic in the
// queue has already been posted.
var ErrNoPendingTopics = errors.New("no pending topics")

// Store defines the database operations needed by the application.
type Store interface {
	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
	// AddTopic enqueues a new topic to generate a post about.
	AddTopic(ctx context.Context, subject, notes string) (int64, error)
	// NextPendingTopic returns the oldest topic that has not been posted yet.
	// Returns ErrNoPendingTopics when the queue is empty.
	NextPendingTopic(ctx context.Context) (*Topic, error)
	// MarkTopicPosted records that a post for the topic was published.
	MarkTopicPosted(ctx context.Context, topicID int64) error
	// SavePost saves a published post.
	SavePost(ctx context.Context, post *Post) error
	// RecentPosts retrieves the most recent published posts, newest first.
	RecentPosts(ctx context.Context, limit int) ([]*Post, error)
	// RunSQLMaintenance performs database maintenance (VACUUM and ANALYZE).
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore implements the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store instance.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func (s *sqlxStore) AddTopic(ctx context.Context, subject, notes string) (int64, error) {
	if subject == "" {
		return 0, errors.New("topic subject is empty")
	}

	query := `INSERT INTO topics (created_at, subject, notes) VALUES (?, ?, ?)`

	res, err := s.db.ExecContext(ctx, query, time.Now().UTC(), subject, notes)
	if err != nil {
		return 0, fmt.Errorf("failed to insert topic: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted topic ID: %w", err)
	}

	s.logger.Debug("Topic added", "topic_id", id, "subject", subject)
	return id, nil
}

func (s *sqlxStore) NextPendingTopic(ctx context.Context) (*Topic, error) {
	query := `SELECT id, created_at, subject, notes, posted_at
	          FROM topics
	          WHERE posted_at IS NULL
	          ORDER BY created_at ASC, id ASC
	          LIMIT 1`

	var topic Topic
	if err := s.db.GetContext(ctx, &topic, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoPendingTopics
		}
		return nil, fmt.Errorf("failed to query pending topic: %w", err)
	}

	return &topic, nil
}

func (s *sqlxStore) MarkTopicPosted(ctx context.Context, topicID int64) error {
	query := `UPDATE topics SET posted_at = ? WHERE id = ? AND posted_at IS NULL`

	res, err := s.db.ExecContext(ctx, query, time.Now().UTC(), topicID)
	if err != nil {
		return fmt.Errorf("failed to mark topic %d as posted: %w", topicID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected for topic %d: %w", topicID, err)
	}
	if affected == 0 {
		return fmt.Errorf("topic %d not found or already posted", topicID)
	}

	return nil
}

func (s *sqlxStore) SavePost(ctx context.Context, post *Post) error {
	if post == nil {
		return errors.New("post is nil")
	}
	if post.Content == "" {
		return errors.New("post content is empty")
	}

	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO posts (created_at, topic_id, chat_id, message_id, content)
	          VALUES (:created_at, :topic_id, :chat_id, :message_id, :content)`

	res, err := s.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted post ID: %w", err)
	}
	post.ID = id

	s.logger.Debug("Post saved", "post_id", id, "topic_id", post.TopicID, "message_id", post.MessageID)
	return nil
}

func (s *sqlxStore) RecentPosts(ctx context.Context, limit int) ([]*Post, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	query := `SELECT id, created_at, topic_id, chat_id, message_id, content
	          FROM posts
	          ORDER BY created_at DESC, id DESC
	          LIMIT ?`

	posts := []*Post{}
	if err := s.db.SelectContext(ctx, &posts, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query recent posts: %w", err)
	}

	return posts, nil
}

func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	s.logger.Info("Running database maintenance")

	if _, err := s.db.ExecContext(ctx, "VACUUM"); err != nil {
		return fmt.Errorf("failed to run VACUUM: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "ANALYZE"); err != nil {
		return fmt.Errorf("failed to run ANALYZE: %w", err)
	}

	s.logger.Info("Database maintenance completed")
	return nil
}
