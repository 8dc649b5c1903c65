package database

import (
	"database/sql"
	"time"
)

// Topic is a queued subject the bot should write a post about. Topics are
// consumed in insertion order and marked once a post for them is published.
type Topic struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	Subject string `db:"subject"`
	Notes   string `db:"notes"` // optional source material passed to the generator

	PostedAt sql.NullTime `db:"posted_at"`
}

// Post is a published channel message: the sanitized HTML that was sent,
// the topic it came from, and where it ended up.
type Post struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	TopicID   int64  `db:"topic_id"`
	ChatID    int64  `db:"chat_id"`
	MessageID int    `db:"message_id"`
	Content   string `db:"content"`
}
