package database_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Dmitrytsr966/Post-Telegram-RAG-LM-Studio-Web-BAG/internal/database"
)

func newTestStore(t *testing.T) database.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB(%q) failed: %v", dbPath, err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	return database.NewStore(db, nil)
}

func TestStorePing(t *testing.T) {
	store := newTestStore(t)

	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping() failed: %v", err)
	}
}

func TestTopicQueue(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.NextPendingTopic(ctx); !errors.Is(err, database.ErrNoPendingTopics) {
		t.Fatalf("NextPendingTopic() on empty queue: got %v, want ErrNoPendingTopics", err)
	}

	firstID, err := store.AddTopic(ctx, "История Рима", "конспект лекции")
	if err != nil {
		t.Fatalf("AddTopic() failed: %v", err)
	}
	if _, err := store.AddTopic(ctx, "Квантовая механика", ""); err != nil {
		t.Fatalf("AddTopic() failed: %v", err)
	}

	topic, err := store.NextPendingTopic(ctx)
	if err != nil {
		t.Fatalf("NextPendingTopic() failed: %v", err)
	}
	if topic.ID != firstID {
		t.Errorf("NextPendingTopic() returned topic %d, want oldest topic %d", topic.ID, firstID)
	}
	if topic.Subject != "История Рима" {
		t.Errorf("NextPendingTopic() subject = %q, want %q", topic.Subject, "История Рима")
	}
	if topic.PostedAt.Valid {
		t.Errorf("pending topic has posted_at set: %v", topic.PostedAt.Time)
	}

	if err := store.MarkTopicPosted(ctx, firstID); err != nil {
		t.Fatalf("MarkTopicPosted() failed: %v", err)
	}

	next, err := store.NextPendingTopic(ctx)
	if err != nil {
		t.Fatalf("NextPendingTopic() after marking failed: %v", err)
	}
	if next.ID == firstID {
		t.Errorf("NextPendingTopic() returned already posted topic %d", firstID)
	}

	if err := store.MarkTopicPosted(ctx, firstID); err == nil {
		t.Error("MarkTopicPosted() on already posted topic succeeded, want error")
	}
}

func TestAddTopicEmptySubject(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.AddTopic(context.Background(), "", "notes"); err == nil {
		t.Error("AddTopic() with empty subject succeeded, want error")
	}
}

func TestSaveAndListPosts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	topicID, err := store.AddTopic(ctx, "Тестовая тема", "")
	if err != nil {
		t.Fatalf("AddTopic() failed: %v", err)
	}

	contents := []string{"Первый пост.", "Второй пост.", "Третий пост."}
	for i, content := range contents {
		post := &database.Post{
			TopicID:   topicID,
			ChatID:    -1001234567890,
			MessageID: 100 + i,
			Content:   content,
		}
		if err := store.SavePost(ctx, post); err != nil {
			t.Fatalf("SavePost(%q) failed: %v", content, err)
		}
		if post.ID == 0 {
			t.Errorf("SavePost(%q) did not set post ID", content)
		}
	}

	posts, err := store.RecentPosts(ctx, 2)
	if err != nil {
		t.Fatalf("RecentPosts() failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("RecentPosts(2) returned %d posts, want 2", len(posts))
	}
	if posts[0].Content != "Третий пост." {
		t.Errorf("RecentPosts() first post = %q, want newest %q", posts[0].Content, "Третий пост.")
	}

	if _, err := store.RecentPosts(ctx, 0); err == nil {
		t.Error("RecentPosts(0) succeeded, want error")
	}
}

func TestSavePostValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SavePost(ctx, nil); err == nil {
		t.Error("SavePost(nil) succeeded, want error")
	}
	if err := store.SavePost(ctx, &database.Post{TopicID: 1}); err == nil {
		t.Error("SavePost() with empty content succeeded, want error")
	}
}

func TestRunSQLMaintenance(t *testing.T) {
	store := newTestStore(t)

	if err := store.RunSQLMaintenance(context.Background()); err != nil {
		t.Errorf("RunSQLMaintenance() failed: %v", err)
	}
}
