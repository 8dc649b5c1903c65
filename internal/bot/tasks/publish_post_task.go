package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dmitrytsr966/Post-Telegram-RAG-LM-Studio-Web-BAG/internal/database"
)

// maxGenerationAttempts bounds how many times a single task run regenerates
// content for a topic when the validator rejects the draft.
const maxGenerationAttempts = 3

// newPublishPostTask creates the scheduled task that takes the next pending
// topic, generates a post with the AI client, validates and sanitizes it,
// and publishes the result to the channel.
func newPublishPostTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "publish_post")

	return func(ctx context.Context) error {
		topic, err := deps.Store.NextPendingTopic(ctx)
		if err != nil {
			if errors.Is(err, database.ErrNoPendingTopics) {
				log.InfoContext(ctx, "No pending topics in queue, nothing to publish")
				return nil
			}
			return fmt.Errorf("failed to fetch pending topic: %w", err)
		}

		log.InfoContext(ctx, "Publishing post for topic", "topic_id", topic.ID, "subject", topic.Subject)

		for attempt := 1; attempt <= maxGenerationAttempts; attempt++ {
			draft, err := deps.GeminiClient.GeneratePost(ctx, topic)
			if err != nil {
				return fmt.Errorf("post generation failed for topic %d: %w", topic.ID, err)
			}

			result := deps.Validator.Validate(draft)
			if !result.Accepted() {
				log.WarnContext(ctx, "Generated draft rejected, regenerating",
					"topic_id", topic.ID, "attempt", attempt, "reason", result.Reason)
				continue
			}

			messageID, err := deps.Poster.PostHTML(ctx, result.Text)
			if err != nil {
				return fmt.Errorf("failed to publish post for topic %d: %w", topic.ID, err)
			}

			post := &database.Post{
				CreatedAt: time.Now().UTC(),
				TopicID:   topic.ID,
				ChatID:    deps.Config.Telegram.ChannelID,
				MessageID: messageID,
				Content:   result.Text,
			}
			if err := deps.Store.SavePost(ctx, post); err != nil {
				// The post is already published; log and keep going so the
				// topic is not published twice on the next run.
				log.ErrorContext(ctx, "Failed to save published post", "topic_id", topic.ID, "error", err)
			}

			if err := deps.Store.MarkTopicPosted(ctx, topic.ID); err != nil {
				return fmt.Errorf("failed to mark topic %d as posted: %w", topic.ID, err)
			}

			log.InfoContext(ctx, "Post published successfully",
				"topic_id", topic.ID, "message_id", messageID, "attempt", attempt)
			return nil
		}

		return fmt.Errorf("all %d generated drafts rejected for topic %d", maxGenerationAttempts, topic.ID)
	}
}
