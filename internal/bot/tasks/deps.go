// Package tasks implements the scheduled tasks that drive the posting
// pipeline: generating, validating, and publishing channel posts, plus
// database maintenance.
package tasks

import (
	"log/slog"

	"github.com/Dmitrytsr966/Post-Telegram-RAG-LM-Studio-Web-BAG/internal/config"
	"github.com/Dmitrytsr966/Post-Telegram-RAG-LM-Studio-Web-BAG/internal/content"
	"github.com/Dmitrytsr966/Post-Telegram-RAG-LM-Studio-Web-BAG/internal/database"
	"github.com/Dmitrytsr966/Post-Telegram-RAG-LM-Studio-Web-BAG/internal/gemini"
	"github.com/Dmitrytsr966/Post-Telegram-RAG-LM-Studio-Web-BAG/internal/telegram"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger       *slog.Logger
	Store        database.Store
	GeminiClient gemini.Client
	Poster       telegram.Poster
	Validator    *content.Validator
	Config       *config.Config
}
