package content

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultTextLimit is Telegram's hard cap on message length.
	DefaultTextLimit = 4096
	// DefaultSafeLimit is the truncation target, leaving margin for
	// captions and other appended content.
	DefaultSafeLimit = 4000

	minContentLength     = 15
	minWordCount         = 3
	maxEmojiFraction     = 0.5
	maxEmojiRun          = 5
	repeatedCharLimit    = 11
	sentenceSearchWindow = 100
)

// Reason explains why a text was rejected. An empty Reason means acceptance.
type Reason string

const (
	ReasonInvalidInput Reason = "invalid_input"
	ReasonEmptyInput   Reason = "empty_input"
	ReasonEmojiSpam    Reason = "emoji_spam"
	ReasonLowQuality   Reason = "low_quality"
)

// Result is the outcome of a validation pass: either the sanitized text,
// or a rejection with its reason. Rejections always carry an empty Text.
type Result struct {
	Text   string
	Reason Reason
}

// Accepted reports whether the text passed every gate.
func (r Result) Accepted() bool { return r.Reason == "" }

// Limits carries the two configurable length bounds.
// Non-positive values fall back to the Telegram defaults.
type Limits struct {
	MaxLengthNoMedia   int
	MaxLengthWithMedia int
}

// Validator sanitizes generated text through a fixed pipeline of transforms
// and gates. A Validator is immutable after construction and safe for
// concurrent use.
type Validator struct {
	logger    *slog.Logger
	emoji     EmojiClassifier
	textLimit int
	safeLimit int
}

// Option customizes a Validator at construction time.
type Option func(*Validator)

// WithEmojiClassifier replaces the default emoji classification source.
func WithEmojiClassifier(c EmojiClassifier) Option {
	return func(v *Validator) {
		if c != nil {
			v.emoji = c
		}
	}
}

// New creates a Validator with the given limits. Construction never fails:
// out-of-range limits are coerced to defaults and a safe limit above the
// hard limit is clamped down to it.
func New(limits Limits, logger *slog.Logger, opts ...Option) *Validator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	textLimit := limits.MaxLengthNoMedia
	if textLimit <= 0 {
		textLimit = DefaultTextLimit
	}
	safeLimit := limits.MaxLengthWithMedia
	if safeLimit <= 0 {
		safeLimit = DefaultSafeLimit
	}
	if safeLimit > textLimit {
		safeLimit = textLimit
	}

	v := &Validator{
		logger:    logger.With("component", "content_validator"),
		emoji:     LibraryClassifier{},
		textLimit: textLimit,
		safeLimit: safeLimit,
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Validate runs the full pipeline over text and returns a tagged Result.
//
// Stage order is fixed: trim, thinking-block removal, markdown to HTML,
// tag allowlisting, table and residual cleanup, junk cleaning, the
// emoji-spam gate, length limiting, and the final quality gate. Each stage
// consumes the previous stage's output; the input is never mutated.
func (v *Validator) Validate(text string) Result {
	text = strings.TrimSpace(text)
	if text == "" {
		v.logger.Warn("empty content provided for validation")
		return Result{Reason: ReasonEmptyInput}
	}

	text = removeThinkingBlocks(text)
	text = removeThinkFragments(text)
	text = convertMarkdown(text)
	text = filterTags(text)
	text = removeTablesAndThinking(text)
	text = v.cleanJunk(text)

	if reason := v.checkEmojiSpam(text); reason != "" {
		v.logger.Warn("emoji spam detected", "detail", reason)
		return Result{Reason: ReasonEmojiSpam}
	}

	text = v.limitLength(text)

	if !v.passesQualityCheck(text) {
		v.logger.Warn("content failed quality validation")
		return Result{Reason: ReasonLowQuality}
	}

	return Result{Text: strings.TrimSpace(text)}
}

// Sanitize preserves the classic contract: the sanitized text on success,
// or an empty string on rejection. Callers must treat "" as a rejection,
// never as a valid zero-length success.
func (v *Validator) Sanitize(text string) string {
	return v.Validate(text).Text
}

// ValidateAny accepts untyped input and rejects anything that is not a
// string with an error-level log instead of panicking.
func (v *Validator) ValidateAny(value any) Result {
	s, ok := value.(string)
	if !ok {
		v.logger.Error("content validation input is not a string",
			"type", fmt.Sprintf("%T", value))
		return Result{Reason: ReasonInvalidInput}
	}

	return v.Validate(s)
}

// checkEmojiSpam returns a non-empty detail string when the text should be
// rejected as emoji spam: either emoji make up more than half of all
// characters, or a single emoji repeats contiguously maxEmojiRun times.
func (v *Validator) checkEmojiSpam(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	emojiCount := 0
	var last rune
	run := 0

	for _, r := range runes {
		if !v.emoji.IsEmoji(r) {
			last = 0
			run = 0
			continue
		}

		emojiCount++
		if r == last {
			run++
			if run >= maxEmojiRun {
				return "long emoji run"
			}
		} else {
			last = r
			run = 1
		}
	}

	if float64(emojiCount)/float64(len(runes)) > maxEmojiFraction {
		return "emoji fraction exceeds threshold"
	}

	return ""
}

// limitLength truncates text that exceeds the hard limit. It scans backward
// from the safe limit over a fixed window for a sentence end or paragraph
// break, cuts there (inclusive), and appends an ellipsis unless one is
// already present. Without a boundary in the window it cuts at the safe
// limit exactly. Lengths are counted in runes, matching Telegram.
func (v *Validator) limitLength(text string) string {
	runes := []rune(text)
	if len(runes) <= v.textLimit {
		return text
	}

	cut := v.safeLimit
	lo := cut - sentenceSearchWindow
	if lo < 0 {
		lo = 0
	}
	for i := cut - 1; i >= lo; i-- {
		if isSentenceBoundary(runes, i) {
			cut = i + 1
			break
		}
	}

	truncated := strings.TrimRight(string(runes[:cut]), " \t\r\n")
	if !strings.HasSuffix(truncated, "...") && !strings.HasSuffix(truncated, "…") {
		truncated += "…"
	}

	v.logger.Info("content truncated to fit length limit",
		"original_len", len(runes), "truncated_len", utf8.RuneCountInString(truncated))

	return truncated
}

func isSentenceBoundary(runes []rune, i int) bool {
	switch runes[i] {
	case '.', '!', '?':
		return true
	case '\n':
		return i+1 < len(runes) && runes[i+1] == '\n'
	}
	return false
}

// passesQualityCheck is the terminal gate: the text must reach the minimum
// length, contain at least three word tokens, and be free of pathological
// character repetition.
func (v *Validator) passesQualityCheck(text string) bool {
	if text == "" || utf8.RuneCountInString(text) < minContentLength {
		return false
	}

	if len(wordRegex.FindAllStringIndex(text, -1)) < minWordCount {
		return false
	}

	return !hasCharRun(text, repeatedCharLimit)
}
