package content

import (
	"unicode"

	"github.com/forPelevin/gomoji"
)

// EmojiClassifier decides whether a single rune is an emoji. The validator
// takes it as an injected capability so the classification source can be
// swapped without touching the pipeline.
type EmojiClassifier interface {
	IsEmoji(r rune) bool
}

// LibraryClassifier classifies runes with the gomoji emoji database.
// It is the default classifier.
type LibraryClassifier struct{}

func (LibraryClassifier) IsEmoji(r rune) bool {
	return gomoji.ContainsEmoji(string(r))
}

// RangeClassifier classifies runes against a fixed set of Unicode ranges.
// It is intentionally broad and exists as a dependency-free fallback.
type RangeClassifier struct{}

func (RangeClassifier) IsEmoji(r rune) bool {
	return unicode.Is(emojiRanges, r)
}

var emojiRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x24C2, Hi: 0xFFFF, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x10000, Hi: 0x1F251, Stride: 1},
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1},
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1},
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1},
		{Lo: 0x1F700, Hi: 0x1F77F, Stride: 1},
		{Lo: 0x1F780, Hi: 0x1F7FF, Stride: 1},
		{Lo: 0x1F800, Hi: 0x1F8FF, Stride: 1},
		{Lo: 0x1F900, Hi: 0x1F9FF, Stride: 1},
		{Lo: 0x1FA00, Hi: 0x1FA6F, Stride: 1},
		{Lo: 0x1FA70, Hi: 0x1FAFF, Stride: 1},
	},
}
