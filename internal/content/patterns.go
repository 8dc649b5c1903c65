// Package content validates and sanitizes generated text before it is
// published as Telegram HTML.
package content

import (
	"regexp"
	"strings"
)

// Tags Telegram renders in HTML parse mode. Everything else is stripped.
// https://core.telegram.org/bots/api#formatting-options
var allowedTags = map[string]struct{}{
	"b": {}, "strong": {}, "i": {}, "em": {}, "u": {}, "ins": {},
	"s": {}, "strike": {}, "del": {}, "code": {}, "pre": {}, "a": {},
}

var (
	htmlTagRegex    = regexp.MustCompile(`</?([a-zA-Z0-9]+)[^>]*>`)
	tableMDRegex    = regexp.MustCompile(`(?:\|[^\n|]+\|[^\n]*\n)+(?:\|[-:| ]+\|[^\n]*\n)+(?:\|[^\n|]+\|[^\n]*\n?)+`)
	tableHTMLRegex  = regexp.MustCompile(`(?is)<table[\s\S]*?</table>`)
	thinkBlockRegex = regexp.MustCompile(`(?is)<\s*think[^>]*>.*?<\s*/\s*think\s*>`)
	thinkFragRegex  = regexp.MustCompile(`(?im)(размышления:|---|думаю:|#\s*think\s*|^\s*think\s*:)`)

	nullTokenRegex     = regexp.MustCompile(`(?i)\b(nan|None|null|NULL)\b`)
	zeroWidthRegex     = regexp.MustCompile(`[\x{200B}-\x{200F}\x{202A}-\x{202E}]+`)
	hexEscapeRegex     = regexp.MustCompile(`\\x[0-9a-fA-F]{2}`)
	unicodeEscapeRegex = regexp.MustCompile(`_x[0-9A-Fa-f]{4}_`)
	htmlEntityRegex    = regexp.MustCompile(`&[a-zA-Z0-9#]+;`)

	// Residual character allowlist: tab/LF/CR, printable ASCII, Cyrillic,
	// the numero sign, and the ellipsis the pipeline itself emits.
	// Everything outside it is dropped.
	invalidCharRegex = regexp.MustCompile(`[^\x{09}\x{0A}\x{0D}\x{20}-\x{7E}а-яА-ЯёЁ№…]`)

	tripleSpaceRegex      = regexp.MustCompile(` {3,}`)
	tripleDotRegex        = regexp.MustCompile(`\.{3,}`)
	multiCommaRegex       = regexp.MustCompile(`,,+`)
	unsafeSchemeLinkRegex = regexp.MustCompile(`(?i)\[([^\]]+)\]\((?:javascript|data):[^)]+\)`)
	multiSpaceRegex       = regexp.MustCompile(` {2,}`)
	multiNewlineRegex     = regexp.MustCompile(`\n{3,}`)
	mdHeadingRegex        = regexp.MustCompile(`(?m)^[ \t]*#{2,4}[ \t]*`)
	latexBlockRegex       = regexp.MustCompile(`\$\$([\s\S]*?)\$\$`)
	latexInlineRegex      = regexp.MustCompile(`(?s)\$([^$]+?)\$`)

	mdLinkRegex       = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^)]+)\)`)
	mdCodeBlockRegex  = regexp.MustCompile("(?s)```(.*?)```")
	mdInlineCodeRegex = regexp.MustCompile("`([^`\n]+)`")
	mdBoldRegex       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	mdBoldAltRegex    = regexp.MustCompile(`__([^_]+)__`)
	mdItalicRegex     = regexp.MustCompile(`\*([^*]+)\*`)
	mdItalicAltRegex  = regexp.MustCompile(`_([^_]+)_`)
	mdStrikeRegex     = regexp.MustCompile(`~~([^~]+)~~`)

	wordRegex = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

// hasCharRun reports whether any single character repeats contiguously
// at least limit times. Go's regexp engine has no backreferences, so the
// (.)\1{n,} idiom is expressed as a rune scan instead.
func hasCharRun(s string, limit int) bool {
	var prev rune
	run := 0

	for _, r := range s {
		if r == prev {
			run++
		} else {
			prev = r
			run = 1
		}

		if run >= limit {
			return true
		}
	}

	return false
}

// replaceUnlessAdjacent rewrites every match of re (which must have one
// capture group) as open+group+close, skipping matches immediately preceded
// or followed by marker. This stands in for the lookaround guards of
// classic markdown emphasis handling, which RE2 does not support.
func replaceUnlessAdjacent(s string, re *regexp.Regexp, marker byte, open, close string) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if matches == nil {
		return s
	}

	var b strings.Builder

	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if (start > 0 && s[start-1] == marker) || (end < len(s) && s[end] == marker) {
			continue
		}

		b.WriteString(s[last:start])
		b.WriteString(open)
		b.WriteString(s[m[2]:m[3]])
		b.WriteString(close)
		last = end
	}

	b.WriteString(s[last:])

	return b.String()
}
