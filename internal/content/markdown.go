package content

import "strings"

// htmlEscaper escapes code span content before it is wrapped in <pre>/<code>.
// Ampersand is listed first; strings.Replacer walks the input once, so the
// entities it emits are never re-escaped.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// convertMarkdown rewrites the supported markdown subset into Telegram HTML.
// The order is fixed: links and code spans go first so later emphasis rules
// never re-interpret text that is already HTML.
func convertMarkdown(s string) string {
	s = mdLinkRegex.ReplaceAllString(s, `<a href="$2">$1</a>`)

	s = mdCodeBlockRegex.ReplaceAllStringFunc(s, func(m string) string {
		inner := mdCodeBlockRegex.FindStringSubmatch(m)[1]
		return "<pre>" + htmlEscaper.Replace(strings.TrimSpace(inner)) + "</pre>"
	})
	s = mdInlineCodeRegex.ReplaceAllStringFunc(s, func(m string) string {
		inner := mdInlineCodeRegex.FindStringSubmatch(m)[1]
		return "<code>" + htmlEscaper.Replace(strings.TrimSpace(inner)) + "</code>"
	})

	s = replaceUnlessAdjacent(s, mdBoldRegex, '*', "<b>", "</b>")
	s = mdBoldAltRegex.ReplaceAllString(s, "<b>$1</b>")
	s = replaceUnlessAdjacent(s, mdItalicRegex, '*', "<i>", "</i>")
	s = replaceUnlessAdjacent(s, mdItalicAltRegex, '_', "<i>", "</i>")
	s = mdStrikeRegex.ReplaceAllString(s, "<s>$1</s>")

	return s
}

// filterTags removes every HTML-like tag whose name is not allowed by
// Telegram. Only the tag delimiters are dropped; enclosed text survives.
// Allowed tags are kept verbatim, attributes included.
func filterTags(s string) string {
	return htmlTagRegex.ReplaceAllStringFunc(s, func(m string) string {
		name := strings.ToLower(htmlTagRegex.FindStringSubmatch(m)[1])
		if _, ok := allowedTags[name]; ok {
			return m
		}
		return ""
	})
}
