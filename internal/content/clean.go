package content

import "strings"

// removeThinkingBlocks deletes delimited model-reasoning spans, tolerating
// attributes and whitespace inside the tag-like delimiters.
func removeThinkingBlocks(s string) string {
	return thinkBlockRegex.ReplaceAllString(s, "")
}

// removeThinkFragments deletes single-line reasoning leakage: "думаю:",
// "размышления:", "think:" labels, "#think" headers, and horizontal-rule
// dashes. These have no closing delimiter, so only the marker is removed.
func removeThinkFragments(s string) string {
	return thinkFragRegex.ReplaceAllString(s, "")
}

// removeTablesAndThinking strips leftover markdown and HTML tables, then
// re-applies thinking-block removal: the markdown and tag passes before it
// can expose spans that were not matchable earlier.
func removeTablesAndThinking(s string) string {
	s = tableMDRegex.ReplaceAllString(s, "")
	s = tableHTMLRegex.ReplaceAllString(s, "")
	return thinkBlockRegex.ReplaceAllString(s, "")
}

// cleanJunk applies the residual cleanup passes in fixed order: heading
// markers, LaTeX delimiters (inner content kept), null-like tokens,
// zero-width and bidi controls, escape artifacts, HTML entities, whitespace
// and punctuation collapsing, the character allowlist, and unsafe-scheme
// link unwrapping.
func (v *Validator) cleanJunk(s string) string {
	s = mdHeadingRegex.ReplaceAllStringFunc(s, func(m string) string {
		v.logger.Debug("removed markdown heading marker", "marker", m)
		return ""
	})

	s = latexBlockRegex.ReplaceAllStringFunc(s, func(m string) string {
		return strings.TrimSpace(latexBlockRegex.FindStringSubmatch(m)[1])
	})
	s = latexInlineRegex.ReplaceAllStringFunc(s, func(m string) string {
		return strings.TrimSpace(latexInlineRegex.FindStringSubmatch(m)[1])
	})

	s = nullTokenRegex.ReplaceAllString(s, "")
	s = zeroWidthRegex.ReplaceAllString(s, "")
	s = hexEscapeRegex.ReplaceAllString(s, "")
	s = unicodeEscapeRegex.ReplaceAllString(s, "")
	s = htmlEntityRegex.ReplaceAllString(s, "")
	s = tripleSpaceRegex.ReplaceAllString(s, "  ")
	s = invalidCharRegex.ReplaceAllString(s, "")
	s = tripleDotRegex.ReplaceAllString(s, "…")
	s = multiCommaRegex.ReplaceAllString(s, ",")
	s = unsafeSchemeLinkRegex.ReplaceAllString(s, "$1")
	s = multiSpaceRegex.ReplaceAllString(s, " ")
	s = multiNewlineRegex.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}
