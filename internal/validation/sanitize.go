package validation

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// SanitizeContent escapes HTML-significant characters in user-authored
// text before it is persisted, so stored content can never execute as
// markup when rendered.
func SanitizeContent(content string) string {
	return htmlEscaper.Replace(content)
}
