// Package mdtext neutralizes Markdown control characters in untrusted text
// before it is embedded into outbound chat messages.
package mdtext

import "strings"

// Markdown (legacy parse mode) breaks the whole message when a reserved
// character is left unbalanced, so reserved characters are swapped for
// lookalikes instead of backslash-escaped.
var replacer = strings.NewReplacer(
	"`", "'",
	"*", "×",
	"[", "(",
	"]", ")",
)

// Escape replaces Markdown control characters in text with harmless
// lookalikes. Literal URLs must never be passed through Escape; they are
// emitted verbatim inside link syntax.
func Escape(text string) string {
	if text == "" {
		return ""
	}
	return replacer.Replace(text)
}
