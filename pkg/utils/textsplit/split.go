// Package textsplit chunks long messages so they fit a transport length
// limit while keeping line boundaries intact.
package textsplit

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Split breaks text into segments of at most limit runes. Text that already
// fits is returned unchanged as a single segment. Lines are never split
// across segments unless a single line alone exceeds the limit, in which
// case it is hard-split into limit-sized rune chunks. Concatenating the
// returned segments reproduces the input exactly.
func Split(text string, limit int) []string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var segments []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			segments = append(segments, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		lineLen := utf8.RuneCountInString(line)

		if lineLen > limit {
			flush()
			segments = append(segments, hardSplit(line, limit)...)
			continue
		}

		if currentLen+lineLen > limit {
			flush()
		}
		current.WriteString(line)
		currentLen += lineLen
	}
	flush()

	return segments
}

// hardSplit cuts a single overlong line into chunks of exactly limit runes
// (the last chunk may be shorter)
func hardSplit(line string, limit int) []string {
	var chunks []string
	runes := []rune(line)
	for start := 0; start < len(runes); start += limit {
		end := start + limit
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// WithPartMarkers prefixes each segment with a "(i/n)" marker so a chunked
// message reads as a coherent sequence. A single segment is returned
// untouched. Callers should leave headroom under the transport limit for
// the marker itself.
func WithPartMarkers(segments []string) []string {
	if len(segments) <= 1 {
		return segments
	}

	marked := make([]string, 0, len(segments))
	for i, seg := range segments {
		marked = append(marked, fmt.Sprintf("📄 (%d/%d)\n\n%s", i+1, len(segments), seg))
	}
	return marked
}
