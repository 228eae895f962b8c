package textsplit_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/m-mizutani/gt"

	"github.com/nekocat0/relaybot/pkg/utils/textsplit"
)

func TestSplit_FitsInSingleSegment(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
	}{
		{name: "empty text", text: "", limit: 10},
		{name: "short text", text: "hello", limit: 10},
		{name: "exactly at limit", text: "0123456789", limit: 10},
		{name: "multiline within limit", text: "a\nb\nc", limit: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := textsplit.Split(tt.text, tt.limit)
			gt.Array(t, segments).Length(1)
			gt.Value(t, segments[0]).Equal(tt.text)
		})
	}
}

func TestSplit_PreservesContentAndLimit(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
	}{
		{
			name:  "lines grouped under limit",
			text:  "line one\nline two\nline three\nline four",
			limit: 20,
		},
		{
			name:  "single overlong line hard split",
			text:  strings.Repeat("x", 95),
			limit: 10,
		},
		{
			name:  "overlong line between normal lines",
			text:  "short\n" + strings.Repeat("y", 42) + "\nshort again",
			limit: 12,
		},
		{
			name:  "multibyte runes",
			text:  strings.Repeat("héllo wörld\n", 12),
			limit: 30,
		},
		{
			name:  "trailing newline kept",
			text:  "aaa\nbbb\nccc\n",
			limit: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := textsplit.Split(tt.text, tt.limit)

			gt.Number(t, len(segments)).Greater(1)
			for _, seg := range segments {
				gt.Number(t, utf8.RuneCountInString(seg)).LessOrEqual(tt.limit)
			}
			gt.Value(t, strings.Join(segments, "")).Equal(tt.text)
		})
	}
}

func TestSplit_Deterministic(t *testing.T) {
	text := "alpha\nbeta\ngamma\n" + strings.Repeat("z", 33)
	first := textsplit.Split(text, 10)
	second := textsplit.Split(text, 10)
	gt.Value(t, first).Equal(second)
}

func TestWithPartMarkers(t *testing.T) {
	t.Run("single segment untouched", func(t *testing.T) {
		marked := textsplit.WithPartMarkers([]string{"only one"})
		gt.Array(t, marked).Length(1)
		gt.Value(t, marked[0]).Equal("only one")
	})

	t.Run("multiple segments get ordered markers", func(t *testing.T) {
		marked := textsplit.WithPartMarkers([]string{"first", "second", "third"})
		gt.Array(t, marked).Length(3)
		gt.String(t, marked[0]).Contains("(1/3)")
		gt.String(t, marked[0]).Contains("first")
		gt.String(t, marked[1]).Contains("(2/3)")
		gt.String(t, marked[2]).Contains("(3/3)")
		gt.String(t, marked[2]).Contains("third")
	})

	t.Run("empty input", func(t *testing.T) {
		gt.Array(t, textsplit.WithPartMarkers(nil)).Length(0)
	})
}
