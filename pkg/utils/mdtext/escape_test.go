package mdtext_test

import (
	"testing"

	"github.com/nekocat0/relaybot/pkg/utils/mdtext"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "plain text untouched",
			input: "AnyKernel3 v1.2 release",
			want:  "AnyKernel3 v1.2 release",
		},
		{
			name:  "backtick becomes quote",
			input: "run `make` now",
			want:  "run 'make' now",
		},
		{
			name:  "asterisk becomes times sign",
			input: "*bold* claim",
			want:  "×bold× claim",
		},
		{
			name:  "brackets become parentheses",
			input: "[link](x)",
			want:  "(link)(x)",
		},
		{
			name:  "all reserved characters at once",
			input: "`a`*b*[c]",
			want:  "'a'×b×(c)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mdtext.Escape(tt.input)
			if got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
