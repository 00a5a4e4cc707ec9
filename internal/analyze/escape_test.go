package analyze

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEscapeString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "nothing to do", "nothing to do"},
		{"newline", "a\nb", `a\nb`},
		{"carriage return", "a\rb", `a\rb`},
		{"crlf pair", "a\r\nb", `a\r\nb`},
		{"quote", `say "hi"`, `say \"hi\"`},
		{"mixed", "\"a\r\nb\"c", `\"a\r\nb\"c`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, EscapeString(tt.in))
		})
	}
}

func TestEscapeStringLeavesNoRawControlChars(t *testing.T) {
	escaped := EscapeString("line one\r\nline two \"quoted\"\n")

	require.NotContains(t, escaped, "\r")
	require.NotContains(t, escaped, "\n")

	// Every quote must be preceded by a backslash
	for i := 0; i < len(escaped); i++ {
		if escaped[i] == '"' {
			require.Greater(t, i, 0)
			require.Equal(t, byte('\\'), escaped[i-1], "unescaped quote at %d in %q", i, escaped)
		}
	}

	require.Equal(t, 1, strings.Count(escaped, `\r`))
	require.Equal(t, 2, strings.Count(escaped, `\n`))
}
