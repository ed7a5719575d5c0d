package logline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "2024-11-03T09:30:00.000 a b c type:price", "2024-11-03T09:30:00.000 a b c type:price"},
		{"empty", "", ""},
		{"color", "\x1b[32mINFO\x1b[0m done", "INFO done"},
		{"bold and params", "\x1b[1;31;40mERR\x1b[m", "ERR"},
		{"intermediate byte", "a\x1b[ @b", "ab"},
		{"two byte escape", "a\x1bMb\x1b\\c", "abc"},
		{"lone escape kept", "a\x1bzb", "a\x1bzb"},
		{"unterminated csi kept", "a\x1b[12", "a\x1b[12"},
		{"spliced sequence", "\x1b\x1b[m[m", ""},
		// The inner CSI goes first, leaving ESC A, which is removed in turn.
		{"spliced two byte escape", "\x1b\x1b[mA rest", " rest"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Strip(tt.in))
		})
	}
}

func TestStripIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"\x1b[32m2024-11-03T09:30:05.000\x1b[0m a b c type:price mid:101.0",
		"\x1b\x1b\x1b[m[m[m tail",
		"no escapes at all",
		"\x1b[",
		"\x1b",
	}
	for _, in := range inputs {
		once := Strip(in)
		assert.Equal(t, once, Strip(once), "input %q", in)
	}
}
