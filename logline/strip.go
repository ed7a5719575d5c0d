package logline

import (
	"regexp"
	"strings"
)

// ansiEscape matches a two byte ESC sequence or a CSI sequence
// (ESC [ params intermediates final).
var ansiEscape = regexp.MustCompile(`\x1B(?:[@-Z\\-_]|\[[0-?]*[ -/]*[@-~])`)

// Strip removes terminal color and formatting escape sequences from line.
// Everything else is left untouched. Removal repeats until nothing matches,
// so a sequence spliced together by an earlier removal is removed too and
// Strip(Strip(s)) == Strip(s).
func Strip(line string) string {
	for strings.IndexByte(line, 0x1B) >= 0 {
		out := ansiEscape.ReplaceAllString(line, "")
		if len(out) == len(line) {
			return out
		}
		line = out
	}
	return line
}
