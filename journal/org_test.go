package journal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRunOrg(t *testing.T) {
	t.Parallel()

	run, _, _ := sampleRun("01JBX0000000000000000000A1")
	run.ChartPNG = "two_scale.png"

	result := FormatRunOrg(run)

	assert.True(t, strings.HasPrefix(result, "* RUN: strategy.log (01JBX000)"))
	assert.Contains(t, result, ":PROPERTIES:")
	assert.Contains(t, result, ":RUN_ID:      01JBX0000000000000000000A1")
	assert.Contains(t, result, ":PROFIT_MODE: per_minute")
	assert.Contains(t, result, ":START:       2024-11-03 09:30:05")
	assert.Contains(t, result, ":END_TIME:    2024-11-03 09:31:10")
	assert.Contains(t, result, ":TICKS:       2")
	assert.Contains(t, result, ":NET_PROFIT:  2.0000")
	assert.Contains(t, result, ":CREATED:     [2024-11-03 Sun 12:00]")
	assert.Contains(t, result, ":END:")
	assert.Contains(t, result, "[[file:two_scale.png]]")
}

func TestFormatRunOrgWithoutChart(t *testing.T) {
	t.Parallel()

	run, _, _ := sampleRun("short")
	result := FormatRunOrg(run)

	assert.Contains(t, result, "(short)")
	assert.Contains(t, result, "pnlchart plot strategy.log")
	assert.NotContains(t, result, "[[file:")
}

func TestWriteRunOrg(t *testing.T) {
	t.Parallel()

	run, _, _ := sampleRun("R1")
	path := filepath.Join(t.TempDir(), "run.org")
	require.NoError(t, WriteRunOrg(path, run))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, FormatRunOrg(run), string(data))
}

func TestFormatFlushesOrg(t *testing.T) {
	t.Parallel()

	out := FormatFlushesOrg([]FlushRecord{
		{Time: at(9, 30, 40), Profit: 2, Fills: 2},
		{Time: at(9, 45, 0), Profit: -0.5, Fills: 4},
	})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| 2024-11-03 09:30:40 | 2.0000 | 2 |", lines[2])
	assert.Equal(t, "| 2024-11-03 09:45:00 | -0.5000 | 4 |", lines[3])
}
