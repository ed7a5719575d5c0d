package chart

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/pnlchart/series"
)

func sampleTicks() []series.Tick {
	start := time.Date(2024, 11, 3, 9, 30, 5, 0, time.UTC)
	var ticks []series.Tick
	for i := 0; i < 30; i++ {
		ticks = append(ticks, series.Tick{
			Time:   start.Add(time.Duration(i) * time.Minute),
			Mid:    100 + float64(i%7) - 3,
			Profit: float64(i%5) - 2,
		})
	}
	return ticks
}

func TestSymmetric(t *testing.T) {
	t.Parallel()

	tests := []struct {
		first, max, min float64
		lo, hi          float64
	}{
		{first: 100, max: 103, min: 99, lo: 97, hi: 103},
		{first: 100, max: 101, min: 95, lo: 95, hi: 105},
		{first: 0, max: 0, min: 0, lo: 0, hi: 0},
		{first: -1, max: 2, min: -1, lo: -4, hi: 2},
	}
	for _, tt := range tests {
		lo, hi := Symmetric(tt.first, tt.max, tt.min)
		assert.Equal(t, tt.lo, lo, "%+v", tt)
		assert.Equal(t, tt.hi, hi, "%+v", tt)
	}
}

func TestWriteDimensions(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleTicks(), Options{Width: 800, Height: 450}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 450, img.Bounds().Dy())
}

func TestRenderDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "two_scale.png")
	require.NoError(t, Render(path, sampleTicks(), Options{Mode: series.Cumulative}))

	fh, err := os.Open(path)
	require.NoError(t, err)
	defer fh.Close()

	cfg, err := png.DecodeConfig(fh)
	require.NoError(t, err)
	assert.Equal(t, DefaultWidth, cfg.Width)
	assert.Equal(t, DefaultHeight, cfg.Height)
}

func TestRenderSingleFlatTick(t *testing.T) {
	t.Parallel()

	ticks := []series.Tick{{Time: time.Date(2024, 11, 3, 9, 30, 0, 0, time.UTC), Mid: 1.08, Profit: 0}}
	var buf bytes.Buffer
	assert.NoError(t, Write(&buf, ticks, Options{Width: 320, Height: 240}))
	assert.NotZero(t, buf.Len())
}

func TestRenderEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.png")
	err := Render(path, nil, Options{})
	assert.ErrorIs(t, err, series.ErrEmptyInput)
	assert.NoFileExists(t, path)
}

func TestRenderBadPath(t *testing.T) {
	t.Parallel()

	err := Render(filepath.Join(t.TempDir(), "missing", "out.png"), sampleTicks(), Options{})
	assert.ErrorContains(t, err, "create chart")
}
