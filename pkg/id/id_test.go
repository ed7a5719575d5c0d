package id

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsSortable(t *testing.T) {
	t.Parallel()

	ids := make([]string, 50)
	for i := range ids {
		ids[i] = New()
	}
	assert.True(t, sort.StringsAreSorted(ids))
	assert.Len(t, ids[0], 26)
}

func TestNewAtTime(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 11, 3, 9, 30, 5, 123_000_000, time.UTC)
	got, err := Time(NewAt(at))
	require.NoError(t, err)
	assert.True(t, got.Equal(at), "got %s", got)

	_, err = Time("not-a-ulid")
	assert.Error(t, err)
}
