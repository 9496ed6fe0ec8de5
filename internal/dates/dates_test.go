package dates

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodayAtMidnight(t *testing.T) {
	before := time.Now()
	today := TodayAtMidnight()
	after := time.Now()

	assert.Zero(t, today.Hour())
	assert.Zero(t, today.Minute())
	assert.Zero(t, today.Second())
	assert.Zero(t, today.Nanosecond())

	// before and after straddle the call, so one of them shares its date
	// even when the test runs across midnight
	assert.True(t, today.Equal(Midnight(before)) || today.Equal(Midnight(after)),
		"today=%s before=%s after=%s", today, before, after)
}

func TestRange(t *testing.T) {
	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	got := Range(start)

	require.Len(t, got, 7)
	assert.Equal(t, start, got[3])
	assert.Equal(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), got[0])
	assert.Equal(t, time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC), got[6])
	for i := 1; i < len(got); i++ {
		assert.Equal(t, 24*time.Hour, got[i].Sub(got[i-1]))
	}
}

func TestRange_CrossesMonthAndYear(t *testing.T) {
	got := Range(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2023, 12, 29, 0, 0, 0, 0, time.UTC), got[0])
	assert.Equal(t, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), got[6])
}

func TestParse(t *testing.T) {
	want := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{
		"2024-01-10",
		" 2024-01-10 ",
		"2024-01-10T00:00:00",
		"2024-01-10 00:00:00",
		"2024-01-10T18:45:12.123456",
		"2024-01-10T08:00:00Z",
	} {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParse_Missing(t *testing.T) {
	_, err := Parse("")
	assert.ErrorIs(t, err, ErrMissingDate)

	_, err = Parse("   ")
	assert.ErrorIs(t, err, ErrMissingDate)
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"tomorrow", "2024-13-01", "10/01/2024", "2024-01-32"} {
		_, err := Parse(in)
		assert.True(t, errors.Is(err, ErrInvalidDate), in)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "2024-01-10", Format(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)))
}
