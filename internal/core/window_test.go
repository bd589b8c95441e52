package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWindow(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

	w, err := NewWindow(now, 21)
	require.NoError(t, err)
	assert.Equal(t, now, w.Start)
	assert.Equal(t, time.Date(2024, 1, 22, 9, 30, 0, 0, time.UTC), w.End)

	_, err = NewWindow(now, 0)
	assert.ErrorIs(t, err, ErrInvalidDays)
}

func TestWindowContains(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	w, err := NewWindow(now, 10)
	require.NoError(t, err)

	assert.True(t, w.Contains(now))
	assert.True(t, w.Contains(now.AddDate(0, 0, 9)))
	assert.False(t, w.Contains(now.Add(-time.Second)))
	assert.False(t, w.Contains(w.End))
	assert.True(t, w.Ended(w.End))
	assert.False(t, w.Ended(w.End.Add(-time.Nanosecond)))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-02-29", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2024-03-01 00:00:00", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("01/03/2024", time.UTC)
	assert.ErrorIs(t, err, ErrMalformedDate)
}

func TestTimestampRoundTrip(t *testing.T) {
	at := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	s := FormatTimestamp(at)
	assert.Equal(t, "2024-01-08T09:00:00Z", s)

	got, err := ParseTimestamp(s, time.UTC)
	require.NoError(t, err)
	assert.True(t, at.Equal(got))
	assert.Equal(t, 9, got.Hour())

	rome := time.FixedZone("CET", 3600)
	got, err = ParseTimestamp(FormatTimestamp(time.Date(2024, 1, 8, 9, 30, 0, 0, rome)), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 9, got.Hour(), "wall clock survives a different reader location")
	assert.Equal(t, 30, got.Minute())

	_, err = ParseTimestamp("2024-01-08", time.UTC)
	assert.ErrorIs(t, err, ErrMalformedDate)
}

func TestIsMidnight(t *testing.T) {
	assert.True(t, IsMidnight(time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsMidnight(time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)))
	assert.False(t, IsMidnight(time.Date(2024, 1, 8, 0, 0, 0, 1, time.UTC)))
}

func TestLastDayOfMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		day   int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, tc := range cases {
		got := LastDayOfMonth(tc.year, tc.month, time.UTC)
		assert.Equal(t, tc.day, got.Day())
		assert.Equal(t, tc.month, got.Month())
	}
}
