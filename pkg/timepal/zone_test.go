package timepal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aelexs/timepal/pkg/timepal"
)

func TestParseZoneOffset(t *testing.T) {
	tests := []struct {
		in      string
		seconds int
	}{
		{"Z", 0},
		{"+00:00", 0},
		{"-0", 0},
		{"+5", 5 * 3600},
		{"+05", 5 * 3600},
		{"+05:30", 5*3600 + 30*60},
		{"+0530", 5*3600 + 30*60},
		{"-08:00", -8 * 3600},
		{"-03:30:15", -(3*3600 + 30*60 + 15)},
		{"+013015", 3600 + 30*60 + 15},
		{"+18:00", 18 * 3600},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			z, err := timepal.ParseZoneOffset(tt.in)

			require.NoError(t, err)
			assert.Equal(t, tt.seconds, z.Seconds())
		})
	}
}

func TestParseZoneOffset_Invalid(t *testing.T) {
	for _, in := range []string{"", "+", "05:00", "+5:00", "+05:3", "+05:60", "+123", "+ab", "+18:01", "-19", "+05:00:00:00"} {
		t.Run(in, func(t *testing.T) {
			_, err := timepal.ParseZoneOffset(in)

			assert.ErrorIs(t, err, timepal.ErrInvalidOffset)
		})
	}
}

func TestOffsetOf(t *testing.T) {
	t.Run("negative hours and minutes", func(t *testing.T) {
		z, err := timepal.OffsetOf(-5, -30)

		require.NoError(t, err)
		assert.Equal(t, "-05:30", z.String())
	})

	t.Run("mixed signs are rejected", func(t *testing.T) {
		_, err := timepal.OffsetOf(-5, 30)

		assert.ErrorIs(t, err, timepal.ErrInvalidOffset)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := timepal.OffsetOf(19, 0)

		assert.ErrorIs(t, err, timepal.ErrInvalidOffset)
	})
}

func TestZoneOffset_String(t *testing.T) {
	assert.Equal(t, "Z", timepal.UTC.String())
	assert.Equal(t, "+01:00", timepal.MustOffset(1, 0).String())

	z, err := timepal.OffsetSeconds(-(2*3600 + 15))
	require.NoError(t, err)
	assert.Equal(t, "-02:00:15", z.String())
}

func TestZoneOffset_Location(t *testing.T) {
	assert.Same(t, time.UTC, timepal.UTC.Location())

	loc := timepal.MustOffset(5, 30).Location()
	_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 5*3600+30*60, offset)
}
