package timepal_test

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aelexs/timepal/pkg/timepal"
)

// sampleInstants spans both sides of the epoch with sub-millisecond parts,
// including years beyond the int64 nanosecond range.
func sampleInstants() []timepal.Instant {
	r := rand.New(rand.NewPCG(1, 2))
	out := []timepal.Instant{
		timepal.InstantFromEpoch(0, 0),
		timepal.InstantFromEpoch(-1, 999_999_999),
		timepal.InstantFromEpoch(1709647629, 120_456_789),
		timepal.InstantOf(time.Date(1500, time.June, 1, 12, 0, 0, 123_456_789, time.UTC)),
		timepal.InstantOf(time.Date(2500, time.June, 1, 12, 0, 0, 123_456_789, time.UTC)),
		timepal.InstantOf(time.Date(1_000_000, time.January, 1, 0, 0, 0, 987_654_321, time.UTC)),
		timepal.InstantOf(time.Date(-1_000_000, time.December, 31, 23, 59, 59, 987_654_321, time.UTC)),
	}
	for range 50 {
		sec := r.Int64N(8_000_000_000) - 4_000_000_000
		out = append(out, timepal.InstantFromEpoch(sec, r.Int64N(1_000_000_000)))
	}
	return out
}

func TestRoundTrip_InstantThroughWallClock(t *testing.T) {
	for _, v := range sampleInstants() {
		w, err := timepal.ToWallClock(v)
		require.NoError(t, err)

		back, err := timepal.ToInstant(w)
		require.NoError(t, err)

		assert.True(t, back.Equal(v.Truncate(time.Millisecond)), "instant %s came back as %s", v, back)
	}
}

func TestRoundTrip_WallClockThroughInstant(t *testing.T) {
	for _, v := range sampleInstants() {
		w := timepal.WallClockOf(v.Time())

		i, err := timepal.ToInstant(w)
		require.NoError(t, err)
		again, err := timepal.ToWallClock(i)
		require.NoError(t, err)

		assert.Equal(t, w.UnixMilli(), again.UnixMilli())
		assert.True(t, again.Equal(w))
	}
}

func TestInstant_Truncate(t *testing.T) {
	at := func(year int, month time.Month, day, hour, min, sec, nsec int) timepal.Instant {
		return timepal.InstantOf(time.Date(year, month, day, hour, min, sec, nsec, time.UTC))
	}

	tests := []struct {
		name string
		in   timepal.Instant
		d    time.Duration
		want timepal.Instant
	}{
		{"millis after epoch", timepal.InstantFromEpoch(1709647629, 120_456_789), time.Millisecond, timepal.InstantFromEpoch(1709647629, 120_000_000)},
		{"millis before epoch", timepal.InstantFromEpoch(-1, 999_999_999), time.Millisecond, timepal.InstantFromEpoch(-1, 999_000_000)},
		{"year 1500", at(1500, time.June, 1, 12, 0, 0, 123_456_789), time.Millisecond, at(1500, time.June, 1, 12, 0, 0, 123_000_000)},
		{"year 2500", at(2500, time.June, 1, 12, 0, 0, 123_456_789), time.Millisecond, at(2500, time.June, 1, 12, 0, 0, 123_000_000)},
		{"year 1e6", at(1_000_000, time.January, 1, 0, 0, 0, 987_654_321), time.Millisecond, at(1_000_000, time.January, 1, 0, 0, 0, 987_000_000)},
		{"year -1e6", at(-1_000_000, time.December, 31, 23, 59, 59, 987_654_321), time.Millisecond, at(-1_000_000, time.December, 31, 23, 59, 59, 987_000_000)},
		{"hours in 1500", at(1500, time.June, 1, 12, 34, 56, 0), time.Hour, at(1500, time.June, 1, 12, 0, 0, 0)},
		{"non-positive duration", at(1500, time.June, 1, 12, 34, 56, 7), 0, at(1500, time.June, 1, 12, 34, 56, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Truncate(tt.d)

			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestToWallClock_Range(t *testing.T) {
	tests := []struct {
		name    string
		in      timepal.Instant
		wantErr bool
	}{
		{"lowest millisecond", timepal.InstantOf(timepal.MinWallClock.Time()), false},
		{"highest millisecond", timepal.InstantOf(timepal.MaxWallClock.Time().Add(999 * time.Microsecond)), false},
		{"just below range", timepal.InstantOf(timepal.MinWallClock.Time().Add(-time.Nanosecond)), true},
		{"just above range", timepal.InstantOf(timepal.MaxWallClock.Time().Add(time.Millisecond)), true},
		{"year +999999999", timepal.InstantOf(time.Date(999_999_999, time.January, 1, 0, 0, 0, 0, time.UTC)), true},
		{"year -999999999", timepal.InstantOf(time.Date(-999_999_999, time.January, 1, 0, 0, 0, 0, time.UTC)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := timepal.ToWallClock(tt.in)

			if tt.wantErr {
				assert.ErrorIs(t, err, timepal.ErrInvalidField)
				return
			}
			require.NoError(t, err)
			assert.True(t, w.Time().Equal(tt.in.Truncate(time.Millisecond).Time()), "got %s", w)
		})
	}

	assert.Equal(t, int64(math.MinInt64), timepal.MinWallClock.UnixMilli())
	assert.Equal(t, int64(math.MaxInt64), timepal.MaxWallClock.UnixMilli())
}

func TestLocalDateTime_Resolve(t *testing.T) {
	_, err := timepal.LocalDateTime{}.Resolve(timepal.UTC)
	assert.ErrorIs(t, err, timepal.ErrNullInput)

	_, err = timepal.MustLocalDateTime(1, time.January, 1, 1, 0, 0, 0).Resolve(timepal.MustOffset(1, 0))
	assert.ErrorIs(t, err, timepal.ErrInvalidField)

	i, err := timepal.MustLocalDateTime(2024, time.March, 5, 10, 0, 0, 0).Resolve(timepal.MustOffset(2, 0))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC), i.Time())
}

func TestConversions_RejectAbsentValues(t *testing.T) {
	_, err := timepal.ToWallClock(timepal.Instant{})
	assert.ErrorIs(t, err, timepal.ErrNullInput)

	_, err = timepal.ToInstant(timepal.WallClock{})
	assert.ErrorIs(t, err, timepal.ErrNullInput)

	_, err = timepal.LocalToWallClock(timepal.LocalDateTime{})
	assert.ErrorIs(t, err, timepal.ErrNullInput)
}

func TestInstantOf(t *testing.T) {
	t.Run("drops location", func(t *testing.T) {
		loc := time.FixedZone("x", 3600)
		i := timepal.InstantOf(time.Date(2024, 3, 5, 15, 0, 0, 0, loc))

		assert.Equal(t, time.UTC, i.Time().Location())
		assert.Equal(t, 14, i.Time().Hour())
	})

	t.Run("zero time is absent", func(t *testing.T) {
		assert.True(t, timepal.InstantOf(time.Time{}).IsZero())
	})

	t.Run("epoch is present", func(t *testing.T) {
		assert.False(t, timepal.InstantFromEpoch(0, 0).IsZero())
	})
}

func TestLocalDateTimeOf_Validates(t *testing.T) {
	tests := []struct {
		name                        string
		year                        int
		month                       time.Month
		day, hour, minute, sec, nano int
	}{
		{"month 13", 2024, 13, 1, 0, 0, 0, 0},
		{"february 30", 2024, time.February, 30, 0, 0, 0, 0},
		{"february 29 in common year", 2023, time.February, 29, 0, 0, 0, 0},
		{"hour 24", 2024, time.March, 5, 24, 0, 0, 0},
		{"minute 60", 2024, time.March, 5, 0, 60, 0, 0},
		{"negative nanos", 2024, time.March, 5, 0, 0, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := timepal.LocalDateTimeOf(tt.year, tt.month, tt.day, tt.hour, tt.minute, tt.sec, tt.nano)

			assert.ErrorIs(t, err, timepal.ErrInvalidField)
		})
	}

	_, err := timepal.LocalDateTimeOf(2024, time.February, 29, 23, 59, 59, 999_999_999)
	assert.NoError(t, err)
}

func TestLocalDateTime_At(t *testing.T) {
	ldt := timepal.MustLocalDateTime(2024, time.March, 5, 10, 0, 0, 0)

	i := ldt.At(timepal.MustOffset(2, 0))

	assert.Equal(t, time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC), i.Time())
	assert.True(t, i.In(timepal.MustOffset(2, 0)).Equal(ldt))
}

func TestLocalDate_AtTime(t *testing.T) {
	tm, err := timepal.LocalTimeOf(0, 0, 0, 0)
	require.NoError(t, err)
	assert.False(t, tm.IsZero(), "midnight is a present value")

	ldt := timepal.MustLocalDate(2024, time.March, 5).AtTime(tm)

	assert.True(t, ldt.Equal(timepal.MustLocalDateTime(2024, time.March, 5, 0, 0, 0, 0)))
}
