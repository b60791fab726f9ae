package timepal_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aelexs/timepal/pkg/timepal"
)

// 2024-03-05 is a Tuesday and the 65th day of a leap year.
var sample = timepal.InstantOf(time.Date(2024, 3, 5, 14, 7, 9, 120_000_000, time.UTC))

func TestCompilePattern_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"unknown letter", "yyyy-MM-dd q"},
		{"unknown upper letter", "yyyy-MM-dd B"},
		{"too many day letters", "ddd"},
		{"too many month letters", "MMMMMM"},
		{"too many hour letters", "HHH"},
		{"too many fraction letters", "SSSSSSSSSS"},
		{"too many offset letters", "XXXX"},
		{"two AM/PM letters", "aa"},
		{"unclosed quote", "HH 'o''clock"},
		{"unmatched bracket", "HH]"},
		{"unclosed bracket", "HH[:mm"},
		{"reserved brace", "{yyyy}"},
		{"reserved hash", "#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := timepal.CompilePattern(tt.text)

			require.Error(t, err)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, timepal.ErrMalformedPattern)
			assert.True(t, timepal.IsFormatError(err))

			var fe *timepal.FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, "compile", fe.Op)
			assert.Equal(t, tt.text, fe.Pattern)
		})
	}
}

func TestMustCompile_Panics(t *testing.T) {
	assert.Panics(t, func() { timepal.MustCompile("qq") })
}

func TestFormatIn_Patterns(t *testing.T) {
	plus0530 := timepal.MustOffset(5, 30)
	minus8 := timepal.MustOffset(-8, 0)

	tests := []struct {
		pattern string
		zone    timepal.ZoneOffset
		want    string
	}{
		{"yyyy-MM-dd HH:mm:ss", timepal.UTC, "2024-03-05 14:07:09"},
		{"d/M/yy", timepal.UTC, "5/3/24"},
		{"EEE, d MMM yyyy", timepal.UTC, "Tue, 5 Mar 2024"},
		{"EEEE MMMM", timepal.UTC, "Tuesday March"},
		{"EEEEE MMMMM", timepal.UTC, "T M"},
		{"h:mm a", timepal.UTC, "2:07 PM"},
		{"K k H", timepal.UTC, "2 14 14"},
		{"HH:mm:ss.SSS", timepal.UTC, "14:07:09.120"},
		{"ss.S", timepal.UTC, "09.1"},
		{"n", timepal.UTC, "120000000"},
		{"D DDD", timepal.UTC, "65 065"},
		{"'at' HH'h'", timepal.UTC, "at 14h"},
		{"''HH''", timepal.UTC, "'14'"},
		{"'o''clock'", timepal.UTC, "o'clock"},
		{"HH:mm[:ss]", timepal.UTC, "14:07:09"},
		{"yyyy-MM-dd'T'HH:mmXXX", plus0530, "2024-03-05T19:37+05:30"},
		{"X x xx Z", timepal.UTC, "Z +00 +0000 +0000"},
		{"X XX XXX", minus8, "-08 -0800 -08:00"},
		{"X", plus0530, "+0530"},
		{"yyyy年MM月dd日", timepal.UTC, "2024年03月05日"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			p, err := timepal.CompilePattern(tt.pattern)
			require.NoError(t, err)

			got, err := timepal.FormatIn(p, sample, tt.zone)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatIn_PredefinedPatterns(t *testing.T) {
	tests := []struct {
		name    string
		pattern *timepal.Pattern
		value   timepal.Temporal
		zone    timepal.ZoneOffset
		want    string
	}{
		{"local date-time trims fraction", timepal.ISOLocalDateTime, sample, timepal.UTC, "2024-03-05T14:07:09.12"},
		{"local date-time without fraction", timepal.ISOLocalDateTime, timepal.InstantFromEpoch(0, 0), timepal.UTC, "1970-01-01T00:00:00"},
		{"local date-time nanos", timepal.ISOLocalDateTime, timepal.InstantFromEpoch(0, 1), timepal.UTC, "1970-01-01T00:00:00.000000001"},
		{"local date", timepal.ISOLocalDate, sample, timepal.UTC, "2024-03-05"},
		{"local time", timepal.ISOLocalTime, sample, timepal.UTC, "14:07:09.12"},
		{"offset date-time", timepal.ISOOffsetDateTime, sample, timepal.MustOffset(1, 0), "2024-03-05T15:07:09.12+01:00"},
		{"offset date-time at UTC", timepal.ISOOffsetDateTime, sample, timepal.UTC, "2024-03-05T14:07:09.12Z"},
		{"wall clock", timepal.ISOLocalDateTime, timepal.WallClockFromMillis(1709647629120), timepal.UTC, "2024-03-05T14:07:09.12"},
		{"year beyond four digits", timepal.ISOLocalDate, timepal.MustLocalDate(12345, time.January, 1), timepal.UTC, "+12345-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timepal.FormatIn(tt.pattern, tt.value, tt.zone)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_OptionalSectionSkipsMissingFields(t *testing.T) {
	p := timepal.MustCompile("yyyy-MM-dd[ HH:mm]")

	got, err := timepal.FormatIn(p, timepal.MustLocalDate(2024, time.March, 5), timepal.UTC)

	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", got)
}

func TestFormat_LocalValuesAreNotShifted(t *testing.T) {
	p := timepal.MustCompile("HH:mm XXX")
	ldt := timepal.MustLocalDateTime(2024, time.March, 5, 10, 0, 0, 0)

	got, err := timepal.FormatIn(p, ldt, timepal.MustOffset(5, 30))

	require.NoError(t, err)
	assert.Equal(t, "10:00 +05:30", got)
}

func TestFormat_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		value   timepal.Temporal
	}{
		{"time pattern on date", "yyyy-MM-dd HH:mm", timepal.MustLocalDate(2024, time.March, 5)},
		{"date pattern on time", "yyyy", mustLocalTime(t, 10, 0)},
		{"offset on local date-time", "HH:mm X", timepal.MustLocalDateTime(2024, time.March, 5, 10, 0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := timepal.MustCompile(tt.pattern).Format(tt.value)

			assert.ErrorIs(t, err, timepal.ErrFieldUnavailable)
			assert.True(t, timepal.IsFormatError(err))
		})
	}
}

func TestPattern_FormatUsesOnlyItsOwnZone(t *testing.T) {
	t.Run("no zone means no calendar fields", func(t *testing.T) {
		_, err := timepal.MustCompile("HH:mm").Format(sample)

		assert.ErrorIs(t, err, timepal.ErrFieldUnavailable)
	})

	t.Run("baked-in zone", func(t *testing.T) {
		got, err := timepal.MustCompile("HH:mm").WithZone(timepal.MustOffset(5, 0)).Format(sample)

		require.NoError(t, err)
		assert.Equal(t, "19:07", got)
	})

	t.Run("ISO instant is always UTC", func(t *testing.T) {
		got, err := timepal.ISOInstant.Format(sample)

		require.NoError(t, err)
		assert.Equal(t, "2024-03-05T14:07:09.12Z", got)
	})
}

func TestPattern_WithZoneLeavesOriginalUntouched(t *testing.T) {
	p := timepal.MustCompile("HH")
	zoned := p.WithZone(timepal.MustOffset(1, 0))

	_, ok := p.Zone()
	assert.False(t, ok)
	z, ok := zoned.Zone()
	assert.True(t, ok)
	assert.Equal(t, 3600, z.Seconds())
	assert.Equal(t, "HH", zoned.String())
}

func TestLookupPattern(t *testing.T) {
	p, err := timepal.LookupPattern("ISO_LOCAL_DATE")
	require.NoError(t, err)
	assert.Same(t, timepal.ISOLocalDate, p)

	p, err = timepal.LookupPattern("yyyy")
	require.NoError(t, err)
	assert.Equal(t, "yyyy", p.String())

	_, err = timepal.LookupPattern("ISO_NOPE")
	assert.ErrorIs(t, err, timepal.ErrMalformedPattern)
}

func mustLocalTime(t *testing.T, hour, minute int) timepal.LocalTime {
	t.Helper()
	tm, err := timepal.LocalTimeOf(hour, minute, 0, 0)
	require.NoError(t, err)
	return tm
}
