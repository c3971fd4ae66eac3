package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveCompletionDateSerial(t *testing.T) {
	t.Run("matches manual epoch arithmetic", func(t *testing.T) {
		got, err := ResolveCompletionDate("45000")
		require.NoError(t, err)

		manual := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 45000)
		assert.Equal(t, manual, got)
		assert.Equal(t, date(2023, time.March, 15), got)
	})

	t.Run("fractional time component truncated", func(t *testing.T) {
		whole, err := ResolveCompletionDate("45000")
		require.NoError(t, err)
		fractional, err := ResolveCompletionDate("45000.75")
		require.NoError(t, err)
		assert.Equal(t, whole, fractional)
	})

	t.Run("serial 1 is 1900-01-01", func(t *testing.T) {
		got, err := ResolveCompletionDate("1")
		require.NoError(t, err)
		assert.Equal(t, date(1900, time.January, 1), got)
	})

	t.Run("day 60 correction", func(t *testing.T) {
		// 59 is the last real day before the phantom 1900-02-29; 60 is the
		// phantom itself and collapses onto the same calendar day.
		got59, err := ResolveCompletionDate("59")
		require.NoError(t, err)
		assert.Equal(t, date(1900, time.February, 28), got59)

		got60, err := ResolveCompletionDate("60")
		require.NoError(t, err)
		assert.Equal(t, date(1900, time.February, 28), got60)

		got61, err := ResolveCompletionDate("61")
		require.NoError(t, err)
		assert.Equal(t, date(1900, time.March, 1), got61)
	})

	t.Run("out of range serials rejected", func(t *testing.T) {
		for _, cell := range []string{"0", "-12", "0.5", "99999999"} {
			_, err := ResolveCompletionDate(cell)
			assert.Error(t, err, "serial %q", cell)
		}
	})
}

func TestResolveCompletionDateDayMonthYear(t *testing.T) {
	t.Run("day precedes month", func(t *testing.T) {
		got, err := ResolveCompletionDate("15/06/2023")
		require.NoError(t, err)
		assert.Equal(t, date(2023, time.June, 15), got)
	})

	t.Run("positional, never month first", func(t *testing.T) {
		got, err := ResolveCompletionDate("05/06/2023")
		require.NoError(t, err)
		assert.Equal(t, date(2023, time.June, 5), got)
	})

	t.Run("impossible calendar dates rejected", func(t *testing.T) {
		for _, cell := range []string{"31/02/2023", "32/01/2023", "15/13/2023"} {
			_, err := ResolveCompletionDate(cell)
			assert.Error(t, err, "cell %q", cell)
		}
	})
}

func TestResolveCompletionDateGeneric(t *testing.T) {
	cases := map[string]time.Time{
		"2023-06-15":          date(2023, time.June, 15),
		"2001-11-23":          date(2001, time.November, 23),
		"2023-06-15 10:30:00": date(2023, time.June, 15),
	}
	for cell, want := range cases {
		got, err := ResolveCompletionDate(cell)
		require.NoError(t, err, "cell %q", cell)
		assert.Equal(t, want, got, "cell %q", cell)
	}

	for _, cell := range []string{"", "   ", "not a date", "soon"} {
		_, err := ResolveCompletionDate(cell)
		assert.Error(t, err, "cell %q", cell)
	}
}
