package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"plain month step", date(2023, time.December, 15), 1, date(2024, time.January, 15)},
		{"clamps to february", date(2023, time.January, 31), 1, date(2023, time.February, 28)},
		{"clamps to leap february", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"clamps to short month", date(2023, time.March, 31), 1, date(2023, time.April, 30)},
		{"multiple months", date(2023, time.January, 15), 3, date(2023, time.April, 15)},
		{"across year boundary", date(2023, time.November, 30), 3, date(2024, time.February, 29)},
		{"zero offset", date(2023, time.June, 10), 0, date(2023, time.June, 10)},
		{"negative offset", date(2023, time.March, 15), -1, date(2023, time.February, 15)},
		{"negative offset clamps", date(2023, time.March, 31), -1, date(2023, time.February, 28)},
		{"negative across year", date(2023, time.January, 15), -2, date(2022, time.November, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.in, tt.n))
		})
	}
}

func TestAddMonthsNeverOverflowsTargetMonth(t *testing.T) {
	// Every day of a long month rolled into every offset must land inside
	// the target month, never spill into the next one.
	for day := 1; day <= 31; day++ {
		for n := -24; n <= 24; n++ {
			in := date(2023, time.January, day)
			out := AddMonths(in, n)
			assert.LessOrEqual(t, out.Day(), DaysIn(out.Year(), out.Month()),
				"day %d offset %d", day, n)
			assert.Equal(t, MonthDiff(in, out), n, "day %d offset %d", day, n)
		}
	}
}

func TestAddMonthsRoundTripWithoutClamping(t *testing.T) {
	in := date(2023, time.May, 15)
	out := AddMonths(AddMonths(in, 7), -7)
	assert.Equal(t, in, out)
}

func TestAddMonthsPtr(t *testing.T) {
	assert.Nil(t, AddMonthsPtr(nil, 1))

	in := date(2023, time.January, 31)
	out := AddMonthsPtr(&in, 1)
	require.NotNil(t, out)
	assert.Equal(t, date(2023, time.February, 28), *out)
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 31, DaysIn(2023, time.January))
	assert.Equal(t, 28, DaysIn(2023, time.February))
	assert.Equal(t, 29, DaysIn(2024, time.February))
	assert.Equal(t, 28, DaysIn(2100, time.February)) // century, not a leap year
	assert.Equal(t, 29, DaysIn(2000, time.February)) // 400-year rule
	assert.Equal(t, 30, DaysIn(2023, time.April))
}

func TestMonthDiff(t *testing.T) {
	assert.Equal(t, 0, MonthDiff(date(2023, time.January, 1), date(2023, time.January, 31)))
	assert.Equal(t, 1, MonthDiff(date(2023, time.January, 31), date(2023, time.February, 1)))
	assert.Equal(t, 13, MonthDiff(date(2023, time.January, 15), date(2024, time.February, 15)))
	assert.Equal(t, -2, MonthDiff(date(2023, time.March, 15), date(2023, time.January, 15)))
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2023-01", MonthKey(date(2023, time.January, 31)))
	assert.Equal(t, "2024-12", MonthKey(date(2024, time.December, 1)))
}

func TestParseMonthKey(t *testing.T) {
	got, err := ParseMonthKey("2023-07")
	require.NoError(t, err)
	assert.Equal(t, date(2023, time.July, 1), got)

	_, err = ParseMonthKey("2023/07")
	assert.Error(t, err)
	_, err = ParseMonthKey("not-a-month")
	assert.Error(t, err)
}

func TestNextMonthKey(t *testing.T) {
	next, err := NextMonthKey("2023-12")
	require.NoError(t, err)
	assert.Equal(t, "2024-01", next)

	_, err = NextMonthKey("bogus")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	for _, in := range []string{"2023-06-15", "15.06.2023", "15/06/2023", "2023/06/15"} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, date(2023, time.June, 15), got, in)
	}

	_, err := ParseDate("June 15")
	assert.Error(t, err)
}

func TestToISODate(t *testing.T) {
	assert.Equal(t, "2023-06-05", ToISODate(date(2023, time.June, 5)))
}
