package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthStartIdempotent(t *testing.T) {
	d := date(2020, time.March, 17)
	ms := MonthStart(d)
	assert.Equal(t, date(2020, time.March, 1), ms)
	assert.Equal(t, ms, MonthStart(ms))
}

func TestQuarterStartIdempotent(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{date(2020, time.January, 15), date(2020, time.January, 1)},
		{date(2020, time.March, 31), date(2020, time.January, 1)},
		{date(2020, time.April, 1), date(2020, time.April, 1)},
		{date(2020, time.June, 30), date(2020, time.April, 1)},
		{date(2020, time.July, 4), date(2020, time.July, 1)},
		{date(2020, time.December, 25), date(2020, time.October, 1)},
	}
	for _, c := range cases {
		qs := QuarterStart(c.in)
		assert.Equal(t, c.want, qs)
		assert.Equal(t, qs, QuarterStart(qs))
	}
}

func TestDayOfQuarter(t *testing.T) {
	assert.Equal(t, 1, DayOfQuarter(date(2020, time.July, 1)))
	assert.Equal(t, 40, DayOfQuarter(date(2020, time.August, 9)))
	assert.Equal(t, 92, DayOfQuarter(date(2020, time.September, 30)))
}

func TestDateRangeDaily(t *testing.T) {
	got := DateRange(date(2020, time.January, 30), date(2020, time.February, 2), StepDay)
	want := []time.Time{
		date(2020, time.January, 30),
		date(2020, time.January, 31),
		date(2020, time.February, 1),
		date(2020, time.February, 2),
	}
	require.Equal(t, want, got)
}

func TestDateRangeMonthStart(t *testing.T) {
	got := DateRange(date(2020, time.January, 15), date(2020, time.April, 3), StepMonthStart)
	want := []time.Time{
		date(2020, time.January, 1),
		date(2020, time.February, 1),
		date(2020, time.March, 1),
		date(2020, time.April, 1),
	}
	require.Equal(t, want, got)
}

func TestDateRangeQuarterStart(t *testing.T) {
	got := DateRange(date(2020, time.February, 1), date(2020, time.August, 9), StepQuarterStart)
	want := []time.Time{
		date(2020, time.January, 1),
		date(2020, time.April, 1),
		date(2020, time.July, 1),
	}
	require.Equal(t, want, got)
}
