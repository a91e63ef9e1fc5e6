package meetings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardflow/backend/internal/fixtures"
	"github.com/boardflow/backend/internal/models"
)

func utc(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func seed(id string) models.Meeting {
	for _, m := range fixtures.Meetings() {
		if m.ID == id {
			return m
		}
	}
	panic("no seed meeting " + id)
}

func TestOccurrences(t *testing.T) {
	starts, err := Occurrences(seed("2"), 3)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{
		utc("2023-06-12 14:30"),
		utc("2023-07-12 14:30"),
		utc("2023-08-12 14:30"),
	}, starts)

	starts, err = Occurrences(seed("1"), 5)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{utc("2023-06-15 10:00")}, starts)

	custom := seed("4")
	p := models.RecurCustom
	custom.RecurringPattern = &p
	starts, err = Occurrences(custom, 5)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{utc("2023-06-20 13:00")}, starts)
}

func TestOccurrencesLimit(t *testing.T) {
	m := seed("2")
	p := models.RecurDaily
	m.RecurringPattern = &p

	starts, err := Occurrences(m, 0)
	require.NoError(t, err)
	assert.Len(t, starts, DefaultOccurrences)

	starts, err = Occurrences(m, 1000)
	require.NoError(t, err)
	assert.Len(t, starts, MaxOccurrences)
}

func TestOccurrencesRejectsBadStart(t *testing.T) {
	m := seed("1")
	m.StartTime = "late"
	_, err := Occurrences(m, 1)
	assert.Error(t, err)
}

func TestBetween(t *testing.T) {
	starts, err := Between(seed("4"), utc("2023-07-01 00:00"), utc("2023-10-01 00:00"))
	require.NoError(t, err)
	assert.Equal(t, []time.Time{
		utc("2023-07-20 13:00"),
		utc("2023-08-20 13:00"),
		utc("2023-09-20 13:00"),
	}, starts)

	starts, err = Between(seed("1"), utc("2023-06-15 10:00"), utc("2023-06-16 00:00"))
	require.NoError(t, err)
	assert.Len(t, starts, 1)

	starts, err = Between(seed("1"), utc("2023-06-16 00:00"), utc("2023-07-01 00:00"))
	require.NoError(t, err)
	assert.Empty(t, starts)
}

func meetingsByDate(days []Day) map[string][]string {
	out := map[string][]string{}
	for _, d := range days {
		for _, m := range d.Meetings {
			out[d.Date] = append(out[d.Date], m.ID)
		}
	}
	return out
}

func TestMonth(t *testing.T) {
	d := newTestDashboard(nil)

	june := d.Month(2023, time.June)
	require.Len(t, june.Days, MonthCells)
	assert.Equal(t, "2023-05-28", june.Days[0].Date)
	assert.Equal(t, "Sunday", june.Days[0].Weekday)
	assert.False(t, june.Days[0].InMonth)
	assert.Equal(t, "2023-07-08", june.Days[41].Date)
	assert.Equal(t, map[string][]string{
		"2023-06-12": {"2"},
		"2023-06-15": {"1"},
		"2023-06-20": {"4"},
		"2023-06-25": {"5"},
	}, meetingsByDate(june.Days))

	july := d.Month(2023, time.July)
	assert.Equal(t, "2023-06-25", july.Days[0].Date)
	assert.Equal(t, map[string][]string{
		"2023-06-25": {"5"},
		"2023-07-10": {"3"},
		"2023-07-12": {"2"},
		"2023-07-20": {"4"},
	}, meetingsByDate(july.Days))
	for _, day := range july.Days {
		for _, m := range day.Meetings {
			assert.Equal(t, day.Date, m.Date)
		}
	}
}

func TestWeek(t *testing.T) {
	d := newTestDashboard(nil)
	w := d.Week(utc("2023-06-14 00:00"))

	assert.Equal(t, "2023-06-11", w.Start)
	require.Len(t, w.Days, 7)
	assert.Equal(t, "Sunday", w.Days[0].Weekday)
	assert.Equal(t, "Saturday", w.Days[6].Weekday)
	assert.Equal(t, map[string][]string{
		"2023-06-12": {"2"},
		"2023-06-15": {"1"},
	}, meetingsByDate(w.Days))
}

func TestDay(t *testing.T) {
	d := newTestDashboard(nil)
	view := d.Day(utc("2023-07-12 00:00"))

	assert.Equal(t, "2023-07-12", view.Date)
	require.Len(t, view.Hours, LastHour-FirstHour+1)
	assert.Equal(t, "08:00", view.Hours[0].Label)
	for _, slot := range view.Hours {
		if slot.Hour == 14 {
			require.Len(t, slot.Meetings, 1)
			assert.Equal(t, "2", slot.Meetings[0].ID)
			assert.Equal(t, "2023-07-12", slot.Meetings[0].Date)
			continue
		}
		assert.Empty(t, slot.Meetings, "hour %d", slot.Hour)
	}
}
