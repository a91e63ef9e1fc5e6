package meetings

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/boardflow/backend/internal/models"
)

// Calendar grid sizes.
const (
	MonthCells = 42
	FirstHour  = 8
	LastHour   = 19
)

// Day is one calendar cell. Meetings carry the occurrence date in Date.
type Day struct {
	Date     string           `json:"date"`
	Weekday  string           `json:"weekday"`
	InMonth  bool             `json:"in_month"`
	Meetings []models.Meeting `json:"meetings"`
}

// MonthView is a six-week grid starting on the Sunday on or before the 1st.
type MonthView struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Days  []Day `json:"days"`
}

// WeekView runs Sunday to Saturday.
type WeekView struct {
	Start string `json:"start"`
	Days  []Day  `json:"days"`
}

// HourSlot groups the meetings starting within one hour.
type HourSlot struct {
	Hour     int              `json:"hour"`
	Label    string           `json:"label"`
	Meetings []models.Meeting `json:"meetings"`
}

// DayView lists the working hours of one date.
type DayView struct {
	Date  string     `json:"date"`
	Hours []HourSlot `json:"hours"`
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sundayOf(t time.Time) time.Time {
	t = midnight(t)
	return t.AddDate(0, 0, -int(t.Weekday()))
}

// entries expands every meeting within [from, to) and groups the occurrences by date.
// Meetings with an unreadable start are skipped.
func (d *Dashboard) entries(from, to time.Time) map[string][]models.Meeting {
	out := map[string][]models.Meeting{}
	for _, m := range d.meetings {
		starts, err := Between(m, from, to)
		if err != nil {
			d.logger.Warn("skip meeting in calendar", zap.String("meeting_id", m.ID), zap.Error(err))
			continue
		}
		for _, s := range starts {
			occ := m.Clone()
			occ.Date = s.Format(DateLayout)
			out[occ.Date] = append(out[occ.Date], occ)
		}
	}
	for _, list := range out {
		sort.SliceStable(list, func(i, j int) bool { return list[i].StartTime < list[j].StartTime })
	}
	return out
}

func (d *Dashboard) days(first time.Time, n int, month time.Month) []Day {
	byDate := d.entries(first, first.AddDate(0, 0, n))
	days := make([]Day, n)
	for i := range days {
		t := first.AddDate(0, 0, i)
		key := t.Format(DateLayout)
		list := byDate[key]
		if list == nil {
			list = []models.Meeting{}
		}
		days[i] = Day{Date: key, Weekday: t.Weekday().String(), InMonth: t.Month() == month, Meetings: list}
	}
	return days
}

// Month returns the grid for the given month.
func (d *Dashboard) Month(year int, month time.Month) MonthView {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return MonthView{Year: year, Month: int(month), Days: d.days(sundayOf(first), MonthCells, month)}
}

// Week returns the week containing date.
func (d *Dashboard) Week(date time.Time) WeekView {
	start := sundayOf(date)
	days := d.days(start, 7, 0)
	for i := range days {
		days[i].InMonth = true
	}
	return WeekView{Start: start.Format(DateLayout), Days: days}
}

// Day returns date split into hour slots. Meetings starting outside working hours are
// not listed.
func (d *Dashboard) Day(date time.Time) DayView {
	day := midnight(date)
	key := day.Format(DateLayout)
	list := d.entries(day, day.AddDate(0, 0, 1))[key]

	view := DayView{Date: key}
	for h := FirstHour; h <= LastHour; h++ {
		slot := HourSlot{Hour: h, Label: time.Date(0, 1, 1, h, 0, 0, 0, time.UTC).Format(TimeLayout), Meetings: []models.Meeting{}}
		for _, m := range list {
			if t, err := time.Parse(TimeLayout, m.StartTime); err == nil && t.Hour() == h {
				slot.Meetings = append(slot.Meetings, m)
			}
		}
		view.Hours = append(view.Hours, slot)
	}
	return view
}
