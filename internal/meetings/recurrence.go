package meetings

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/boardflow/backend/internal/models"
)

// Occurrence limits for Occurrences.
const (
	DefaultOccurrences = 10
	MaxOccurrences     = 100
)

var frequencies = map[models.RecurringPattern]rrule.Frequency{
	models.RecurDaily:   rrule.DAILY,
	models.RecurWeekly:  rrule.WEEKLY,
	models.RecurMonthly: rrule.MONTHLY,
}

// Start returns the first start of m in UTC.
func Start(m models.Meeting) (time.Time, error) {
	t, err := time.Parse(DateLayout+" "+TimeLayout, m.Date+" "+m.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("meeting %s start: %w", m.ID, err)
	}
	return t, nil
}

// rule returns nil for meetings that happen once. Custom patterns have no cadence and
// are treated as single meetings.
func rule(m models.Meeting, start time.Time, count int) (*rrule.RRule, error) {
	if !m.IsRecurring || m.RecurringPattern == nil {
		return nil, nil
	}
	freq, ok := frequencies[*m.RecurringPattern]
	if !ok {
		return nil, nil
	}
	r, err := rrule.NewRRule(rrule.ROption{Freq: freq, Dtstart: start, Count: count})
	if err != nil {
		return nil, fmt.Errorf("meeting %s recurrence: %w", m.ID, err)
	}
	return r, nil
}

// Occurrences returns the first limit starts of m.
func Occurrences(m models.Meeting, limit int) ([]time.Time, error) {
	if limit <= 0 {
		limit = DefaultOccurrences
	}
	if limit > MaxOccurrences {
		limit = MaxOccurrences
	}
	start, err := Start(m)
	if err != nil {
		return nil, err
	}
	r, err := rule(m, start, limit)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return []time.Time{start}, nil
	}
	return r.All(), nil
}

// Between returns the starts of m within [from, to).
func Between(m models.Meeting, from, to time.Time) ([]time.Time, error) {
	start, err := Start(m)
	if err != nil {
		return nil, err
	}
	r, err := rule(m, start, 0)
	if err != nil {
		return nil, err
	}
	if r == nil {
		if !start.Before(from) && start.Before(to) {
			return []time.Time{start}, nil
		}
		return nil, nil
	}
	return r.Between(from, to.Add(-time.Nanosecond), true), nil
}
