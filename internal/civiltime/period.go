package civiltime

import (
	"fmt"
	"time"
)

// A Period is a calendar-month bucket in the fixed region, e.g. "2025-09".
// Both the carry baseline and the transition log are sharded by Period.
type Period struct {
	year  int
	month time.Month
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	lt := t.In(Region)
	return Period{year: lt.Year(), month: lt.Month()}
}

// ParsePeriod parses a "YYYY-MM" identifier.
func ParsePeriod(s string) (Period, error) {
	t, err := time.ParseInLocation("2006-01", s, Region)
	if err != nil {
		return Period{}, fmt.Errorf("civiltime: bad period %q: %w", s, err)
	}
	return PeriodOf(t), nil
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.year, int(p.month))
}

// Start is the first instant of the period.
func (p Period) Start() time.Time {
	return time.Date(p.year, p.month, 1, 0, 0, 0, 0, Region)
}

// Next is the following calendar month.
func (p Period) Next() Period {
	return PeriodOf(p.Start().AddDate(0, 1, 0))
}

// PeriodsBetween enumerates, in chronological order, every period whose
// span intersects [start, end]. Returns nil when end precedes start.
func PeriodsBetween(start, end time.Time) []Period {
	if end.Before(start) {
		return nil
	}
	var out []Period
	p, last := PeriodOf(start), PeriodOf(end)
	for {
		out = append(out, p)
		if p == last {
			return out
		}
		p = p.Next()
	}
}
