package service

import (
	"time"

	"github.com/fsdevblog/cenjin-cards/internal/repository/repoargs"
)

type TimeRange string

const (
	TimeRangeWeek  TimeRange = "week"
	TimeRangeMonth TimeRange = "month"
	TimeRangeYear  TimeRange = "year"
)

// ParseTimeRange falls back to TimeRangeWeek for unknown values.
func ParseTimeRange(s string) TimeRange {
	switch TimeRange(s) {
	case TimeRangeMonth, TimeRangeYear:
		return TimeRange(s)
	default:
		return TimeRangeWeek
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// currentMonth, lastMonth and currentYear are calendar windows around now, in now's location.
func currentMonth(now time.Time) repoargs.Window {
	start := startOfMonth(now)
	return repoargs.Window{From: start, To: start.AddDate(0, 1, 0)}
}

func lastMonth(now time.Time) repoargs.Window {
	end := startOfMonth(now)
	return repoargs.Window{From: end.AddDate(0, -1, 0), To: end}
}

func currentYear(now time.Time) repoargs.Window {
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	return repoargs.Window{From: start, To: start.AddDate(1, 0, 0)}
}

// chartQuery returns the series query for r ending at now.
func chartQuery(r TimeRange, now time.Time) repoargs.SeriesQuery {
	q := repoargs.SeriesQuery{To: now, Bucket: repoargs.BucketDay, Location: now.Location()}
	switch r {
	case TimeRangeMonth:
		q.From = startOfDay(now.AddDate(0, -1, 0))
	case TimeRangeYear:
		q.From = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		q.Bucket = repoargs.BucketMonth
	default:
		q.From = now.AddDate(0, 0, -7)
	}
	return q
}
