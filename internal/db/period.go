package db

import "time"

// DateRange bounds a report by a creation-date column. Nil endpoints mean no
// restriction on that side.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// ResolvePeriod maps a report period token to a concrete range ending at now.
//
//	week     -> last 7 days
//	month    -> last month
//	semester -> last 6 months
//	year     -> last year
//	all / "" -> unbounded (no date filters at all)
//
// Any other token falls back to a trailing 30-day window.
func ResolvePeriod(period string, now time.Time) DateRange {
	var start time.Time
	switch period {
	case "", "all":
		return DateRange{}
	case "week":
		start = now.AddDate(0, 0, -7)
	case "month":
		start = now.AddDate(0, -1, 0)
	case "semester":
		start = now.AddDate(0, -6, 0)
	case "year":
		start = now.AddDate(-1, 0, 0)
	default:
		start = now.AddDate(0, 0, -30)
	}
	end := now
	return DateRange{Start: &start, End: &end}
}

// Filters turns the range into predicate entries on the given column.
func (r DateRange) Filters(column string) []Filter {
	var fs []Filter
	if r.Start != nil {
		fs = append(fs, GTE(column, *r.Start))
	}
	if r.End != nil {
		fs = append(fs, LTE(column, *r.End))
	}
	return fs
}

// Bounded reports whether the range restricts dates at all.
func (r DateRange) Bounded() bool {
	return r.Start != nil || r.End != nil
}
