// Copyright (c) 2025 BVK Chaitanya

package timerange

import (
	"fmt"
	"os"
	"time"
)

// Names lists the period names accepted by Named.
var Names = []string{
	"today", "yesterday",
	"this-week", "last-week",
	"this-month", "last-month",
	"this-year", "last-year",
}

// Named returns the calendar period with the given name relative to now, in
// now's time zone. Weeks start on Sunday.
func Named(name string, now time.Time) (*Range, error) {
	zone := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, zone)
	week := today.AddDate(0, 0, -int(now.Weekday()))
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, zone)
	year := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, zone)

	switch name {
	case "today":
		return &Range{Begin: today, End: today.AddDate(0, 0, 1)}, nil
	case "yesterday":
		return &Range{Begin: today.AddDate(0, 0, -1), End: today}, nil
	case "this-week":
		return &Range{Begin: week, End: week.AddDate(0, 0, 7)}, nil
	case "last-week":
		return &Range{Begin: week.AddDate(0, 0, -7), End: week}, nil
	case "this-month":
		return &Range{Begin: month, End: month.AddDate(0, 1, 0)}, nil
	case "last-month":
		return &Range{Begin: month.AddDate(0, -1, 0), End: month}, nil
	case "this-year":
		return &Range{Begin: year, End: year.AddDate(1, 0, 0)}, nil
	case "last-year":
		return &Range{Begin: year.AddDate(-1, 0, 0), End: year}, nil
	}
	return nil, fmt.Errorf("unknown period name %q: %w", name, os.ErrInvalid)
}
