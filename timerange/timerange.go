// Copyright (c) 2024 BVK Chaitanya

package timerange

import (
	"fmt"
	"time"
)

// Range is a half-open [Begin, End) time interval. Zero Begin or zero End
// leaves that side of the interval unbounded.
type Range struct {
	Begin, End time.Time
}

func (r *Range) Equal(v *Range) bool {
	return r.Begin.Equal(v.Begin) && r.End.Equal(v.End)
}

func (r *Range) IsZero() bool {
	return r.Begin.IsZero() && r.End.IsZero()
}

func (r *Range) InRange(v time.Time) bool {
	if r.IsZero() {
		return true
	}
	if !r.Begin.IsZero() && v.Before(r.Begin) {
		return false
	}
	if !r.End.IsZero() && !v.Before(r.End) {
		return false
	}
	return true
}

// Parse returns a range from begin and end timestamps in RFC3339 format.
// Empty strings leave the corresponding side unbounded.
func Parse(begin, end string) (*Range, error) {
	r := new(Range)
	if len(begin) != 0 {
		v, err := time.Parse(time.RFC3339, begin)
		if err != nil {
			return nil, fmt.Errorf("could not parse range begin %q: %w", begin, err)
		}
		r.Begin = v
	}
	if len(end) != 0 {
		v, err := time.Parse(time.RFC3339, end)
		if err != nil {
			return nil, fmt.Errorf("could not parse range end %q: %w", end, err)
		}
		r.End = v
	}
	if !r.Begin.IsZero() && !r.End.IsZero() && r.End.Before(r.Begin) {
		return nil, fmt.Errorf("range end %s is before the begin %s", end, begin)
	}
	return r, nil
}
