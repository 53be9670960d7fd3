package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrMalformedTime is returned when a time-of-day string cannot be parsed.
var ErrMalformedTime = errors.New("malformed time")

var (
	colonTimePattern   = regexp.MustCompile(`(\d+):(\d+):(\d+)`)
	compactTimePattern = regexp.MustCompile(`(\d\d)(\d\d)(\d\d)`)
)

// midnightHour splits the day for the rollover heuristic in TimeSpan.
const midnightHour = 6

// ParseTimeOfDay parses H:MM:SS (or HHMMSS when compact is set) onto the
// fixed date 2005-01-01 UTC. Only the clock fields are meaningful.
func ParseTimeOfDay(s string, compact bool) (time.Time, error) {
	pattern := colonTimePattern
	if compact {
		pattern = compactTimePattern
	}

	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: unable to parse time value [%s]", ErrMalformedTime, s)
	}

	var fields [3]int
	for i := range fields {
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q: %v", ErrMalformedTime, s, err)
		}
		fields[i] = v
	}
	hour, minute, second := fields[0], fields[1], fields[2]
	if hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, fmt.Errorf("%w: time value [%s] out of range", ErrMalformedTime, s)
	}

	return time.Date(2005, time.January, 1, hour, minute, second, 0, time.UTC), nil
}

// TimeSpan returns the seconds elapsed between two time-of-day strings.
//
// The logs carry no AM/PM marker. When the begin hour is after 06 and the
// end hour before 06, the end is moved twelve hours ahead so runs that cross
// the boundary do not go negative. This is an approximation tuned to those
// logs, not a general day-rollover rule.
func TimeSpan(begin, end string, compact bool) (float64, error) {
	b, err := ParseTimeOfDay(begin, compact)
	if err != nil {
		return 0, err
	}
	e, err := ParseTimeOfDay(end, compact)
	if err != nil {
		return 0, err
	}

	if b.Hour() > midnightHour && e.Hour() < midnightHour {
		e = e.Add(12 * time.Hour)
	}
	return e.Sub(b).Seconds(), nil
}
