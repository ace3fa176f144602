// Package availability models a mover's recurring weekly working windows and
// answers point-in-time membership queries against them.
package availability

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/haulaway/haulaway/internal/geo"
)

// Window is a half-open [Start, End) time range within one weekday,
// minute resolution, formatted "15:04".
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Schedule maps lowercase weekday names ("monday".."sunday") to windows.
type Schedule map[string][]Window

func Parse(raw []byte) (Schedule, error) {
	if len(raw) == 0 {
		return Schedule{}, nil
	}
	var s Schedule
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse availability schedule: %w", err)
	}
	return s, nil
}

// Covers reports whether t falls inside one of the windows for t's weekday.
// A timestamp exactly at a window's End is outside the window.
func (s Schedule) Covers(t time.Time) bool {
	windows, ok := s[strings.ToLower(t.Weekday().String())]
	if !ok {
		return false
	}

	minute := geo.MinutesOfDay(t)
	for _, w := range windows {
		start, err := parseMinute(w.Start)
		if err != nil {
			continue
		}
		end, err := parseMinute(w.End)
		if err != nil {
			continue
		}
		if start <= minute && minute < end {
			return true
		}
	}
	return false
}

func parseMinute(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Validate checks every window of the schedule for well-formed, non-empty
// half-open ranges on known weekdays.
func (s Schedule) Validate() error {
	for day, windows := range s {
		if !validWeekday(day) {
			return fmt.Errorf("unknown weekday %q", day)
		}
		for _, w := range windows {
			start, err := parseMinute(w.Start)
			if err != nil {
				return fmt.Errorf("%s: bad window start %q", day, w.Start)
			}
			end, err := parseMinute(w.End)
			if err != nil {
				return fmt.Errorf("%s: bad window end %q", day, w.End)
			}
			if start >= end {
				return fmt.Errorf("%s: window %s-%s is empty", day, w.Start, w.End)
			}
		}
	}
	return nil
}

func validWeekday(day string) bool {
	switch day {
	case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
		return true
	}
	return false
}
