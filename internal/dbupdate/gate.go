package dbupdate

import (
	"AppShelf/internal/constants"
	"AppShelf/internal/settings"
	"fmt"
	"math"
	"strings"
	"time"
)

// Policy is the part of the settings that drives the gate.
type Policy struct {
	Enabled  bool
	Interval time.Duration
}

// PolicyFromSettings reads update_checker and update_interval_hours.
// A negative interval falls back to the default of 24 hours. Intervals too
// long for a time.Duration are capped at the largest one.
func PolicyFromSettings(s settings.Settings) Policy {
	hours := s.Float(constants.UpdateIntervalHoursKey, constants.DefaultUpdateIntervalHours)
	if hours < 0 {
		hours = constants.DefaultUpdateIntervalHours
	}
	interval := time.Duration(math.MaxInt64)
	if hours < float64(math.MaxInt64)/float64(time.Hour) {
		interval = time.Duration(hours * float64(time.Hour))
	}
	return Policy{
		Enabled:  s.Bool(constants.UpdateCheckerKey, false),
		Interval: interval,
	}
}

// LastCheck is the persisted last-check record.
type LastCheck struct {
	LastCheck string `json:"last_check"`
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses an RFC 3339 timestamp, or a naive ISO-8601 one in
// local time as written by older releases.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// Time returns the recorded time and whether it could be parsed.
func (lc *LastCheck) Time() (time.Time, bool) {
	if lc == nil || lc.LastCheck == "" {
		return time.Time{}, false
	}
	t, err := ParseTimestamp(lc.LastCheck)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Decision is the result of evaluating the gate.
type Decision struct {
	Proceed bool
	Reason  string
	// NextDue is set when the check was skipped because of the interval.
	NextDue time.Time
}

// Evaluate decides whether a check should run at now. A missing, malformed
// or future record lets the check proceed.
func Evaluate(p Policy, last *LastCheck, now time.Time) Decision {
	if !p.Enabled {
		return Decision{Reason: "update checker is disabled in settings"}
	}

	at, ok := last.Time()
	if !ok {
		return Decision{Proceed: true, Reason: "no valid last check record"}
	}

	elapsed := now.Sub(at)
	if elapsed < 0 {
		return Decision{Proceed: true, Reason: "last check record is in the future"}
	}
	if elapsed < p.Interval {
		next := at.Add(p.Interval)
		return Decision{
			Reason:  fmt.Sprintf("next check in %.1f hours", next.Sub(now).Hours()),
			NextDue: next,
		}
	}
	return Decision{Proceed: true, Reason: "check interval elapsed"}
}

// ShouldCheck reports whether a check should run at now.
func ShouldCheck(p Policy, last *LastCheck, now time.Time) bool {
	return Evaluate(p, last, now).Proceed
}
