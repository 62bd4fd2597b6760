package dbupdate

import (
	"AppShelf/internal/constants"
	"AppShelf/internal/settings"
	"AppShelf/internal/testutils"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestShouldCheck(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	enabled := Policy{Enabled: true, Interval: 24 * time.Hour}

	record := func(t time.Time) *LastCheck {
		return &LastCheck{LastCheck: t.Format(time.RFC3339)}
	}

	tests := []struct {
		name   string
		policy Policy
		last   *LastCheck
		want   bool
	}{
		{"disabled", Policy{Interval: time.Hour}, nil, false},
		{"disabled ignores stale record", Policy{Interval: time.Hour}, record(now.Add(-100 * time.Hour)), false},
		{"no record", enabled, nil, true},
		{"empty record", enabled, &LastCheck{}, true},
		{"malformed record", enabled, &LastCheck{LastCheck: "yesterday"}, true},
		{"future record", enabled, record(now.Add(time.Hour)), true},
		{"within interval", enabled, record(now.Add(-23 * time.Hour)), false},
		{"exactly interval", enabled, record(now.Add(-24 * time.Hour)), true},
		{"past interval", enabled, record(now.Add(-25 * time.Hour)), true},
		{"zero interval", Policy{Enabled: true}, record(now), true},
		{"longest interval", Policy{Enabled: true, Interval: time.Duration(math.MaxInt64)}, record(now.Add(-time.Minute)), false},
	}

	var cases []testutils.TestCase
	for _, tt := range tests {
		got := ShouldCheck(tt.policy, tt.last, now)
		cases = append(cases, testutils.TestCase{
			Name:     tt.name,
			Input:    tt.name,
			Expected: fmt.Sprint(tt.want),
			Actual:   fmt.Sprint(got),
			Pass:     got == tt.want,
		})
	}
	testutils.PrintTestTable(t, cases)
}

func TestEvaluateNextDue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	last := &LastCheck{LastCheck: now.Add(-2 * time.Hour).Format(time.RFC3339)}

	d := Evaluate(Policy{Enabled: true, Interval: 6 * time.Hour}, last, now)
	require.False(t, d.Proceed)
	require.True(t, d.NextDue.Equal(now.Add(4*time.Hour)))
	require.Contains(t, d.Reason, "4.0 hours")
}

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("2026-03-10T12:30:00Z")
	require.NoError(t, err)
	require.True(t, got.Equal(time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC)))

	got, err = ParseTimestamp("2026-03-10T12:30:00.123456")
	require.NoError(t, err)
	require.Equal(t, time.Local, got.Location())
	require.Equal(t, 123456000, got.Nanosecond())

	_, err = ParseTimestamp("not a time")
	require.Error(t, err)
}

func TestPolicyFromSettings(t *testing.T) {
	p := PolicyFromSettings(settings.Defaults())
	require.False(t, p.Enabled)
	require.Equal(t, 24*time.Hour, p.Interval)

	p = PolicyFromSettings(settings.Settings{
		constants.UpdateCheckerKey:       true,
		constants.UpdateIntervalHoursKey: 0.5,
	})
	require.True(t, p.Enabled)
	require.Equal(t, 30*time.Minute, p.Interval)

	p = PolicyFromSettings(settings.Settings{constants.UpdateIntervalHoursKey: -3.0})
	require.Equal(t, 24*time.Hour, p.Interval)

	p = PolicyFromSettings(settings.Settings{
		constants.UpdateCheckerKey:       true,
		constants.UpdateIntervalHoursKey: 1e7,
	})
	require.Equal(t, time.Duration(math.MaxInt64), p.Interval)
	lastMinute := &LastCheck{LastCheck: time.Now().Add(-time.Minute).Format(time.RFC3339)}
	require.False(t, ShouldCheck(p, lastMinute, time.Now()))
}
