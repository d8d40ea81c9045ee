package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday 2026-09-02 is the fixed reference for most cases below.
var refWednesday = time.Date(2026, 9, 2, 10, 30, 0, 0, time.UTC)

func resolver() *Resolver { return New(time.UTC) }

func mustResolve(t *testing.T, expr string, ref time.Time) time.Time {
	t.Helper()
	res, ok := resolver().Resolve(expr, ref)
	require.True(t, ok, "expected %q to resolve", expr)
	require.False(t, res.IsRange())
	return res.Start
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolve_Weekdays(t *testing.T) {
	cases := []struct {
		expr string
		want time.Time
	}{
		{"next friday", date(2026, 9, 4)},
		{"next wednesday", date(2026, 9, 9)}, // never today, even when today matches
		{"next monday", date(2026, 9, 7)},
		{"last wednesday", date(2026, 8, 26)},
		{"last friday", date(2026, 8, 28)},
		{"this wednesday", date(2026, 9, 2)}, // today, when today matches
		{"this friday", date(2026, 9, 4)},
		{"this monday", date(2026, 9, 7)}, // already passed, rolls to next week
	}
	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			assert.Equal(t, tc.want, mustResolve(t, tc.expr, refWednesday))
		})
	}
}

func TestResolve_WeekdayRules_AllDays(t *testing.T) {
	for name := range weekdays {
		next := mustResolve(t, "next "+name, refWednesday)
		last := mustResolve(t, "last "+name, refWednesday)
		this := mustResolve(t, "this "+name, refWednesday)

		assert.True(t, next.After(refWednesday), "next %s must be strictly after ref", name)
		assert.True(t, last.Before(refWednesday), "last %s must be strictly before ref", name)
		assert.True(t, !this.Before(date(2026, 9, 2)), "this %s must not be in the past", name)
		assert.LessOrEqual(t, next.Sub(last), 14*24*time.Hour)
	}
}

func TestResolve_Weekend(t *testing.T) {
	thisWeekend := mustResolve(t, "this weekend", refWednesday)
	nextWeekend := mustResolve(t, "next weekend", refWednesday)

	assert.Equal(t, date(2026, 9, 5), thisWeekend) // that week's Saturday
	assert.Equal(t, date(2026, 9, 12), nextWeekend)

	// "next weekend" skips the coming Saturday entirely.
	assert.Equal(t, 7*24*time.Hour, nextWeekend.Sub(thisWeekend))
	assert.GreaterOrEqual(t, nextWeekend.Sub(refWednesday), 8*24*time.Hour)

	// From a Saturday the skipped Saturday is today, so the result is the
	// Saturday 7 days out.
	refSaturday := time.Date(2026, 9, 5, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, date(2026, 9, 12), mustResolve(t, "next weekend", refSaturday))
}

func TestResolve_WeekNormalizesToMonday(t *testing.T) {
	assert.Equal(t, date(2026, 8, 31), mustResolve(t, "this week", refWednesday))
	assert.Equal(t, date(2026, 9, 7), mustResolve(t, "next week", refWednesday))
	assert.Equal(t, date(2026, 8, 24), mustResolve(t, "last week", refWednesday))

	// Sunday belongs to the week that started the previous Monday.
	refSunday := time.Date(2026, 9, 6, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, date(2026, 8, 31), mustResolve(t, "this week", refSunday))
	assert.Equal(t, date(2026, 8, 24), mustResolve(t, "last week", refSunday))
	assert.Equal(t, date(2026, 9, 7), mustResolve(t, "next week", refSunday))
}

func TestResolve_MonthClamping(t *testing.T) {
	jan31 := time.Date(2026, 1, 31, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, date(2026, 2, 28), mustResolve(t, "next month", jan31))

	mar31 := time.Date(2026, 3, 31, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, date(2026, 2, 28), mustResolve(t, "last month", mar31))

	// Leap year keeps Feb 29.
	jan31leap := time.Date(2028, 1, 31, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC), mustResolve(t, "next month", jan31leap))

	// December rolls into January of the next year.
	dec15 := time.Date(2026, 12, 15, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, date(2027, 1, 15), mustResolve(t, "next month", dec15))
}

func TestResolve_Year(t *testing.T) {
	assert.Equal(t, date(2027, 9, 2), mustResolve(t, "next year", refWednesday))
	assert.Equal(t, date(2025, 9, 2), mustResolve(t, "last year", refWednesday))

	// Feb 29 clamps to Feb 28 in a non-leap year.
	feb29 := time.Date(2028, 2, 29, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, date(2029, 2, 28), mustResolve(t, "next year", feb29))
}

func TestResolve_ISORoundTrip(t *testing.T) {
	got := mustResolve(t, "2026-01-15", refWednesday)
	assert.Equal(t, date(2026, 1, 15), got)
}

func TestResolve_FallbackParser(t *testing.T) {
	got := mustResolve(t, "two weeks from now", refWednesday)
	assert.Equal(t, date(2026, 9, 16), got)

	got = mustResolve(t, "tomorrow", refWednesday)
	assert.Equal(t, date(2026, 9, 3), got)
}

func TestResolve_Unresolvable(t *testing.T) {
	for _, expr := range []string{"", "   ", "banana pancake"} {
		_, ok := resolver().Resolve(expr, refWednesday)
		assert.False(t, ok, "expected %q to be unresolvable", expr)
	}
}

func TestResolve_CaseAndWhitespace(t *testing.T) {
	assert.Equal(t, date(2026, 9, 4), mustResolve(t, "  Next FRIDAY ", refWednesday))
}

func TestResolveTime(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2:30 PM", "14:30", true},
		{"2:30 pm", "14:30", true},
		{"9am", "09:00", true},
		{"12 pm", "12:00", true},
		{"12 am", "00:00", true},
		{"14:30", "14:30", true},
		{"00:05", "00:05", true},
		{"23:59", "23:59", true},
		{"24:00", "", false},
		{"13 pm", "", false},
		{"0 am", "", false},
		{"14:60", "", false},
		{"noonish", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ResolveTime(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCombine(t *testing.T) {
	r := resolver()
	d := date(2026, 9, 5)

	assert.Equal(t, time.Date(2026, 9, 5, 14, 30, 0, 0, time.UTC), r.Combine(d, "14:30"))
	// No time falls back to the default hour.
	assert.Equal(t, time.Date(2026, 9, 5, 9, 0, 0, 0, time.UTC), r.Combine(d, ""))
}

func TestNormalizeForward(t *testing.T) {
	r := resolver()
	ref := refWednesday

	// Stale year from model output clamps to the current year.
	got := r.NormalizeForward(time.Date(2023, 10, 1, 9, 0, 0, 0, time.UTC), ref)
	assert.Equal(t, 2026, got.Year())

	// A date already past this year rolls forward.
	got = r.NormalizeForward(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), ref)
	assert.Equal(t, 2027, got.Year())

	// A plausible upcoming date is untouched.
	in := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, in, r.NormalizeForward(in, ref))
}

func TestResolve_TimeZoneFixed(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	r := New(chicago)

	// 02:00 UTC on Sep 3 is still Sep 2 in Chicago; "tomorrow" is Sep 3 there.
	ref := time.Date(2026, 9, 3, 2, 0, 0, 0, time.UTC)
	res, ok := r.Resolve("tomorrow", ref)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 9, 3, 0, 0, 0, 0, chicago), res.Start)
}
