// Package timeparse resolves free-text date and time expressions into
// concrete values relative to a fixed reference instant. Resolution is
// layered: a contextual phrase table, then a relative pattern matcher, then
// ISO passthrough, then a general-purpose natural language parser with
// forward-dating bias.
package timeparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	naturaldate "github.com/tj/go-naturaldate"
)

// Resolution is a concrete date or date range. Single dates have
// Start == End. All values are midnight in the resolver's time zone.
type Resolution struct {
	Start time.Time
	End   time.Time
}

func (r Resolution) IsRange() bool { return !r.Start.Equal(r.End) }

// Resolver disambiguates date expressions in one time zone. It holds no
// clock; the reference instant is passed per call so results are
// reproducible.
type Resolver struct {
	loc *time.Location
}

func New(loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{loc: loc}
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// contextMappings rewrites weekend idioms into weekday expressions.
// "next weekend" is intentionally absent; it has its own rule. The
// "this/next/last week" phrases are not mapped either: they must reach the
// week unit branch, which normalizes to the Monday of the calendar week
// rather than applying the weekday rules.
var contextMappings = map[string]string{
	"this weekend": "this saturday",
	"last weekend": "last saturday",
}

var (
	relativePattern = regexp.MustCompile(`^(next|last|this)\s+(monday|tuesday|wednesday|thursday|friday|saturday|sunday|day|week|month|year)$`)
	isoDatePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Resolve turns an expression into a concrete date relative to ref. The
// second return value is false when the expression cannot be resolved.
func (r *Resolver) Resolve(expression string, ref time.Time) (Resolution, bool) {
	expr := strings.ToLower(strings.TrimSpace(expression))
	if expr == "" {
		return Resolution{}, false
	}

	ref = ref.In(r.loc)
	today := r.midnight(ref)

	// "next weekend" skips the coming Saturday and lands on the Saturday of
	// the following week, unlike the plain "next saturday" rule. When the
	// reference day is itself a Saturday, that is only 7 days out.
	if expr == "next weekend" {
		daysToSaturday := int(time.Saturday - today.Weekday())
		if daysToSaturday < 0 {
			daysToSaturday += 7
		}
		d := today.AddDate(0, 0, daysToSaturday+7)
		return single(d), true
	}

	if mapped, ok := contextMappings[expr]; ok {
		expr = mapped
	}

	if m := relativePattern.FindStringSubmatch(expr); m != nil {
		return single(r.resolveRelative(today, m[1], m[2])), true
	}

	if isoDatePattern.MatchString(expr) {
		d, err := time.ParseInLocation("2006-01-02", expr, r.loc)
		if err != nil {
			return Resolution{}, false
		}
		return single(d), true
	}

	// Fallback parser, forward-biased so ambiguous expressions land in the
	// future.
	parsed, err := naturaldate.Parse(expr, ref, naturaldate.WithDirection(naturaldate.Future))
	if err != nil || parsed.Equal(ref) {
		return Resolution{}, false
	}
	return single(r.midnight(parsed.In(r.loc))), true
}

func (r *Resolver) resolveRelative(today time.Time, modifier, unit string) time.Time {
	if wd, ok := weekdays[unit]; ok {
		return resolveWeekday(today, modifier, wd)
	}
	return resolveUnit(today, modifier, unit)
}

// resolveWeekday applies the modifier rules:
// next X is strictly after today, even when today is X; last X is strictly
// before; this X is today when today is X, otherwise the upcoming X.
func resolveWeekday(today time.Time, modifier string, target time.Weekday) time.Time {
	current := today.Weekday()
	switch modifier {
	case "next":
		days := int(target - current)
		if days <= 0 {
			days += 7
		}
		return today.AddDate(0, 0, days)
	case "last":
		days := int(target - current)
		if days >= 0 {
			days -= 7
		}
		return today.AddDate(0, 0, days)
	default: // this
		switch {
		case current == target:
			return today
		case current < target:
			return today.AddDate(0, 0, int(target-current))
		default:
			return today.AddDate(0, 0, 7-int(current-target))
		}
	}
}

// resolveUnit handles day/week/month/year. Weeks normalize to Monday;
// month and year arithmetic preserves the day-of-month, clamped to the last
// valid day of the target month.
func resolveUnit(today time.Time, modifier, unit string) time.Time {
	switch unit {
	case "day":
		switch modifier {
		case "next":
			return today.AddDate(0, 0, 1)
		case "last":
			return today.AddDate(0, 0, -1)
		default:
			return today
		}
	case "week":
		daysToMonday := 1 - int(today.Weekday())
		if today.Weekday() == time.Sunday {
			daysToMonday = -6
		}
		monday := today.AddDate(0, 0, daysToMonday)
		switch modifier {
		case "next":
			return monday.AddDate(0, 0, 7)
		case "last":
			return monday.AddDate(0, 0, -7)
		default:
			return monday
		}
	case "month":
		year, month, day := today.Date()
		switch modifier {
		case "next":
			month++
		case "last":
			month--
		}
		if month > time.December {
			month = time.January
			year++
		} else if month < time.January {
			month = time.December
			year--
		}
		return clampedDate(year, month, day, today.Location())
	case "year":
		year, month, day := today.Date()
		switch modifier {
		case "next":
			year++
		case "last":
			year--
		}
		return clampedDate(year, month, day, today.Location())
	}
	return today
}

// clampedDate builds a date with day-of-month clamped to the target month's
// length, avoiding Go's normalization (Feb 31 -> Mar 3).
func clampedDate(year int, month time.Month, day int, loc *time.Location) time.Time {
	last := daysIn(year, month)
	if day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (r *Resolver) midnight(t time.Time) time.Time {
	y, m, d := t.In(r.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.loc)
}

func single(d time.Time) Resolution { return Resolution{Start: d, End: d} }

var (
	twelveHourPattern     = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)$`)
	twentyFourHourPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// ResolveTime parses a 12-hour or 24-hour clock expression into normalized
// "HH:MM". Invalid hours or minutes yield false, never a guessed value.
func ResolveTime(expression string) (string, bool) {
	expr := strings.ToLower(strings.TrimSpace(expression))
	if expr == "" {
		return "", false
	}

	if m := twelveHourPattern.FindStringSubmatch(expr); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour < 1 || hour > 12 || minute > 59 {
			return "", false
		}
		if m[3] == "pm" && hour != 12 {
			hour += 12
		}
		if m[3] == "am" && hour == 12 {
			hour = 0
		}
		return formatHHMM(hour, minute), true
	}

	if m := twentyFourHourPattern.FindStringSubmatch(expr); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 || minute > 59 {
			return "", false
		}
		return formatHHMM(hour, minute), true
	}

	return "", false
}

func formatHHMM(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// DefaultHour is the time of day used when only a date is known.
const DefaultHour = 9

// Combine composes a resolved date and an optional "HH:MM" time into a
// single timestamp in the resolver's zone. Without a time, the default hour
// is used.
func (r *Resolver) Combine(date time.Time, hhmm string) time.Time {
	hour, minute := DefaultHour, 0
	if hhmm != "" {
		if h, err := strconv.Atoi(hhmm[:2]); err == nil {
			hour = h
		}
		if m, err := strconv.Atoi(hhmm[3:]); err == nil {
			minute = m
		}
	}
	y, m, d := date.In(r.loc).Date()
	return time.Date(y, m, d, hour, minute, 0, 0, r.loc)
}

// NormalizeForward clamps a resolved date's year into the current or next
// year and rolls past dates forward a year, so model output like
// "2023-06-01" becomes a plausible upcoming date.
func (r *Resolver) NormalizeForward(date time.Time, ref time.Time) time.Time {
	ref = ref.In(r.loc)
	d := date.In(r.loc)
	if d.Year() < ref.Year() || d.Year() > ref.Year()+1 {
		d = time.Date(ref.Year(), d.Month(), d.Day(), d.Hour(), d.Minute(), 0, 0, r.loc)
	}
	if d.Before(ref) {
		d = d.AddDate(1, 0, 0)
	}
	return d
}
