// Package timeline holds the temporal predicates shared by the publication
// scheduler and the store: date parsing, the past/future test, and the
// resolution of (published, after) query filters into an exclusive date
// window evaluated against an explicit "now".
//
// Nothing in this package reads the wall clock; callers pass now in, which
// keeps every predicate deterministic under test.
package timeline

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDate is returned by ParseDate for empty or unparseable input.
var ErrInvalidDate = errors.New("invalid date")

// layouts accepted by ParseDate, tried in order. Inputs without a zone are
// interpreted as UTC.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses an ISO-8601 date or date-time and returns it in UTC,
// truncated to microseconds (the finest precision every supported store
// keeps).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return Normalize(t), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// Normalize converts t to UTC at microsecond precision.
func Normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// IsPast reports whether date is strictly before now.
func IsPast(date, now time.Time) bool { return date.Before(now) }

// Window is an open date interval (After, Before). A nil bound is unbounded.
// Empty marks a filter that can never match, so callers may skip the store.
type Window struct {
	After  *time.Time
	Before *time.Time
	Empty  bool
}

// Resolve maps the publication list filters onto a Window.
//
//	published  after    window
//	-          -        (-inf, +inf)
//	-          a        (a, +inf)
//	true       -        (-inf, now)
//	true       a > now  empty
//	true       a <= now (a, now)
//	false      -        (now, +inf)
//	false      a        (max(a, now), +inf)
func Resolve(published *bool, after *time.Time, now time.Time) Window {
	switch {
	case published == nil && after == nil:
		return Window{}
	case published == nil:
		return Window{After: ptr(*after)}
	case *published && after == nil:
		return Window{Before: ptr(now)}
	case *published:
		if after.After(now) {
			return Window{Empty: true}
		}
		return Window{After: ptr(*after), Before: ptr(now)}
	case after == nil:
		return Window{After: ptr(now)}
	default:
		lower := *after
		if now.After(lower) {
			lower = now
		}
		return Window{After: ptr(lower)}
	}
}

// Contains reports whether t lies strictly inside the window. It is the
// in-memory form of the predicate repo applies in SQL.
func (w Window) Contains(t time.Time) bool {
	if w.Empty {
		return false
	}
	if w.After != nil && !t.After(*w.After) {
		return false
	}
	if w.Before != nil && !t.Before(*w.Before) {
		return false
	}
	return true
}

// Published returns the window of publications dated before now.
func Published(now time.Time) Window { t := true; return Resolve(&t, nil, now) }

// Scheduled returns the window of publications dated after now.
func Scheduled(now time.Time) Window { f := false; return Resolve(&f, nil, now) }

func ptr(t time.Time) *time.Time { return &t }
