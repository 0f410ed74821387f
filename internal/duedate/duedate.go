// Package duedate turns what a user types into the YYYY-MM-DD form items store.
package duedate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/idilsaglam/duedo/internal/model"
)

var ErrUnrecognized = errors.New("unrecognized date")

var relRe = regexp.MustCompile(`^\+(\d{1,3})([dw])$`)

var weekdays = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// Normalize accepts YYYY-MM-DD, today, tomorrow (tmrw), +Nd, +Nw or a
// weekday name and returns the date in YYYY-MM-DD form relative to now.
// Blank input stays blank so the store can reject it.
func Normalize(input string, now time.Time) (string, error) {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return "", nil
	}
	today := day(now)

	switch in {
	case "today":
		return today.Format(model.DateLayout), nil
	case "tomorrow", "tmrw":
		return today.AddDate(0, 0, 1).Format(model.DateLayout), nil
	}

	if m := relRe.FindStringSubmatch(in); m != nil {
		n, _ := strconv.Atoi(m[1])
		if m[2] == "w" {
			n *= 7
		}
		return today.AddDate(0, 0, n).Format(model.DateLayout), nil
	}

	if wd, ok := weekdays[in]; ok {
		diff := (int(wd) - int(today.Weekday()) + 7) % 7
		if diff == 0 {
			diff = 7
		}
		return today.AddDate(0, 0, diff).Format(model.DateLayout), nil
	}

	t, err := time.ParseInLocation(model.DateLayout, in, now.Location())
	if err != nil {
		return "", fmt.Errorf("%q: %w", input, ErrUnrecognized)
	}
	return t.Format(model.DateLayout), nil
}

// Parse reads a stored due date.
func Parse(due string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(model.DateLayout, strings.TrimSpace(due), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", due, ErrUnrecognized)
	}
	return t, nil
}

// Overdue reports whether due is strictly before the day of now.
// Unparseable dates are never overdue.
func Overdue(due string, now time.Time) bool {
	t, err := Parse(due, now.Location())
	if err != nil {
		return false
	}
	return t.Before(day(now))
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
