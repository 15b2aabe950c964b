// Package timeline maintains a vendor's dated menu: one entry per calendar
// day, newest first, each holding a non-empty ordered list of dishes.
//
// Every operation is pure. The input timeline is never modified; callers get
// a fresh copy back and persist it themselves. On error the input is the
// authoritative version and nothing needs to be rolled back.
package timeline

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Day truncates t to its calendar date, expressed as midnight UTC.
// The year, month and day are read in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// dateLayouts are tried in order. Forms without an offset, as sent by a
// datetime-local input, are read in UTC so the written date is kept.
var dateLayouts = []string{
	dateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDate accepts a plain date (2006-01-02), an RFC 3339 timestamp, or a
// local timestamp without offset (2006-01-02T15:04[:05]).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrValidation)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable date %q", ErrValidation, s)
}

// UpsertDay adds dishes to the given date, creating the day if it does not
// exist yet and appending to it otherwise. Dishes with a blank name are
// dropped first; if none remain the call fails with ErrValidation.
func UpsertDay(t Timeline, date time.Time, dishes []Dish) (Timeline, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	}

	valid := make([]Dish, 0, len(dishes))
	for _, d := range dishes {
		if strings.TrimSpace(d.Name) == "" {
			continue
		}
		clean, err := cleanDish(d)
		if err != nil {
			return nil, err
		}
		valid = append(valid, clean)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("%w: at least one dish with a name is required", ErrValidation)
	}

	day := Day(date)
	out := t.Clone()

	merged := false
	for i := range out {
		if Day(out[i].Date).Equal(day) {
			out[i].Dishes = append(out[i].Dishes, valid...)
			merged = true
			break
		}
	}
	if !merged {
		out = append(out, DayMenu{Date: day, Dishes: valid})
	}

	sortNewestFirst(out)
	return out, nil
}

// EditDish replaces the dish at (dayIndex, dishIndex). The day keeps its
// date and position; moving a dish to another date is a delete followed by
// an upsert.
func EditDish(t Timeline, dayIndex, dishIndex int, replacement Dish) (Timeline, error) {
	if err := checkPosition(t, dayIndex, dishIndex); err != nil {
		return nil, err
	}
	if strings.TrimSpace(replacement.Name) == "" {
		return nil, fmt.Errorf("%w: dish name is required", ErrValidation)
	}
	clean, err := cleanDish(replacement)
	if err != nil {
		return nil, err
	}

	out := t.Clone()
	out[dayIndex].Dishes[dishIndex] = clean
	return out, nil
}

// DeleteDish removes the dish at (dayIndex, dishIndex). A day left without
// dishes is removed as well, so later positions shift down by one.
func DeleteDish(t Timeline, dayIndex, dishIndex int) (Timeline, error) {
	if err := checkPosition(t, dayIndex, dishIndex); err != nil {
		return nil, err
	}

	out := t.Clone()
	dishes := out[dayIndex].Dishes
	dishes = append(dishes[:dishIndex], dishes[dishIndex+1:]...)

	if len(dishes) == 0 {
		return append(out[:dayIndex], out[dayIndex+1:]...), nil
	}
	out[dayIndex].Dishes = dishes
	return out, nil
}

// Normalize repairs a timeline read from storage: dates are truncated to the
// day, entries sharing a date are merged in the order they appear, blank
// dishes and empty days are dropped, and days are sorted newest first.
func Normalize(t Timeline) Timeline {
	out := make(Timeline, 0, len(t))
	seen := make(map[time.Time]int, len(t))

	for _, dm := range t {
		dishes := make([]Dish, 0, len(dm.Dishes))
		for _, d := range dm.Dishes {
			if strings.TrimSpace(d.Name) == "" {
				continue
			}
			if d.Kind == "" {
				d.Kind = KindVeg
			}
			dishes = append(dishes, d)
		}
		if len(dishes) == 0 {
			continue
		}

		day := Day(dm.Date)
		if i, ok := seen[day]; ok {
			out[i].Dishes = append(out[i].Dishes, dishes...)
			continue
		}
		seen[day] = len(out)
		out = append(out, DayMenu{Date: day, Dishes: dishes})
	}

	sortNewestFirst(out)
	return out
}

// On returns the menu for the calendar date of date.
func (t Timeline) On(date time.Time) (DayMenu, bool) {
	for _, dm := range t {
		if SameDay(dm.Date, date) {
			return dm, true
		}
	}
	return DayMenu{}, false
}

// Clone returns a deep copy. The result is never nil.
func (t Timeline) Clone() Timeline {
	out := make(Timeline, len(t))
	for i, dm := range t {
		out[i] = DayMenu{
			Date:   dm.Date,
			Dishes: append([]Dish(nil), dm.Dishes...),
		}
	}
	return out
}

// DishCount returns the number of dishes across all days.
func (t Timeline) DishCount() int {
	n := 0
	for _, dm := range t {
		n += len(dm.Dishes)
	}
	return n
}

func checkPosition(t Timeline, dayIndex, dishIndex int) error {
	if dayIndex < 0 || dayIndex >= len(t) {
		return fmt.Errorf("%w: day %d (timeline has %d days)", ErrIndexOutOfRange, dayIndex, len(t))
	}
	if n := len(t[dayIndex].Dishes); dishIndex < 0 || dishIndex >= n {
		return fmt.Errorf("%w: dish %d on day %d (day has %d dishes)", ErrIndexOutOfRange, dishIndex, dayIndex, n)
	}
	return nil
}

func cleanDish(d Dish) (Dish, error) {
	d.Name = strings.TrimSpace(d.Name)
	kind, err := ParseKind(string(d.Kind))
	if err != nil {
		return Dish{}, err
	}
	d.Kind = kind
	return d, nil
}

// ParseKind maps a form value to a Kind. An empty value means vegetarian.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "veg", "vegetarian":
		return KindVeg, nil
	case "non-veg", "nonveg", "non-vegetarian":
		return KindNonVeg, nil
	default:
		return "", fmt.Errorf("%w: unknown dish type %q", ErrValidation, s)
	}
}

func sortNewestFirst(t Timeline) {
	sort.SliceStable(t, func(i, j int) bool {
		return Day(t[i].Date).After(Day(t[j].Date))
	})
}
