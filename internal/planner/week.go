package planner

import "time"

const (
	// FirstHour is the first hour row of the timebox grid (7 AM).
	FirstHour = 7
	// LastHour is the last hour row of the timebox grid (9 PM), inclusive.
	LastHour = 21
	// DaysPerWeek is the number of grid columns.
	DaysPerWeek = 7
)

// Hours lists the grid rows in display order.
func Hours() []int {
	hours := make([]int, 0, LastHour-FirstHour+1)
	for h := FirstHour; h <= LastHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// Week is the Monday-to-Sunday interval shown by the calendar.
type Week struct {
	Start time.Time `json:"start"`
}

// WeekOf returns the week containing ref. Weeks start on Monday at midnight
// in ref's location.
func WeekOf(ref time.Time) Week {
	day := StartOfDay(ref)
	offset := (int(day.Weekday()) + 6) % 7
	return Week{Start: day.AddDate(0, 0, -offset)}
}

// Days returns the seven days of the week at midnight.
func (w Week) Days() []time.Time {
	days := make([]time.Time, DaysPerWeek)
	for i := range days {
		days[i] = w.Start.AddDate(0, 0, i)
	}
	return days
}

// End returns the Sunday of the week at midnight.
func (w Week) End() time.Time {
	return w.Start.AddDate(0, 0, DaysPerWeek-1)
}

// Contains reports whether t falls on one of the week's days.
func (w Week) Contains(t time.Time) bool {
	t = t.In(w.Start.Location())
	return !t.Before(w.Start) && t.Before(w.Start.AddDate(0, 0, DaysPerWeek))
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfHour drops minutes, seconds and nanoseconds from t.
func StartOfHour(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), 0, 0, 0, t.Location())
}

// SlotTime is the date-time of the grid cell for day at hour.
func SlotTime(day time.Time, hour int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, day.Location())
}

// SameDay compares the calendar dates of a and b, reading a in b's location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// In reads the week's starting date in loc, keeping Monday as the first day.
func (w Week) In(loc *time.Location) Week {
	y, m, d := w.Start.Date()
	return Week{Start: time.Date(y, m, d, 0, 0, 0, 0, loc)}
}

// SlotKey identifies the hour slot of the grid in loc that t falls in.
// Instants inside the same local hour share a key whatever zone they carry.
func SlotKey(t time.Time, loc *time.Location) string {
	return StartOfHour(t.In(loc)).UTC().Format(time.RFC3339)
}

func onGrid(hour int) bool {
	return hour >= FirstHour && hour <= LastHour
}
