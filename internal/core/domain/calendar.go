package domain

import (
	"fmt"
	"time"
)

// DateKey addresses one calendar day as YYYY-MM-DD in the local calendar.
type DateKey string

const dateKeyLayout = "2006-01-02"

// Quarter groups three 0-based month indexes.
type Quarter struct {
	Name   string
	Months [3]int
}

var Quarters = [4]Quarter{
	{Name: "Q1", Months: [3]int{0, 1, 2}},
	{Name: "Q2", Months: [3]int{3, 4, 5}},
	{Name: "Q3", Months: [3]int{6, 7, 8}},
	{Name: "Q4", Months: [3]int{9, 10, 11}},
}

var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// WeekdayNames starts on Monday, matching FirstWeekdayOffset.
var WeekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DaysInMonth returns every day of the 0-based month in ascending order.
// time.Date normalises leap years for us.
func DaysInMonth(year, month int) []time.Time {
	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.Local)
	days := make([]time.Time, 0, 31)
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// FirstWeekdayOffset is the number of blank cells before day one in a
// Monday-first grid: Monday -> 0 ... Sunday -> 6.
func FirstWeekdayOffset(year, month int) int {
	wd := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.Local).Weekday()
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}

// KeyOf renders the local year, month and day of t.
func KeyOf(t time.Time) DateKey {
	y, m, d := t.Date()
	return DateKey(fmt.Sprintf("%04d-%02d-%02d", y, int(m), d))
}

// ParseDateKey validates s and returns it as a DateKey.
func ParseDateKey(s string) (DateKey, error) {
	t, err := time.ParseInLocation(dateKeyLayout, s, time.Local)
	if err != nil || KeyOf(t) != DateKey(s) {
		return "", Invalid(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s))
	}
	return DateKey(s), nil
}

// Time returns the local midnight of the key. The key must be valid.
func (k DateKey) Time() (time.Time, error) {
	t, err := time.ParseInLocation(dateKeyLayout, string(k), time.Local)
	if err != nil {
		return time.Time{}, Invalid(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", k))
	}
	return t, nil
}

func MonthDateKeys(year, month int) []DateKey {
	days := DaysInMonth(year, month)
	keys := make([]DateKey, len(days))
	for i, d := range days {
		keys[i] = KeyOf(d)
	}
	return keys
}

// QuarterDateKeys returns nil for a quarter index outside [0,3].
func QuarterDateKeys(year, quarter int) []DateKey {
	if quarter < 0 || quarter >= len(Quarters) {
		return nil
	}
	var keys []DateKey
	for _, m := range Quarters[quarter].Months {
		keys = append(keys, MonthDateKeys(year, m)...)
	}
	return keys
}

func YearDateKeys(year int) []DateKey {
	keys := make([]DateKey, 0, 366)
	for m := 0; m < 12; m++ {
		keys = append(keys, MonthDateKeys(year, m)...)
	}
	return keys
}
