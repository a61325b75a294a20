package crowdnet

import (
	"strings"
	"time"
)

// Locale selects the language used for day names.
type Locale string

const (
	Italian Locale = "it"
	English Locale = "en"
)

var dayNames = map[Locale][7]string{
	Italian: {"Domenica", "Lunedì", "Martedì", "Mercoledì", "Giovedì", "Venerdì", "Sabato"},
	English: {"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
}

// ParseLocale returns the Locale with the given code. Unknown codes give an InputValidationError.
func ParseLocale(s string) (Locale, error) {
	l := Locale(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := dayNames[l]; !ok {
		return English, &InputValidationError{"locale", s, "must be it or en"}
	}
	return l, nil
}

// DayName returns the name of the weekday in the given Locale, falling back to English for
// unknown locales.
func DayName(day time.Weekday, l Locale) string {
	names, ok := dayNames[l]
	if !ok {
		names = dayNames[English]
	}
	return names[day%7]
}
