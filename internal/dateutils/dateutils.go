// Package dateutils provides the lenient date handling used by import and
// query answering.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Common date layouts used throughout the application
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutFull     = "2006-01-02 15:04:05"
)

// CommonFormats is the generic fallback chain tried after the explicit
// numeric and textual shapes fail.
var CommonFormats = []string{
	DateLayoutFull,
	DateLayoutISO + "T15:04:05Z07:00",
	DateLayoutISO + "T15:04:05",
	DateLayoutEuropean,
	"2.1.2006",
	"2006/01/02",
	"2006/1/2",
	"Jan 2 2006",
	"January 2 2006",
	"2-Jan-2006",
	"Mon, 02 Jan 2006",
	"Mon Jan 2 2006",
	time.RFC1123,
	time.RFC1123Z,
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	isoRe        = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	slashRe      = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2}|\d{4})$`)
	// "December 15, 2024" or "15 Dec 2024"
	textMonthRe = regexp.MustCompile(`(?i)([a-z]+)\s+(\d{1,2}),?\s+(\d{4})|(\d{1,2})\s+([a-z]+)\s+(\d{4})`)
)

var monthNames = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// MonthByName resolves a full or abbreviated English month name.
func MonthByName(name string) (time.Month, bool) {
	m, ok := monthNames[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// CleanDateString trims the input and collapses inner whitespace.
func CleanDateString(dateStr string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseDate parses a raw date using, in order: ISO Y-M-D, M/D/YYYY or M/D/YY
// (two-digit years are 20YY), textual month forms, then CommonFormats.
// The result is a UTC midnight time.
func ParseDate(dateStr string) (time.Time, error) {
	cleaned := CleanDateString(dateStr)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if m := isoRe.FindStringSubmatch(cleaned); m != nil {
		return calendarDate(atoi(m[1]), atoi(m[2]), atoi(m[3]), dateStr)
	}

	if m := slashRe.FindStringSubmatch(cleaned); m != nil {
		year := atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
		return calendarDate(year, atoi(m[1]), atoi(m[2]), dateStr)
	}

	if m := textMonthRe.FindStringSubmatch(cleaned); m != nil {
		var monthName, day, year string
		if m[1] != "" {
			monthName, day, year = m[1], m[2], m[3]
		} else {
			day, monthName, year = m[4], m[5], m[6]
		}
		if month, ok := MonthByName(monthName); ok {
			return calendarDate(atoi(year), int(month), atoi(day), dateStr)
		}
	}

	for _, layout := range CommonFormats {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return StartOfDay(t.UTC()), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// NormalizeDate returns the ISO form of dateStr, falling back to the
// calendar date of now when it cannot be parsed.
func NormalizeDate(dateStr string, now time.Time) string {
	t, err := ParseDate(dateStr)
	if err != nil {
		return ToISODate(now)
	}
	return ToISODate(t)
}

// IsISODate reports whether s is a valid YYYY-MM-DD calendar date.
func IsISODate(s string) bool {
	_, err := time.Parse(DateLayoutISO, s)
	return err == nil
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// MonthLabel renders a YYYY-MM key as a short label such as "Sep 25".
// Unparseable keys are returned unchanged.
func MonthLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("Jan 06")
}

// calendarDate rejects overflowing components such as 2024-02-30 rather than
// letting time.Date normalize them.
func calendarDate(year, month, day int, raw string) (time.Time, error) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("invalid calendar date: %s", raw)
	}
	return t, nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
