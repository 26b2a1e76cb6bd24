package assistant

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fjacquet/smart-finance/internal/dateutils"
	"fjacquet/smart-finance/internal/models"
)

// Timeframe is a date range detected in a question. Start and End are UTC
// midnights.
type Timeframe struct {
	Start time.Time
	End   time.Time
	// OpenEnded ranges ("last month") keep every record from Start on,
	// including records dated after End.
	OpenEnded bool
}

// String renders the range as "from YYYY-MM-DD to YYYY-MM-DD".
func (tf Timeframe) String() string {
	return fmt.Sprintf("from %s to %s", dateutils.ToISODate(tf.Start), dateutils.ToISODate(tf.End))
}

// Contains reports whether an ISO date falls inside the range. Bounds are
// inclusive.
func (tf Timeframe) Contains(date string) bool {
	if date < dateutils.ToISODate(tf.Start) {
		return false
	}
	return tf.OpenEnded || date <= dateutils.ToISODate(tf.End)
}

// Apply returns the records inside the range, in input order.
func (tf Timeframe) Apply(txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tf.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}

const monthAlternation = `january|february|march|april|may|june|july|august|september|sept|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec`

var (
	monthDayRangeRe = regexp.MustCompile(`(?i)(` + monthAlternation + `)\s+(\d{1,2})\s*(?:to|-|through|thru)\s*(\d{1,2})(?:\s*(\d{4}))?`)
	betweenRe       = regexp.MustCompile(`(?i)(?:from|between)\s+(\S.*?)\s*(?:to|and|-)\s*(\S.*)$`)
	isoRangeRe      = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})\s*(?:to|-)\s*(\d{4}-\d{2}-\d{2})`)
	onDateRe        = regexp.MustCompile(`(?i)\bon\s+(\S.*)$`)

	tokenISORe   = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	tokenUSRe    = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?$`)
	tokenTextRe  = regexp.MustCompile(`(?i)^(\w+)\s+(\d{1,2})(?:\s+(\d{4}))?$`)
	dayOnlyRe    = regexp.MustCompile(`^(\d{1,2})$`)
	trailingPunc = "?.!;:"
)

// DetectTimeframe looks for a date range in the question, relative to now.
// Explicit ranges win over relative phrases. ok is false when the question
// names no timeframe, meaning all time.
func DetectTimeframe(question string, now time.Time) (Timeframe, bool) {
	q := strings.ToLower(question)
	today := dayOf(now)

	if tf, ok := explicitRange(q, today); ok {
		return tf, true
	}

	switch {
	case strings.Contains(q, "last week") || strings.Contains(q, "past week"):
		return Timeframe{Start: dayOf(now.AddDate(0, 0, -7)), End: today, OpenEnded: true}, true
	case strings.Contains(q, "last month") || strings.Contains(q, "past month") || strings.Contains(q, "this month"):
		return Timeframe{Start: dayOf(now.AddDate(0, 0, -30)), End: today, OpenEnded: true}, true
	case strings.Contains(q, "last year") || strings.Contains(q, "past year") || strings.Contains(q, "this year"):
		return Timeframe{Start: dayOf(now.AddDate(0, 0, -365)), End: today, OpenEnded: true}, true
	case strings.Contains(q, "today"):
		return Timeframe{Start: today, End: today}, true
	case strings.Contains(q, "yesterday"):
		y := dayOf(now.AddDate(0, 0, -1))
		return Timeframe{Start: y, End: y}, true
	}
	return Timeframe{}, false
}

func explicitRange(q string, today time.Time) (Timeframe, bool) {
	if m := monthDayRangeRe.FindStringSubmatch(q); m != nil {
		month, _ := dateutils.MonthByName(m[1])
		year := today.Year()
		if m[4] != "" {
			year, _ = strconv.Atoi(m[4])
		}
		start, ok1 := calendarDay(year, int(month), atoi(m[2]))
		end, ok2 := calendarDay(year, int(month), atoi(m[3]))
		if ok1 && ok2 {
			return ordered(start, end), true
		}
	}

	if m := betweenRe.FindStringSubmatch(q); m != nil {
		left, okLeft := parseQuestionDate(m[1], today)
		right, okRight := leadingDate(m[2], today)
		if okLeft && !okRight {
			// "from aug 3 to 9": the right side inherits month and year.
			fields := strings.Fields(m[2])
			if len(fields) > 0 {
				if d := dayOnlyRe.FindStringSubmatch(strings.TrimRight(fields[0], trailingPunc)); d != nil {
					right, okRight = calendarDay(left.Year(), int(left.Month()), atoi(d[1]))
				}
			}
		}
		if okLeft && okRight {
			return ordered(left, right), true
		}
	}

	if m := isoRangeRe.FindStringSubmatch(q); m != nil {
		left, ok1 := parseQuestionDate(m[1], today)
		right, ok2 := parseQuestionDate(m[2], today)
		if ok1 && ok2 {
			return ordered(left, right), true
		}
	}

	if m := onDateRe.FindStringSubmatch(q); m != nil {
		if d, ok := leadingDate(m[1], today); ok {
			return Timeframe{Start: d, End: d}, true
		}
	}
	return Timeframe{}, false
}

// leadingDate parses the longest date made of the first one to three
// words of s.
func leadingDate(s string, today time.Time) (time.Time, bool) {
	fields := strings.Fields(s)
	n := len(fields)
	if n > 3 {
		n = 3
	}
	for ; n > 0; n-- {
		candidate := strings.TrimRight(strings.Join(fields[:n], " "), trailingPunc)
		if d, ok := parseQuestionDate(candidate, today); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

// parseQuestionDate accepts YYYY-MM-DD, M/D, M/D/YY, M/D/YYYY and
// "Month D [YYYY]". A missing year is the year of today.
func parseQuestionDate(token string, today time.Time) (time.Time, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(token), ",", "")

	if m := tokenISORe.FindStringSubmatch(s); m != nil {
		return calendarDay(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if m := tokenUSRe.FindStringSubmatch(s); m != nil {
		year := today.Year()
		if m[3] != "" {
			year = atoi(m[3])
			if year < 100 {
				year += 2000
			}
		}
		return calendarDay(year, atoi(m[1]), atoi(m[2]))
	}
	if m := tokenTextRe.FindStringSubmatch(s); m != nil {
		month, ok := dateutils.MonthByName(m[1])
		if !ok {
			return time.Time{}, false
		}
		year := today.Year()
		if m[3] != "" {
			year = atoi(m[3])
		}
		return calendarDay(year, int(month), atoi(m[2]))
	}
	return time.Time{}, false
}

func calendarDay(year, month, day int) (time.Time, bool) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func ordered(a, b time.Time) Timeframe {
	if b.Before(a) {
		a, b = b, a
	}
	return Timeframe{Start: a, End: b}
}

// dayOf keeps the calendar date of t in its own location.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
