package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/screener/pkg/domain"
)

// DateLayout is the long form used for interview slots, e.g.
// "Monday, October 19, 2026 at 2:00 PM".
const DateLayout = "Monday, January 2, 2006 at 3:04 PM"

const (
	defaultHour   = 10
	afternoonHour = 14
	eveningHour   = 17
)

var (
	weekdayPattern = regexp.MustCompile(`(?i)\b(sunday|monday|tuesday|wednesday|thursday|friday|saturday)\b`)
	clockPattern   = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`)

	weekdays = map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}
)

// InterviewDate formats the slot named in text with DateLayout, or returns domain.Unclear.
func InterviewDate(text string, now time.Time) string {
	slot, ok := InterviewTime(text, now)
	if !ok {
		return domain.Unclear
	}
	return slot.Format(DateLayout)
}

// InterviewTime resolves the first weekday mentioned in text to its next
// occurrence strictly after now's calendar day, in now's location.
func InterviewTime(text string, now time.Time) (time.Time, bool) {
	m := weekdayPattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	target := weekdays[strings.ToLower(m[1])]

	days := (int(target) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}

	hour, minute := partOfDay(text), 0
	if h, min, ok := explicitClock(text); ok {
		hour, minute = h, min
	}

	return time.Date(now.Year(), now.Month(), now.Day()+days, hour, minute, 0, 0, now.Location()), true
}

func partOfDay(text string) int {
	lower := strings.ToLower(text)
	hour := defaultHour
	if strings.Contains(lower, "afternoon") {
		hour = afternoonHour
	}
	if strings.Contains(lower, "evening") {
		hour = eveningHour
	}
	return hour
}

// explicitClock parses H[:MM][am|pm]. Only pm shifts the hour, and only below 12.
func explicitClock(text string) (hour, minute int, ok bool) {
	m := clockPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil || hour > 23 {
		return 0, 0, false
	}
	if m[2] != "" {
		if mm, err := strconv.Atoi(m[2]); err == nil && mm < 60 {
			minute = mm
		}
	}
	if strings.EqualFold(m[3], "pm") && hour < 12 {
		hour += 12
	}
	return hour, minute, true
}
