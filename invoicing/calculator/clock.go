package calculator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// H:MM or HH:MM, optional :SS, optional am/pm suffix with or without a space.
var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::\d{2})?\s*([ap]m)?$`)

// NormalizeClock converts a 12h or 24h clock string into 24h HH:MM.
func NormalizeClock(s string) (string, error) {
	m, err := clockMinutes(s)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%02d:%02d", m/60, m%60), nil
}

// clockMinutes returns minutes since midnight.
func clockMinutes(s string) (int, error) {
	match := clockPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if match == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	hour, _ := strconv.Atoi(match[1])
	minute, _ := strconv.Atoi(match[2])

	if minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	switch meridiem := match[3]; meridiem {
	case "":
		if hour > 23 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
		}
	default:
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
		}

		// 12 am is midnight and 12 pm is noon
		hour %= 12
		if meridiem == "pm" {
			hour += 12
		}
	}

	return hour*60 + minute, nil
}

// shiftMinutes is the length of a shift. An end at or before the start is on the next day.
func shiftMinutes(start, end int) int {
	if end <= start {
		end += minutesPerDay
	}

	return end - start
}
