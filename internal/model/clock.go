package model

import (
	"fmt"
	"strings"
)

const minutesPerDay = 24 * 60

// ParseClock parses a zero-padded 24h "HH:MM" string into minutes after midnight.
func ParseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q (want HH:MM)", s)
	}
	digits := [4]byte{s[0], s[1], s[3], s[4]}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid time %q (want HH:MM)", s)
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("invalid time %q (out of range)", s)
	}
	return h*60 + m, nil
}

// FormatClock formats minutes after midnight as "HH:MM", wrapping modulo 24h.
func FormatClock(mins int) string {
	mins %= minutesPerDay
	if mins < 0 {
		mins += minutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// EndTime adds durationMins to start. An unparsable start yields "".
func EndTime(start string, durationMins int) string {
	m, err := ParseClock(start)
	if err != nil {
		return ""
	}
	return FormatClock(m + durationMins)
}
