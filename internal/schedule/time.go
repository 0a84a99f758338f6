package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// minutesOfDay parses an "HH:MM" clock string into minutes since midnight.
func minutesOfDay(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", clock)
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %v", clock, err)
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %v", clock, err)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("time %q out of range", clock)
	}
	return hours*60 + minutes, nil
}

func clockOfMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ExpandDays splits a compact day pattern into day tokens: "MWF" becomes
// M, W, F and "TTH" becomes T, TH. "TH" is the only two-letter day.
func ExpandDays(pattern string) []string {
	pattern = strings.ToUpper(strings.TrimSpace(pattern))
	days := make([]string, 0, len(pattern))
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == 'T' && i+1 < len(pattern) && pattern[i+1] == 'H' {
			days = append(days, "TH")
			i++
			continue
		}
		days = append(days, string(pattern[i]))
	}
	return days
}
