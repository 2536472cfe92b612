// Package timeutil parses the relative windows accepted by --since.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const day = 24 * time.Hour

var (
	segmentPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	units          = map[string]time.Duration{
		"m":      time.Minute,
		"min":    time.Minute,
		"minute": time.Minute,
		"h":      time.Hour,
		"hr":     time.Hour,
		"hour":   time.Hour,
		"d":      day,
		"day":    day,
		"w":      7 * day,
		"wk":     7 * day,
		"week":   7 * day,
	}
)

// ParseSince parses a window such as "3d", "2 weeks" or "1w2d". Empty input
// means no window and returns zero.
func ParseSince(input string) (time.Duration, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	total := time.Duration(0)
	for len(remaining) > 0 {
		matches := segmentPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, fmt.Errorf("invalid window %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid window value %q: %w", matches[1], err)
		}
		base, ok := units[strings.TrimSuffix(matches[2], "s")]
		if !ok {
			base, ok = units[matches[2]]
		}
		if !ok {
			return 0, fmt.Errorf("unsupported window unit %q", matches[2])
		}
		total += time.Duration(value) * base
		remaining = strings.TrimLeft(remaining[len(matches[0]):], " ,")
	}
	if total < 0 {
		return 0, fmt.Errorf("window must not be negative")
	}
	return total, nil
}

// Label renders d compactly using week, day, hour and minute tokens.
func Label(d time.Duration) string {
	if d < time.Minute {
		return "0m"
	}
	var b strings.Builder
	for _, u := range []struct {
		label string
		value time.Duration
	}{
		{"w", 7 * day},
		{"d", day},
		{"h", time.Hour},
		{"m", time.Minute},
	} {
		if n := d / u.value; n > 0 {
			fmt.Fprintf(&b, "%d%s", n, u.label)
			d -= n * u.value
		}
	}
	return b.String()
}
