// Package iectime parses and formats IEC 61131-3 TIME literals
// (T#500ms, TIME#1h30m, ...) as millisecond counts.
package iectime

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse converts a time literal's source text (either the full "T#..."/
// "TIME#..." spelling or just the "#..." / component tail) into a
// non-negative millisecond count. Accepted components, in decreasing
// order: d, h, m (not followed by s), s (not followed by m), ms.
func Parse(raw string) (int64, error) {
	body := raw
	if i := strings.IndexByte(body, '#'); i >= 0 {
		body = body[i+1:]
	}
	if body == "" {
		return 0, fmt.Errorf("empty time literal %q", raw)
	}

	var total float64
	i := 0
	n := len(body)
	for i < n {
		start := i
		for i < n && (body[i] == '.' || (body[i] >= '0' && body[i] <= '9')) {
			i++
		}
		if i == start {
			return 0, fmt.Errorf("invalid time literal %q", raw)
		}
		numStr := body[start:i]

		unitStart := i
		for i < n && isUnitRune(body[i]) {
			i++
		}
		unit := strings.ToLower(body[unitStart:i])

		value, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid time literal %q: %w", raw, err)
		}

		var ms float64
		switch unit {
		case "d":
			ms = value * 24 * 60 * 60 * 1000
		case "h":
			ms = value * 60 * 60 * 1000
		case "m":
			ms = value * 60 * 1000
		case "s":
			ms = value * 1000
		case "ms":
			ms = value
		default:
			return 0, fmt.Errorf("unknown time unit %q in %q", unit, raw)
		}
		total += ms
	}

	if total < 0 {
		return 0, fmt.Errorf("negative time literal %q", raw)
	}
	return int64(total + 0.5), nil
}

func isUnitRune(b byte) bool {
	return b == 'd' || b == 'h' || b == 'm' || b == 's' ||
		b == 'D' || b == 'H' || b == 'M' || b == 'S'
}

// Format renders a millisecond count in the shortest human form: plain
// milliseconds below one second, plain seconds when an exact multiple of
// a second below a minute, otherwise the largest-first d/h/m/s/ms
// component breakdown. The result round-trips through Parse.
func Format(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("T#%dms", ms)
	}
	if ms < 60000 && ms%1000 == 0 {
		return fmt.Sprintf("T#%ds", ms/1000)
	}

	remaining := ms
	var sb strings.Builder
	sb.WriteString("T#")

	days := remaining / (24 * 60 * 60 * 1000)
	remaining -= days * 24 * 60 * 60 * 1000
	hours := remaining / (60 * 60 * 1000)
	remaining -= hours * 60 * 60 * 1000
	minutes := remaining / (60 * 1000)
	remaining -= minutes * 60 * 1000
	seconds := remaining / 1000
	remaining -= seconds * 1000
	millis := remaining

	wrote := false
	if days > 0 {
		fmt.Fprintf(&sb, "%dd", days)
		wrote = true
	}
	if hours > 0 || wrote {
		fmt.Fprintf(&sb, "%dh", hours)
		wrote = true
	}
	if minutes > 0 || wrote {
		fmt.Fprintf(&sb, "%dm", minutes)
		wrote = true
	}
	if seconds > 0 || millis > 0 || !wrote {
		fmt.Fprintf(&sb, "%ds", seconds)
	}
	if millis > 0 {
		fmt.Fprintf(&sb, "%dms", millis)
	}
	return sb.String()
}
