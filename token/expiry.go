package token

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseExpiry parses a token lifetime.
//
// Accepted forms are Go durations ("90m", "1h30m", "1ms"), the day and week
// suffixes "d" and "w" ("7d", "2w"), and a bare integer taken as seconds
// ("3600"). The result must be at least MinExpiry.
func ParseExpiry(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidExpiry)
	}

	d, err := parseExpiry(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidExpiry, s, err)
	}
	if d < MinExpiry {
		return 0, fmt.Errorf("%w: %q is shorter than %s", ErrInvalidExpiry, s, MinExpiry)
	}
	return d, nil
}

var errOutOfRange = errors.New("value out of range")

func parseExpiry(s string) (time.Duration, error) {
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		if secs > math.MaxInt64/int64(time.Second) {
			return 0, errOutOfRange
		}
		return time.Duration(secs) * time.Second, nil
	}

	unit := time.Duration(0)
	switch {
	case strings.HasSuffix(s, "d"):
		unit = 24 * time.Hour
	case strings.HasSuffix(s, "w"):
		unit = 7 * 24 * time.Hour
	}
	if unit != 0 {
		n, err := strconv.ParseFloat(s[:len(s)-1], 64)
		if err != nil {
			return 0, err
		}
		d := n * float64(unit)
		if math.IsNaN(d) || math.IsInf(d, 0) || d >= math.MaxInt64 || d <= math.MinInt64 {
			return 0, errOutOfRange
		}
		return time.Duration(d), nil
	}

	return time.ParseDuration(s)
}
