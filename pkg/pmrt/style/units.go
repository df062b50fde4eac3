package style

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Units maps CSS length units onto line-height units, taking one line as
// 16px (12pt, 1/6in).
var Units = map[string]float64{
	"px":  1.0 / 16,
	"pt":  1.0 / 12,
	"pc":  1,
	"in":  6,
	"cm":  6 / 2.54,
	"mm":  6 / 25.4,
	"q":   6 / 101.6,
	"em":  1,
	"rem": 1,
	"ex":  0.5,
	"ch":  0.5,
}

// ErrMalformedValue marks a style value that could not be understood. The
// fact it belongs to is left absent.
var ErrMalformedValue = errors.New("malformed style value")

// Length converts a CSS length such as "12px" or "0" to line units.
func Length(s string) (float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("%w: empty length", ErrMalformedValue)
	}
	i := strings.IndexFunc(s, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || r == '%'
	})
	num, unit := s, ""
	if i >= 0 {
		num, unit = s[:i], s[i:]
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedValue, s)
	}
	if unit == "" {
		if v == 0 {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: unitless length %q", ErrMalformedValue, s)
	}
	factor, ok := Units[unit]
	if !ok {
		return 0, fmt.Errorf("%w: unsupported unit %q", ErrMalformedValue, unit)
	}
	return v * factor, nil
}
