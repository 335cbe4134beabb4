package report

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultColor is the orange the leaderboard has always used (#FFA500).
const DefaultColor = 0xFFA500

// ParseColor accepts "#RRGGBB", "RRGGBB", "0xRRGGBB" or a decimal integer. An empty string
// yields DefaultColor.
func ParseColor(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultColor, nil
	}

	var (
		v   uint64
		err error
	)
	switch {
	case strings.HasPrefix(s, "#"):
		v, err = strconv.ParseUint(s[1:], 16, 32)
	case strings.HasPrefix(strings.ToLower(s), "0x"):
		v, err = strconv.ParseUint(s[2:], 16, 32)
	case len(s) == 6 && isHex(s):
		v, err = strconv.ParseUint(s, 16, 32)
	default:
		v, err = strconv.ParseUint(s, 10, 32)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if v > 0xFFFFFF {
		return 0, fmt.Errorf("invalid color %q: out of range", s)
	}
	return int(v), nil
}

func isHex(s string) bool {
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}
