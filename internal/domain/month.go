package domain

import (
	"strings"
	"time"
)

// ParseMonth accepts a full English month name in any letter case.
func ParseMonth(s string) (time.Month, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidMonth
	}
	t, err := time.Parse("January", s)
	if err != nil {
		return 0, ErrInvalidMonth
	}
	return t.Month(), nil
}
