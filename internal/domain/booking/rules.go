package booking

import (
	"regexp"
	"strings"
	"time"

	"github.com/BruksfildServices01/homeservices/internal/httperr"
)

const (
	MinHours = 1
	MaxHours = 12
)

var startTimePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

func ValidHours(h int) bool {
	return h >= MinHours && h <= MaxHours
}

// ValidStartTime accepts 24 hour H:MM or HH:MM.
func ValidStartTime(s string) bool {
	return startTimePattern.MatchString(s)
}

// ParseDate reads YYYY-MM-DD (in loc) or a full RFC3339 timestamp.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	return time.Time{}, httperr.ErrValidation("invalid_date", "bookingDate must be a valid date")
}
