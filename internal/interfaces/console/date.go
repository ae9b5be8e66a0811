package console

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/matchboard/internal/usecase"
)

var dateInputLayouts = []string{time.DateOnly, DayLayout, "02/01/2006"}

// ParseDate reads a day typed by the user relative to today: an absolute date
// (2024-05-01, 01.05.2024, 01/05/2024), today/tomorrow/yesterday or a day
// offset such as +1 or -3.
func ParseDate(raw string, today time.Time) (time.Time, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if value[0] == '+' || value[0] == '-' {
		offset, err := strconv.Atoi(value)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: day offset %q", usecase.ErrInvalidInput, raw)
		}
		return today.AddDate(0, 0, offset), nil
	}

	for _, layout := range dateInputLayouts {
		if parsed, err := time.ParseInLocation(layout, value, today.Location()); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized date %q", usecase.ErrInvalidInput, raw)
}
