package sqlite

import (
	"fmt"
	"time"
)

// timeLayouts covers CURRENT_TIMESTAMP output and the ISO forms a value may
// have been written in by hand. Fractional seconds are optional in each.
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// parseTime reads a stored timestamp as UTC.
func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
