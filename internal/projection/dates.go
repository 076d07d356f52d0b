package projection

import (
	"strings"
	"time"
)

// DateLayout is the day-granularity ISO layout every normalized date uses.
const DateLayout = "2006-01-02"

var acceptedDateLayouts = []string{
	DateLayout,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// DateNormalizer standardizes date tokens to YYYY-MM-DD. Unparseable input falls back to
// the current day according to Now.
type DateNormalizer struct {
	Now func() time.Time
}

// Normalize returns value as YYYY-MM-DD, or today's date when it cannot be parsed.
func (n DateNormalizer) Normalize(value any) string {
	date, _ := n.NormalizeField(value)
	return date
}

// NormalizeField is Normalize with a flag reporting whether the input parsed.
func (n DateNormalizer) NormalizeField(value any) (string, bool) {
	if t, ok := ParseDate(value); ok {
		return t.Format(DateLayout), true
	}
	return n.today(), false
}

func (n DateNormalizer) today() string {
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	return now().UTC().Format(DateLayout)
}

// ParseDate parses a date token into a UTC day. Only strings and time values are accepted.
func ParseDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return truncateDay(v), true
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return truncateDay(*v), true
	case string:
		raw := strings.TrimSpace(v)
		if raw == "" {
			return time.Time{}, false
		}
		for _, layout := range acceptedDateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return truncateDay(t), true
			}
		}
	}
	return time.Time{}, false
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
