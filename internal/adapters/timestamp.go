package adapters

import (
	"fmt"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
}

// Timestamp scans timestamp columns from drivers that return time.Time (pgx, lib/pq)
// as well as from drivers that store timestamps as text (SQLite).
type Timestamp struct {
	Time time.Time
}

// Scan implements sql.Scanner.
func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil

	case time.Time:
		t.Time = v.UTC()
		return nil

	case string:
		return t.parse(v)

	case []byte:
		return t.parse(string(v))

	default:
		return fmt.Errorf("unsupported timestamp source type %T", src)
	}
}

func (t *Timestamp) parse(raw string) error {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}

	return fmt.Errorf("unparsable timestamp %q", raw)
}
