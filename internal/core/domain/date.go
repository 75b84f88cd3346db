package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var dateInputLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Date is a calendar day without time of day or zone.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts YYYY-MM-DD or a date-time and keeps only the calendar day.
// Malformed input yields ErrDateFormat.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)

	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t.Year(), t.Month(), t.Day()), nil
		}
	}

	return Date{}, fmt.Errorf("%w: %q", ErrDateFormat, s)
}

// ParseOptionalDate maps an empty string to nil.
func ParseOptionalDate(s string) (*Date, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	d, err := ParseDate(s)
	if err != nil {
		return nil, err
	}

	return &d, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d *Date) Equal(other *Date) bool {
	if d == nil || other == nil {
		return d == nil && other == nil
	}

	return d.String() == other.String()
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v.Year(), v.Month(), v.Day())
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Nullable returns the stored form of d, nil when the date is missing.
func (d *Date) Nullable() interface{} {
	if d == nil {
		return nil
	}

	return d.String()
}
