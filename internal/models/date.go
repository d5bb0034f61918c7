package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// DateLayout is the ISO format invoice dates are stored and exchanged in.
const DateLayout = "2006-01-02"

// Date is a calendar day stored as YYYY-MM-DD text, the way the shop's
// existing database files hold invoice dates.
type Date string

// DateOf formats t as a Date.
func DateOf(t time.Time) Date { return Date(t.Format(DateLayout)) }

// ParseDate validates s as YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", err
	}
	return DateOf(t), nil
}

// Time returns the day at midnight UTC, or the zero time when d is malformed.
func (d Date) Time() time.Time {
	t, _ := time.Parse(DateLayout, string(d))
	return t
}

func (d Date) String() string { return string(d) }

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return string(d), nil
}

// Scan implements sql.Scanner. SQLite drivers may hand back DATE columns
// as text or as a parsed time.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = ""
	case string:
		*d = normalizeDate(v)
	case []byte:
		*d = normalizeDate(string(v))
	case time.Time:
		*d = DateOf(v)
	default:
		return fmt.Errorf("models: cannot scan %T into Date", src)
	}
	return nil
}

// normalizeDate trims a timestamp suffix some writers append.
func normalizeDate(s string) Date {
	if len(s) > len(DateLayout) {
		if t, err := time.Parse(DateLayout, s[:len(DateLayout)]); err == nil {
			return DateOf(t)
		}
	}
	return Date(s)
}
