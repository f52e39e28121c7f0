package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ClockTime is a time of day with minute precision, stored as "HH:MM".
type ClockTime int

const minutesPerDay = 24 * 60

// NewClock builds a ClockTime; it panics on out-of-range input and is meant
// for constants and tests.
func NewClock(hour, minute int) ClockTime {
	c, err := clockFromParts(hour, minute)
	if err != nil {
		panic(err)
	}
	return c
}

func clockFromParts(hour, minute int) (ClockTime, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time of day %02d:%02d", hour, minute)
	}
	return ClockTime(hour*60 + minute), nil
}

// ParseClock accepts "15:04" and "15:04:05" (seconds are dropped).
func ParseClock(s string) (ClockTime, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return clockFromParts(t.Hour(), t.Minute())
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", s)
}

// ClockOf returns the time of day of t in t's location.
func ClockOf(t time.Time) ClockTime {
	return ClockTime(t.Hour()*60 + t.Minute())
}

func (c ClockTime) Hour() int   { return int(c) / 60 }
func (c ClockTime) Minute() int { return int(c) % 60 }

func (c ClockTime) Valid() bool { return c >= 0 && c < minutesPerDay }

func (c ClockTime) Before(o ClockTime) bool { return c < o }

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c ClockTime) Value() (driver.Value, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid time of day %d", int(c))
	}
	return c.String(), nil
}

func (c *ClockTime) Scan(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		*c = ClockOf(v)
		return nil
	default:
		return errors.New("type assertion to string failed")
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ClockTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
