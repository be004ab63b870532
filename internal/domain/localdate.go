package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const localDateLayout = "2006-01-02"

// LocalDate is a calendar date without a time zone. Shift templates and
// the roster state machine work in whole days; the zone only matters
// when a date is combined with a time of day.
type LocalDate struct {
	t time.Time
}

func NewLocalDate(year int, month time.Month, day int) LocalDate {
	return LocalDate{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func LocalDateOf(t time.Time) LocalDate {
	return NewLocalDate(t.Year(), t.Month(), t.Day())
}

func ParseLocalDate(s string) (LocalDate, error) {
	t, err := time.Parse(localDateLayout, s)
	if err != nil {
		return LocalDate{}, err
	}
	return LocalDate{t: t}, nil
}

func (d LocalDate) String() string {
	return d.t.Format(localDateLayout)
}

func (d LocalDate) IsZero() bool {
	return d.t.IsZero()
}

func (d LocalDate) AddDays(days int) LocalDate {
	return LocalDate{t: d.t.AddDate(0, 0, days)}
}

// DaysUntil returns the number of whole days from d to other.
func (d LocalDate) DaysUntil(other LocalDate) int {
	return int(other.t.Sub(d.t) / (24 * time.Hour))
}

func (d LocalDate) Before(other LocalDate) bool { return d.t.Before(other.t) }
func (d LocalDate) After(other LocalDate) bool  { return d.t.After(other.t) }
func (d LocalDate) Equal(other LocalDate) bool  { return d.t.Equal(other.t) }

func (d LocalDate) Weekday() time.Weekday {
	return d.t.Weekday()
}

// At combines the date with a "15:04:05" time of day in the given zone.
func (d LocalDate) At(timeOfDay string, loc *time.Location) (time.Time, error) {
	tod, err := time.Parse("15:04:05", timeOfDay)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q: %w", timeOfDay, err)
	}
	return time.Date(d.t.Year(), d.t.Month(), d.t.Day(), tod.Hour(), tod.Minute(), tod.Second(), 0, loc), nil
}

func (d LocalDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *LocalDate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseLocalDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d LocalDate) Value() (driver.Value, error) {
	return d.t, nil
}

func (d *LocalDate) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = LocalDateOf(v)
		return nil
	case string:
		parsed, err := ParseLocalDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into LocalDate", src)
	}
}
