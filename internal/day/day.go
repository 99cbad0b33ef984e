// Package day implements the calendar date value used as the archive key.
package day

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/julianstephens/archiver/internal/constants"
	apperrors "github.com/julianstephens/archiver/internal/errors"
)

const (
	MinYear = 1
	MaxYear = 9999
)

var (
	ErrInvalidFormat       = apperrors.ErrInvalidFormat
	ErrInvalidField        = apperrors.ErrInvalidField
	ErrInvalidCalendarDate = apperrors.ErrInvalidCalendarDate
)

var canonicalPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Day is a valid Gregorian calendar date. The zero value is the only
// invalid Day and reports IsZero.
type Day struct {
	year  int
	month int
	day   int
}

// ParseError describes why a string or set of components is not a Day.
type ParseError struct {
	Input string
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%q: %v (%s)", e.Input, e.Err, e.Field)
	}
	return fmt.Sprintf("%q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// New builds a Day from components.
func New(year, month, dayOfMonth int) (Day, error) {
	if err := validate(year, month, dayOfMonth); err != nil {
		return Day{}, &ParseError{
			Input: fmt.Sprintf("%04d-%02d-%02d", year, month, dayOfMonth),
			Field: err.Error(),
			Err:   ErrInvalidCalendarDate,
		}
	}
	return Day{year: year, month: month, day: dayOfMonth}, nil
}

// Parse reads the canonical YYYY-MM-DD form.
func Parse(text string) (Day, error) {
	if !canonicalPattern.MatchString(text) {
		return Day{}, &ParseError{Input: text, Err: ErrInvalidFormat}
	}

	year, err := strconv.Atoi(text[0:4])
	if err != nil {
		return Day{}, &ParseError{Input: text, Field: "year", Err: ErrInvalidField}
	}
	month, err := strconv.Atoi(text[5:7])
	if err != nil {
		return Day{}, &ParseError{Input: text, Field: "month", Err: ErrInvalidField}
	}
	dayOfMonth, err := strconv.Atoi(text[8:10])
	if err != nil {
		return Day{}, &ParseError{Input: text, Field: "day", Err: ErrInvalidField}
	}

	if err := validate(year, month, dayOfMonth); err != nil {
		return Day{}, &ParseError{Input: text, Field: err.Error(), Err: ErrInvalidCalendarDate}
	}
	return Day{year: year, month: month, day: dayOfMonth}, nil
}

// MustParse is Parse for literals. It panics on invalid input.
func MustParse(text string) Day {
	d, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return d
}

// FromTime takes the calendar date of t in t's location.
func FromTime(t time.Time) Day {
	y, m, d := t.Date()
	return clamp(y, int(m), d)
}

// Today returns the local calendar date.
func Today() Day {
	return FromTime(time.Now())
}

func validate(year, month, dayOfMonth int) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("year %d out of range %d-%d", year, MinYear, MaxYear)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("month %d out of range 1-12", month)
	}
	if limit := daysIn(year, month); dayOfMonth < 1 || dayOfMonth > limit {
		return fmt.Errorf("day %d out of range 1-%d", dayOfMonth, limit)
	}
	return nil
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysIn(year, month int) int {
	switch month {
	case 2:
		if isLeap(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

func clamp(year, month, dayOfMonth int) Day {
	switch {
	case year < MinYear:
		return Day{year: MinYear, month: 1, day: 1}
	case year > MaxYear:
		return Day{year: MaxYear, month: 12, day: 31}
	}
	return Day{year: year, month: month, day: dayOfMonth}
}

func (d Day) Year() int { return d.year }
func (d Day) Month() int { return d.month }
func (d Day) DayOfMonth() int { return d.day }

// IsZero reports whether d is the zero value.
func (d Day) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// Canonical returns YYYY-MM-DD.
func (d Day) Canonical() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

func (d Day) String() string {
	return d.Canonical()
}

// MonthName returns the localized month label.
func (d Day) MonthName() string {
	return constants.MonthNames[d.month-1]
}

// Display returns the long form, e.g. "01. Juni 2024".
func (d Day) Display() string {
	return fmt.Sprintf("%02d. %s %04d", d.day, d.MonthName(), d.year)
}

// Time returns midnight of d in UTC.
func (d Day) Time() time.Time {
	return time.Date(d.year, time.Month(d.month), d.day, 0, 0, 0, 0, time.UTC)
}

// AddDays moves n days, clamped to the supported year range.
func (d Day) AddDays(n int) Day {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// Compare returns -1, 0 or +1 in chronological order.
func (d Day) Compare(other Day) int {
	switch {
	case d.year != other.year:
		return cmpInt(d.year, other.year)
	case d.month != other.month:
		return cmpInt(d.month, other.month)
	default:
		return cmpInt(d.day, other.day)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (d Day) Before(other Day) bool { return d.Compare(other) < 0 }
func (d Day) After(other Day) bool { return d.Compare(other) > 0 }
func (d Day) Equal(other Day) bool { return d == other }

// MarshalText implements encoding.TextMarshaler.
func (d Day) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.Canonical()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Day) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Day{}
		return nil
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer.
func (d Day) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, fmt.Errorf("cannot store zero day")
	}
	return d.Canonical(), nil
}

// Scan implements sql.Scanner.
func (d *Day) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return d.UnmarshalText([]byte(v))
	case []byte:
		return d.UnmarshalText(v)
	case nil:
		*d = Day{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into day", src)
	}
}
