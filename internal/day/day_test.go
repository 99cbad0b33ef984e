package day

import (
	"encoding/json"
	"errors"
	"sort"
	"testing"
	"time"
)

func TestParseValid(t *testing.T) {
	tests := []struct {
		input string
		year  int
		month int
		day   int
	}{
		{"2024-06-01", 2024, 6, 1},
		{"2024-02-29", 2024, 2, 29},
		{"2000-02-29", 2000, 2, 29},
		{"0001-01-01", 1, 1, 1},
		{"9999-12-31", 9999, 12, 31},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if d.Year() != tt.year || d.Month() != tt.month || d.DayOfMonth() != tt.day {
				t.Errorf("Parse(%q) = %d-%d-%d, want %d-%d-%d",
					tt.input, d.Year(), d.Month(), d.DayOfMonth(), tt.year, tt.month, tt.day)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"2023-02-30", ErrInvalidCalendarDate},
		{"2023-13-01", ErrInvalidCalendarDate},
		{"2023-00-10", ErrInvalidCalendarDate},
		{"2023-02-29", ErrInvalidCalendarDate},
		{"1900-02-29", ErrInvalidCalendarDate},
		{"2023-04-31", ErrInvalidCalendarDate},
		{"0000-01-01", ErrInvalidCalendarDate},
		{"2023-06-00", ErrInvalidCalendarDate},
		{"2023/06/01", ErrInvalidFormat},
		{"23-06-01", ErrInvalidFormat},
		{"", ErrInvalidFormat},
		{"2023-6-1", ErrInvalidFormat},
		{" 2023-06-01", ErrInvalidFormat},
		{"2023-06-01\n", ErrInvalidFormat},
		{"２０２３-06-01", ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want %v", tt.input, tt.want)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.input, err, tt.want)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse(%q) error is %T, want *ParseError", tt.input, err)
			}
			if pe.Input != tt.input {
				t.Errorf("ParseError.Input = %q, want %q", pe.Input, tt.input)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	start := time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)

	for cur := start; cur.Before(end); cur = cur.AddDate(0, 0, 1) {
		d := FromTime(cur)
		parsed, err := Parse(d.Canonical())
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", d.Canonical(), err)
		}
		if parsed != d {
			t.Fatalf("round trip mismatch: %v != %v", parsed, d)
		}
		if d.Canonical() != cur.Format("2006-01-02") {
			t.Fatalf("Canonical() = %q, want %q", d.Canonical(), cur.Format("2006-01-02"))
		}
	}
}

func TestNew(t *testing.T) {
	d, err := New(2024, 7, 3)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if d != MustParse("2024-07-03") {
		t.Errorf("New(2024, 7, 3) = %v", d)
	}

	if _, err := New(2023, 2, 30); !errors.Is(err, ErrInvalidCalendarDate) {
		t.Errorf("New(2023, 2, 30) error = %v, want ErrInvalidCalendarDate", err)
	}
	if _, err := New(10000, 1, 1); !errors.Is(err, ErrInvalidCalendarDate) {
		t.Errorf("New(10000, 1, 1) error = %v, want ErrInvalidCalendarDate", err)
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2024-06-01", "01. Juni 2024"},
		{"2024-03-15", "15. März 2024"},
		{"0042-12-31", "31. Dezember 0042"},
	}

	for _, tt := range tests {
		if got := MustParse(tt.input).Display(); got != tt.want {
			t.Errorf("Display(%s) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMonthNameTotal(t *testing.T) {
	for m := 1; m <= 12; m++ {
		d, err := New(2024, m, 1)
		if err != nil {
			t.Fatalf("New(2024, %d, 1): %v", m, err)
		}
		if d.MonthName() == "" {
			t.Errorf("month %d has no name", m)
		}
	}
}

func TestOrdering(t *testing.T) {
	days := []Day{
		MustParse("2024-07-03"),
		MustParse("2024-06-15"),
		MustParse("2023-12-31"),
		MustParse("2024-06-01"),
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	want := []string{"2023-12-31", "2024-06-01", "2024-06-15", "2024-07-03"}
	for i, d := range days {
		if d.Canonical() != want[i] {
			t.Errorf("position %d = %s, want %s", i, d, want[i])
		}
	}

	a, b := MustParse("2024-06-01"), MustParse("2024-06-01")
	if a.Compare(b) != 0 || !a.Equal(b) {
		t.Error("equal days should compare as 0")
	}
	if !MustParse("2024-06-02").After(a) {
		t.Error("2024-06-02 should be after 2024-06-01")
	}
}

func TestAddDays(t *testing.T) {
	if got := MustParse("2024-02-28").AddDays(1); got.Canonical() != "2024-02-29" {
		t.Errorf("AddDays across leap day = %s", got)
	}
	if got := MustParse("2024-01-01").AddDays(-1); got.Canonical() != "2023-12-31" {
		t.Errorf("AddDays across year = %s", got)
	}
	if got := MustParse("9999-12-31").AddDays(1); got.Canonical() != "9999-12-31" {
		t.Errorf("AddDays past MaxYear = %s, want clamp", got)
	}
}

func TestTextAndSQL(t *testing.T) {
	d := MustParse("2024-06-15")

	data, err := json.Marshal(map[string]Day{"day": d})
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	if string(data) != `{"day":"2024-06-15"}` {
		t.Errorf("json = %s", data)
	}

	var decoded struct {
		Day Day `json:"day"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	if decoded.Day != d {
		t.Errorf("decoded = %v, want %v", decoded.Day, d)
	}

	if err := json.Unmarshal([]byte(`{"day":"2024-02-30"}`), &decoded); !errors.Is(err, ErrInvalidCalendarDate) {
		t.Errorf("json.Unmarshal invalid day error = %v", err)
	}

	v, err := d.Value()
	if err != nil || v != "2024-06-15" {
		t.Errorf("Value() = %v, %v", v, err)
	}
	if _, err := (Day{}).Value(); err == nil {
		t.Error("Value() on zero day should fail")
	}

	var scanned Day
	if err := scanned.Scan([]byte("2024-06-15")); err != nil || scanned != d {
		t.Errorf("Scan([]byte) = %v, %v", scanned, err)
	}
	if err := scanned.Scan(42); err == nil {
		t.Error("Scan(int) should fail")
	}
}
