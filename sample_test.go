package crowdnet

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestParseDirection(t *testing.T) {
	cases := []struct {
		in   string
		want Direction
		ok   bool
	}{
		{"OUTBOUND", Outbound, true},
		{"outbound", Outbound, true},
		{"ANDATA", Outbound, true},
		{" Return ", Return, true},
		{"RITORNO", Return, true},
		{"sideways", Return, false},
		{"", Return, false},
	}

	for _, c := range cases {
		got, err := ParseDirection(c.in)
		if (err == nil) != c.ok {
			t.Errorf("ParseDirection(%q): unexpected error state: %v", c.in, err)
			continue
		}
		if c.ok && got != c.want {
			t.Errorf("ParseDirection(%q) = %v, expected %v", c.in, got, c.want)
		}
		if !c.ok {
			var ive *InputValidationError
			if !errors.As(err, &ive) {
				t.Errorf("ParseDirection(%q): expected InputValidationError, got %T", c.in, err)
			}
		}
	}
}

func TestDirectionBinary(t *testing.T) {
	if Outbound.Binary() != 1 || Return.Binary() != 0 {
		t.Error("Wrong binary encoding of directions")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-10")
	if err != nil {
		t.Fatal(err)
	}
	if d.Year() != 2025 || d.Month() != time.June || d.Day() != 10 {
		t.Errorf("Wrong date: %v", d)
	}

	for _, bad := range []string{"10/06/2025", "2025-13-01", "", "2025-02-30"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) should have failed", bad)
		}
	}
}

func TestParseTemperature(t *testing.T) {
	if v, err := ParseTemperature("25.5"); err != nil || v != 25.5 {
		t.Errorf("ParseTemperature(25.5) = (%v, %v)", v, err)
	}

	for _, bad := range []string{"warm", "NaN", "+Inf", ""} {
		if _, err := ParseTemperature(bad); err == nil {
			t.Errorf("ParseTemperature(%q) should have failed", bad)
		}
	}
}

func TestISOWeekday(t *testing.T) {
	// 2025-06-09 is a Monday
	monday, _ := ParseDate("2025-06-09")
	for i := 0; i < 7; i++ {
		if got := ISOWeekday(monday.AddDate(0, 0, i)); got != i+1 {
			t.Errorf("Day %d: ISOWeekday = %d", i, got)
		}
	}
}

func TestSampleJSON(t *testing.T) {
	var s Sample
	err := json.Unmarshal([]byte(`{"date":"2025-06-10","temperature":25,"direction":"ANDATA","crowdingLevel":3.5}`), &s)
	if err != nil {
		t.Fatal(err)
	}

	if s.Direction != Outbound || s.Temperature != 25 || s.CrowdingLevel != 3.5 || s.Date.Format(DateLayout) != "2025-06-10" {
		t.Errorf("Wrong sample: %+v", s)
	}

	out, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"date":"2025-06-10","temperature":25,"direction":"OUTBOUND","crowdingLevel":3.5}` {
		t.Errorf("Wrong encoding: %s", out)
	}

	if err := json.Unmarshal([]byte(`{"date":"2025-06-10","temperature":25,"crowdingLevel":3}`), &s); err == nil {
		t.Error("Expected error for missing direction")
	}
}

func TestRoundToHalf(t *testing.T) {
	cases := map[float64]float64{
		1.0: 1.0, 1.24: 1.0, 1.25: 1.5, 2.74: 2.5, 2.76: 3.0, 4.9: 5.0,
	}
	for in, want := range cases {
		if got := RoundToHalf(in); got != want {
			t.Errorf("RoundToHalf(%v) = %v, expected %v", in, got, want)
		}
	}
}

func TestDayName(t *testing.T) {
	d, _ := ParseDate("2025-06-10") // Tuesday

	if got := DayName(d.Weekday(), Italian); got != "Martedì" {
		t.Errorf("Italian: %q", got)
	}
	if got := DayName(d.Weekday(), English); got != "Tuesday" {
		t.Errorf("English: %q", got)
	}
	if got := DayName(d.Weekday(), Locale("xx")); got != "Tuesday" {
		t.Errorf("Fallback: %q", got)
	}

	if _, err := ParseLocale("fr"); err == nil {
		t.Error("Expected error for unknown locale")
	}
	if l, err := ParseLocale("IT"); err != nil || l != Italian {
		t.Errorf("ParseLocale(IT) = (%v, %v)", l, err)
	}
}
