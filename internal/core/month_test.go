package core

import (
	"regexp"
	"testing"
)

func TestPreviousMonthKey(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"2024-01", "2023-12"}, // year rollover
		{"2024-03", "2024-02"},
		{"2023-12", "2023-11"},
	}
	for _, tc := range cases {
		got, err := PreviousMonthKey(tc.in)
		if err != nil {
			t.Fatalf("PreviousMonthKey(%q): %v", tc.in, err)
		}
		if got != tc.out {
			t.Fatalf("PreviousMonthKey(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestNextMonthKey(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"2023-12", "2024-01"}, // year rollover
		{"2024-02", "2024-03"},
		{"2024-11", "2024-12"},
	}
	for _, tc := range cases {
		got, err := NextMonthKey(tc.in)
		if err != nil {
			t.Fatalf("NextMonthKey(%q): %v", tc.in, err)
		}
		if got != tc.out {
			t.Fatalf("NextMonthKey(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestMonthKeyErrors(t *testing.T) {
	for _, in := range []string{"", "2024", "2024-13", "march 2024", "2024-1"} {
		if _, err := PreviousMonthKey(in); err == nil {
			t.Fatalf("PreviousMonthKey(%q) expected error", in)
		}
		if _, err := NextMonthKey(in); err == nil {
			t.Fatalf("NextMonthKey(%q) expected error", in)
		}
	}
}

func TestFormatMonth(t *testing.T) {
	if got := FormatMonth("2024-03"); got != "March 2024" {
		t.Fatalf("FormatMonth = %q, want %q", got, "March 2024")
	}
	// Display helper passes unparseable input through.
	if got := FormatMonth("bogus"); got != "bogus" {
		t.Fatalf("FormatMonth fallback = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2024-03-05"); got != "Mar 5, 2024" {
		t.Fatalf("FormatDate = %q, want %q", got, "Mar 5, 2024")
	}
	if got := FormatDate("nope"); got != "nope" {
		t.Fatalf("FormatDate fallback = %q", got)
	}
}

func TestKeyShapes(t *testing.T) {
	monthRe := regexp.MustCompile(`^\d{4}-\d{2}$`)
	dayRe := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	if key := CurrentMonthKey(); !monthRe.MatchString(key) {
		t.Fatalf("CurrentMonthKey %q not YYYY-MM", key)
	}
	if key := TodayKey(); !dayRe.MatchString(key) {
		t.Fatalf("TodayKey %q not YYYY-MM-DD", key)
	}
}

func TestNewExpenseID(t *testing.T) {
	a, b := NewExpenseID(), NewExpenseID()
	if a == "" || b == "" {
		t.Fatal("NewExpenseID returned empty string")
	}
	if a == b {
		t.Fatalf("NewExpenseID returned duplicate %q", a)
	}
}
