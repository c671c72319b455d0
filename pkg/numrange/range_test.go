package numrange

import (
	"errors"
	"testing"
)

func TestParse_Valid(t *testing.T) {
	testCases := []struct {
		input     string
		canonical string
	}{
		{"0 <= x < 130", "0 <= x < 130"},
		{"0<=x<130", "0 <= x < 130"},
		{"  1 < x <= 5  ", "1 < x <= 5"},
		{"x < 10", "x < 10"},
		{"x <= 1.5", "x <= 1.5"},
		{"3 < x", "3 < x"},
		{"2.0 <= x", "2.0 <= x"},
		{"-5 < x < -1", "-5 < x < -1"},
		{"+4 <= x", "4 <= x"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			r, err := Parse(tc.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tc.input, err)
			}
			if got := r.String(); got != tc.canonical {
				t.Errorf("Expected canonical %q, got %q", tc.canonical, got)
			}

			again, err := Parse(r.String())
			if err != nil {
				t.Fatalf("Canonical form %q does not parse: %v", r.String(), err)
			}
			if again.String() != r.String() {
				t.Errorf("Canonical form is not stable: %q vs %q", again.String(), r.String())
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"x",
		"x y",
		"< x <",
		"1 < y < 2",
		"1 > x",
		"x > 3",
		"a < x < b",
		"1 < x < 2 trailing",
		"1. < x",
		"99999999999999999999999 < x",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Fatalf("Expected Parse(%q) to fail", input)
			}
			if !errors.Is(err, ErrInvalidRangeFormat) {
				t.Errorf("Expected ErrInvalidRangeFormat, got %v", err)
			}
		})
	}
}

func TestRange_IncludesHalfOpen(t *testing.T) {
	r := MustParse("0 <= x < 130")

	testCases := []struct {
		value    any
		expected bool
	}{
		{-1, false},
		{0, true},
		{30, true},
		{129, true},
		{130, false},
		{int64(12), true},
		{-0.5, false},
		{0.0, true},
		{129.99, true},
		{130.0, false},
	}

	for _, tc := range testCases {
		if got := r.Includes(tc.value); got != tc.expected {
			t.Errorf("Includes(%v) = %v, expected %v", tc.value, got, tc.expected)
		}
	}
}

func TestRange_IncludesInclusiveUpper(t *testing.T) {
	r := MustParse("1 < x <= 5")

	if r.Includes(1) {
		t.Error("Expected exclusive lower bound to reject 1")
	}
	if !r.Includes(5) {
		t.Error("Expected inclusive upper bound to accept 5")
	}
	if r.Includes(5.0001) {
		t.Error("Expected 5.0001 to be out of range")
	}
}

func TestRange_OneSided(t *testing.T) {
	lower := MustParse("10 < x")
	if lower.Max != nil {
		t.Fatalf("Expected no upper bound, got %v", lower.Max)
	}
	if !lower.Includes(1 << 40) {
		t.Error("Expected a lower-bounded range to accept large values")
	}
	if lower.Includes(10) {
		t.Error("Expected 10 to be rejected by 10 < x")
	}

	upper := MustParse("x <= 1.5")
	if upper.Min != nil {
		t.Fatalf("Expected no lower bound, got %v", upper.Min)
	}
	if !upper.Includes(-1000) {
		t.Error("Expected an upper-bounded range to accept small values")
	}
	if !upper.Includes(1.5) {
		t.Error("Expected 1.5 to be accepted by x <= 1.5")
	}
	if upper.Includes(2) {
		t.Error("Expected 2 to be rejected by x <= 1.5")
	}
}

func TestRange_IncludesRejectsNonNumbers(t *testing.T) {
	r := MustParse("0 <= x < 10")
	for _, value := range []any{"5", nil, true, []int{5}} {
		if r.Includes(value) {
			t.Errorf("Expected Includes(%#v) to be false", value)
		}
	}
}

func TestParseNumber(t *testing.T) {
	v, err := ParseNumber("1")
	if err != nil {
		t.Fatalf("ParseNumber error: %v", err)
	}
	if _, ok := v.(int); !ok || v != 1 {
		t.Errorf("Expected int 1, got %#v", v)
	}

	v, err = ParseNumber("1.0")
	if err != nil {
		t.Fatalf("ParseNumber error: %v", err)
	}
	if f, ok := v.(float64); !ok || f != 1.0 {
		t.Errorf("Expected float64 1.0, got %#v", v)
	}
}

func TestIsRangedType(t *testing.T) {
	for _, name := range []string{"int", "integer", "float"} {
		if !IsRangedType(name) {
			t.Errorf("Expected %q to be a ranged type", name)
		}
	}
	for _, name := range []string{"regex", "regexp", "string", "bogus", ""} {
		if IsRangedType(name) {
			t.Errorf("Expected %q not to be a ranged type", name)
		}
	}
}
