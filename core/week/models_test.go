package week

import "testing"

func Test_FormatWeekID(t *testing.T) {
	if got := FormatWeekID(3); got != "week_3" {
		t.Errorf("FormatWeekID(3) = %q; want %q", got, "week_3")
	}
	if got := FormatWeekID(12); got != "week_12" {
		t.Errorf("FormatWeekID(12) = %q; want %q", got, "week_12")
	}
}

func Test_ParseWeekID_roundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 7, 10, 42, 999} {
		got, err := ParseWeekID(FormatWeekID(n))
		if err != nil {
			t.Errorf("ParseWeekID(FormatWeekID(%d)) failed: %v", n, err)
		}
		if got != n {
			t.Errorf("round trip failed: got %d; want %d", got, n)
		}
	}
}

func Test_ParseWeekID_malformed(t *testing.T) {
	tests := []string{
		"",
		"3",
		"week_",
		"week_x",
		"week_03",  // does not round-trip
		"week_0",   // not positive
		"week_-1",
		"Week_3",   // wrong case prefix
		"week_3 ",
		"weekly_3",
	}
	for _, weekID := range tests {
		t.Run(weekID, func(t *testing.T) {
			if _, err := ParseWeekID(weekID); err != ErrInvalidWeekID {
				t.Errorf("ParseWeekID(%q) error = %v; want ErrInvalidWeekID", weekID, err)
			}
		})
	}
}
