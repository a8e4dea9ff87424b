package core

import "testing"

func Test_ValidDate(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{date: "2024-02-15", want: true},
		{date: "2025-01-10", want: true},
		{date: "2024-02-29", want: true}, // leap day
		{date: "2024-02-30", want: false},
		{date: "2024-13-40", want: false},
		{date: "2024/02/15", want: false},
		{date: "", want: false},
		{date: "2024-2-15", want: false},  // must be zero-padded
		{date: "2024-02-15 ", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			if got := ValidDate(tt.date); got != tt.want {
				t.Errorf("ValidDate(%q) = %v; want %v", tt.date, got, tt.want)
			}
		})
	}
}

func Test_dateonlyValidation(t *testing.T) {
	validate, _ := NewValidator()

	type payload struct {
		Date string `json:"date" validate:"required,dateonly"`
	}

	if err := validate.Struct(payload{Date: "2024-02-15"}); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}
	if err := validate.Struct(payload{Date: "2024-02-30"}); err == nil {
		t.Error("impossible date accepted")
	}
}
