package core

import (
	"reflect"
	"testing"
)

func Test_CleanString(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		lower bool
		want  string
	}{
		{name: "empty", s: "", want: ""},
		{name: "trims", s: "  Ann Lee \t", want: "Ann Lee"},
		{name: "lowers", s: " Ann@Example.COM ", lower: true, want: "ann@example.com"},
		{name: "keeps case by default", s: "Ann", want: "Ann"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanString(tt.s, tt.lower); got != tt.want {
				t.Errorf("CleanString() = %q; want %q", got, tt.want)
			}
		})
	}
}

func Test_SanitizeString(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want string
	}{
		{name: "empty", s: "", want: ""},
		{name: "trims", s: "  hello  ", want: "hello"},
		{name: "strips tags", s: "<script>alert(1)</script>hi", want: "alert(1)hi"},
		{name: "escapes specials", s: `Tom & "Jerry"`, want: "Tom &amp; &#34;Jerry&#34;"},
		{name: "tag soup", s: "a <b>bold</b> claim", want: "a bold claim"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeString(tt.s); got != tt.want {
				t.Errorf("SanitizeString() = %q; want %q", got, tt.want)
			}
		})
	}
}

func Test_SanitizeStrings(t *testing.T) {
	tests := []struct {
		name string
		ss   []string
		want []string
	}{
		{name: "nil comes back empty", ss: nil, want: []string{}},
		{name: "drops empties", ss: []string{" ", "<br>", "a.pdf"}, want: []string{"a.pdf"}},
		{name: "sanitizes each", ss: []string{" <i>x</i> ", "y&z"}, want: []string{"x", "y&amp;z"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeStrings(tt.ss); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SanitizeStrings() = %v; want %v", got, tt.want)
			}
		})
	}
}
