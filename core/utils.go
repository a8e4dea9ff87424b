package core

import (
	"html"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var markupTagRegex = regexp.MustCompile(`<[^>]*>`)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// SanitizeString neutralizes stored markup injection in free-text input:
// whitespace is trimmed, markup tags are stripped and the remaining
// HTML-special characters are escaped. The transformation is lossy and
// one-directional; values are never un-escaped on read.
func SanitizeString(s string) string {
	s = strings.TrimSpace(s)
	s = markupTagRegex.ReplaceAllString(s, "")
	return html.EscapeString(s)
}

// SanitizeStrings sanitizes every element of `ss`, dropping elements that end
// up empty. A nil slice comes back as an empty one.
func SanitizeStrings(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if clean := SanitizeString(s); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

// Getwd tries to find the project root (the directory holding go.mod).
// go-test changes the working directory to the test package being run during
// tests; this keeps config/asset paths stable either way.
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	currDir := wd
	for {
		if _, err := os.Stat(filepath.Join(currDir, "go.mod")); err == nil {
			return currDir
		}
		newDir := filepath.Dir(currDir)
		if newDir == string(os.PathSeparator) || newDir == currDir {
			return wd
		}
		currDir = newDir
	}
}
