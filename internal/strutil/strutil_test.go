package strutil

import (
	"AppShelf/internal/testutils"
	"fmt"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"a long description", 10, "a long de…"},
		{"abc", 1, "…"},
		{"abc", 0, ""},
		{"日本語テキスト", 7, "日本語…"},
	}

	var cases []testutils.TestCase
	for _, tt := range tests {
		actual := Truncate(tt.input, tt.width)
		cases = append(cases, testutils.TestCase{
			Input:    fmt.Sprintf("%q/%d", tt.input, tt.width),
			Expected: tt.expected,
			Actual:   actual,
			Pass:     actual == tt.expected,
		})
	}
	testutils.PrintTestTable(t, cases)
}
