package testutils

import (
	"bytes"
	"fmt"
	"testing"
	"text/tabwriter"
)

// TestCase represents a single unit test scenario.
type TestCase struct {
	Name     string
	Input    string
	Expected string
	Actual   string
	Pass     bool
}

const (
	reset = "\033[0m"
	red   = "\033[31m"
	green = "\033[32m"
)

// PrintTestTable logs a table of comparison results and marks the test
// failed when any case has Pass=false. Failing rows are flagged with > <.
func PrintTestTable(t *testing.T, cases []TestCase) {
	t.Helper()

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "  Input\tExpected Value\tReturned Value\t\n")

	var failed []string
	for _, tc := range cases {
		color, leftPtr, rightPtr := green, " ", " "
		if !tc.Pass {
			color, leftPtr, rightPtr = red, ">", "<"
			label := tc.Name
			if label == "" {
				label = tc.Input
			}
			failed = append(failed, label)
		}
		fmt.Fprintf(w, "%s %s\t%s\t%s%s%s\t%s\n", leftPtr, tc.Input, tc.Expected, color, tc.Actual, reset, rightPtr)
	}
	w.Flush()
	t.Log("\n" + buf.String())

	for _, label := range failed {
		t.Errorf("case failed: %s", label)
	}
}
