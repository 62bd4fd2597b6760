package console

import (
	"AppShelf/internal/testutils"
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"{{_Version_}}v1.2.3{{|-|}}", "v1.2.3"},
		{"{{|red::b|}}bold{{|-|}}", "bold"},
		{"{{_Unknown_}}x", "x"},
		{"a {{_File_}}b{{|-|}} c", "a b c"},
	}

	var cases []testutils.TestCase
	for _, tt := range tests {
		actual := Strip(tt.input)
		cases = append(cases, testutils.TestCase{
			Input:    tt.input,
			Expected: tt.expected,
			Actual:   actual,
			Pass:     actual == tt.expected,
		})
	}
	testutils.PrintTestTable(t, cases)
}

func TestToANSI(t *testing.T) {
	prevTTY := SetTTY(true)
	prevProfile := GetPreferredProfile()
	SetPreferredProfile(termenv.ANSI)
	defer func() {
		SetTTY(prevTTY)
		SetPreferredProfile(prevProfile)
	}()

	got := ToANSI("{{_Yes_}}ok{{|-|}}")
	if !strings.Contains(got, "\x1b[32m") {
		t.Errorf("expected green sequence in %q", got)
	}
	if !strings.HasSuffix(got, CodeReset) {
		t.Errorf("expected reset suffix in %q", got)
	}

	got = ToANSI("{{|red::b|}}x")
	if !strings.Contains(got, "\x1b[31m") || !strings.Contains(got, "\x1b[1m") {
		t.Errorf("expected red and bold sequences in %q", got)
	}
}

func TestToANSINotTTY(t *testing.T) {
	prev := SetTTY(false)
	defer SetTTY(prev)

	if got := ToANSI("{{_Version_}}v1{{|-|}}"); got != "v1" {
		t.Errorf("expected tags stripped, got %q", got)
	}
}

func TestFprintTable(t *testing.T) {
	prev := SetTTY(false)
	defer SetTTY(prev)

	var buf bytes.Buffer
	FprintTable(&buf, []string{"ID", "Name"}, []string{"vlc", "VLC media player", "gimp"}, false)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != "+------+------------------+" {
		t.Errorf("unexpected top border %q", lines[0])
	}
	if lines[3] != "| vlc  | VLC media player |" {
		t.Errorf("unexpected row %q", lines[3])
	}
	if lines[4] != "| gimp |                  |" {
		t.Errorf("expected padded short row, got %q", lines[4])
	}
}
