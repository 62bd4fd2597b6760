package console

import (
	"strings"
)

// Raw ANSI codes used by the logger for level labels.
const (
	CodeReset   = "\x1b[0m"
	CodeRed     = "\x1b[31m"
	CodeGreen   = "\x1b[32m"
	CodeYellow  = "\x1b[33m"
	CodeBlue    = "\x1b[34m"
	CodeWhite   = "\x1b[37m"
	CodeRedBg   = "\x1b[41m"
	CodeBold    = "\x1b[1m"
	CodeReverse = "\x1b[7m"
)

// colorIndex maps color names to their ANSI palette index.
var colorIndex = map[string]string{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"cyan":    "6",
	"white":   "7",
}

// flagCodes maps style flag letters to SGR parameters.
var flagCodes = map[rune]string{
	'b': "1",
	'd': "2",
	'i': "3",
	'u': "4",
	'l': "5",
	'r': "7",
}

// parseStyleCodeToANSI parses fg:bg:flags format and returns ANSI codes
func parseStyleCodeToANSI(content string) string {
	if content == "-" {
		return CodeReset
	}

	parts := strings.Split(content, ":")
	var codes strings.Builder

	if len(parts) > 0 {
		codes.WriteString(colorSequence(parts[0], false))
	}
	if len(parts) > 1 {
		codes.WriteString(colorSequence(parts[1], true))
	}
	if len(parts) > 2 {
		for _, f := range parts[2] {
			if code, ok := flagCodes[f]; ok {
				codes.WriteString(wrapSequence(code))
			}
		}
	}

	return codes.String()
}

func colorSequence(name string, background bool) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "-" {
		return ""
	}
	if idx, ok := colorIndex[name]; ok {
		name = idx
	}
	c := preferredProfile.Color(name)
	if c == nil {
		return ""
	}
	return wrapSequence(c.Sequence(background))
}

func wrapSequence(seq string) string {
	if seq == "" {
		return ""
	}
	return "\x1b[" + seq + "m"
}
