package console

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// semanticRegex matches {{_content_}} format for semantic tags
	semanticRegex = regexp.MustCompile(`\{\{_([A-Za-z0-9_\-]+)_\}\}`)

	// directRegex matches {{|content|}} format for direct style codes
	directRegex = regexp.MustCompile(`\{\{\|([A-Za-z0-9_:\-#]*)\|\}\}`)
)

// ExpandTags converts semantic tags to the direct {{|style|}} format.
// Unknown semantic tags are dropped.
func ExpandTags(text string) string {
	return semanticRegex.ReplaceAllStringFunc(text, func(match string) string {
		content := strings.ToLower(match[3 : len(match)-3])
		if style, ok := semanticMap[content]; ok {
			return "{{|" + style + "|}}"
		}
		return ""
	})
}

// ToANSI converts semantic and direct tags to ANSI escape sequences.
// When stdout is not a terminal all tags are stripped instead.
func ToANSI(text string) string {
	if !isTTYGlobal {
		return Strip(text)
	}

	text = ExpandTags(text)
	return directRegex.ReplaceAllStringFunc(text, func(match string) string {
		return parseStyleCodeToANSI(match[3 : len(match)-3])
	})
}

// Strip removes all semantic and direct tags.
func Strip(text string) string {
	text = semanticRegex.ReplaceAllString(text, "")
	return directRegex.ReplaceAllString(text, "")
}

// Parse renders tags for terminal output.
func Parse(text string) string {
	return ToANSI(text)
}

// Sprintf formats and renders tags.
func Sprintf(format string, a ...any) string {
	return ToANSI(fmt.Sprintf(format, a...))
}

// Println renders tags and prints the result to stdout.
func Println(a ...any) {
	fmt.Println(ToANSI(fmt.Sprint(a...)))
}
