package console

import (
	"context"
	"os"
	"strings"

	"golang.org/x/term"
)

// Printer is a function compatible with logger.Notice
type Printer func(ctx context.Context, msg string, args ...any)

// QuestionPrompt prompts the user with a Yes/No question.
// It returns true if the user answers Yes, false otherwise.
// defaultValue determines the default action if the user just presses Enter ("Y"=Yes, "N"=No, ""=Require Input).
// forceYes if true, immediately returns true without prompting (useful for -y flag).
func QuestionPrompt(ctx context.Context, printer Printer, question string, defaultValue string, forceYes bool) bool {
	if forceYes {
		return true
	}

	ynPrompt := "[YN]"
	if strings.EqualFold(defaultValue, "y") {
		ynPrompt = "[Yn]"
	} else if strings.EqualFold(defaultValue, "n") {
		ynPrompt = "[yN]"
	}

	printer(ctx, question)
	printer(ctx, ynPrompt)

	// Switch to raw mode to read a single character
	fd := int(os.Stdin.Fd())
	var oldState *term.State
	if term.IsTerminal(fd) {
		var err error
		oldState, err = term.MakeRaw(fd)
		if err != nil {
			oldState = nil
		}
	}

	answer := readAnswer(defaultValue)

	// Restore terminal before printing log messages
	if oldState != nil {
		_ = term.Restore(fd, oldState)
	}

	if answer {
		printer(ctx, "Answered: {{_Yes_}}Yes{{|-|}}")
	} else {
		printer(ctx, "Answered: {{_No_}}No{{|-|}}")
	}
	return answer
}

func readAnswer(defaultValue string) bool {
	b := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(b); err != nil {
			// No input available, fall back to the default (No when unset)
			return strings.EqualFold(defaultValue, "y")
		}

		switch input := strings.ToLower(string(b[0])); input {
		case "\r", "\n":
			if strings.EqualFold(defaultValue, "y") {
				return true
			}
			if strings.EqualFold(defaultValue, "n") {
				return false
			}
		case "y":
			return true
		case "n":
			return false
		}
	}
}
