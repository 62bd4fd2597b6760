package cmd

import (
	"AppShelf/internal/console"
	"AppShelf/internal/logger"
	"context"
	"io"
	"os"
)

// stdout receives tables and cards.
var stdout io.Writer = os.Stdout

func printTable(headers []string, data []string, lineChars bool) {
	console.FprintTable(stdout, headers, data, lineChars)
}

func noticePrinter(ctx context.Context, msg string, args ...any) {
	logger.Notice(ctx, msg, args...)
}

// confirmPrompt asks a yes/no question defaulting to yes. yes skips the prompt.
func confirmPrompt(ctx context.Context, question string, yes bool) bool {
	return console.QuestionPrompt(ctx, noticePrinter, question, "Y", yes)
}

func yesNo(b bool) string {
	if b {
		return "{{_Yes_}}yes{{|-|}}"
	}
	return "{{_No_}}no{{|-|}}"
}
