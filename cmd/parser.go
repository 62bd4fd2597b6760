package cmd

import (
	"AppShelf/internal/version"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// ParseError describes a command line that could not be parsed. Error
// renders the command line with a caret under the failing argument.
type ParseError struct {
	Args           []string // The full argument list passed to Parse
	Index          int      // The index where the error occurred
	Message        string   // The specific error message
	FailingCommand string   // The command being processed (e.g. "--install")
}

func (e *ParseError) Error() string {
	indent := "   "

	cmdLineParts := []string{fmt.Sprintf("{{_UserCommand_}}%s{{|-|}}", version.CommandName)}
	for i := 0; i <= e.Index && i < len(e.Args); i++ {
		if i == e.Index {
			cmdLineParts = append(cmdLineParts, fmt.Sprintf("{{_UserCommandError_}}%s{{|-|}}", e.Args[i]))
		} else {
			cmdLineParts = append(cmdLineParts, fmt.Sprintf("{{_UserCommand_}}%s{{|-|}}", e.Args[i]))
		}
	}
	cmdLineStr := "'" + strings.Join(cmdLineParts, " ") + "'"

	// indent + "'" + command name + " " + preceding args
	caretOffset := len(indent) + 1 + len(version.CommandName) + 1
	for i := 0; i < e.Index && i < len(e.Args); i++ {
		caretOffset += len(e.Args[i]) + 1
	}
	pointerLine := strings.Repeat(" ", caretOffset) + "{{_UserCommandErrorMarker_}}^{{|-|}}"

	failingOpt := ""
	if e.Index < len(e.Args) {
		failingOpt = e.Args[e.Index]
	}
	formattedMsg := strings.NewReplacer(
		"%c", fmt.Sprintf("'{{_UserCommand_}}%s{{|-|}}'", e.FailingCommand),
		"%o", fmt.Sprintf("'{{_UserCommand_}}%s{{|-|}}'", failingOpt),
	).Replace(e.Message)

	out := fmt.Sprintf("Error in command line:\n\n%s%s\n%s\n\n%s%s\n", indent, cmdLineStr, pointerLine, indent, formattedMsg)

	if e.FailingCommand != "" {
		out += fmt.Sprintf("\n%sUsage is:\n", indent)
		for _, line := range strings.Split(strings.TrimRight(GetUsage(e.FailingCommand), "\n"), "\n") {
			out += fmt.Sprintf("%s%s\n", indent, line)
		}
	} else {
		out += fmt.Sprintf("\n%sRun '{{_UserCommand_}}%s --help{{|-|}}' for usage.\n", indent, version.CommandName)
	}

	return out
}

// CommandGroup represents a parsed group of flags and a command with its arguments
type CommandGroup struct {
	Flags   []string
	Command string
	Args    []string
}

// FullSlice returns the reconstructed slice of strings for the group
func (cg CommandGroup) FullSlice() []string {
	var s []string
	s = append(s, cg.Flags...)
	if cg.Command != "" {
		s = append(s, cg.Command)
	}
	return append(s, cg.Args...)
}

// CommandSlice returns the command and its arguments as a slice
func (cg CommandGroup) CommandSlice() []string {
	var s []string
	if cg.Command != "" {
		s = append(s, cg.Command)
	}
	return append(s, cg.Args...)
}

// Flatten converts a slice of CommandGroups into a single slice of strings
func Flatten(groups []CommandGroup) []string {
	var s []string
	for _, g := range groups {
		s = append(s, g.FullSlice()...)
	}
	return s
}

type argSpec int

const (
	argsNone argSpec = iota
	argsOptional
	argsOne
	argsZeroOrMore
	argsOneOrMore
)

// commandArgs says how many arguments each command consumes. Commands not
// listed take none.
var commandArgs = map[string]argSpec{
	"-i":             argsOneOrMore,
	"--install":      argsOneOrMore,
	"-r":             argsOneOrMore,
	"--remove":       argsOneOrMore,
	"--download":     argsOneOrMore,
	"--info":         argsOneOrMore,
	"--settings-set": argsOneOrMore,
	"--launch":       argsOne,
	"--import":       argsOne,
	"-u":             argsOptional,
	"--update":       argsOptional,
	"--update-apps":  argsZeroOrMore,
}

var modifiers = map[string]bool{
	"-f":        true,
	"--force":   true,
	"-v":        true,
	"--verbose": true,
	"-x":        true,
	"--debug":   true,
	"-y":        true,
	"--yes":     true,
}

// Parse splits the command line into groups, each holding the modifier
// flags that precede a command, the command and its arguments.
func Parse(args []string) ([]CommandGroup, error) {
	fs := Flags()

	// Expand combined short flags (e.g. -fy -> -f -y)
	var expandedArgs []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") && !strings.HasPrefix(arg, "--") && len(arg) > 2 {
			for _, c := range arg[1:] {
				expandedArgs = append(expandedArgs, fmt.Sprintf("-%c", c))
			}
		} else {
			expandedArgs = append(expandedArgs, arg)
		}
	}

	var groups []CommandGroup
	var currentGroup CommandGroup
	var lastCommand string

	i := 0
	for i < len(expandedArgs) {
		arg := expandedArgs[i]

		if !strings.HasPrefix(arg, "-") {
			return nil, &ParseError{Args: expandedArgs, Index: i, Message: "Invalid option %o", FailingCommand: lastCommand}
		}

		if modifiers[arg] {
			currentGroup.Flags = append(currentGroup.Flags, arg)
			i++
			continue
		}

		// --name=value carries its single argument inline
		cmd, inline, hasInline := strings.Cut(arg, "=")
		name := strings.TrimLeft(cmd, "-")
		var validFlag *pflag.Flag
		if strings.HasPrefix(cmd, "--") {
			validFlag = fs.Lookup(name)
		} else if len(name) == 1 {
			validFlag = fs.ShorthandLookup(name)
		}
		if validFlag == nil {
			return nil, &ParseError{Args: expandedArgs, Index: i, Message: "Invalid option %o"}
		}

		currentGroup.Command = cmd
		lastCommand = cmd
		i++

		spec := commandArgs[cmd]
		if hasInline {
			if spec == argsNone {
				return nil, &ParseError{Args: expandedArgs, Index: i - 1, FailingCommand: cmd, Message: "Command %c does not take an argument."}
			}
			currentGroup.Args = append(currentGroup.Args, inline)
		}

		switch spec {
		case argsOne:
			if !hasInline {
				if i >= len(expandedArgs) || strings.HasPrefix(expandedArgs[i], "-") {
					return nil, &ParseError{Args: expandedArgs, Index: i - 1, FailingCommand: cmd, Message: "Command %c requires an argument."}
				}
				currentGroup.Args = append(currentGroup.Args, expandedArgs[i])
				i++
			}
		case argsOptional:
			if !hasInline && i < len(expandedArgs) && !strings.HasPrefix(expandedArgs[i], "-") {
				currentGroup.Args = append(currentGroup.Args, expandedArgs[i])
				i++
			}
		case argsZeroOrMore, argsOneOrMore:
			for i < len(expandedArgs) && !strings.HasPrefix(expandedArgs[i], "-") {
				currentGroup.Args = append(currentGroup.Args, expandedArgs[i])
				i++
			}
			if spec == argsOneOrMore && len(currentGroup.Args) == 0 {
				return nil, &ParseError{Args: expandedArgs, Index: i - 1, FailingCommand: cmd, Message: "Command %c requires at least one argument."}
			}
		default:
			// -h may name the option to show help for
			if (cmd == "-h" || cmd == "--help") && i < len(expandedArgs) && strings.HasPrefix(expandedArgs[i], "-") {
				currentGroup.Args = append(currentGroup.Args, expandedArgs[i])
				i++
			}
		}

		groups = append(groups, currentGroup)
		currentGroup = CommandGroup{}
	}

	// Trailing modifiers with no command form their own group
	if len(currentGroup.Flags) > 0 {
		groups = append(groups, currentGroup)
	}

	return groups, nil
}
