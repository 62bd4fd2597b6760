package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/shlex"
	"gopkg.in/yaml.v3"
)

// Command is an argument vector. The first element is the program.
type Command []string

// ParseCommand splits a command line into words using shell quoting rules.
// Nothing is expanded or substituted.
func ParseCommand(s string) (Command, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	words, err := shlex.Split(s)
	if err != nil {
		return nil, fmt.Errorf("parse command %q: %w", s, err)
	}
	return Command(words), nil
}

// Empty reports whether there is no program to run.
func (c Command) Empty() bool {
	return len(c) == 0 || c[0] == ""
}

// Program returns the executable name.
func (c Command) Program() string {
	if c.Empty() {
		return ""
	}
	return c[0]
}

// Args returns the arguments after the program.
func (c Command) Args() []string {
	if len(c) < 2 {
		return nil
	}
	return c[1:]
}

// String joins the words for display, quoting those containing spaces.
func (c Command) String() string {
	parts := make([]string, len(c))
	for i, w := range c {
		if w == "" || strings.ContainsAny(w, " \t\"'") {
			w = fmt.Sprintf("%q", w)
		}
		parts[i] = w
	}
	return strings.Join(parts, " ")
}

func (c *Command) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		cmd, err := ParseCommand(s)
		if err != nil {
			return err
		}
		*c = cmd
		return nil
	}
	var argv []string
	if err := json.Unmarshal(data, &argv); err != nil {
		return fmt.Errorf("command must be a string or a list of strings")
	}
	*c = argv
	return nil
}

func (c *Command) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		cmd, err := ParseCommand(s)
		if err != nil {
			return err
		}
		*c = cmd
		return nil
	case yaml.SequenceNode:
		var argv []string
		if err := node.Decode(&argv); err != nil {
			return err
		}
		*c = argv
		return nil
	default:
		return fmt.Errorf("line %d: command must be a string or a list of strings", node.Line)
	}
}
