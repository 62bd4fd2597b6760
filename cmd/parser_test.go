package cmd

import (
	"errors"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestParseGroups(t *testing.T) {
	groups, err := Parse([]string{"-fy", "-i", "demo", "other", "-v", "-l"})
	require.NoError(t, err)
	require.Equal(t, []CommandGroup{
		{Flags: []string{"-f", "-y"}, Command: "-i", Args: []string{"demo", "other"}},
		{Flags: []string{"-v"}, Command: "-l"},
	}, groups)
	require.Equal(t, []string{"-f", "-y", "-i", "demo", "other", "-v", "-l"}, Flatten(groups))
}

func TestParseArgumentArity(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []CommandGroup
	}{
		{
			name: "optional argument given",
			args: []string{"-u", "v1.2.3", "-V"},
			want: []CommandGroup{{Command: "-u", Args: []string{"v1.2.3"}}, {Command: "-V"}},
		},
		{
			name: "optional argument omitted",
			args: []string{"--update", "--db-status"},
			want: []CommandGroup{{Command: "--update"}, {Command: "--db-status"}},
		},
		{
			name: "zero or more",
			args: []string{"--update-apps"},
			want: []CommandGroup{{Command: "--update-apps"}},
		},
		{
			name: "inline value",
			args: []string{"--settings-set=update_checker=true"},
			want: []CommandGroup{{Command: "--settings-set", Args: []string{"update_checker=true"}}},
		},
		{
			name: "help for an option",
			args: []string{"-h", "--install"},
			want: []CommandGroup{{Command: "-h", Args: []string{"--install"}}},
		},
		{
			name: "exactly one",
			args: []string{"--launch", "demo", "--import", "apps.yaml"},
			want: []CommandGroup{{Command: "--launch", Args: []string{"demo"}}, {Command: "--import", Args: []string{"apps.yaml"}}},
		},
		{
			name: "trailing modifiers",
			args: []string{"-x"},
			want: []CommandGroup{{Flags: []string{"-x"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups, err := Parse(tt.args)
			require.NoError(t, err)
			require.Equal(t, tt.want, groups)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		index   int
		command string
	}{
		{name: "unknown option", args: []string{"--bogus"}, index: 0},
		{name: "stray argument", args: []string{"-l", "extra"}, index: 1, command: "-l"},
		{name: "missing required argument", args: []string{"--launch"}, index: 0, command: "--launch"},
		{name: "missing argument before next option", args: []string{"-i", "-l"}, index: 0, command: "-i"},
		{name: "unexpected inline value", args: []string{"--db-status=now"}, index: 0, command: "--db-status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.args)
			var perr *ParseError
			require.True(t, errors.As(err, &perr), "expected *ParseError, got %v", err)
			require.Equal(t, tt.index, perr.Index)
			require.Equal(t, tt.command, perr.FailingCommand)
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := Parse([]string{"-l", "--launch"})
	require.Error(t, err)

	msg := err.Error()
	require.Contains(t, msg, "Error in command line:")
	require.Contains(t, msg, "requires an argument")
	require.Contains(t, msg, "{{_UserCommandErrorMarker_}}^")
	require.Contains(t, msg, "Usage is:")
	require.Contains(t, msg, "--launch{{|-|}} {{_UsageApp_}}<app>")
}

func TestUsageCoversEveryFlag(t *testing.T) {
	usage := GetUsage("")
	Flags().VisitAll(func(f *pflag.Flag) {
		require.Contains(t, usage, "--"+f.Name, "usage is missing --%s", f.Name)
	})
}
