package exec

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"
)

// TestHelperProcess is not a real test. It is the child process started by
// the other tests through os.Args[0].
func TestHelperProcess(t *testing.T) {
	if os.Getenv("APPSHELF_HELPER_PROCESS") != "1" {
		return
	}
	args := os.Args
	for i, a := range args {
		if a == "--" {
			args = args[i+1:]
			break
		}
	}
	switch args[0] {
	case "echo":
		fmt.Println(args[1])
		os.Exit(0)
	case "exit":
		code, _ := strconv.Atoi(args[1])
		os.Exit(code)
	case "sleep":
		time.Sleep(10 * time.Second)
		os.Exit(0)
	}
	os.Exit(2)
}

func helperArgs(args ...string) []string {
	return append([]string{"-test.run=TestHelperProcess", "--"}, args...)
}

func TestRunAndLogSuccess(t *testing.T) {
	t.Setenv("APPSHELF_HELPER_PROCESS", "1")
	err := RunAndLog(context.Background(), "", "test:debug", "error", "failed", os.Args[0], helperArgs("echo", "hello")...)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
}

func TestRunAndLogFailure(t *testing.T) {
	t.Setenv("APPSHELF_HELPER_PROCESS", "1")
	err := RunAndLog(context.Background(), "", "debug", "", "", os.Args[0], helperArgs("exit", "3")...)
	if err == nil {
		t.Fatal("Expected an error for a non-zero exit")
	}
}

func TestRunAndLogTimeout(t *testing.T) {
	t.Setenv("APPSHELF_HELPER_PROCESS", "1")
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := RunAndLog(ctx, "", "debug", "", "", os.Args[0], helperArgs("sleep")...)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Expected deadline exceeded, got %v", err)
	}
}

func TestRunAndLogNoCommand(t *testing.T) {
	if err := RunAndLog(context.Background(), "", "", "", "", ""); !errors.Is(err, ErrNoCommand) {
		t.Fatalf("Expected ErrNoCommand, got %v", err)
	}
}

func TestStart(t *testing.T) {
	t.Setenv("APPSHELF_HELPER_PROCESS", "1")
	pid, err := Start(context.Background(), os.Args[0], helperArgs("exit", "0")...)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if pid <= 0 {
		t.Errorf("Expected a pid, got %d", pid)
	}

	if _, err := Start(context.Background(), "/nonexistent/appshelf-test-binary"); err == nil {
		t.Error("Expected an error for a missing program")
	}
}

func TestDisplay(t *testing.T) {
	got := Display("app", "--title", "hello world", "")
	want := `app --title "hello world" ""`
	if got != want {
		t.Errorf("Display() = %s; want %s", got, want)
	}
}
