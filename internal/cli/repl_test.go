package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool
	closed   int

	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string, args []string) {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(_ context.Context, args []string) error {
	f.record("register", args)
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Login(_ context.Context, args []string) error {
	f.record("login", args)
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(context.Context) error {
	f.record("logout", nil)
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Show(args []string) error   { f.record("show", args); return nil }
func (f *fakeExec) Cycle(args []string) error  { f.record("cycle", args); return nil }
func (f *fakeExec) Note(args []string) error   { f.record("note", args); return nil }
func (f *fakeExec) Totals(args []string) error { f.record("totals", args); return nil }
func (f *fakeExec) Export(args []string) error { f.record("export", args); return nil }
func (f *fakeExec) Close(context.Context) error {
	f.closed++
	return nil
}

func silence(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i], _ = v.(string)
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_DispatchesCommandsInOrder(t *testing.T) {
	silence(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login alice 1234",
		"",
		"show 2024 3",
		"cycle 2024-03-01",
		"note 2024-03-01 school pickup",
		"totals quarter 2024 1",
		"export year 2024 json",
		"logout",
		"exit",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewScanner(input))

	want := []string{"login", "show", "cycle", "note", "totals", "export", "logout"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
	if got := strings.Join(exec.args[3], " "); got != "2024-03-01 school pickup" {
		t.Fatalf("note args = %q", got)
	}
	if exec.closed != 1 {
		t.Fatalf("expected close on exit, got %d", exec.closed)
	}
}

func TestRunREPL_UnknownCommandAndEOF(t *testing.T) {
	lines := silence(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader("frobnicate\n")))

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	if exec.closed != 1 {
		t.Fatalf("expected close on EOF, got %d", exec.closed)
	}
	found := false
	for _, l := range *lines {
		if l == "Unknown command: frobnicate" {
			found = true
		}
	}
	if !found {
		t.Fatalf("unknown command not reported: %v", *lines)
	}
}
