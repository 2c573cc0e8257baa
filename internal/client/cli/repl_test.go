package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls   []string
	args    [][]string
	flushes int
}

func (f *fakeExec) record(name string, args []string) {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
}

func (f *fakeExec) isLoggedIn(context.Context) bool { return f.loggedIn }
func (f *fakeExec) Home(_ context.Context, args []string) error {
	f.record("home", args)
	return nil
}
func (f *fakeExec) SignUp(context.Context) error { f.record("signup", nil); return nil }
func (f *fakeExec) Login(context.Context) error {
	f.record("login", nil)
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(context.Context) error {
	f.record("logout", nil)
	f.loggedIn = false
	return nil
}
func (f *fakeExec) NewPost(context.Context) error { f.record("newpost", nil); return nil }
func (f *fakeExec) EditPost(_ context.Context, args []string) error {
	f.record("editpost", args)
	return nil
}
func (f *fakeExec) DeletePost(_ context.Context, args []string) error {
	f.record("deletepost", args)
	return nil
}
func (f *fakeExec) Me(context.Context) error { f.record("me", nil); return nil }
func (f *fakeExec) EditUser(_ context.Context, args []string) error {
	f.record("edituser", args)
	return nil
}
func (f *fakeExec) DeleteUser(context.Context) error { f.record("deleteuser", nil); return nil }
func (f *fakeExec) Dismiss()                         { f.record("dismiss", nil) }
func (f *fakeExec) Flush()                           { f.flushes++ }

func silenceOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrintln, origPrint := printlnFn, printFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprint(a...))
		return 0, nil
	}
	printFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn, printFn = origPrintln, origPrint })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	silenceOutput(t)

	input := strings.Join([]string{
		"help",
		"login",
		"home titleAsc go",
		"posts",
		"newpost",
		"editpost 3",
		"deletepost 4",
		"me",
		"edituser",
		"deleteuser",
		"dismiss",
		"",
		"logout",
		"signup",
		"exit",
		"me",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, rdr(input))

	want := []string{"login", "home", "home", "newpost", "editpost", "deletepost", "me",
		"edituser", "deleteuser", "dismiss", "logout", "signup"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
	if got := exec.args[1]; strings.Join(got, " ") != "titleAsc go" {
		t.Fatalf("home args = %v", got)
	}
	if got := exec.args[4]; len(got) != 1 || got[0] != "3" {
		t.Fatalf("editpost args = %v", got)
	}
	// one flush per dispatched command, including help
	if exec.flushes != len(want)+1 {
		t.Fatalf("flushes = %d, want %d", exec.flushes, len(want)+1)
	}
}

func TestRunREPL_UnknownAndEOF(t *testing.T) {
	lines := silenceOutput(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("foobar\nme"))

	if len(exec.calls) != 1 || exec.calls[0] != "me" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	if len(*lines) == 0 || (*lines)[0] != "Unknown command:foobar" {
		t.Fatalf("unexpected output: %v", *lines)
	}
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	lines := silenceOutput(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, rdr("help\nquit\n"))
	runREPL(context.Background(), &fakeExec{loggedIn: true}, func() string { return "" }, rdr("help\nquit\n"))

	if len(*lines) != 4 {
		t.Fatalf("unexpected output: %v", *lines)
	}
	if !strings.Contains((*lines)[0], "signup") || strings.Contains((*lines)[0], "newpost") {
		t.Fatalf("anonymous help = %q", (*lines)[0])
	}
	if !strings.Contains((*lines)[2], "newpost") {
		t.Fatalf("logged-in help = %q", (*lines)[2])
	}
}
