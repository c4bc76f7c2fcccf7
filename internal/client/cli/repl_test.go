package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context, method string) error {
	f.calls = append(f.calls, "login")
	f.args = append(f.args, method)
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Whoami(ctx context.Context) error {
	f.calls = append(f.calls, "whoami")
	return nil
}
func (f *fakeExec) Balances(ctx context.Context) error {
	f.calls = append(f.calls, "balances")
	return nil
}
func (f *fakeExec) Prove(ctx context.Context) error {
	f.calls = append(f.calls, "prove")
	return nil
}
func (f *fakeExec) Verify(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "verify")
	f.args = append(f.args, args...)
	return nil
}
func (f *fakeExec) History(ctx context.Context) error {
	f.calls = append(f.calls, "history")
	return nil
}
func (f *fakeExec) Share(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "share")
	f.args = append(f.args, args...)
	return nil
}
func (f *fakeExec) Delete(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "delete")
	f.args = append(f.args, args...)
	return nil
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login devicekey",
		"help",
		"prove",
		"balances",
		"verify abc123",
		"history",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "prove", "balances", "verify", "history"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}

	if len(exec.args) == 0 || exec.args[0] != "devicekey" {
		t.Fatalf("login method not forwarded: %v", exec.args)
	}
}

func TestRunREPL_ArgsForwarded(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("verify abc123\nshare abc123\ndelete abc123\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	want := []string{"verify", "share", "delete"}
	if len(exec.calls) != len(want) {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	for i, c := range want {
		if exec.calls[i] != c {
			t.Fatalf("call %d: got %q, want %q", i, exec.calls[i], c)
		}
	}
	for _, arg := range exec.args {
		if arg != "abc123" {
			t.Fatalf("unexpected arg: %v", exec.args)
		}
	}
}

func TestRunREPL_EmptyAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("\n   \nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
