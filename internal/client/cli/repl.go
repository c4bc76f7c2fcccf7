package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context, method string) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Balances(ctx context.Context) error
	Prove(ctx context.Context) error
	Verify(ctx context.Context, args []string) error
	History(ctx context.Context) error
	Share(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the ghostproof CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help                        — show available commands
//	  - login [delegation|devicekey] — sign in (delegation is the default)
//	  - verify <ref>                — re-verify a recorded proof
//	  - history                     — list recorded proofs
//	  - exit | quit                 — leave the program
//
//	Logged in:
//	  - help             — show available commands
//	  - whoami           — show the signed-in principal
//	  - balances         — show token balances
//	  - prove            — generate a balance proof (interactive prompts)
//	  - verify <ref>     — re-verify a recorded proof
//	  - history          — list recorded proofs
//	  - share <ref>      — print a share link for a recorded proof
//	  - delete <ref>     — remove a proof from the local ledger
//	  - logout           — sign out
//	  - exit | quit      — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ghost> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, balances, prove, verify, history, share, delete, logout, exit")
			} else {
				printlnFn("Available commands: login [delegation|devicekey], verify, history, exit")
			}

		case "login":
			method := ""
			if len(args) > 0 {
				method = args[0]
			}
			_ = a.Login(ctx, method)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "balances":
			_ = a.Balances(ctx)

		case "prove":
			_ = a.Prove(ctx)

		case "verify":
			_ = a.Verify(ctx, args)

		case "history":
			_ = a.History(ctx)

		case "share":
			_ = a.Share(ctx, args)

		case "delete":
			_ = a.Delete(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
