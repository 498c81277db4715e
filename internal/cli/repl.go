package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
// App satisfies it; tests provide a recording stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	Show(args []string) error
	Cycle(args []string) error
	Note(args []string) error
	Totals(args []string) error
	Export(args []string) error
	Close(ctx context.Context) error
}

// runREPL reads one command per line and dispatches on the first token.
// The loop ends on EOF or "exit"/"quit"; both close the executor so a
// pending save is delivered before the program leaves.
//
//	Not logged in:
//	  register <user> [pin]   create an account and log in
//	  login <user> [pin]      log in and load the calendar
//
//	Logged in:
//	  show [year month]       print a month grid (defaults to this month)
//	  cycle <YYYY-MM-DD>      advance the custodian of a day
//	  note <YYYY-MM-DD> text  set the notes of a day (empty text clears)
//	  totals <kind> <year> [n]
//	  export <kind> <year> [n] [csv|json]
//	  logout
//
// Handlers print their own errors; the loop keeps going after a failure.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	defer func() { _ = a.Close(ctx) }()

	for {
		printlnFn(fmt.Sprintf("custody %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: show, cycle, note, totals, export, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx, args)

		case "login":
			_ = a.Login(ctx, args)

		case "logout":
			_ = a.Logout(ctx)

		case "show":
			_ = a.Show(args)

		case "cycle":
			_ = a.Cycle(args)

		case "note":
			_ = a.Note(args)

		case "totals":
			_ = a.Totals(args)

		case "export":
			_ = a.Export(args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
