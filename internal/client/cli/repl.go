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
	SignUp(ctx context.Context) error
	SignIn(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Catalog(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a read–eval–print loop for the fittrack CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF, when ctx is done, or
// when the user types "exit" or "quit".
//
//	Not signed in:  help, signup, signin (login), catalog, exit | quit
//	Signed in:      help, whoami, catalog, logout, exit | quit
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors to the user.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("fittrack%s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, catalog, logout, exit")
			} else {
				printlnFn("Available commands: signup, signin, catalog, exit")
			}

		case "signup", "register":
			if a.isLoggedIn() {
				printlnFn("Already signed in, logout first")
				continue
			}
			_ = a.SignUp(ctx)

		case "signin", "login":
			if a.isLoggedIn() {
				printlnFn("Already signed in, logout first")
				continue
			}
			_ = a.SignIn(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "catalog":
			_ = a.Catalog(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
