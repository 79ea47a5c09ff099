package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Summary(ctx context.Context, args []string) error
	Photo(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: (l)ist, show <id>, add, delete <id>, summary, photo <id> <file>, download <id> <file>, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the GrowLog CLI.
//
// It reads a line from reader, parses the first token as the command and
// the rest as its arguments, and dispatches to methods on a. Plant
// commands are refused until the user is logged in. The loop exits on EOF
// or when the user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers
// print their own messages.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("growlog%s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue

		case "register":
			_ = a.Register(ctx, args)
			continue

		case "login":
			_ = a.Login(ctx, args)
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		handler := plantCommand(a, cmd)
		if handler == nil {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if !a.isLoggedIn() {
			printlnFn("Please log in first")
			continue
		}
		_ = handler(ctx, args)
	}
}

// plantCommand maps commands that need a session to their handler.
func plantCommand(a execIface, cmd string) func(context.Context, []string) error {
	switch cmd {
	case "l", "list":
		return a.List
	case "show":
		return a.Show
	case "add":
		return a.Add
	case "delete", "rm":
		return a.Delete
	case "summary":
		return a.Summary
	case "photo":
		return a.Photo
	case "download":
		return a.Download
	case "logout":
		return a.Logout
	}
	return nil
}
