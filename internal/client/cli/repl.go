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

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	Edit(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	Products(ctx context.Context) error
	Category(ctx context.Context, category string) error
	Search(ctx context.Context, term string) error
	Show(ctx context.Context, id string) error
	Active(ctx context.Context, arg string) error
}

// lineReader yields lines from r without read-ahead, so prompts issued by
// commands can keep reading from the same reader.
func lineReader(r *bufio.Reader) func() (string, bool) {
	return func() (string, bool) {
		line, err := r.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", false
		}
		return line, true
	}
}

// runREPL starts a simple read–eval–print loop for the GameZone CLI.
//
// It reads a line with next, parses the first token as the
// command, and dispatches to methods on 'a'. The rest of the line is the
// argument of category, search, show and active. The loop exits when next
// reports no more input, on context cancellation or when the user types "exit" or "quit".
//
// Prompt & Commands
//
//	Always:
//	  - help                   show available commands
//	  - products               list the catalogue
//	  - category <name>        list one category
//	  - search <term>          search products by name
//	  - show <id>              product detail
//	  - active [on|off|reset]  show, set or reset the active flag
//	  - exit | quit            leave the program
//
//	Not logged in:
//	  - register, login
//
//	Logged in:
//	  - profile, edit, delete-account, logout
//
// Errors returned by command handlers are not fatal; handlers print their own
// messages.
func runREPL(ctx context.Context, a execIface, statusFn func() string, next func() (string, bool)) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("gz %s> ", statusFn()))
		line, ok := next()
		if !ok {
			return
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Comandos: products, category <c>, search <t>, show <id>, profile, edit, delete-account, active [on|off|reset], logout, exit")
			} else {
				printlnFn("Comandos: register, login, products, category <c>, search <t>, show <id>, active [on|off|reset], exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "delete-account":
			_ = a.DeleteAccount(ctx)

		case "products", "p":
			_ = a.Products(ctx)

		case "category":
			if arg == "" {
				printlnFn("Uso: category <nombre>")
				continue
			}
			_ = a.Category(ctx, arg)

		case "search":
			_ = a.Search(ctx, arg)

		case "show":
			if arg == "" {
				printlnFn("Uso: show <id>")
				continue
			}
			_ = a.Show(ctx, arg)

		case "active":
			_ = a.Active(ctx, arg)

		case "exit", "quit":
			printlnFn("¡Hasta pronto!")
			return

		default:
			printlnFn("Comando desconocido:", cmd)
		}
	}
}
