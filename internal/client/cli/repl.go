package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the set of commands the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	sessionExpired() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error

	List(ctx context.Context) error
	Refresh(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Filter(ctx context.Context, category string) error
	ClearFilters(ctx context.Context) error
	Categories(ctx context.Context) error
	Page(ctx context.Context, arg string) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error

	Add(ctx context.Context) error
	Edit(ctx context.Context, ref string) error
	Delete(ctx context.Context, ref string) error
	History(ctx context.Context, ref string) error

	Import(ctx context.Context, paths []string) error
	Export(ctx context.Context) error
}

var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

const signedOutHelp = `Commands:
  register          create an account
  login             sign in
  help              show this help
  exit              quit`

const signedInHelp = `Commands:
  list              show the current page
  refresh           reload the current page
  search [text]     search products (empty clears)
  filter [category] filter by category (empty clears)
  clear             clear search and filter
  categories        show known categories
  page <n>          go to page n
  next / prev       go to the next or previous page
  add               add a product
  edit <row|id>     edit a product
  delete <row|id>   delete a product
  history <row|id>  show stock history
  import <file.csv> import products from CSV
  export            export products to CSV
  whoami            show the signed-in user
  logout            sign out
  help              show this help
  exit              quit`

// runREPL runs the interactive loop until EOF, "exit"/"quit" or context
// cancellation. Commands print their own messages; their errors are ignored
// here.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printFn(statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, args := strings.ToLower(fields[0]), fields[1:]

		if cmd == "exit" || cmd == "quit" {
			return
		}

		if a.isLoggedIn() {
			runSignedIn(ctx, a, cmd, args)
		} else {
			runSignedOut(ctx, a, cmd)
		}

		if a.sessionExpired() {
			printlnFn(MsgSessionExpired)
		}
	}
}

func runSignedOut(ctx context.Context, a execIface, cmd string) {
	switch cmd {
	case "register":
		_ = a.Register(ctx)
	case "login":
		_ = a.Login(ctx)
	case "help":
		printlnFn(signedOutHelp)
	default:
		printlnFn("Unknown command:", cmd, "(type 'help')")
	}
}

func runSignedIn(ctx context.Context, a execIface, cmd string, args []string) {
	rest := strings.Join(args, " ")

	switch cmd {
	case "list", "l":
		_ = a.List(ctx)
	case "refresh":
		_ = a.Refresh(ctx)
	case "search":
		_ = a.Search(ctx, rest)
	case "filter":
		_ = a.Filter(ctx, rest)
	case "clear":
		_ = a.ClearFilters(ctx)
	case "categories":
		_ = a.Categories(ctx)
	case "page":
		_ = a.Page(ctx, rest)
	case "next":
		_ = a.NextPage(ctx)
	case "prev":
		_ = a.PrevPage(ctx)
	case "add":
		_ = a.Add(ctx)
	case "edit":
		_ = a.Edit(ctx, rest)
	case "delete", "rm":
		_ = a.Delete(ctx, rest)
	case "history":
		_ = a.History(ctx, rest)
	case "import":
		_ = a.Import(ctx, args)
	case "export":
		_ = a.Export(ctx)
	case "whoami":
		_ = a.Whoami(ctx)
	case "logout":
		_ = a.Logout(ctx)
	case "help":
		printlnFn(signedInHelp)
	default:
		printlnFn("Unknown command:", cmd, "(type 'help')")
	}
}
