package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output. In tests,
// replace them with stubs.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Home(ctx context.Context, args []string) error
	SignUp(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	NewPost(ctx context.Context) error
	EditPost(ctx context.Context, args []string) error
	DeletePost(ctx context.Context, args []string) error
	Me(ctx context.Context) error
	EditUser(ctx context.Context, args []string) error
	DeleteUser(ctx context.Context) error
	Dismiss()
	Flush()
}

// runREPL starts a simple read–eval–print loop for the blog CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. After each command the pending notification is flushed. The loop
// exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help                       - show available commands
//	  - home | posts [sort] [text] - list posts; sort is idAsc, idDesc,
//	                                 titleAsc or titleDesc
//	  - dismiss                    - close the notification
//	  - exit | quit                - leave the program
//
//	Not logged in:
//	  - signup                     - create an account
//	  - login                      - authenticate
//
//	Logged in:
//	  - newpost                    - write a post
//	  - editpost <id>              - edit one of your posts
//	  - deletepost <id>            - delete one of your posts
//	  - me                         - show your profile
//	  - edituser [id]              - edit your profile
//	  - deleteuser                 - delete your account
//	  - logout                     - log out
//
// Errors returned by command handlers are not printed here; every handler
// outcome reaches the user through the notification flushed afterwards.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printFn(fmt.Sprintf("blog%s> ", withSpace(statusFn())))

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
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: home [sort] [search], newpost, editpost <id>, deletepost <id>, me, edituser, deleteuser, logout, dismiss, exit")
			} else {
				printlnFn("Available commands: home [sort] [search], signup, login, dismiss, exit")
			}

		case "home", "posts":
			_ = a.Home(ctx, args)

		case "signup":
			_ = a.SignUp(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "newpost":
			_ = a.NewPost(ctx)

		case "editpost":
			_ = a.EditPost(ctx, args)

		case "deletepost":
			_ = a.DeletePost(ctx, args)

		case "me":
			_ = a.Me(ctx)

		case "edituser":
			_ = a.EditUser(ctx, args)

		case "deleteuser":
			_ = a.DeleteUser(ctx)

		case "dismiss":
			a.Dismiss()

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		a.Flush()
	}
}

func withSpace(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}
