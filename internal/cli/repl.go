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

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error

	Dashboard(ctx context.Context) error
	Offsets(ctx context.Context) error
	AddOffset(ctx context.Context) error
	Demo(ctx context.Context) error
	Reset(ctx context.Context) error
	Emissions(ctx context.Context) error
	Credits(ctx context.Context) error
	Invest(ctx context.Context) error
	Projects(ctx context.Context) error
	Backup(ctx context.Context) error
	Restore(ctx context.Context) error

	Sensors(ctx context.Context) error
	History(ctx context.Context, sensorID string) error
	Tips(ctx context.Context) error
	Chat(ctx context.Context) error

	Predict(ctx context.Context, horizon string) error
	Insights(ctx context.Context) error
	Recommendations(ctx context.Context, category string) error
}

const (
	helpAnonymous     = "Available commands: register, login, sensors, history <sensorId>, predict [7d|30d|90d], insights, recommendations [category], tips, chat, exit"
	helpAuthenticated = "Available commands: profile, dashboard, offsets, addoffset, demo, emissions, credits, invest, projects, reset, backup, restore, sensors, history <sensorId>, predict [7d|30d|90d], insights, recommendations [category], tips, chat, logout, exit"
)

// authOnly lists the commands that need an active session.
var authOnly = map[string]bool{
	"profile": true, "dashboard": true, "offsets": true, "addoffset": true,
	"demo": true, "emissions": true, "credits": true, "invest": true,
	"projects": true, "reset": true, "backup": true, "restore": true,
	"logout": true,
}

// runREPL reads commands from reader and dispatches them to a until EOF,
// "exit"/"quit" or cancellation of ctx.
//
// Handler errors are reported to the user and never stop the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("eco %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		if authOnly[cmd] && !a.isLoggedIn() {
			printlnFn("Please log in first.")
			continue
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpAuthenticated)
			} else {
				printlnFn(helpAnonymous)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "profile":
			cmdErr = a.Profile(ctx)

		case "dashboard":
			cmdErr = a.Dashboard(ctx)
		case "offsets":
			cmdErr = a.Offsets(ctx)
		case "addoffset":
			cmdErr = a.AddOffset(ctx)
		case "demo":
			cmdErr = a.Demo(ctx)
		case "reset":
			cmdErr = a.Reset(ctx)
		case "emissions":
			cmdErr = a.Emissions(ctx)
		case "credits":
			cmdErr = a.Credits(ctx)
		case "invest":
			cmdErr = a.Invest(ctx)
		case "projects":
			cmdErr = a.Projects(ctx)
		case "backup":
			cmdErr = a.Backup(ctx)
		case "restore":
			cmdErr = a.Restore(ctx)

		case "sensors":
			cmdErr = a.Sensors(ctx)
		case "history":
			if len(args) == 0 {
				printlnFn("Usage: history <sensorId>")
				continue
			}
			cmdErr = a.History(ctx, args[0])
		case "predict":
			cmdErr = a.Predict(ctx, firstArg(args))
		case "insights":
			cmdErr = a.Insights(ctx)
		case "recommendations":
			cmdErr = a.Recommendations(ctx, firstArg(args))
		case "tips":
			cmdErr = a.Tips(ctx)
		case "chat":
			cmdErr = a.Chat(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", describeError(cmdErr))
		}
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
