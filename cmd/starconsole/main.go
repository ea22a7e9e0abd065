package main

import (
	"context"
	"io"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/starconsole/cmds"
	"github.com/reusee/starconsole/consoleconfigs"
	"github.com/reusee/starconsole/consoles"
	"github.com/reusee/starconsole/logs"
	"github.com/reusee/starconsole/modes"
	"golang.org/x/term"
)

var (
	lineMode = cmds.Switch("-line", "edit one line at a time instead of the full-screen console")
	teeFile  = cmds.Var[string]("-tee", "copy everything written to stdout and stderr to this file")
)

type host uint8

const (
	screenHost host = iota + 1
	lineHost
	batchHost
)

func (h host) String() string {
	switch h {
	case screenHost:
		return "screen"
	case lineHost:
		return "line"
	case batchHost:
		return "batch"
	}
	return "unknown"
}

func chooseHost() host {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return batchHost
	}
	if *lineMode {
		return lineHost
	}
	return screenHost
}

func main() {
	cmds.Execute(os.Args[1:])
	ctx := context.Background()
	host := chooseHost()

	streams := consoles.Streams{
		Stdout: io.Discard,
		Stderr: io.Discard,
	}
	if *teeFile != "" {
		f, err := os.OpenFile(*teeFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		ce(err)
		defer f.Close()
		streams.Stdout = f
		streams.Stderr = f
	}

	defs := []any{
		func() consoles.Streams {
			return streams
		},
	}
	if host == screenHost && !logs.HasLogFile() {
		// the terminal belongs to the screen
		defs = append(defs, func() logs.Writer {
			return io.Discard
		})
	}

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	).Fork(defs...)

	scope.Call(func(
		console *consoles.Console,
		banner consoleconfigs.Banner,
		startup consoleconfigs.StartupFiles,
		logger logs.Logger,
	) {
		stdout, stderr := os.Stdout, os.Stderr

		var line *lineEditor
		if host == lineHost {
			var err error
			line, err = newLineEditor(console, stdout, stderr)
			ce(err)
			defer line.Close()
		}

		restore, err := console.RedirectProcess()
		ce(err)
		defer restore()

		console.Startup(ctx, string(banner), startup)
		logger.InfoContext(ctx, "console started", "host", host, "startup", len(startup))

		switch host {
		case batchHost:
			ce(runBatch(ctx, console, os.Stdin, stdout))
		case lineHost:
			ce(line.Run(ctx, stdout))
		default:
			ce(runScreen(ctx, console, stdout))
		}
	})
}
