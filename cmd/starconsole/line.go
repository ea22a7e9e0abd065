package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/chzyer/readline"
	"github.com/reusee/starconsole/completions"
	"github.com/reusee/starconsole/consoles"
	"github.com/reusee/starconsole/screens"
	"golang.org/x/term"
)

// lineEditor drives a console from readline. Lines starting with ':' are shell actions.
type lineEditor struct {
	console  *consoles.Console
	instance *readline.Instance
}

func newLineEditor(console *consoles.Console, stdout, stderr *os.File) (*lineEditor, error) {
	instance, err := readline.NewEx(&readline.Config{
		Prompt:       console.PromptString(),
		AutoComplete: lineCompleter{complete: console.Complete},
		Stdout:       stdout,
		Stderr:       stderr,
		// os.Stdout is replaced once the console redirects the process
		FuncIsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(stdout.Fd()))
		},
		FuncGetWidth: func() int {
			width, _, err := term.GetSize(int(stdout.Fd()))
			if err != nil {
				return 80
			}
			return width
		},
	})
	if err != nil {
		return nil, wrap(err)
	}
	return &lineEditor{
		console:  console,
		instance: instance,
	}, nil
}

func (l *lineEditor) Close() error {
	return l.instance.Close()
}

func (l *lineEditor) Run(ctx context.Context, out io.Writer) error {
	fmt.Fprint(out, submitted(l.console, 0))
	for {
		line, err := l.instance.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return wrap(err)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if quit := l.action(out, strings.TrimPrefix(line, ":")); quit {
				return nil
			}
			continue
		}
		l.console.TypeText(line)
		from := l.console.Len()
		l.console.Return(ctx)
		fmt.Fprint(out, submitted(l.console, from))
	}
}

func (l *lineEditor) action(out io.Writer, line string) (quit bool) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	c := l.console
	switch name {
	case "clear":
		c.Clear()
		fmt.Fprint(out, "\x1b[H\x1b[2J")
	case "copy":
		c.SelectAll()
		err := c.Copy()
		c.ClearSelection()
		if err != nil {
			fmt.Fprintln(out, err)
		}
	case "save":
		if arg == "" {
			fmt.Fprintln(out, "usage: :save <file>")
			return
		}
		if err := c.SaveAsFile(arg); err != nil {
			fmt.Fprintln(out, err)
			return
		}
		fmt.Fprintln(out, "saved to", arg)
	case "help":
		fmt.Fprintln(out, c.HelpURL())
		_ = screens.OpenURL(c.HelpURL())
	case "about":
		fmt.Fprintln(out, c.About())
	case "quit":
		return true
	default:
		fmt.Fprintln(out, "actions: :clear :copy :save <file> :help :about :quit")
	}
	return
}

// lineCompleter completes the word before the cursor.
type lineCompleter struct {
	complete completions.Func
}

var _ readline.AutoCompleter = lineCompleter{}

func (l lineCompleter) Do(line []rune, pos int) (ret [][]rune, length int) {
	start := pos
	for start > 0 && isWordRune(line[start-1]) {
		start--
	}
	word := string(line[start:pos])
	if word == "" {
		return nil, 0
	}
	for _, candidate := range completions.Collect(l.complete, word) {
		if !strings.HasPrefix(candidate, word) {
			continue
		}
		ret = append(ret, []rune(strings.TrimPrefix(candidate, word)))
	}
	return ret, pos - start
}

func isWordRune(r rune) bool {
	return r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
