package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/reusee/starconsole/consoles"
	"github.com/reusee/starconsole/screens"
)

func runScreen(ctx context.Context, console *consoles.Console, out *os.File) error {
	// styles detect colors on out, os.Stdout being the redirection pipe
	lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(out, termenv.WithColorCache(true)))
	program := tea.NewProgram(
		screens.New(ctx, console),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithOutput(out),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil {
		return wrap(err)
	}
	return nil
}

// runBatch submits every non-blank line of r and writes the final transcript to w.
func runBatch(ctx context.Context, console *consoles.Console, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		console.TypeText(line)
		console.Return(ctx)
	}
	if err := scanner.Err(); err != nil {
		return wrap(err)
	}
	if _, err := fmt.Fprintln(w, console.Text()); err != nil {
		return wrap(err)
	}
	return nil
}

// submitted returns what a submission added to the transcript, without the new prompt.
func submitted(console *consoles.Console, from int) string {
	text := console.TextFrom(from)
	text = strings.TrimPrefix(text, "\n")
	text = strings.TrimSuffix(text, console.PromptString())
	return text
}
