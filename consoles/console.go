package consoles

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"unicode"

	"github.com/reusee/starconsole/completions"
	"github.com/reusee/starconsole/consoleconfigs"
	"github.com/reusee/starconsole/evals"
	"github.com/reusee/starconsole/logs"
	"github.com/reusee/starconsole/syncs"
	"github.com/reusee/starconsole/transcripts"
)

const (
	limitMark  = "limit"
	insertMark = "insert"
)

type State uint8

const (
	AwaitingInput State = iota + 1
	Evaluating
)

func (s State) String() string {
	switch s {
	case AwaitingInput:
		return "awaiting input"
	case Evaluating:
		return "evaluating"
	}
	return "unknown"
}

type Options struct {
	Prompt string
	// Stdout and Stderr receive a copy of everything written to the redirectors.
	// Nil means the process streams at the time New is called.
	Stdout io.Writer
	Stderr io.Writer
	// Complete defaults to a completer over the evaluator namespace
	Complete  completions.Func
	Clipboard Clipboard
	HelpURL   string
	About     string
	Logger    *slog.Logger
	NewSpan   logs.NewSpan
}

// Console is an interactive transcript bound to an evaluator. Every method is safe to call from
// any goroutine, but key actions are meant to come from a single event loop.
type Console struct {
	writeLock syncs.Semaphore
	text      *transcripts.Transcript
	evaluator *evals.Evaluator
	complete  completions.Func
	clipboard Clipboard
	logger    *slog.Logger
	newSpan   logs.NewSpan
	prompt    string
	helpURL   string
	about     string
	history   []string
	state     State
	see       int
	stdout    *Redirector
	stderr    *Redirector
	onChange  func()
}

func New(evaluator *evals.Evaluator, options Options) *Console {
	c := &Console{
		writeLock: syncs.NewSemaphore(1),
		text:      transcripts.New(),
		evaluator: evaluator,
		complete:  options.Complete,
		clipboard: options.Clipboard,
		logger:    options.Logger,
		newSpan:   options.NewSpan,
		prompt:    options.Prompt,
		helpURL:   options.HelpURL,
		about:     options.About,
	}
	if c.prompt == "" {
		c.prompt = consoleconfigs.DefaultPrompt
	}
	if c.helpURL == "" {
		c.helpURL = consoleconfigs.DefaultHelpURL
	}
	if c.about == "" {
		c.about = consoleconfigs.DefaultAbout
	}
	if c.complete == nil {
		c.complete = completions.New(evaluator.Namespace()).Complete
	}
	if c.clipboard == nil {
		c.clipboard = SystemClipboard{}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}

	stdout := options.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := options.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	c.stdout = &Redirector{
		console:  c,
		original: stdout,
	}
	c.stderr = &Redirector{
		console:  c,
		original: stderr,
		tags:     transcripts.Error,
	}
	evaluator.SetStdout(c.stdout)

	c.text.SetMark(limitMark, 0, transcripts.LeftGravity)
	c.text.SetMark(insertMark, 0, transcripts.RightGravity)
	c.Prompt()
	return c
}

func (c *Console) lock() {
	c.writeLock.Lock()
}

func (c *Console) unlock() {
	c.writeLock.Unlock()
}

// OnChange registers fn to be called after the transcript changes. fn must not block.
func (c *Console) OnChange(fn func()) {
	c.lock()
	c.onChange = fn
	c.unlock()
}

func (c *Console) changed() {
	c.lock()
	fn := c.onChange
	c.unlock()
	if fn != nil {
		fn()
	}
}

func (c *Console) Evaluator() *evals.Evaluator {
	return c.evaluator
}

func (c *Console) PromptString() string {
	return c.prompt
}

func (c *Console) State() State {
	c.lock()
	defer c.unlock()
	return c.state
}

// History returns the submitted commands, oldest first.
func (c *Console) History() []string {
	c.lock()
	defer c.unlock()
	return slices.Clone(c.history)
}

func (c *Console) Text() string {
	c.lock()
	defer c.unlock()
	return c.text.Text()
}

func (c *Console) Caret() int {
	c.lock()
	defer c.unlock()
	return c.caret()
}

func (c *Console) Limit() int {
	c.lock()
	defer c.unlock()
	return c.limit()
}

func (c *Console) Len() int {
	c.lock()
	defer c.unlock()
	return c.text.Len()
}

// TextFrom returns the transcript from pos to the end.
func (c *Console) TextFrom(pos int) string {
	c.lock()
	defer c.unlock()
	return c.text.Slice(pos, c.text.Len())
}

// Complete runs the console completer, for hosts that edit lines themselves.
func (c *Console) Complete(text string, state int) (string, bool) {
	return c.complete(text, state)
}

// Input returns the editable line.
func (c *Console) Input() string {
	c.lock()
	defer c.unlock()
	return c.input()
}

func (c *Console) caret() int {
	return c.text.Mark(insertMark)
}

func (c *Console) limit() int {
	return c.text.Mark(limitMark)
}

func (c *Console) input() string {
	return c.text.Slice(c.limit(), c.text.Len())
}

func (c *Console) setCaret(pos int) {
	c.text.MoveMark(insertMark, pos)
	c.see = c.caret()
}

func (c *Console) seeEnd() {
	c.see = c.text.Len()
}

// Prompt appends a prompt on a fresh line and makes everything after it editable.
func (c *Console) Prompt() {
	c.lock()
	c.emitPrompt()
	c.unlock()
	c.changed()
}

func (c *Console) emitPrompt() {
	if c.text.LastLine() != "" {
		c.text.Insert(c.text.Len(), "\n", 0)
	}
	c.text.Insert(c.text.Len(), c.prompt, transcripts.Prompt)
	c.setCaret(c.text.Len())
	c.text.MoveMark(limitMark, c.text.Len())
	c.state = AwaitingInput
	c.seeEnd()
}

// Write appends text at the end of the transcript.
func (c *Console) Write(text string, tags transcripts.Tag) {
	c.lock()
	c.text.Insert(c.text.Len(), text, tags)
	c.seeEnd()
	c.unlock()
	c.changed()
}

// replaceInput replaces the editable line with command and moves the caret to the end.
func (c *Console) replaceInput(command string) {
	c.text.Delete(c.limit(), c.text.Len())
	c.text.Insert(c.text.Len(), command, transcripts.Command)
	c.setCaret(c.text.Len())
	c.seeEnd()
}

// commandAtCaret returns the command span touching the rune before the caret.
func (c *Console) commandAtCaret() string {
	r, ok := c.text.RangeAt(transcripts.Command, c.caret()-1)
	if !ok {
		return ""
	}
	return strings.TrimLeftFunc(c.text.Slice(r.From, r.To), unicode.IsSpace)
}

func (c *Console) evaluate(ctx context.Context, command string) evals.Result {
	if c.newSpan != nil {
		ctx, _ = c.newSpan(ctx, "")
	}
	c.logger.DebugContext(ctx, "evaluate", "command", command)
	result := c.evaluator.Eval(ctx, strings.TrimLeftFunc(command, unicode.IsSpace))
	if result.Err != nil {
		c.logger.InfoContext(ctx, "evaluation error",
			"command", command,
			"error", logs.WrapSpan(ctx, result.Err),
		)
	}
	return result
}
