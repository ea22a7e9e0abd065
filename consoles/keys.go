package consoles

import (
	"context"
	"strings"

	"github.com/reusee/starconsole/completions"
	"github.com/reusee/starconsole/transcripts"
)

// TypeText inserts s at the caret. A selection lying in the editable line is replaced.
// Text typed into history extends the span it is typed into, prompts excluded.
func (c *Console) TypeText(s string) {
	if s == "" {
		return
	}
	c.lock()
	if sel, ok := c.text.Selection(); ok && sel.From >= c.limit() {
		c.text.Delete(sel.From, sel.To)
		c.setCaret(sel.From)
	}
	c.text.ClearSelection()
	caret := c.caret()
	var tags transcripts.Tag
	if caret < c.limit() {
		tags = c.text.TagsAt(caret-1) &^ transcripts.Prompt
	}
	c.text.Insert(caret, s, tags)
	c.see = c.caret()
	c.unlock()
	c.changed()
}

// deleteEditableSelection deletes the selection if it lies entirely in the editable line.
func (c *Console) deleteEditableSelection() bool {
	sel, ok := c.text.Selection()
	if !ok || sel.From < c.limit() {
		return false
	}
	c.text.Delete(sel.From, sel.To)
	c.setCaret(sel.From)
	return true
}

// Backspace deletes the rune before the caret. Nothing at or before the limit is ever removed.
func (c *Console) Backspace() {
	c.lock()
	if !c.deleteEditableSelection() {
		if caret := c.caret(); caret > c.limit() {
			c.text.Delete(caret-1, caret)
			c.see = c.caret()
		}
	}
	c.unlock()
	c.changed()
}

// Delete deletes the rune after the caret, only when the caret is past the limit.
func (c *Console) Delete() {
	c.lock()
	if !c.deleteEditableSelection() {
		if caret := c.caret(); caret > c.limit() && caret < c.text.Len() {
			c.text.Delete(caret, caret+1)
			c.see = c.caret()
		}
	}
	c.unlock()
	c.changed()
}

// Return submits the editable line. With the caret in history, it copies the command under the
// caret into the editable line instead.
func (c *Console) Return(ctx context.Context) {
	c.lock()
	if c.caret() < c.limit() {
		if command := c.commandAtCaret(); command != "" {
			c.replaceInput(command)
		}
		c.unlock()
		c.changed()
		return
	}

	limit := c.limit()
	command := c.input()
	c.text.ClearSelection()
	c.setCaret(c.text.Len())
	c.text.Insert(c.text.Len(), "\n", 0)
	c.text.TagAdd(transcripts.Command, limit, limit+len([]rune(command)))
	c.history = append(c.history, command)
	c.state = Evaluating
	c.seeEnd()
	c.unlock()
	c.changed()

	// unlocked: evaluated code may write to the redirected streams
	result := c.evaluate(ctx, command)

	c.lock()
	if result.Err != nil {
		c.text.Insert(c.text.Len(), result.Text(), transcripts.Error)
	} else if result.Output != "" {
		c.text.Insert(c.text.Len(), result.Output, transcripts.Output)
	}
	c.emitPrompt()
	c.unlock()
	c.changed()
}

// Up moves the caret to the end of the first line of the nearest command starting on an
// earlier line, so repeated presses walk back through the commands.
func (c *Console) Up() {
	c.lock()
	if r, ok := c.text.TagPrevRange(transcripts.Command, c.text.LineStart(c.caret())); ok {
		c.setCaret(c.text.LineEnd(r.From))
	}
	c.unlock()
	c.changed()
}

// Tab completes the editable line. A single candidate replaces the line; several are listed
// below it, and the line is restored under a new prompt.
func (c *Console) Tab() {
	c.lock()
	if c.caret() < c.limit() {
		c.unlock()
		return
	}
	command := strings.TrimSpace(c.input())
	candidates := completions.Collect(c.complete, command)
	switch len(candidates) {
	case 0:
	case 1:
		c.replaceInput(candidates[0])
	default:
		c.printBlock(completions.Display(candidates))
		if command != "" {
			c.replaceInput(command)
		}
	}
	c.unlock()
	c.changed()
}

// printBlock closes the editable line as a command, writes text below it and prompts again.
func (c *Console) printBlock(text string) {
	c.text.TagAdd(transcripts.Command, c.limit(), c.text.Len())
	c.text.Insert(c.text.Len(), "\n", 0)
	c.text.Insert(c.text.Len(), text, 0)
	c.emitPrompt()
}
