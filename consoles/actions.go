package consoles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/reusee/e5"
)

var wrap = e5.Wrap.With(e5.WrapStacktrace)

// Clear erases the transcript and prompts again. History is kept.
func (c *Console) Clear() {
	c.lock()
	c.text.Reset()
	c.emitPrompt()
	c.unlock()
	c.changed()
}

// SelectAll selects the whole transcript and moves the caret to the start.
func (c *Console) SelectAll() {
	c.lock()
	c.text.SetSelection(0, c.text.Len())
	c.text.MoveMark(insertMark, 0)
	c.see = 0
	c.unlock()
	c.changed()
}

// Copy puts the selected text on the clipboard. Without a selection it does nothing.
func (c *Console) Copy() error {
	text := c.SelectedText()
	if text == "" {
		return nil
	}
	if err := c.clipboard.WriteAll(text); err != nil {
		return wrap(fmt.Errorf("copy to clipboard: %w", err))
	}
	return nil
}

// Commands returns the lines holding a prompt, with the prompt removed. Lines that are empty
// after removal are skipped.
func (c *Console) Commands() (ret []string) {
	c.lock()
	lines := c.text.Lines()
	c.unlock()
	for _, line := range lines {
		if !strings.Contains(line, c.prompt) {
			continue
		}
		command := strings.ReplaceAll(line, c.prompt, "")
		if strings.TrimSpace(command) == "" {
			continue
		}
		ret = append(ret, command)
	}
	return
}

// SaveAs writes the entered commands as a script, one per line.
func (c *Console) SaveAs(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, command := range c.Commands() {
		if _, err := bw.WriteString(command + "\n"); err != nil {
			return wrap(err)
		}
	}
	if err := bw.Flush(); err != nil {
		return wrap(err)
	}
	return nil
}

func (c *Console) SaveAsFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return wrap(err)
	}
	defer func() {
		if e := f.Close(); e != nil && err == nil {
			err = wrap(e)
		}
	}()
	if err := c.SaveAs(f); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	c.logger.Info("saved commands", "path", path)
	return nil
}

func (c *Console) HelpURL() string {
	return c.helpURL
}

func (c *Console) About() string {
	return c.about
}
