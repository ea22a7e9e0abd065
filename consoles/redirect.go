package consoles

import (
	"bufio"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/reusee/starconsole/transcripts"
)

// Redirector is a stream that copies writes to the original stream and into the transcript.
type Redirector struct {
	console  *Console
	mu       sync.Mutex
	original io.Writer
	tags     transcripts.Tag
}

var _ io.Writer = new(Redirector)

func (r *Redirector) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.original != nil {
		r.mu.Lock()
		// the transcript still gets the text when the original stream is gone
		_, _ = r.original.Write(p)
		r.mu.Unlock()
	}
	r.console.insertOutput(string(p), r.tags)
	return len(p), nil
}

func (c *Console) Stdout() io.Writer {
	return c.stdout
}

func (c *Console) Stderr() io.Writer {
	return c.stderr
}

// insertOutput places stream output above the active prompt when the caret is on the prompt
// line, and at the end otherwise.
func (c *Console) insertOutput(text string, tags transcripts.Tag) {
	c.lock()
	limit := c.limit()
	if c.text.LineOf(c.caret()) == c.text.LineOf(limit) {
		if text[len(text)-1] != '\n' {
			text += "\n"
		}
		c.text.Insert(c.text.LineStart(limit), text, tags)
	} else {
		c.text.Insert(c.text.Len(), text, tags)
	}
	c.seeEnd()
	c.unlock()
	c.changed()
}

// RedirectProcess replaces os.Stdout and os.Stderr with pipes feeding the console redirectors.
// The returned function restores the streams and waits for pending output.
func (c *Console) RedirectProcess() (restore func(), err error) {
	outReader, outWriter, err := os.Pipe()
	if err != nil {
		return nil, wrap(err)
	}
	errReader, errWriter, err := os.Pipe()
	if err != nil {
		outReader.Close()
		outWriter.Close()
		return nil, wrap(err)
	}

	savedOut, savedErr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = outWriter, errWriter

	wg := new(sync.WaitGroup)
	wg.Add(2)
	go pump(wg, outReader, c.stdout)
	go pump(wg, errReader, c.stderr)

	restore = sync.OnceFunc(func() {
		os.Stdout, os.Stderr = savedOut, savedErr
		outWriter.Close()
		errWriter.Close()
		wg.Wait()
		outReader.Close()
		errReader.Close()
	})
	return restore, nil
}

// pump copies whole lines, so a line is never split around the prompt.
func pump(wg *sync.WaitGroup, r io.Reader, w io.Writer) {
	defer wg.Done()
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			_, _ = w.Write([]byte(line))
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				_, _ = io.WriteString(w, err.Error()+"\n")
			}
			return
		}
	}
}
