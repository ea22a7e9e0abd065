package consoles

import (
	"io"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/starconsole/consoleconfigs"
	"github.com/reusee/starconsole/evals"
	"github.com/reusee/starconsole/logs"
)

type Module struct {
	dscope.Module
	Configs consoleconfigs.Module
	Evals   evals.Module
}

// Streams are the original process streams the redirectors copy to.
type Streams struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (Module) Streams() Streams {
	return Streams{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func (Module) Clipboard() Clipboard {
	return SystemClipboard{}
}

func (Module) Evaluator(namespace *evals.Namespace) *evals.Evaluator {
	return evals.NewEvaluator(namespace, nil)
}

func (Module) Console(
	evaluator *evals.Evaluator,
	prompt consoleconfigs.Prompt,
	helpURL consoleconfigs.HelpURL,
	about consoleconfigs.AboutText,
	streams Streams,
	clipboard Clipboard,
	logger logs.Logger,
	newSpan logs.NewSpan,
) *Console {
	return New(evaluator, Options{
		Prompt:    string(prompt),
		Stdout:    streams.Stdout,
		Stderr:    streams.Stderr,
		Clipboard: clipboard,
		HelpURL:   string(helpURL),
		About:     string(about),
		Logger:    logger,
		NewSpan:   newSpan,
	})
}
