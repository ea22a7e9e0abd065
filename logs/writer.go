package logs

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/reusee/starconsole/cmds"
)

type Writer io.Writer

var logFileFlag = cmds.Var[string]("-log-file", "append logs to this file instead of stderr")

// Writer is captured before any stream redirection, so logs never land in a console transcript.
// Under test, logs go to the test log.
func (Module) Writer(t *testing.T) Writer {
	if t != nil {
		return testWriter{t}
	}
	if *logFileFlag != "" {
		f, err := os.OpenFile(*logFileFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			return f
		}
	}
	return os.Stderr
}

// HasLogFile reports whether logs go to a file instead of stderr.
func HasLogFile() bool {
	return *logFileFlag != ""
}

type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(bytes.TrimRight(p, "\n")))
	return len(p), nil
}
