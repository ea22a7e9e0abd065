package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reusee/starconsole/consoles"
	"github.com/reusee/starconsole/evals"
	"go.starlark.net/starlark"
)

func newTestConsole() *consoles.Console {
	return consoles.New(evals.NewEvaluator(evals.NewNamespace(), nil), consoles.Options{
		Stdout: new(bytes.Buffer),
		Stderr: new(bytes.Buffer),
	})
}

func TestRunBatch(t *testing.T) {
	console := newTestConsole()
	out := new(bytes.Buffer)
	if err := runBatch(context.Background(), console, strings.NewReader("x = 2\n\nx * 21\nprint('hi')\n"), out); err != nil {
		t.Fatal(err)
	}
	if s := out.String(); s != ">>> x = 2\n>>> x * 21\n42\n>>> print('hi')\nhi\n>>> \n" {
		t.Fatalf("got %q", s)
	}
}

func TestSubmitted(t *testing.T) {
	console := newTestConsole()
	console.TypeText("1+1")
	from := console.Len()
	console.Return(context.Background())
	if s := submitted(console, from); s != "2\n" {
		t.Fatalf("got %q", s)
	}
	console.TypeText("y = 1")
	from = console.Len()
	console.Return(context.Background())
	if s := submitted(console, from); s != "" {
		t.Fatalf("got %q", s)
	}
}

func TestLineCompleter(t *testing.T) {
	console := newTestConsole()
	ns := console.Evaluator().Namespace()
	ns.Set("alpha", starlark.MakeInt(1))
	ns.Set("alphabet", starlark.MakeInt(2))
	completer := lineCompleter{complete: console.Complete}

	for _, c := range []struct {
		line     string
		expected string
		length   int
	}{
		{"alph", `["a" "abet"]`, 4},
		{"1 + alpha", `["" "bet"]`, 5},
		{"", `[]`, 0},
		{"1 + ", `[]`, 0},
		{"zzz", `[]`, 3},
	} {
		line := []rune(c.line)
		ret, length := completer.Do(line, len(line))
		var strs []string
		for _, r := range ret {
			strs = append(strs, string(r))
		}
		if str := fmt.Sprintf("%q", strs); str != c.expected {
			t.Fatalf("%s: got %s", c.line, str)
		}
		if length != c.length {
			t.Fatalf("%s: got %v", c.line, length)
		}
	}
}

func TestLineActions(t *testing.T) {
	console := newTestConsole()
	console.TypeText("1+1")
	console.Return(context.Background())
	editor := &lineEditor{
		console: console,
	}
	out := new(bytes.Buffer)

	path := filepath.Join(t.TempDir(), "out.star")
	if editor.action(out, "save "+path) {
		t.Fatal()
	}
	if !strings.Contains(out.String(), "saved to") {
		t.Fatalf("got %q", out.String())
	}

	out.Reset()
	editor.action(out, "about")
	if !strings.Contains(out.String(), console.About()) {
		t.Fatalf("got %q", out.String())
	}

	out.Reset()
	editor.action(out, "save")
	if !strings.HasPrefix(out.String(), "usage") {
		t.Fatalf("got %q", out.String())
	}

	editor.action(out, "clear")
	if console.Text() != ">>> " {
		t.Fatalf("got %q", console.Text())
	}

	if !editor.action(out, "quit") {
		t.Fatal()
	}
}

func TestHostString(t *testing.T) {
	if s := batchHost.String(); s != "batch" {
		t.Fatalf("got %s", s)
	}
}
