package evals

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

const Filename = "<stdin>"

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}

type Kind uint8

const (
	Expression Kind = iota + 1
	Statements
)

type Result struct {
	Command string
	Kind    Kind
	// Value is the result of an expression, nil for statements
	Value starlark.Value
	// Output is the representation of Value, empty for None
	Output string
	Err    error
}

// Text is what a console shows for the result.
func (r Result) Text() string {
	if r.Err != nil {
		return FormatError(r.Err)
	}
	return r.Output
}

func FormatError(err error) string {
	return fmt.Sprintf("ERROR:\n%s\n", err.Error())
}

// Evaluator runs commands against a Namespace. Commands run one at a time on a single thread.
type Evaluator struct {
	namespace *Namespace
	thread    *starlark.Thread
	stdout    func() io.Writer
}

// NewEvaluator creates an evaluator whose print writes to stdout. A nil stdout means os.Stdout at
// the time of printing, so a redirected os.Stdout is honored.
func NewEvaluator(namespace *Namespace, stdout io.Writer) *Evaluator {
	e := &Evaluator{
		namespace: namespace,
	}
	e.SetStdout(stdout)
	e.thread = &starlark.Thread{
		Name: "console",
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(e.stdout(), msg)
		},
	}
	return e
}

func (e *Evaluator) SetStdout(w io.Writer) {
	if w == nil {
		e.stdout = func() io.Writer {
			return os.Stdout
		}
		return
	}
	e.stdout = func() io.Writer {
		return w
	}
}

func (e *Evaluator) Namespace() *Namespace {
	return e.namespace
}

// Eval evaluates command as an expression, or executes it as statements when it does not parse
// as one. Errors and panics are returned in the Result.
func (e *Evaluator) Eval(ctx context.Context, command string) (ret Result) {
	ret.Command = command
	defer func() {
		if p := recover(); p != nil {
			ret.Err = fmt.Errorf("panic: %v", p)
		}
	}()
	e.thread.SetLocal(contextKey, ctx)

	expr, err := fileOptions.ParseExpr(Filename, command, 0)
	if err == nil {
		ret.Kind = Expression
		value, err := starlark.EvalExprOptions(fileOptions, e.thread, expr, e.namespace.globals)
		if err != nil {
			ret.Err = err
			return
		}
		ret.Value = value
		if value != starlark.None {
			ret.Output = value.String()
		}
		return
	}
	var syntaxErr syntax.Error
	if !errors.As(err, &syntaxErr) {
		ret.Err = err
		return
	}

	ret.Kind = Statements
	ret.Err = e.exec(Filename, command)
	return
}

// ExecFile executes a whole source into the namespace.
func (e *Evaluator) ExecFile(ctx context.Context, name string, src []byte) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	e.thread.SetLocal(contextKey, ctx)
	return e.exec(name, src)
}

func (e *Evaluator) exec(name string, src any) error {
	file, err := fileOptions.Parse(name, src, 0)
	if err != nil {
		return err
	}
	return starlark.ExecREPLChunk(file, e.thread, e.namespace.globals)
}

const contextKey = "context"

// ContextOf returns the context of the evaluation running on thread.
func ContextOf(thread *starlark.Thread) context.Context {
	if ctx, ok := thread.Local(contextKey).(context.Context); ok && ctx != nil {
		return ctx
	}
	return context.Background()
}
