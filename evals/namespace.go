package evals

import (
	"slices"

	starlarkjson "go.starlark.net/lib/json"
	starlarkmath "go.starlark.net/lib/math"
	starlarktime "go.starlark.net/lib/time"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// Namespace is the global scope shared by every evaluation of a console.
// It is not safe for concurrent use.
type Namespace struct {
	globals starlark.StringDict
}

func NewNamespace() *Namespace {
	return &Namespace{
		globals: starlark.StringDict{
			"math":   starlarkmath.Module,
			"json":   starlarkjson.Module,
			"time":   starlarktime.Module,
			"struct": starlark.NewBuiltin("struct", starlarkstruct.Make),
			"module": starlark.NewBuiltin("module", starlarkstruct.MakeModule),
		},
	}
}

func (n *Namespace) Globals() starlark.StringDict {
	return n.globals
}

// Lookup resolves name in the namespace, then in the universe of builtins.
func (n *Namespace) Lookup(name string) (starlark.Value, bool) {
	if v, ok := n.globals[name]; ok {
		return v, true
	}
	v, ok := starlark.Universe[name]
	return v, ok
}

func (n *Namespace) Set(name string, value starlark.Value) {
	n.globals[name] = value
}

func (n *Namespace) Delete(name string) {
	delete(n.globals, name)
}

// Bind converts a Go value and binds it to name.
func (n *Namespace) Bind(name string, value any) error {
	v, err := ToValue(value)
	if err != nil {
		return err
	}
	n.globals[name] = v
	return nil
}

// Names returns all resolvable names, sorted and unique.
func (n *Namespace) Names() []string {
	names := make([]string, 0, len(n.globals)+len(starlark.Universe))
	for name := range n.globals {
		names = append(names, name)
	}
	for name := range starlark.Universe {
		if _, ok := n.globals[name]; !ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
