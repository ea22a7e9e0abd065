package evals

import "github.com/reusee/dscope"

type Module struct {
	dscope.Module
}

func (Module) Namespace() *Namespace {
	return NewNamespace()
}
