package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/starconsole/consoles"
)

type Module struct {
	dscope.Module
	Consoles consoles.Module
}
