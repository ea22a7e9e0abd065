package consoleconfigs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/starconsole/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
