package consoleconfigs

import (
	"path/filepath"
	"slices"

	"github.com/reusee/starconsole/cmds"
	"github.com/reusee/starconsole/configs"
	"github.com/reusee/starconsole/vars"
)

const (
	DefaultPrompt  = ">>> "
	DefaultHelpURL = "https://github.com/CadworkMontreal/PythonConsole"
	DefaultAbout   = "Starlark Console\nAn interactive console for Starlark expressions and statements."
)

var (
	promptFlag = cmds.Var[string]("-prompt", "prompt string")
	bannerFlag = cmds.Var[string]("-banner", "text shown before the first prompt")
)

var startupFlag []string

func init() {
	cmds.Define("-startup", cmds.Func(func(pattern string) {
		paths, err := filepath.Glob(pattern)
		if err != nil || len(paths) == 0 {
			// kept as is, so a missing file is reported by the console
			startupFlag = append(startupFlag, pattern)
		} else {
			startupFlag = append(startupFlag, paths...)
		}
	}).Desc("script executed before the first prompt, glob patterns expanded, repeatable"))
}

type Prompt string

func (Module) Prompt(loader configs.Loader) Prompt {
	return Prompt(vars.FirstNonZero(
		*promptFlag,
		configs.First[string](loader, "prompt"),
		DefaultPrompt,
	))
}

type Banner string

func (Module) Banner(loader configs.Loader) Banner {
	return Banner(vars.FirstNonZero(
		*bannerFlag,
		configs.First[string](loader, "banner"),
	))
}

type HelpURL string

func (Module) HelpURL(loader configs.Loader) HelpURL {
	return HelpURL(vars.FirstNonZero(
		configs.First[string](loader, "help_url"),
		DefaultHelpURL,
	))
}

type AboutText string

func (Module) AboutText(loader configs.Loader) AboutText {
	return AboutText(vars.FirstNonZero(
		configs.First[string](loader, "about"),
		DefaultAbout,
	))
}

// StartupFiles are executed in order: config files from the least specific, then flags.
type StartupFiles []string

func (Module) StartupFiles(loader configs.Loader) StartupFiles {
	var lists [][]string
	for list := range configs.All[[]string](loader, "startup") {
		lists = append(lists, list)
	}
	var ret StartupFiles
	for _, list := range slices.Backward(lists) {
		ret = append(ret, list...)
	}
	ret = append(ret, startupFlag...)
	return ret
}
