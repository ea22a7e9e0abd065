package consoleconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/starconsole/configs"
	"github.com/reusee/starconsole/logs"
)

//go:embed schema.cue
var schema string

var configFileNames = []string{
	"starconsole.cue",
	".starconsole.cue",
}

// ConfigDirs lists where config files are searched, most specific first.
type ConfigDirs []string

func (Module) ConfigDirs() (ret ConfigDirs) {
	if dir, err := os.Getwd(); err == nil {
		ret = append(ret, dir)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		ret = append(ret, dir)
	}
	ret = append(ret, "/etc")
	return
}

func (Module) ConfigsLoader(
	logger logs.Logger,
	dirs ConfigDirs,
) configs.Loader {
	var paths []string
	for _, dir := range dirs {
		for _, name := range configFileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	if len(paths) > 0 {
		logger.Info("config files",
			"paths", paths,
		)
	}
	return configs.NewLoader(paths, schema)
}
