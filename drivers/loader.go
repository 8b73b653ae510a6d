package drivers

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/reusee/taicc/configs"
	"github.com/reusee/taicc/logs"
	"github.com/reusee/taicc/modes"
)

//go:embed schema.cue
var schema string

// ConfigDirs lists directories searched for config files, in order of precedence.
type ConfigDirs []string

func (Module) ConfigDirs(
	mode modes.Mode,
) (ret ConfigDirs) {
	if mode == modes.ModeDevelopment {
		// tests provide their own
		return nil
	}

	// working directory
	if dir, err := os.Getwd(); err == nil {
		ret = append(ret, dir)
	}

	// user config dir
	if dir, err := os.UserConfigDir(); err == nil {
		ret = append(ret, dir)
	}

	// system wide dir
	ret = append(ret, "/etc")

	return
}

var configFileNames = []string{
	"taicc.cue",
	".taicc.cue",
}

func (Module) ConfigsLoader(
	dirs ConfigDirs,
	logger logs.Logger,
) configs.Loader {

	var paths []string
	for _, dir := range dirs {
		for _, filename := range configFileNames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	if len(paths) > 0 {
		logger.Info("config file",
			"paths", paths,
		)
	}

	return configs.NewLoader(paths, schema)
}

// CheckConfig reports a config file that cannot be read or does not match the schema.
// Option providers panic on such files, so callers check first.
type CheckConfig func() error

func (Module) CheckConfig(
	loader configs.Loader,
) CheckConfig {
	return func() error {
		if err := loader.Err(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		return nil
	}
}
