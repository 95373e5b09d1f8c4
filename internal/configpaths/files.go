// Package configpaths locates modelgen configuration files.
//
// Lookup order, first match per key wins in kong: an explicit --config path,
// the working directory, the user config directory, then /etc/modelgen on
// unix systems.
package configpaths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/cockroachdb/errors"
)

// DirEnv overrides the user configuration directory.
const DirEnv = "MODELGEN_CONFIG_DIR"

const systemDir = "/etc/modelgen"

// baseNames are the file stems probed in every directory, in priority order.
var baseNames = []string{"modelgen", "config", "generate", "engine"}

// DefaultConfigDir returns $MODELGEN_CONFIG_DIR when set, otherwise the
// modelgen directory below the platform user config directory.
func DefaultConfigDir() (string, error) {
	if dir := os.Getenv(DirEnv); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", errors.WithHint(errors.Wrap(err, "resolve user config directory"),
			"set "+DirEnv+" to choose a directory")
	}
	return filepath.Join(base, "modelgen"), nil
}

// DefaultNamedConfigPath returns the user-level config file for baseName
// (e.g. "generate") in the given format.
func DefaultNamedConfigPath(baseName, format string) (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, baseName+"."+extension(format)), nil
}

// EnsureDir ensures the directory for a given file path exists.
func EnsureDir(filePath string) error {
	dir := filepath.Dir(filePath)
	return errors.Wrapf(os.MkdirAll(dir, 0o755), "create %s", dir)
}

// ConfigCandidatePaths builds candidate paths for config files per format.
// If userPath is provided, it is prioritized and routed to the matching loader by extension.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	route := func(p string) {
		switch filepath.Ext(p) {
		case ".yaml", ".yml":
			yamlPaths = append(yamlPaths, p)
		case ".toml":
			tomlPaths = append(tomlPaths, p)
		default:
			jsonPaths = append(jsonPaths, p)
		}
	}

	if userPath != "" {
		route(userPath)
	}
	for _, dir := range searchDirs() {
		for _, base := range baseNames {
			for _, ext := range []string{".json", ".yaml", ".yml", ".toml"} {
				route(filepath.Join(dir, base+ext))
			}
		}
	}
	return
}

func searchDirs() []string {
	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	if dir, err := DefaultConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	if runtime.GOOS != "windows" {
		dirs = append(dirs, systemDir)
	}
	return dirs
}

func extension(format string) string {
	switch format {
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return "json"
	}
}
