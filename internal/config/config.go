// Package config declares the command-line surface of modelgen. Every flag
// can also be supplied through the environment or a JSON, YAML or TOML
// configuration file.
package config

import (
	"github.com/alecthomas/kong"

	"github.com/Fabric-Examples/composer-sdk-java-example/internal/cmd"
)

// Log controls the process-wide slog logger.
type Log struct {
	Level   string `help:"Log level: trace, debug, info, warn, error" default:"info" enum:"trace,debug,info,warn,error" env:"MODELGEN_LOG_LEVEL"`
	File    string `help:"Write logs to this file instead of stdout/stderr" env:"MODELGEN_LOG_FILE"`
	Format  string `help:"Console log format: auto, text, json" default:"auto" enum:"auto,text,json" env:"MODELGEN_LOG_FORMAT"`
	RawFile string `help:"Echo every generated file verbatim to this file" env:"MODELGEN_LOG_RAW_FILE"`
}

type CLI struct {
	Version kong.VersionFlag `help:"Print the version and exit"`
	Config  string           `help:"Path to a configuration file (json, yaml or toml)" env:"MODELGEN_CONFIG" type:"path"`
	Log     Log              `embed:"" prefix:"log."`

	Generate  cmd.Generate      `cmd:"" help:"Generate Java sources from a business network archive"`
	Engine    cmd.EngineCommand `cmd:"" help:"Generate only the Engine interface"`
	ConfigCmd cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
