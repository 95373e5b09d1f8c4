package cmd

import (
	"log/slog"

	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/errs"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/generator"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/engine"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/log"
)

// EngineCommand writes only the Engine interface.
type EngineCommand struct {
	Output string `short:"o" help:"Output directory" type:"path" env:"MODELGEN_OUTPUT"`

	OutputOptions `embed:""`
}

// Run is called by Kong when the engine command is executed.
func (e *EngineCommand) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	if e.Output == "" {
		return errs.Usage("engine needs an output directory", "usage: modelgen engine --output <dir>")
	}
	gen := generator.New(e.Output, logger, generator.Options{
		Indent:     e.indent(),
		HeaderFile: e.LicenseHeader,
		Manifest:   e.Manifest,
		Raw:        rawLogger,
	})
	return gen.Generate(nil, engine.New(nil))
}
