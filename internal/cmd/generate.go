package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/errs"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/generator"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/typemap"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/engine"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/log"
)

// OutputOptions are shared by every command that writes Java sources.
type OutputOptions struct {
	IndentWidth   int    `help:"Indent with this many spaces instead of a tab" default:"0" env:"MODELGEN_INDENT_WIDTH"`
	LicenseHeader string `help:"File whose contents replace the default license header" type:"path" env:"MODELGEN_LICENSE_HEADER"`
	Manifest      bool   `help:"Write a BLAKE2b manifest of the generated files" env:"MODELGEN_MANIFEST"`
}

func (o OutputOptions) indent() string {
	if o.IndentWidth <= 0 {
		return ""
	}
	return strings.Repeat(" ", o.IndentWidth)
}

type Generate struct {
	Archive    string   `arg:"" optional:"" help:"Business network archive (.bna / .zip)" type:"path"`
	Output     string   `short:"o" help:"Output directory" type:"path" env:"MODELGEN_OUTPUT"`
	Engine     bool     `help:"Also generate the Engine interface" default:"true" negatable:"" env:"MODELGEN_ENGINE"`
	SkipSystem bool     `help:"Do not emit declarations from the system namespace" env:"MODELGEN_SKIP_SYSTEM"`
	Escape     []string `help:"Type names rewritten to Object" default:"Transaction,Asset,Participant" env:"MODELGEN_ESCAPE"`
	NoEscape   bool     `help:"Disable type name escaping" env:"MODELGEN_NO_ESCAPE"`

	OutputOptions `embed:""`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return g.Execute(ctx, logger, rawLogger)
}

// Execute validates the arguments and runs one generation.
func (g *Generate) Execute(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	if g.Archive == "" || g.Output == "" {
		return errs.Usage("generate needs an archive and an output directory",
			"usage: modelgen generate <archive.bna> --output <dir>")
	}
	logger.Info("Starting code generation", "archive", g.Archive, "output", g.Output)

	opts := g.options()
	opts.Raw = rawLogger
	gen := generator.New(g.Output, logger, opts)
	var target any
	if g.Engine {
		target = engine.New(nil)
	}
	return gen.GenerateArchive(ctx, g.Archive, target)
}

func (g *Generate) options() generator.Options {
	escapes := g.Escape
	switch {
	case g.NoEscape:
		escapes = []string{}
	case len(escapes) == 0:
		escapes = typemap.DefaultEscapes
	}
	return generator.Options{
		SkipSystem: g.SkipSystem,
		Escapes:    escapes,
		Indent:     g.indent(),
		HeaderFile: g.LicenseHeader,
		Manifest:   g.Manifest,
	}
}
