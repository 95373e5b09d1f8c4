package generator

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/archive"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/common"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/generator/java"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/meta"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/model"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/scanner"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/typemap"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/writer"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/log"
)

// Options configures one generation run.
type Options struct {
	SkipSystem bool     // suppress system-owned declarations
	Escapes    []string // names rewritten to Object; nil selects typemap.DefaultEscapes
	Indent     string   // indentation unit; empty selects a tab
	HeaderFile string   // optional replacement for the license header
	Manifest   bool     // write writer.ManifestName after the run

	Raw log.RawLogger // optional echo of every generated file
}

type Generator struct {
	outputDir string
	logger    *slog.Logger
	opts      Options
}

func New(outputDir string, logger *slog.Logger, opts Options) *Generator {
	return &Generator{
		outputDir: outputDir,
		logger:    logger,
		opts:      opts,
	}
}

// GenerateArchive decodes the archive at archivePath and generates its
// declarations. When engineTarget is non-nil the Engine interface is
// generated from it in the same run.
func (g *Generator) GenerateArchive(ctx context.Context, archivePath string, engineTarget any) error {
	g.logger.Info("Loading archive", "path", archivePath)
	network, err := archive.Load(ctx, archivePath)
	if err != nil {
		return err
	}
	g.logger.Info("Loaded archive",
		"name", network.Name,
		"version", network.Version,
		"namespaces", len(network.Manager.Files()))
	return g.Generate(network, engineTarget)
}

// Generate writes one file per emitted declaration of root and, if
// engineTarget is non-nil, the Engine interface. root may be nil.
func (g *Generator) Generate(root model.Node, engineTarget any) error {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return errors.Wrap(err, "create output directory")
	}
	header, err := common.LoadHeader(g.logger, g.opts.HeaderFile)
	if err != nil {
		return err
	}
	sink := writer.NewSink(g.outputDir, g.opts.Indent)
	if g.opts.Raw != nil {
		sink.SetRawLogger(g.opts.Raw)
	}

	if root != nil {
		v := java.NewVisitor(g.logger, sink, java.Options{
			SkipSystem: g.opts.SkipSystem,
			Mapper:     typemap.New(g.opts.Escapes),
			Header:     &header,
		})
		if err := v.Visit(root); err != nil {
			return errors.Wrap(err, "generate declarations")
		}
	}

	if engineTarget != nil {
		md, err := g.ScanEngine(engineTarget)
		if err != nil {
			return err
		}
		if err := java.NewInterfaceGenerator(g.logger, sink, &header, md).Generate(); err != nil {
			return errors.Wrap(err, "generate engine interface")
		}
	}

	if g.opts.Manifest {
		if err := sink.WriteManifest(); err != nil {
			return err
		}
		g.logger.Debug("Wrote manifest", "file", writer.ManifestName)
	}

	g.logger.Info("Code generation complete", "output", g.outputDir, "files", len(sink.Files()))
	return nil
}

// ScanEngine describes target's method set for the Engine interface.
func (g *Generator) ScanEngine(target any) (*meta.Metadata, error) {
	version, err := common.GetVersion()
	if err != nil {
		return nil, errors.Wrap(err, "get version")
	}

	g.logger.Debug("Scanning engine methods", "type", fmt.Sprintf("%T", target))
	methods, err := scanner.ScanMethods(target)
	if err != nil {
		return nil, errors.Wrap(err, "scan engine methods")
	}
	g.logger.Info("Found engine methods", "count", len(methods))

	return &meta.Metadata{
		Package:   java.EnginePackage,
		Interface: java.EngineInterface,
		Version:   version,
		Methods:   methods,
	}, nil
}
