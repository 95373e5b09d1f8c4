package java

import (
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/common"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/meta"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/writer"
)

const (
	// EnginePackage is the Java package of the generated Engine interface.
	EnginePackage = "org.hyperledger.composer"
	// EngineInterface is the name of the generated interface and its file.
	EngineInterface = "Engine"

	versionConstant = "COMPOSER_VERSION"
	checkedError    = "ComposerException"
	invokeSignature = "(String func, String[] args)"
)

// InterfaceGenerator writes one Java interface with a method per described
// method of supported arity.
type InterfaceGenerator struct {
	logger *slog.Logger
	sink   *writer.Sink
	header common.Header
	md     *meta.Metadata
}

// NewInterfaceGenerator prepares a generator. Nothing is written until Generate.
func NewInterfaceGenerator(logger *slog.Logger, sink *writer.Sink, header *common.Header, md *meta.Metadata) *InterfaceGenerator {
	g := &InterfaceGenerator{
		logger: logger,
		sink:   sink,
		header: common.DefaultHeader(),
		md:     md,
	}
	if header != nil {
		g.header = *header
	}
	return g
}

// Generate writes the interface file.
func (g *InterfaceGenerator) Generate() error {
	pkg, name := g.md.Package, g.md.Interface
	if pkg == "" {
		pkg = EnginePackage
	}
	if name == "" {
		name = EngineInterface
	}

	buf, err := g.sink.Open(common.SourcePath(pkg, name)...)
	if err != nil {
		return err
	}
	path := g.sink.Path()
	if err := g.write(buf, pkg, name); err != nil {
		g.sink.Discard()
		return errors.Wrapf(err, "interface %s", name)
	}
	if err := g.sink.Close(); err != nil {
		return err
	}
	g.logger.Info("Generated interface", "file", path, "methods", len(g.md.Methods))
	return nil
}

func (g *InterfaceGenerator) write(b *writer.Buffer, pkg, name string) error {
	for _, line := range g.header.Lines() {
		b.AppendLine(0, line)
	}
	b.AppendLine(0, "package "+pkg+";")
	b.AppendLine(0, "")
	b.AppendLine(0, "public interface "+name+" {")
	b.AppendLine(1, "String "+versionConstant+" = \""+g.md.Version+"\";")

	for _, m := range g.md.Methods {
		if err := g.writeMethod(b, m); err != nil {
			return errors.Wrapf(err, "method %s", m.Name)
		}
	}

	b.AppendLine(0, "}")
	return nil
}

func (g *InterfaceGenerator) writeMethod(b *writer.Buffer, m meta.Method) error {
	javaName := common.ToCamelCase(m.Name)
	switch m.Arity {
	case 2:
		params, err := javaParams(m.Params)
		if err != nil {
			return err
		}
		b.AppendIndented(1, "String "+javaName+"(")
		if err := b.AppendRaw(params); err != nil {
			return err
		}
		return b.AppendRaw(") throws " + checkedError + ";\n")
	case 4:
		b.AppendLine(1, "String "+javaName+invokeSignature+" throws "+checkedError+";")
	default:
		g.logger.Warn("Skipping method with unsupported arity", "method", m.Name, "arity", m.Arity)
	}
	return nil
}

func javaParams(params []meta.Param) (string, error) {
	out := make([]string, 0, len(params))
	for _, p := range params {
		switch p.Type {
		case meta.ParamString:
			out = append(out, "String "+p.Name)
		case meta.ParamStringList:
			out = append(out, "String[] "+p.Name)
		default:
			return "", errors.Newf("parameter %s has unsupported type %q", p.Name, p.Type)
		}
	}
	return strings.Join(out, ", "), nil
}
