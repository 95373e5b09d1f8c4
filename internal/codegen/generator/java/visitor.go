// Package java emits Java sources for a model graph: one class or enum per
// declaration, annotated with composer markers, plus the Engine interface.
package java

import (
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/common"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/errs"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/model"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/typemap"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/writer"
)

// Options tunes which declarations are emitted and how files are framed.
type Options struct {
	// SkipSystem suppresses declarations owned by the system namespace.
	SkipSystem bool
	// Mapper resolves member and supertype names. Nil uses the default denylist.
	Mapper *typemap.Mapper
	// Header is written at the top of every file. The zero value uses common.DefaultHeader.
	Header *common.Header
}

// Visitor walks a model graph and writes one Java file per declaration
// through a writer.Sink.
type Visitor struct {
	logger *slog.Logger
	sink   *writer.Sink
	mapper *typemap.Mapper
	header common.Header
	skip   bool
}

// NewVisitor returns a visitor writing through sink.
func NewVisitor(logger *slog.Logger, sink *writer.Sink, opts Options) *Visitor {
	v := &Visitor{
		logger: logger,
		sink:   sink,
		mapper: opts.Mapper,
		header: common.DefaultHeader(),
		skip:   opts.SkipSystem,
	}
	if v.mapper == nil {
		v.mapper = typemap.New(nil)
	}
	if opts.Header != nil {
		v.header = *opts.Header
	}
	return v
}

// Visit dispatches on the node's variant. Networks, managers, files and
// declarations are accepted; properties only make sense inside their
// declaration and anything else is an unrecognized node.
func (v *Visitor) Visit(n model.Node) error {
	if isNilNode(n) {
		return errs.UnrecognizedNode(n)
	}
	switch n := n.(type) {
	case *model.Network:
		return v.visitNetwork(n)
	case *model.Manager:
		return v.visitManager(n)
	case *model.File:
		return v.visitFile(n)
	case *model.ClassDeclaration:
		return v.visitDeclaration(n, v.writeClass)
	case *model.EnumDeclaration:
		return v.visitDeclaration(n, v.writeEnum)
	default:
		return errs.UnrecognizedNode(n)
	}
}

// isNilNode reports typed nil pointers, which carry no variant data.
func isNilNode(n model.Node) bool {
	switch n := n.(type) {
	case *model.Network:
		return n == nil
	case *model.Manager:
		return n == nil
	case *model.File:
		return n == nil
	case *model.ClassDeclaration:
		return n == nil
	case *model.EnumDeclaration:
		return n == nil
	case *model.Field:
		return n == nil
	case *model.Relationship:
		return n == nil
	case *model.EnumValue:
		return n == nil
	}
	return false
}

func (v *Visitor) visitNetwork(n *model.Network) error {
	v.logger.Info("Generating network", "name", n.Name, "version", n.Version)
	if n.Manager == nil {
		return errors.Wrapf(errs.UnrecognizedNode(n.Manager), "network %s has no model manager", n.Name)
	}
	return v.Visit(n.Manager)
}

func (v *Visitor) visitManager(m *model.Manager) error {
	for _, f := range m.Files() {
		if err := v.Visit(f); err != nil {
			return err
		}
	}
	return nil
}

func (v *Visitor) visitFile(f *model.File) error {
	v.logger.Debug("Visiting model file", "namespace", f.Namespace, "declarations", len(f.Declarations()))
	for _, d := range f.Declarations() {
		if err := v.Visit(d); err != nil {
			return errors.Wrapf(err, "namespace %s", f.Namespace)
		}
	}
	return nil
}

// Skip reports whether d produces no file, and why.
func (v *Visitor) Skip(d model.Declaration) (bool, string) {
	if v.skip && d.SystemOwned() {
		return true, "system declaration"
	}
	if v.mapper.Escape(d.DeclarationName()) == typemap.ObjectType {
		return true, "escaped name"
	}
	return false, ""
}

func (v *Visitor) visitDeclaration(d model.Declaration, body func(*writer.Buffer, *model.File, model.Declaration) error) error {
	if skip, reason := v.Skip(d); skip {
		v.logger.Debug("Skipping declaration", "name", d.DeclarationName(), "reason", reason)
		return nil
	}
	f := d.ModelFile()
	if f == nil {
		return errors.Newf("declaration %s has no model file", d.DeclarationName())
	}

	buf, err := v.sink.Open(common.SourcePath(f.Namespace, d.DeclarationName())...)
	if err != nil {
		return err
	}
	path := v.sink.Path()
	v.writePreamble(buf, f)
	if err := body(buf, f, d); err != nil {
		v.sink.Discard()
		return errors.Wrapf(err, "declaration %s", d.DeclarationName())
	}
	if err := v.sink.Close(); err != nil {
		return err
	}
	v.logger.Info("Generated declaration", "file", path, "lines", buf.LineCount())
	return nil
}

// writePreamble puts the header and the package statement in the buffer's
// before region, ahead of whatever the body writes.
func (v *Visitor) writePreamble(b *writer.Buffer, f *model.File) {
	for _, line := range v.header.Lines() {
		b.AppendBefore(0, line)
	}
	if f.Namespace != "" {
		b.AppendBefore(0, "package "+f.Namespace+";")
	}
	b.AppendBefore(0, "")
}

func (v *Visitor) writeClass(b *writer.Buffer, f *model.File, d model.Declaration) error {
	c, ok := d.(*model.ClassDeclaration)
	if !ok {
		return errs.UnrecognizedNode(d)
	}

	imports := 0
	for _, imp := range f.Imports {
		if strings.Contains(imp, model.SystemNamespace) {
			continue
		}
		b.AppendLine(0, "import "+imp+";")
		imports++
	}
	if imports > 0 {
		b.AppendLine(0, "")
	}

	b.AppendLine(0, typemap.ClassMarker(c.Kind))
	header := "public "
	if c.Abstract {
		header += "abstract "
	}
	header += "class " + c.Name
	if c.SuperType != "" {
		header += " extends " + v.mapper.Escape(c.SuperType)
	}
	b.AppendLine(0, header+" {")

	for _, p := range c.Properties {
		primary := c.IdentifierField != "" && p.PropertyName() == c.IdentifierField
		if err := v.writeProperty(b, p, primary); err != nil {
			return err
		}
	}
	b.AppendLine(0, "}")
	return nil
}

// writeProperty emits one member. primary is true only for the property
// named by the declaration's identifier field.
func (v *Visitor) writeProperty(b *writer.Buffer, p model.Property, primary bool) error {
	if isNilNode(p) {
		return errs.UnrecognizedNode(p)
	}
	switch p := p.(type) {
	case *model.Field:
		b.AppendLine(1, typemap.FieldMarker(primary, p.Optional))
		b.AppendLine(1, "public "+v.memberType(p.Type, p.Array)+" "+p.Name+";")
	case *model.Relationship:
		b.AppendLine(1, typemap.RelationshipMarker(p.Optional))
		b.AppendLine(1, "public "+v.memberType(p.Type, p.Array)+" "+p.Name+";")
	default:
		return errs.UnrecognizedNode(p)
	}
	return nil
}

func (v *Visitor) memberType(name string, array bool) string {
	t := v.mapper.MapType(name)
	if array {
		t += typemap.ArraySuffix
	}
	return t
}

func (v *Visitor) writeEnum(b *writer.Buffer, f *model.File, d model.Declaration) error {
	e, ok := d.(*model.EnumDeclaration)
	if !ok {
		return errs.UnrecognizedNode(d)
	}

	b.AppendLine(0, typemap.EnumMarker())
	b.AppendLine(0, "public enum "+e.Name+" {")
	for _, val := range e.Values {
		if val == nil {
			return errs.UnrecognizedNode(val)
		}
		b.AppendLine(1, val.Name+",")
	}
	b.AppendLine(0, "}")
	return nil
}
