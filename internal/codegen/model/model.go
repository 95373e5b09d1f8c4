// Package model defines the read-only model graph the generator walks: a
// manager of namespaced model files, their class and enum declarations, and
// the properties those declarations own.
//
// Node is sealed: only the types in this package implement it, so the
// generator's type switches cover a closed set of variants.
package model

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// SystemNamespace is the namespace of framework-internal declarations.
const SystemNamespace = "org.hyperledger.composer.system"

// Node is any value of the model graph.
type Node interface {
	node()
}

// Network wraps a Manager together with the archive metadata it came from.
type Network struct {
	Name        string
	Version     string
	Description string
	Manager     *Manager
}

func (*Network) node() {}

// Manager owns the model files of one graph, one per namespace.
type Manager struct {
	files []*File
	index map[string]*File
}

func (*Manager) node() {}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{index: make(map[string]*File)}
}

// AddFile appends f. Namespaces must be unique within a manager.
func (m *Manager) AddFile(f *File) error {
	if f == nil {
		return errors.New("nil model file")
	}
	if _, dup := m.index[f.Namespace]; dup {
		return errors.Newf("duplicate namespace %q", f.Namespace)
	}
	m.index[f.Namespace] = f
	m.files = append(m.files, f)
	return nil
}

// Files returns the model files in declared order.
func (m *Manager) Files() []*File { return m.files }

// File looks up the model file for a namespace.
func (m *Manager) File(namespace string) (*File, bool) {
	f, ok := m.index[namespace]
	return f, ok
}

// File is the set of declarations of one namespace.
type File struct {
	Namespace string
	Imports   []string

	declarations []Declaration
}

func (*File) node() {}

// NewFile returns an empty model file for namespace.
func NewFile(namespace string, imports ...string) *File {
	return &File{Namespace: namespace, Imports: imports}
}

// Add appends declarations to the file and points them back at it.
func (f *File) Add(decls ...Declaration) {
	for _, d := range decls {
		switch d := d.(type) {
		case *ClassDeclaration:
			d.file = f
		case *EnumDeclaration:
			d.file = f
		}
		f.declarations = append(f.declarations, d)
	}
}

// Declarations returns the file's declarations in declared order.
func (f *File) Declarations() []Declaration { return f.declarations }

// IsSystem reports whether the file holds framework-internal declarations.
func (f *File) IsSystem() bool { return f.Namespace == SystemNamespace }

// Declaration is a class-like or enum type definition.
type Declaration interface {
	Node
	DeclarationName() string
	ModelFile() *File
	SystemOwned() bool
}

// ClassKind is the variant tag of a class declaration, e.g. "AssetDeclaration".
type ClassKind string

const (
	AssetDeclaration       ClassKind = "AssetDeclaration"
	ParticipantDeclaration ClassKind = "ParticipantDeclaration"
	TransactionDeclaration ClassKind = "TransactionDeclaration"
	EventDeclaration       ClassKind = "EventDeclaration"
	ConceptDeclaration     ClassKind = "ConceptDeclaration"
)

// ClassDeclaration is a class-like declaration with fields and relationships.
type ClassDeclaration struct {
	Name            string
	Kind            ClassKind
	Abstract        bool
	System          bool
	SuperType       string // empty when the class has no supertype
	IdentifierField string // empty when no property identifies instances
	Properties      []Property

	file *File
}

func (*ClassDeclaration) node() {}

func (d *ClassDeclaration) DeclarationName() string { return d.Name }
func (d *ClassDeclaration) ModelFile() *File        { return d.file }

// SystemOwned reports whether the declaration is flagged system or lives in
// the system namespace.
func (d *ClassDeclaration) SystemOwned() bool {
	return d.System || (d.file != nil && d.file.IsSystem())
}

// FullyQualifiedName returns namespace.Name.
func (d *ClassDeclaration) FullyQualifiedName() string { return qualify(d.file, d.Name) }

// EnumDeclaration is an enumeration of named values.
type EnumDeclaration struct {
	Name   string
	System bool
	Values []*EnumValue

	file *File
}

func (*EnumDeclaration) node() {}

func (d *EnumDeclaration) DeclarationName() string { return d.Name }
func (d *EnumDeclaration) ModelFile() *File        { return d.file }
func (d *EnumDeclaration) SystemOwned() bool {
	return d.System || (d.file != nil && d.file.IsSystem())
}

// FullyQualifiedName returns namespace.Name.
func (d *EnumDeclaration) FullyQualifiedName() string { return qualify(d.file, d.Name) }

// Property is a named member of a declaration.
type Property interface {
	Node
	PropertyName() string
}

// Field is a property holding a primitive or embedded value.
type Field struct {
	Name     string
	Type     string
	Array    bool
	Optional bool
}

func (*Field) node()                  {}
func (p *Field) PropertyName() string { return p.Name }

// Relationship is a property pointing at another declaration by identity.
type Relationship struct {
	Name     string
	Type     string
	Array    bool
	Optional bool
}

func (*Relationship) node()                  {}
func (p *Relationship) PropertyName() string { return p.Name }

// EnumValue is one entry of an enum declaration.
type EnumValue struct {
	Name string
}

func (*EnumValue) node()                  {}
func (p *EnumValue) PropertyName() string { return p.Name }

// ShortName strips any namespace qualifier from a type name.
func ShortName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func qualify(f *File, name string) string {
	if f == nil || f.Namespace == "" {
		return name
	}
	return f.Namespace + "." + name
}
