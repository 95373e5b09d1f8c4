// Package typemap translates model type names and member semantics into Java
// types and composer annotations.
package typemap

import (
	"fmt"
	"strings"

	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/model"
)

// ObjectType is the placeholder substituted for escaped type names.
const ObjectType = "Object"

// AnnotationPackage is the Java package holding the generated markers.
const AnnotationPackage = "org.hyperledger.composer.annotation"

// ArraySuffix is appended to the mapped type of array properties.
const ArraySuffix = "[]"

// DefaultEscapes are the type names rewritten to ObjectType unless configured otherwise.
var DefaultEscapes = []string{"Transaction", "Asset", "Participant"}

var primitives = map[string]string{
	"DateTime": "java.util.Date",
	"Boolean":  "boolean",
	"String":   "String",
	"Double":   "double",
	"Long":     "long",
	"Integer":  "int",
}

// Mapper resolves model type names to Java type names.
type Mapper struct {
	escapes map[string]struct{}
}

// New builds a Mapper escaping the given names. A nil slice selects
// DefaultEscapes; an empty non-nil slice disables escaping.
func New(escapes []string) *Mapper {
	if escapes == nil {
		escapes = DefaultEscapes
	}
	m := &Mapper{escapes: make(map[string]struct{}, len(escapes)*2)}
	for _, name := range escapes {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		m.escapes[name] = struct{}{}
		if !strings.Contains(name, ".") {
			m.escapes[model.SystemNamespace+"."+name] = struct{}{}
		}
	}
	return m
}

// IsEscaped reports whether name, fully qualified or short, is on the denylist.
func (m *Mapper) IsEscaped(name string) bool {
	if _, ok := m.escapes[name]; ok {
		return true
	}
	_, ok := m.escapes[model.ShortName(name)]
	return ok
}

// Escape returns ObjectType for denylisted names and name otherwise.
func (m *Mapper) Escape(name string) string {
	if m.IsEscaped(name) {
		return ObjectType
	}
	return name
}

// MapType resolves a declared type name. Primitives map through the fixed
// table; everything else is a reference type subject to Escape.
func (m *Mapper) MapType(name string) string {
	if mapped, ok := primitives[name]; ok {
		return mapped
	}
	return m.Escape(name)
}

// IsPrimitive reports whether name is one of the model primitives.
func IsPrimitive(name string) bool {
	_, ok := primitives[name]
	return ok
}

// KindName strips the "Declaration" suffix from a class variant tag.
func KindName(kind model.ClassKind) string {
	return strings.TrimSuffix(string(kind), "Declaration")
}

// EnumMarker is the annotation placed on enum declarations.
func EnumMarker() string {
	return "@" + AnnotationPackage + ".Enum"
}

// ClassMarker is the annotation naming a class declaration's kind.
func ClassMarker(kind model.ClassKind) string {
	return "@" + AnnotationPackage + "." + KindName(kind)
}

// FieldMarker is the annotation placed on field members. Fields are always embedded.
func FieldMarker(primary, optional bool) string {
	return fmt.Sprintf("@%s.DataField(primary=%t, optional=%t, embedded=true)", AnnotationPackage, primary, optional)
}

// RelationshipMarker is the annotation placed on relationship members.
func RelationshipMarker(optional bool) string {
	return fmt.Sprintf("@%s.Pointer(optional=%t)", AnnotationPackage, optional)
}
