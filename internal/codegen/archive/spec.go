package archive

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/model"
)

type fileSpec struct {
	Namespace    string     `yaml:"namespace" json:"namespace" toml:"namespace"`
	Imports      []string   `yaml:"imports" json:"imports" toml:"imports"`
	Declarations []declSpec `yaml:"declarations" json:"declarations" toml:"declarations"`
}

type declSpec struct {
	Name         string     `yaml:"name" json:"name" toml:"name"`
	Kind         string     `yaml:"kind" json:"kind" toml:"kind"`
	Abstract     bool       `yaml:"abstract" json:"abstract" toml:"abstract"`
	System       bool       `yaml:"system" json:"system" toml:"system"`
	Extends      string     `yaml:"extends" json:"extends" toml:"extends"`
	IdentifiedBy string     `yaml:"identifiedBy" json:"identifiedBy" toml:"identifiedBy"`
	Properties   []propSpec `yaml:"properties" json:"properties" toml:"properties"`
	Values       []string   `yaml:"values" json:"values" toml:"values"`
}

type propSpec struct {
	Name         string `yaml:"name" json:"name" toml:"name"`
	Type         string `yaml:"type" json:"type" toml:"type"`
	Array        bool   `yaml:"array" json:"array" toml:"array"`
	Optional     bool   `yaml:"optional" json:"optional" toml:"optional"`
	Relationship bool   `yaml:"relationship" json:"relationship" toml:"relationship"`
}

var classKinds = map[string]model.ClassKind{
	"asset":       model.AssetDeclaration,
	"participant": model.ParticipantDeclaration,
	"transaction": model.TransactionDeclaration,
	"event":       model.EventDeclaration,
	"concept":     model.ConceptDeclaration,
}

func (s *fileSpec) build() (*model.File, error) {
	if s.Namespace == "" {
		return nil, errors.New("missing namespace")
	}
	f := model.NewFile(s.Namespace, s.Imports...)
	seen := make(map[string]bool, len(s.Declarations))
	for i := range s.Declarations {
		d := &s.Declarations[i]
		if d.Name == "" {
			return nil, errors.Newf("declaration %d: missing name", i)
		}
		if seen[d.Name] {
			return nil, errors.Newf("duplicate declaration %q", d.Name)
		}
		seen[d.Name] = true

		decl, err := d.build(s)
		if err != nil {
			return nil, errors.Wrapf(err, "declaration %s", d.Name)
		}
		f.Add(decl)
	}
	return f, nil
}

func (d *declSpec) build(file *fileSpec) (model.Declaration, error) {
	kind := strings.ToLower(d.Kind)
	if kind == "enum" {
		if len(d.Properties) > 0 {
			return nil, errors.New("enum declarations take values, not properties")
		}
		e := &model.EnumDeclaration{Name: d.Name, System: d.System}
		for _, v := range d.Values {
			if v == "" {
				return nil, errors.New("empty enum value")
			}
			e.Values = append(e.Values, &model.EnumValue{Name: v})
		}
		return e, nil
	}

	ck, ok := classKinds[kind]
	if !ok {
		return nil, errors.Newf("unknown kind %q", d.Kind)
	}
	if len(d.Values) > 0 {
		return nil, errors.New("only enum declarations take values")
	}
	c := &model.ClassDeclaration{
		Name:            d.Name,
		Kind:            ck,
		Abstract:        d.Abstract,
		System:          d.System,
		SuperType:       resolveType(d.Extends, file),
		IdentifierField: d.IdentifiedBy,
	}

	names := make(map[string]bool, len(d.Properties))
	for _, p := range d.Properties {
		if p.Name == "" || p.Type == "" {
			return nil, errors.Newf("property %q: name and type are required", p.Name)
		}
		if names[p.Name] {
			return nil, errors.Newf("duplicate property %q", p.Name)
		}
		names[p.Name] = true
		if p.Relationship {
			c.Properties = append(c.Properties, &model.Relationship{Name: p.Name, Type: p.Type, Array: p.Array, Optional: p.Optional})
		} else {
			c.Properties = append(c.Properties, &model.Field{Name: p.Name, Type: p.Type, Array: p.Array, Optional: p.Optional})
		}
	}
	if c.IdentifierField != "" && !names[c.IdentifierField] {
		return nil, errors.Newf("identifier field %q is not a property", c.IdentifierField)
	}
	return c, nil
}

// resolveType qualifies an unqualified supertype through the file's imports,
// falling back to the file's own namespace.
func resolveType(name string, file *fileSpec) string {
	if name == "" || strings.Contains(name, ".") {
		return name
	}
	for _, imp := range file.Imports {
		if model.ShortName(imp) == name {
			return imp
		}
	}
	return file.Namespace + "." + name
}
