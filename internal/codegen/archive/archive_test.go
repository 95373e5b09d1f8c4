package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/errs"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/model"
)

const testPackageJSON = `{"name":"vehicle-network","version":"0.1.0","description":"cars"}`

const vehicleYAML = `
namespace: org.acme.vehicle
imports:
  - org.acme.base.Owner
declarations:
  - name: Vehicle
    kind: asset
    identifiedBy: vin
    properties:
      - {name: vin, type: String}
      - {name: owner, type: Owner, relationship: true, optional: true}
      - {name: built, type: DateTime}
  - name: Car
    kind: asset
    extends: Vehicle
  - name: Color
    kind: enum
    values: [RED, GREEN]
`

const baseJSON = `{
  "namespace": "org.acme.base",
  "declarations": [
    {"name": "Owner", "kind": "participant", "identifiedBy": "id",
     "properties": [{"name": "id", "type": "String"}, {"name": "tags", "type": "String", "array": true}]}
  ]
}`

const tradeTOML = `
namespace = "org.acme.trade"

[[declarations]]
name = "Sell"
kind = "transaction"
extends = "org.hyperledger.composer.system.Transaction"

  [[declarations.properties]]
  name = "price"
  type = "Double"
`

func buildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDecodeArchive(t *testing.T) {
	data := buildZip(t, map[string]string{
		"package.json":            testPackageJSON,
		"models/vehicle.yaml":     vehicleYAML,
		"models/base.json":        baseJSON,
		"models/trade.toml":       tradeTOML,
		"models/README.md":        "ignored",
		"lib/logic.js":            "ignored",
		"models/nested/empty.yml": "namespace: org.acme.empty\n",
	})

	n, err := Decode(context.Background(), "test.bna", data)
	require.NoError(t, err)
	assert.Equal(t, "vehicle-network", n.Name)
	assert.Equal(t, "0.1.0", n.Version)
	assert.Equal(t, "cars", n.Description)

	files := n.Manager.Files()
	require.Len(t, files, 4)
	// Entries are processed in name order.
	assert.Equal(t, "org.acme.base", files[0].Namespace)
	assert.Equal(t, "org.acme.empty", files[1].Namespace)
	assert.Equal(t, "org.acme.trade", files[2].Namespace)
	assert.Equal(t, "org.acme.vehicle", files[3].Namespace)

	vehicle, ok := n.Manager.File("org.acme.vehicle")
	require.True(t, ok)
	assert.Equal(t, []string{"org.acme.base.Owner"}, vehicle.Imports)
	decls := vehicle.Declarations()
	require.Len(t, decls, 3)

	v := decls[0].(*model.ClassDeclaration)
	assert.Equal(t, model.AssetDeclaration, v.Kind)
	assert.Equal(t, "vin", v.IdentifierField)
	require.Len(t, v.Properties, 3)
	assert.IsType(t, &model.Field{}, v.Properties[0])
	rel := v.Properties[1].(*model.Relationship)
	assert.Equal(t, "Owner", rel.Type)
	assert.True(t, rel.Optional)

	car := decls[1].(*model.ClassDeclaration)
	assert.Equal(t, "org.acme.vehicle.Vehicle", car.SuperType)

	color := decls[2].(*model.EnumDeclaration)
	require.Len(t, color.Values, 2)
	assert.Equal(t, "GREEN", color.Values[1].Name)

	base, _ := n.Manager.File("org.acme.base")
	owner := base.Declarations()[0].(*model.ClassDeclaration)
	assert.Equal(t, model.ParticipantDeclaration, owner.Kind)
	assert.True(t, owner.Properties[1].(*model.Field).Array)

	trade, _ := n.Manager.File("org.acme.trade")
	sell := trade.Declarations()[0].(*model.ClassDeclaration)
	assert.Equal(t, model.TransactionDeclaration, sell.Kind)
	assert.Equal(t, "org.hyperledger.composer.system.Transaction", sell.SuperType)
	assert.Equal(t, "Double", sell.Properties[0].(*model.Field).Type)
}

func TestDecodeFailures(t *testing.T) {
	tests := []struct {
		name    string
		data    func(t *testing.T) []byte
		wantMsg string
	}{
		{
			name:    "not a zip",
			data:    func(*testing.T) []byte { return []byte("plain text") },
			wantMsg: "zip",
		},
		{
			name: "missing package.json",
			data: func(t *testing.T) []byte {
				return buildZip(t, map[string]string{"models/a.yaml": "namespace: a\n"})
			},
			wantMsg: "missing package.json",
		},
		{
			name: "bad package.json",
			data: func(t *testing.T) []byte {
				return buildZip(t, map[string]string{"package.json": "{"})
			},
			wantMsg: "package.json",
		},
		{
			name: "duplicate namespace across files",
			data: func(t *testing.T) []byte {
				return buildZip(t, map[string]string{
					"package.json":  testPackageJSON,
					"models/a.yaml": "namespace: dup\n",
					"models/b.json": `{"namespace":"dup"}`,
				})
			},
			wantMsg: "duplicate namespace",
		},
		{
			name: "unknown kind",
			data: func(t *testing.T) []byte {
				return buildZip(t, map[string]string{
					"package.json":  testPackageJSON,
					"models/a.yaml": "namespace: a\ndeclarations:\n  - {name: X, kind: widget}\n",
				})
			},
			wantMsg: "unknown kind",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(context.Background(), "bad.bna", tt.data(t))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrArchiveDecode))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestDecodeHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Decode(ctx, "x.bna", buildZip(t, map[string]string{"package.json": testPackageJSON}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, errors.Is(err, errs.ErrArchiveDecode))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "net.bna")
	require.NoError(t, os.WriteFile(p, buildZip(t, map[string]string{"package.json": testPackageJSON}), 0o644))

	n, err := Load(context.Background(), p)
	require.NoError(t, err)
	assert.Empty(t, n.Manager.Files())

	_, err = Load(context.Background(), filepath.Join(dir, "missing.bna"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrArchiveDecode))
}

func TestDecodeModelFileValidation(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		wantMsg string
	}{
		{"unsupported format", "a.cto", "namespace a", "unsupported model file format"},
		{"missing namespace", "a.yaml", "declarations: []\n", "missing namespace"},
		{"missing name", "a.yaml", "namespace: a\ndeclarations:\n  - {kind: asset}\n", "missing name"},
		{"duplicate declaration", "a.yaml", "namespace: a\ndeclarations:\n  - {name: X, kind: asset}\n  - {name: X, kind: concept}\n", "duplicate declaration"},
		{"enum with properties", "a.yaml", "namespace: a\ndeclarations:\n  - name: E\n    kind: enum\n    properties: [{name: p, type: String}]\n", "take values"},
		{"class with values", "a.yaml", "namespace: a\ndeclarations:\n  - {name: C, kind: concept, values: [A]}\n", "only enum"},
		{"property without type", "a.yaml", "namespace: a\ndeclarations:\n  - name: C\n    kind: concept\n    properties: [{name: p}]\n", "name and type"},
		{"duplicate property", "a.yaml", "namespace: a\ndeclarations:\n  - name: C\n    kind: concept\n    properties: [{name: p, type: String}, {name: p, type: Long}]\n", "duplicate property"},
		{"identifier not a property", "a.yaml", "namespace: a\ndeclarations:\n  - {name: C, kind: asset, identifiedBy: id}\n", "identifier field"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeModelFile(tt.file, []byte(tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestResolveType(t *testing.T) {
	spec := &fileSpec{Namespace: "org.acme", Imports: []string{"org.base.Thing"}}
	assert.Equal(t, "", resolveType("", spec))
	assert.Equal(t, "org.base.Thing", resolveType("Thing", spec))
	assert.Equal(t, "org.acme.Local", resolveType("Local", spec))
	assert.Equal(t, "x.y.Z", resolveType("x.y.Z", spec))
}
