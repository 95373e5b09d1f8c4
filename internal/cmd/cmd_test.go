package cmd

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/alecthomas/kong"
	yaml "gopkg.in/yaml.v3"

	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/errs"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/typemap"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/configpaths"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/log"
)

func TestGenerateUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		cmd  Generate
	}{
		{"no arguments", Generate{}},
		{"no output", Generate{Archive: "net.bna"}},
		{"no archive", Generate{Output: "out"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Execute(context.Background(), log.Discard(), log.NewRaw(nil))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrUsage))
			assert.NotEmpty(t, errors.GetAllHints(err))
		})
	}

	err := (&EngineCommand{}).Run(log.Discard(), log.NewRaw(nil))
	assert.True(t, errors.Is(err, errs.ErrUsage))
}

func TestGenerateOptions(t *testing.T) {
	g := Generate{SkipSystem: true, OutputOptions: OutputOptions{IndentWidth: 2, Manifest: true, LicenseHeader: "h.txt"}}
	opts := g.options()
	assert.True(t, opts.SkipSystem)
	assert.Equal(t, typemap.DefaultEscapes, opts.Escapes)
	assert.Equal(t, "  ", opts.Indent)
	assert.True(t, opts.Manifest)
	assert.Equal(t, "h.txt", opts.HeaderFile)

	g = Generate{Escape: []string{"Secret"}}
	assert.Equal(t, []string{"Secret"}, g.options().Escapes)
	assert.Equal(t, "", g.options().Indent)

	g = Generate{Escape: []string{"Secret"}, NoEscape: true}
	assert.NotNil(t, g.options().Escapes)
	assert.Empty(t, g.options().Escapes)
}

func TestEngineCommandWritesInterface(t *testing.T) {
	out := t.TempDir()
	var raw strings.Builder
	require.NoError(t, (&EngineCommand{Output: out}).Run(log.Discard(), log.NewRaw(&raw)))
	assert.FileExists(t, filepath.Join(out, "org", "hyperledger", "composer", "Engine.java"))
	assert.Contains(t, raw.String(), "org/hyperledger/composer/Engine.java: ")
	assert.Contains(t, raw.String(), "public interface Engine {")
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()

	dest := filepath.Join(dir, "nested", "generate.json")
	require.NoError(t, (&ConfigInit{Command: "generate", Format: "json", Output: dest}).Run())
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, true, got["engine"])
	assert.Equal(t, false, got["skipSystem"])
	assert.Equal(t, []any{"Transaction", "Asset", "Participant"}, got["escape"])
	assert.Equal(t, float64(0), got["indentWidth"])
	assert.Contains(t, got, "noEscape")
	assert.NotContains(t, got, "skip-system")
	assert.NotContains(t, got, "archive")

	err = (&ConfigInit{Command: "generate", Format: "json", Output: dest}).Run()
	assert.True(t, errors.Is(err, errs.ErrUsage))
	require.NoError(t, (&ConfigInit{Command: "generate", Format: "json", Output: dest, Force: true}).Run())

	yml := filepath.Join(dir, "engine.yaml")
	require.NoError(t, (&ConfigInit{Command: "engine", Format: "yaml", Output: yml}).Run())
	data, err = os.ReadFile(yml)
	require.NoError(t, err)
	got = nil
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Contains(t, got, "output")
	assert.Contains(t, got, "manifest")
	assert.Contains(t, got, "indent-width")
	assert.NotContains(t, got, "engine")

	tml := filepath.Join(dir, "engine.toml")
	require.NoError(t, (&ConfigInit{Command: "engine", Format: "toml", Output: tml}).Run())
	assert.FileExists(t, tml)

	assert.True(t, errors.Is((&ConfigInit{Command: "generate", Format: "ini"}).Run(), errs.ErrUsage))
	assert.True(t, errors.Is((&ConfigInit{Command: "serve", Format: "json"}).Run(), errs.ErrUsage))
}

func TestConfigInitUserDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(configpaths.DirEnv, dir)
	require.NoError(t, (&ConfigInit{Command: "engine", Format: "toml", User: true}).Run())
	assert.FileExists(t, filepath.Join(dir, "engine.toml"))
}

func TestFlagName(t *testing.T) {
	tests := map[string]string{
		"Output":        "output",
		"SkipSystem":    "skip-system",
		"IndentWidth":   "indent-width",
		"LicenseHeader": "license-header",
		"HTTPServer":    "http-server",
	}
	for in, want := range tests {
		assert.Equal(t, want, flagName(in), in)
	}
}

func TestConfigInitJSONIsReadByKong(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "generate.json")
	require.NoError(t, (&ConfigInit{Command: "generate", Format: "json", Output: dest}).Run())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	var cfg map[string]any
	require.NoError(t, json.Unmarshal(data, &cfg))
	cfg["output"] = filepath.Join(dir, "out")
	cfg["skipSystem"] = true
	cfg["indentWidth"] = 4
	cfg["licenseHeader"] = filepath.Join(dir, "header.txt")
	cfg["noEscape"] = true
	cfg["engine"] = false
	data, err = json.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(dest, data, 0o644))

	var cli struct {
		Generate Generate `cmd:""`
	}
	parser, err := kong.New(&cli, kong.Configuration(kong.JSON, dest))
	require.NoError(t, err)
	_, err = parser.Parse([]string{"generate"})
	require.NoError(t, err)

	g := cli.Generate
	assert.Equal(t, filepath.Join(dir, "out"), g.Output)
	assert.True(t, g.SkipSystem)
	assert.Equal(t, 4, g.IndentWidth)
	assert.Equal(t, "header.txt", filepath.Base(g.LicenseHeader))
	assert.True(t, g.NoEscape)
	assert.False(t, g.Engine)
}
