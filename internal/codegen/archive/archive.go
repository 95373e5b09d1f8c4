// Package archive decodes business network archives into a model graph.
//
// An archive is a zip file holding a package.json with the network metadata
// and one structured model file per namespace below models/ (YAML, JSON or
// TOML). Other entries are ignored.
package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/errs"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/model"
)

const (
	packageJSON = "package.json"
	modelsDir   = "models/"
)

type packageMeta struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// Load opens the archive at path and decodes it.
func Load(ctx context.Context, path string) (*model.Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.ArchiveDecode(err, path)
	}
	return Decode(ctx, path, data)
}

// Decode decodes archive bytes. name is only used in error messages.
func Decode(ctx context.Context, name string, data []byte) (*model.Network, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errs.ArchiveDecode(err, name)
	}

	entries := make([]*zip.File, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		entries = append(entries, f)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	var (
		meta    *packageMeta
		manager = model.NewManager()
	)
	for _, f := range entries {
		if err := ctx.Err(); err != nil {
			return nil, errs.ArchiveDecode(err, name)
		}
		switch {
		case f.Name == packageJSON:
			raw, err := readEntry(f)
			if err != nil {
				return nil, errs.ArchiveDecode(err, name)
			}
			meta = &packageMeta{}
			if err := json.Unmarshal(raw, meta); err != nil {
				return nil, errs.ArchiveDecode(errors.Wrap(err, packageJSON), name)
			}
		case strings.HasPrefix(f.Name, modelsDir) && decoderFor(f.Name) != nil:
			raw, err := readEntry(f)
			if err != nil {
				return nil, errs.ArchiveDecode(err, name)
			}
			mf, err := DecodeModelFile(f.Name, raw)
			if err != nil {
				return nil, errs.ArchiveDecode(err, name)
			}
			if err := manager.AddFile(mf); err != nil {
				return nil, errs.ArchiveDecode(errors.Wrap(err, f.Name), name)
			}
		}
	}
	if meta == nil {
		return nil, errs.ArchiveDecodef("decode archive %s: missing %s", name, packageJSON)
	}

	return &model.Network{
		Name:        meta.Name,
		Version:     meta.Version,
		Description: meta.Description,
		Manager:     manager,
	}, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", f.Name)
	}
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", f.Name)
	}
	return raw, nil
}

type decodeFunc func([]byte, *fileSpec) error

func decoderFor(name string) decodeFunc {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return func(b []byte, s *fileSpec) error { return yaml.Unmarshal(b, s) }
	case ".json":
		return func(b []byte, s *fileSpec) error { return json.Unmarshal(b, s) }
	case ".toml":
		return func(b []byte, s *fileSpec) error { return toml.Unmarshal(b, s) }
	default:
		return nil
	}
}

// DecodeModelFile decodes one structured model file. The format is chosen by
// the extension of name.
func DecodeModelFile(name string, raw []byte) (*model.File, error) {
	decode := decoderFor(name)
	if decode == nil {
		return nil, errors.Newf("%s: unsupported model file format", name)
	}
	var spec fileSpec
	if err := decode(raw, &spec); err != nil {
		return nil, errors.Wrapf(err, "%s", name)
	}
	mf, err := spec.build()
	if err != nil {
		return nil, errors.Wrapf(err, "%s", name)
	}
	return mf, nil
}
