package writer

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/blake2b"

	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/errs"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/log"
)

// ManifestName is the file WriteManifest creates at the output root.
const ManifestName = "MANIFEST.blake2b"

// Sink maps logical file paths below a root directory to physical files.
// Exactly one file is open at a time; Close flushes it.
type Sink struct {
	root   string
	indent string

	path string
	buf  *Buffer
	err  error

	written map[string][blake2b.Size256]byte
	raw     log.RawLogger
}

// NewSink returns a sink writing below root.
func NewSink(root, indent string) *Sink {
	return &Sink{
		root:    root,
		indent:  indent,
		written: make(map[string][blake2b.Size256]byte),
	}
}

// SetRawLogger echoes the contents of every closed file to r.
func (s *Sink) SetRawLogger(r log.RawLogger) { s.raw = r }

// Root returns the output root directory.
func (s *Sink) Root() string { return s.root }

// Open begins a new logical file made of the given path segments and binds
// a fresh buffer to it.
func (s *Sink) Open(segments ...string) (*Buffer, error) {
	if err := s.err; err != nil {
		s.err = nil
		return nil, err
	}
	if s.buf != nil {
		return nil, errs.SinkState("open " + filepath.Join(segments...) + " while " + s.path + " is still open")
	}
	if len(segments) == 0 {
		return nil, errs.SinkState("open without a path")
	}
	s.path = filepath.Join(segments...)
	s.buf = NewBuffer(s.indent)
	return s.buf, nil
}

// Path returns the relative path of the open file, or "" when none is open.
func (s *Sink) Path() string { return s.path }

// WriteLine appends a line to the open file's main region.
func (s *Sink) WriteLine(level int, text string) {
	if b := s.bound("write line"); b != nil {
		b.AppendLine(level, text)
	}
}

// WriteBefore appends a line to the open file's before region.
func (s *Sink) WriteBefore(level int, text string) {
	if b := s.bound("write before"); b != nil {
		b.AppendBefore(level, text)
	}
}

// WriteIndented appends indented text without a line break.
func (s *Sink) WriteIndented(level int, text string) {
	if b := s.bound("write indented"); b != nil {
		b.AppendIndented(level, text)
	}
}

// WriteRaw appends unindented text.
func (s *Sink) WriteRaw(v any) {
	if b := s.bound("write raw"); b != nil {
		if err := b.AppendRaw(v); err != nil && s.err == nil {
			s.err = err
		}
	}
}

// Close flushes the open buffer to <root>/<path>, creating directories as
// needed, and releases it. Any error recorded by the Write methods since the
// last Close is returned instead of writing.
func (s *Sink) Close() error {
	if err := s.err; err != nil {
		s.err = nil
		s.release()
		return err
	}
	if s.buf == nil {
		return errs.SinkState("close without an open file")
	}
	defer s.release()

	target := filepath.Join(s.root, s.path)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.Wrapf(err, "create directory for %s", s.path)
	}
	contents := []byte(s.buf.Contents())
	if err := os.WriteFile(target, contents, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", s.path)
	}
	rel := filepath.ToSlash(s.path)
	s.written[rel] = blake2b.Sum256(contents)
	if s.raw != nil {
		s.raw.Log(rel, contents)
	}
	return nil
}

// Discard releases the open buffer without writing it.
func (s *Sink) Discard() {
	s.err = nil
	s.release()
}

// Files returns the relative, slash-separated paths of every closed file, sorted.
func (s *Sink) Files() []string {
	out := make([]string, 0, len(s.written))
	for p := range s.written {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// WriteManifest writes ManifestName at the root listing the BLAKE2b-256
// digest of every file closed so far.
func (s *Sink) WriteManifest() error {
	var sb strings.Builder
	for _, p := range s.Files() {
		sum := s.written[p]
		sb.WriteString(hex.EncodeToString(sum[:]))
		sb.WriteString("  ")
		sb.WriteString(p)
		sb.WriteByte('\n')
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return errors.Wrap(err, "create output root")
	}
	if err := os.WriteFile(filepath.Join(s.root, ManifestName), []byte(sb.String()), 0o644); err != nil {
		return errors.Wrap(err, "write manifest")
	}
	return nil
}

func (s *Sink) bound(op string) *Buffer {
	if s.buf == nil {
		if s.err == nil {
			s.err = errs.SinkState(op + " without an open file")
		}
		return nil
	}
	return s.buf
}

func (s *Sink) release() {
	s.buf = nil
	s.path = ""
}
