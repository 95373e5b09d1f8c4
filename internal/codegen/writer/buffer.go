// Package writer accumulates generated text per logical file and flushes it
// to the output tree.
package writer

import (
	"strings"

	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/errs"
)

// DefaultIndent is one indentation unit of generated Java.
const DefaultIndent = "\t"

// Buffer holds the text of one logical file in two regions. The before
// region always precedes the main region in Contents, whatever the order of
// the appends, so headers can be decided after body text was written.
type Buffer struct {
	indent string
	before strings.Builder
	main   strings.Builder
	lines  int
}

// NewBuffer returns an empty buffer using indent as the unit per level.
// An empty indent selects DefaultIndent.
func NewBuffer(indent string) *Buffer {
	if indent == "" {
		indent = DefaultIndent
	}
	return &Buffer{indent: indent}
}

// AppendBefore writes one indented line into the before region.
func (b *Buffer) AppendBefore(level int, text string) {
	b.write(&b.before, b.pad(level)+text+"\n")
}

// AppendLine writes one indented, newline-terminated line into the main region.
func (b *Buffer) AppendLine(level int, text string) {
	b.write(&b.main, b.pad(level)+text+"\n")
}

// AppendIndented writes indentation followed by text without a line break.
func (b *Buffer) AppendIndented(level int, text string) {
	b.write(&b.main, b.pad(level)+text)
}

// AppendRaw writes v into the main region as-is. v must be a string or a
// byte slice.
func (b *Buffer) AppendRaw(v any) error {
	switch t := v.(type) {
	case string:
		b.write(&b.main, t)
	case []byte:
		b.write(&b.main, string(t))
	default:
		return errs.BufferContract(v)
	}
	return nil
}

// LineCount returns the number of line breaks written to both regions.
func (b *Buffer) LineCount() int { return b.lines }

// Contents returns the before region followed by the main region.
func (b *Buffer) Contents() string {
	return b.before.String() + b.main.String()
}

// Reset empties both regions and zeroes the line count.
func (b *Buffer) Reset() {
	b.before.Reset()
	b.main.Reset()
	b.lines = 0
}

func (b *Buffer) write(region *strings.Builder, s string) {
	region.WriteString(s)
	b.lines += strings.Count(s, "\n")
}

func (b *Buffer) pad(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(b.indent, level)
}
