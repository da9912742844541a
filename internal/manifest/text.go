package manifest

import (
	"bytes"
	"fmt"
	"regexp"
)

// Field names a single-line declaration inside a text artifact.
type Field string

const (
	FieldVersion Field = "version"
	FieldBranch  Field = "BRANCH"
	FieldStatus  Field = "STATUS"
	FieldNumber  Field = "NUMBER"
)

// Miss records a requested edit whose declaration was not found.
type Miss struct {
	Path  string
	Field Field
}

func (m Miss) String() string {
	return fmt.Sprintf("%s in %s", m.Field, m.Path)
}

// Decl matches a `<prefix>"<value>"` declaration on a single line. The pattern
// must contain exactly one capture group: the quoted value.
type Decl struct {
	Field Field
	re    *regexp.Regexp
}

// NewDecl compiles a declaration matcher.
func NewDecl(f Field, pattern string) Decl {
	re := regexp.MustCompile(pattern)
	if re.NumSubexp() != 1 {
		panic(fmt.Sprintf("declaration pattern %q must have one capture group", pattern))
	}
	return Decl{Field: f, re: re}
}

var (
	// ManifestVersion is the top-level `version = "..."` assignment of Cargo.toml.
	ManifestVersion = NewDecl(FieldVersion, `^version = "(.*)"`)

	ConstBranch = newConstDecl(FieldBranch)
	ConstStatus = newConstDecl(FieldStatus)
	ConstNumber = newConstDecl(FieldNumber)
)

func newConstDecl(f Field) Decl {
	return NewDecl(f, `const `+string(f)+`: &str = "(.*)"`)
}

// TextFile is a line oriented artifact. Only the value span of a matched
// declaration is ever rewritten; every other byte is kept as read.
type TextFile struct {
	Path    string
	lines   [][]byte
	touched bool
}

// ParseText splits data into lines, keeping line terminators.
func ParseText(path string, data []byte) *TextFile {
	return &TextFile{
		Path:  path,
		lines: bytes.SplitAfter(data, []byte("\n")),
	}
}

// find returns the line index and value span of the first line matching d.
func (f *TextFile) find(d Decl) (line, start, end int, ok bool) {
	for i, l := range f.lines {
		loc := d.re.FindSubmatchIndex(bytes.TrimRight(l, "\r\n"))
		if loc != nil {
			return i, loc[2], loc[3], true
		}
	}
	return 0, 0, 0, false
}

// Lookup returns the current value of d.
func (f *TextFile) Lookup(d Decl) (string, bool) {
	i, start, end, ok := f.find(d)
	if !ok {
		return "", false
	}
	return string(f.lines[i][start:end]), true
}

// Set replaces the value of the first declaration matching d. It reports false,
// leaving the file untouched, when no line matches.
func (f *TextFile) Set(d Decl, value string) bool {
	i, start, end, ok := f.find(d)
	if !ok {
		return false
	}
	l := f.lines[i]
	out := make([]byte, 0, len(l)-(end-start)+len(value))
	out = append(out, l[:start]...)
	out = append(out, value...)
	out = append(out, l[end:]...)
	f.lines[i] = out
	f.touched = true
	return true
}

// Touched reports whether any Set call matched.
func (f *TextFile) Touched() bool {
	return f.touched
}

// Bytes reassembles the file.
func (f *TextFile) Bytes() []byte {
	return bytes.Join(f.lines, nil)
}

// Edit applies value to d, appending a Miss when the declaration is absent.
func (f *TextFile) Edit(d Decl, value string, misses []Miss) []Miss {
	if !f.Set(d, value) {
		misses = append(misses, Miss{Path: f.Path, Field: d.Field})
	}
	return misses
}

// Rewrite passes every line, terminator excluded, to fn. A line is replaced
// when fn reports ok and returns different content.
func (f *TextFile) Rewrite(fn func(line []byte) (out []byte, ok bool)) {
	for i, l := range f.lines {
		body := bytes.TrimRight(l, "\r\n")
		out, ok := fn(body)
		if !ok || bytes.Equal(out, body) {
			continue
		}
		term := l[len(body):]
		next := make([]byte, 0, len(out)+len(term))
		next = append(next, out...)
		next = append(next, term...)
		f.lines[i] = next
		f.touched = true
	}
}
