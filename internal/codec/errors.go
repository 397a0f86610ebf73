package codec

import "fmt"

// MalformedLineError indicates a line that does not match the
// "<level> [<xref>] <tag> [value]" grammar. The parse stops at the first one.
type MalformedLineError struct {
	Line int
	Raw  string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("line %d: malformed GEDCOM line %q", e.Line, e.Raw)
}

// InvalidNestingError indicates a record whose level jumps by more than one
// past its parent, so it cannot be attached to the tree.
type InvalidNestingError struct {
	Line  int
	Level int
	// ParentLevel is the deepest open level at the point of failure;
	// -1 when a non-zero level record appears before any root.
	ParentLevel int
}

func (e *InvalidNestingError) Error() string {
	return fmt.Sprintf("line %d: level %d record cannot nest under level %d", e.Line, e.Level, e.ParentLevel)
}

// UnsupportedCharsetError indicates a HEAD/CHAR declaration naming anything
// other than UTF-8. The parse is aborted rather than risking mojibake.
type UnsupportedCharsetError struct {
	Line    int
	Charset string
}

func (e *UnsupportedCharsetError) Error() string {
	return fmt.Sprintf("line %d: unsupported charset %q, only UTF-8 is accepted", e.Line, e.Charset)
}

// DanglingReferenceError indicates a cross-reference token that is never
// defined by a level-0 record. A tree with broken links cannot be imported.
type DanglingReferenceError struct {
	Line     int
	Token    string
	Referrer string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("line %d: %s references undefined token %s", e.Line, e.Referrer, e.Token)
}
