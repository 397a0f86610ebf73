package codec

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// line is one record of the GEDCOM line grammar. After tree assembly the
// Children slice holds the nested records at Level+1, in file order.
type line struct {
	Number   int // 1-based source line number
	Level    int
	XRef     string // cross-reference token, only on level-0 entity records
	Tag      string
	Value    string
	Children []*line
}

// child returns the first child with the given tag, or nil
func (l *line) child(tag string) *line {
	for _, c := range l.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// childValue returns the value of the first child with the given tag
func (l *line) childValue(tag string) string {
	if c := l.child(tag); c != nil {
		return c.Value
	}
	return ""
}

// cutField splits off the next space-delimited token, preserving the
// remainder verbatim (values may contain runs of spaces)
func cutField(s string) (token, rest string) {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}

// parseLine parses a single physical line into its level, optional
// cross-reference token, tag, and value
func parseLine(number int, raw string) (*line, error) {
	s := strings.TrimLeft(strings.TrimRight(raw, "\r"), " \t")

	levelTok, rest := cutField(s)
	level, err := strconv.Atoi(levelTok)
	if err != nil || level < 0 {
		return nil, &MalformedLineError{Line: number, Raw: raw}
	}

	next, rest := cutField(rest)
	var xref string
	if len(next) > 2 && strings.HasPrefix(next, "@") && strings.HasSuffix(next, "@") {
		xref = next
		next, rest = cutField(rest)
	}

	if next == "" {
		return nil, &MalformedLineError{Line: number, Raw: raw}
	}

	return &line{
		Number: number,
		Level:  level,
		XRef:   xref,
		Tag:    strings.ToUpper(next),
		Value:  rest,
	}, nil
}

// tokenize splits the input into parsed lines, skipping blanks.
// Fails fast on the first malformed line.
func tokenize(r io.Reader) ([]*line, error) {
	var lines []*line
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	number := 0
	for scanner.Scan() {
		number++
		raw := scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}
		l, err := parseLine(number, raw)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// buildTree folds the flat line stream into a forest of level-0 records.
// An explicit stack of the current open record per level keeps the pass
// linear and makes level jumps greater than +1 trivially detectable.
func buildTree(lines []*line) ([]*line, error) {
	var roots []*line
	var stack []*line // stack[i] is the open record at level i

	for _, l := range lines {
		if l.Level == 0 {
			roots = append(roots, l)
			stack = append(stack[:0], l)
			continue
		}
		if l.Level > len(stack) {
			parentLevel := len(stack) - 1
			return nil, &InvalidNestingError{Line: l.Number, Level: l.Level, ParentLevel: parentLevel}
		}
		parent := stack[l.Level-1]
		parent.Children = append(parent.Children, l)
		stack = append(stack[:l.Level], l)
	}

	return roots, nil
}

// foldContinuations merges CONT and CONC children into their parent's
// value, recursively, so multi-line text arrives at the semantic mapping
// stage as single logical strings. CONT joins with a newline, CONC joins
// directly.
func foldContinuations(rec *line) {
	kept := rec.Children[:0]
	for _, c := range rec.Children {
		switch c.Tag {
		case tagCont:
			rec.Value += "\n" + c.Value
		case tagConc:
			rec.Value += c.Value
		default:
			foldContinuations(c)
			kept = append(kept, c)
		}
	}
	rec.Children = kept
}
