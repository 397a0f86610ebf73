package codec

import (
	"fmt"
	"io"
	"strings"

	"lineaged/internal/domain"
)

// Decoder parses GEDCOM 5.5.1 text into normalized entities. It is a pure
// transform: nothing is persisted, so a hard error simply means nothing
// happened.
type Decoder struct {
	// MaxIssues caps the number of errors recorded in a ValidationReport.
	MaxIssues int
}

// NewDecoder creates a decoder with default settings
func NewDecoder() *Decoder {
	return &Decoder{MaxIssues: 20}
}

// Format returns the codec format identifier
func (d *Decoder) Format() string {
	return "gedcom"
}

// Result is the outcome of a successful decode: the entity tree plus the
// soft warnings accumulated along the way
type Result struct {
	Tree       *domain.Tree
	Warnings   []domain.Issue
	Incomplete bool
}

// xrefUse records one use of a cross-reference token and where it appeared
type xrefUse struct {
	token string
	line  int
}

type pendingPerson struct {
	person *domain.Individual
	token  string
	line   int
	famc   []xrefUse
	fams   []xrefUse
}

type pendingFamily struct {
	family *domain.Family
	token  string
	line   int
	husb   *xrefUse
	wife   *xrefUse
	chil   []xrefUse
}

// decodeIssue is a hard semantic error tied to a source line
type decodeIssue struct {
	line int
	err  error
}

// Parse implements the Importer interface: it decodes the input and
// discards the warning detail. Callers that need the warnings use Decode.
func (d *Decoder) Parse(r io.Reader) (*domain.Tree, error) {
	result, err := d.Decode(r)
	if err != nil {
		return nil, err
	}
	return result.Tree, nil
}

// Decode parses GEDCOM text into entities. Structural errors (malformed
// lines, invalid nesting, unsupported charset, dangling references) fail
// fast; semantic oddities are accumulated as warnings.
func (d *Decoder) Decode(r io.Reader) (*Result, error) {
	result, hard, err := d.decode(r)
	if err != nil {
		return nil, err
	}
	if len(hard) > 0 {
		return nil, hard[0].err
	}
	return result, nil
}

// Validate runs the full decode without persisting anything and folds the
// outcome into a report for the preview-before-commit workflow. Unlike
// Decode it accumulates every hard error it can reach (up to MaxIssues).
func (d *Decoder) Validate(r io.Reader) *domain.ValidationReport {
	report := &domain.ValidationReport{
		Errors:   make([]domain.Issue, 0),
		Warnings: make([]domain.Issue, 0),
	}

	result, hard, err := d.decode(r)
	if err != nil {
		report.AddError(errorLine(err), err.Error(), d.MaxIssues)
		return report
	}

	for _, issue := range hard {
		report.AddError(issue.line, issue.err.Error(), d.MaxIssues)
	}

	report.PeopleCount = len(result.Tree.Individuals)
	report.FamiliesCount = len(result.Tree.Families)
	report.Warnings = result.Warnings
	report.Incomplete = result.Incomplete
	report.Ready = len(report.Errors) == 0
	return report
}

// decode runs the full pipeline: tokenize, assemble, fold continuations,
// map semantics, resolve references. The returned error is the first
// structural failure; hard semantic errors are returned separately so
// Validate can report all of them.
func (d *Decoder) decode(r io.Reader) (*Result, []decodeIssue, error) {
	lines, err := tokenize(r)
	if err != nil {
		return nil, nil, err
	}

	roots, err := buildTree(lines)
	if err != nil {
		return nil, nil, err
	}

	for _, root := range roots {
		foldContinuations(root)
	}

	var (
		warnings []domain.Issue
		persons  []*pendingPerson
		families []*pendingFamily
		seenHead bool
		seenTrlr bool
	)

	warn := func(line int, format string, args ...any) {
		warnings = append(warnings, domain.Issue{Line: line, Message: fmt.Sprintf(format, args...)})
	}

	for _, root := range roots {
		switch root.Tag {
		case tagHead:
			seenHead = true
			if err := d.checkHeader(root, warn); err != nil {
				return nil, nil, err
			}
		case tagIndi:
			persons = append(persons, d.mapIndividual(root, warn))
		case tagFam:
			families = append(families, d.mapFamily(root, warn))
		case tagTrlr:
			seenTrlr = true
		default:
			warn(root.Number, "unrecognized record %s skipped", root.Tag)
		}
	}

	if !seenHead {
		warn(0, "missing HEAD record")
	}
	if !seenTrlr {
		warn(0, "missing TRLR record, file may be truncated")
	}

	tree, hard := d.resolve(persons, families, warn)

	return &Result{
		Tree:       tree,
		Warnings:   warnings,
		Incomplete: !seenTrlr,
	}, hard, nil
}

// checkHeader validates the HEAD block. Only the charset is a hard
// constraint; missing version metadata is tolerated with a warning to
// support lenient real-world files.
func (d *Decoder) checkHeader(head *line, warn func(int, string, ...any)) error {
	if gedc := head.child(tagGedc); gedc == nil || gedc.childValue(tagVers) == "" {
		warn(head.Number, "HEAD is missing GEDC/VERS")
	}

	char := head.child(tagChar)
	if char == nil {
		warn(head.Number, "HEAD is missing CHAR, assuming UTF-8")
		return nil
	}
	if !strings.EqualFold(strings.TrimSpace(char.Value), gedcomCharset) {
		return &UnsupportedCharsetError{Line: char.Number, Charset: char.Value}
	}
	return nil
}

// mapIndividual converts an INDI record tree into a person entity,
// recording FAMC/FAMS tokens for later resolution
func (d *Decoder) mapIndividual(root *line, warn func(int, string, ...any)) *pendingPerson {
	p := domain.NewIndividual("", "")
	pending := &pendingPerson{person: p, token: root.XRef, line: root.Number}

	for _, c := range root.Children {
		switch c.Tag {
		case tagName:
			p.GivenName, p.Surname = splitName(c.Value)
		case tagSex:
			p.Sex = domain.ParseSex(c.Value)
		case tagBirt:
			p.BirthDate = c.childValue(tagDate)
			p.BirthPlace = c.childValue(tagPlac)
			d.checkDate(c.child(tagDate), warn)
		case tagDeat:
			p.Living = false
			p.DeathDate = c.childValue(tagDate)
			p.DeathPlace = c.childValue(tagPlac)
			d.checkDate(c.child(tagDate), warn)
		case tagOccu:
			p.Occupation = c.Value
		case tagNote:
			if p.Notes == "" {
				p.Notes = c.Value
			} else {
				p.Notes += "\n" + c.Value
			}
		case tagFamc:
			pending.famc = append(pending.famc, xrefUse{token: c.Value, line: c.Number})
		case tagFams:
			pending.fams = append(pending.fams, xrefUse{token: c.Value, line: c.Number})
		}
	}

	return pending
}

// mapFamily converts a FAM record tree into a family entity, recording
// member tokens for later resolution
func (d *Decoder) mapFamily(root *line, warn func(int, string, ...any)) *pendingFamily {
	f := domain.NewFamily()
	pending := &pendingFamily{family: f, token: root.XRef, line: root.Number}

	for _, c := range root.Children {
		switch c.Tag {
		case tagHusb:
			pending.husb = &xrefUse{token: c.Value, line: c.Number}
		case tagWife:
			pending.wife = &xrefUse{token: c.Value, line: c.Number}
		case tagChil:
			pending.chil = append(pending.chil, xrefUse{token: c.Value, line: c.Number})
		case tagMarr:
			f.MarriageDate = c.childValue(tagDate)
			f.MarriagePlace = c.childValue(tagPlac)
			d.checkDate(c.child(tagDate), warn)
		case tagDiv:
			f.DivorceDate = c.childValue(tagDate)
			d.checkDate(c.child(tagDate), warn)
		}
	}

	return pending
}

// checkDate flags unparseable dates. The text is retained verbatim either
// way; dates are descriptive metadata, not grounds for rejecting a record.
func (d *Decoder) checkDate(dateLine *line, warn func(int, string, ...any)) {
	if dateLine == nil || strings.TrimSpace(dateLine.Value) == "" {
		return
	}
	if _, ok := domain.ParseDate(dateLine.Value); !ok {
		warn(dateLine.Number, "unparseable date %q retained as written", dateLine.Value)
	}
}

// resolve maps every recorded cross-reference token to its entity.
// Unresolved tokens and spouse/child role conflicts are hard errors;
// degenerate families are dropped with a warning.
func (d *Decoder) resolve(persons []*pendingPerson, families []*pendingFamily, warn func(int, string, ...any)) (*domain.Tree, []decodeIssue) {
	var hard []decodeIssue

	personTokens := make(map[string]*domain.Individual)
	familyTokens := make(map[string]*domain.Family)
	for _, pp := range persons {
		if pp.token != "" {
			personTokens[pp.token] = pp.person
		}
	}
	for _, pf := range families {
		if pf.token != "" {
			familyTokens[pf.token] = pf.family
		}
	}

	lookupPerson := func(use *xrefUse, referrer string) string {
		if use == nil {
			return ""
		}
		p, ok := personTokens[use.token]
		if !ok {
			hard = append(hard, decodeIssue{
				line: use.line,
				err:  &DanglingReferenceError{Line: use.line, Token: use.token, Referrer: referrer},
			})
			return ""
		}
		return p.ID
	}

	checkFamilyToken := func(use xrefUse, referrer string) {
		if _, ok := familyTokens[use.token]; !ok {
			hard = append(hard, decodeIssue{
				line: use.line,
				err:  &DanglingReferenceError{Line: use.line, Token: use.token, Referrer: referrer},
			})
		}
	}

	tree := domain.NewTree()
	for _, pp := range persons {
		tree.AddIndividual(pp.person)

		referrer := "INDI " + pp.person.FullName()
		for _, use := range pp.famc {
			checkFamilyToken(use, referrer)
		}
		for _, use := range pp.fams {
			checkFamilyToken(use, referrer)
		}
	}

	for _, pf := range families {
		referrer := "FAM"
		if pf.token != "" {
			referrer = pf.token + " FAM"
		}

		pf.family.HusbandID = lookupPerson(pf.husb, referrer)
		pf.family.WifeID = lookupPerson(pf.wife, referrer)
		for _, use := range pf.chil {
			if id := lookupPerson(&use, referrer); id != "" {
				pf.family.ChildIDs = append(pf.family.ChildIDs, id)
			}
		}

		if pf.family.Degenerate() {
			warn(pf.line, "dropping family %s with no husband, wife, or children", pf.token)
			continue
		}

		for _, child := range pf.family.ChildIDs {
			if pf.family.HasSpouse(child) {
				hard = append(hard, decodeIssue{
					line: pf.line,
					err:  fmt.Errorf("family %s lists the same person as both spouse and child", pf.token),
				})
			}
		}

		tree.AddFamily(pf.family)
	}

	return tree, hard
}

// splitName splits a GEDCOM NAME value on the /Surname/ convention.
// Text before the opening slash is the given name; text after the closing
// slash is a suffix and is appended to the given-name text.
func splitName(value string) (given, surname string) {
	open := strings.Index(value, "/")
	if open < 0 {
		return strings.TrimSpace(value), ""
	}

	rest := value[open+1:]
	end := strings.Index(rest, "/")
	if end < 0 {
		return strings.TrimSpace(value[:open]), strings.TrimSpace(rest)
	}

	given = strings.TrimSpace(value[:open])
	surname = strings.TrimSpace(rest[:end])
	if suffix := strings.TrimSpace(rest[end+1:]); suffix != "" {
		if given == "" {
			given = suffix
		} else {
			given += " " + suffix
		}
	}
	return given, surname
}

// errorLine extracts the source line from the codec error taxonomy
func errorLine(err error) int {
	switch e := err.(type) {
	case *MalformedLineError:
		return e.Line
	case *InvalidNestingError:
		return e.Line
	case *UnsupportedCharsetError:
		return e.Line
	case *DanglingReferenceError:
		return e.Line
	default:
		return 0
	}
}
