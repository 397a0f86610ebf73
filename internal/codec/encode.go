package codec

import (
	"fmt"
	"io"
	"strings"

	"lineaged/internal/domain"
)

// maxPhysicalLine is the practical GEDCOM line length limit. Values that
// would push a physical line past it are wrapped with CONC records.
const maxPhysicalLine = 255

// defaultSource is the SOUR value stamped on exported headers
const defaultSource = "LINEAGED"

// Encoder serializes an entity tree into GEDCOM 5.5.1 text. Cross-reference
// tokens are assigned in tree order (@I1@, @I2@, ... and @F1@, @F2@, ...),
// so exporting the same tree twice yields byte-identical output.
type Encoder struct {
	// Source is the producing-system name written to the header
	Source string
}

// NewEncoder creates an encoder with default settings
func NewEncoder() *Encoder {
	return &Encoder{Source: defaultSource}
}

// Format returns the codec format identifier
func (e *Encoder) Format() string {
	return "gedcom"
}

// Export implements the Exporter interface. Output is built in full before
// anything is written, so a failed export leaves the writer untouched.
func (e *Encoder) Export(tree *domain.Tree, w io.Writer) error {
	text, err := e.Encode(tree)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}

// Encode serializes the tree and returns the complete document.
// Any structural problem (an invalid family, a reference to a person not
// in the tree) aborts with an error and no output.
func (e *Encoder) Encode(tree *domain.Tree) (string, error) {
	personXref := make(map[string]string, len(tree.Individuals))
	for i, p := range tree.Individuals {
		if p.ID == "" {
			return "", fmt.Errorf("person at index %d has no ID", i)
		}
		if err := checkPersonText(p); err != nil {
			return "", err
		}
		personXref[p.ID] = fmt.Sprintf("@I%d@", i+1)
	}

	familyXref := make(map[string]string, len(tree.Families))
	for i, f := range tree.Families {
		if err := f.Validate(); err != nil {
			return "", fmt.Errorf("cannot serialize family: %w", err)
		}
		if err := checkFamilyText(f); err != nil {
			return "", err
		}
		familyXref[f.ID] = fmt.Sprintf("@F%d@", i+1)
	}

	var b strings.Builder
	e.writeHeader(&b)

	for _, p := range tree.Individuals {
		if err := e.writeIndividual(&b, tree, p, personXref, familyXref); err != nil {
			return "", err
		}
	}
	for _, f := range tree.Families {
		if err := e.writeFamily(&b, f, personXref, familyXref); err != nil {
			return "", err
		}
	}

	fmt.Fprintln(&b, "0 TRLR")
	return b.String(), nil
}

func (e *Encoder) writeHeader(b *strings.Builder) {
	source := e.Source
	if source == "" {
		source = defaultSource
	}
	fmt.Fprintln(b, "0 HEAD")
	fmt.Fprintf(b, "1 SOUR %s\n", source)
	fmt.Fprintln(b, "1 GEDC")
	fmt.Fprintf(b, "2 VERS %s\n", gedcomVersion)
	fmt.Fprintf(b, "2 FORM %s\n", gedcomForm)
	fmt.Fprintf(b, "1 CHAR %s\n", gedcomCharset)
}

func (e *Encoder) writeIndividual(b *strings.Builder, tree *domain.Tree, p *domain.Individual, personXref, familyXref map[string]string) error {
	fmt.Fprintf(b, "0 %s %s\n", personXref[p.ID], tagIndi)
	fmt.Fprintf(b, "1 %s %s /%s/\n", tagName, p.GivenName, p.Surname)

	sex := p.Sex
	if sex == "" {
		sex = domain.SexUnknown
	}
	fmt.Fprintf(b, "1 %s %s\n", tagSex, sex)

	if p.BirthDate != "" || p.BirthPlace != "" {
		fmt.Fprintf(b, "1 %s\n", tagBirt)
		e.writeEventDetail(b, p.BirthDate, p.BirthPlace)
	}

	// Empty subtrees are omitted entirely; a deceased person without any
	// recorded death fact still gets the bare DEAT Y marker so the living
	// flag survives a round trip.
	if p.Deceased() {
		fmt.Fprintf(b, "1 %s\n", tagDeat)
		e.writeEventDetail(b, p.DeathDate, p.DeathPlace)
	} else if !p.Living {
		fmt.Fprintf(b, "1 %s Y\n", tagDeat)
	}

	if p.Occupation != "" {
		fmt.Fprintf(b, "1 %s %s\n", tagOccu, p.Occupation)
	}
	if p.Notes != "" {
		e.writeValue(b, 1, tagNote, p.Notes)
	}

	if fam := tree.ChildOfFamily(p.ID); fam != nil {
		xref, ok := familyXref[fam.ID]
		if !ok {
			return fmt.Errorf("person %s is a child of family %s which is not in the tree", p.ID, fam.ID)
		}
		fmt.Fprintf(b, "1 %s %s\n", tagFamc, xref)
	}
	for _, fam := range tree.SpouseFamilies(p.ID) {
		xref, ok := familyXref[fam.ID]
		if !ok {
			return fmt.Errorf("person %s is a spouse in family %s which is not in the tree", p.ID, fam.ID)
		}
		fmt.Fprintf(b, "1 %s %s\n", tagFams, xref)
	}

	return nil
}

func (e *Encoder) writeFamily(b *strings.Builder, f *domain.Family, personXref, familyXref map[string]string) error {
	lookup := func(personID, role string) (string, error) {
		xref, ok := personXref[personID]
		if !ok {
			return "", fmt.Errorf("family %s %s references person %s who is not in the tree", f.ID, role, personID)
		}
		return xref, nil
	}

	fmt.Fprintf(b, "0 %s %s\n", familyXref[f.ID], tagFam)

	if f.HusbandID != "" {
		xref, err := lookup(f.HusbandID, tagHusb)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "1 %s %s\n", tagHusb, xref)
	}
	if f.WifeID != "" {
		xref, err := lookup(f.WifeID, tagWife)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "1 %s %s\n", tagWife, xref)
	}
	for _, childID := range f.ChildIDs {
		xref, err := lookup(childID, tagChil)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "1 %s %s\n", tagChil, xref)
	}

	if f.MarriageDate != "" || f.MarriagePlace != "" {
		fmt.Fprintf(b, "1 %s\n", tagMarr)
		e.writeEventDetail(b, f.MarriageDate, f.MarriagePlace)
	}
	if f.DivorceDate != "" {
		fmt.Fprintf(b, "1 %s\n", tagDiv)
		fmt.Fprintf(b, "2 %s %s\n", tagDate, f.DivorceDate)
	}

	return nil
}

// checkPersonText rejects line breaks in fields that are emitted on a
// single physical line. Notes are exempt: they are the one field written
// through the CONT/CONC machinery.
func checkPersonText(p *domain.Individual) error {
	fields := []struct{ name, value string }{
		{"given name", p.GivenName},
		{"surname", p.Surname},
		{"birth date", p.BirthDate},
		{"birth place", p.BirthPlace},
		{"death date", p.DeathDate},
		{"death place", p.DeathPlace},
		{"occupation", p.Occupation},
	}
	for _, f := range fields {
		if strings.ContainsAny(f.value, "\r\n") {
			return fmt.Errorf("person %s: %s contains a line break", p.ID, f.name)
		}
	}
	return nil
}

func checkFamilyText(f *domain.Family) error {
	fields := []struct{ name, value string }{
		{"marriage date", f.MarriageDate},
		{"marriage place", f.MarriagePlace},
		{"divorce date", f.DivorceDate},
	}
	for _, fd := range fields {
		if strings.ContainsAny(fd.value, "\r\n") {
			return fmt.Errorf("family %s: %s contains a line break", f.ID, fd.name)
		}
	}
	return nil
}

// writeEventDetail emits the DATE/PLAC children of an event subtree,
// skipping empty fields rather than emitting blank lines
func (e *Encoder) writeEventDetail(b *strings.Builder, date, place string) {
	if date != "" {
		fmt.Fprintf(b, "2 %s %s\n", tagDate, date)
	}
	if place != "" {
		fmt.Fprintf(b, "2 %s %s\n", tagPlac, place)
	}
}

// writeValue emits a possibly multi-line value, translating embedded
// newlines into CONT records and wrapping overlong physical lines with
// CONC records
func (e *Encoder) writeValue(b *strings.Builder, level int, tag, value string) {
	contLevel := level + 1
	for i, segment := range strings.Split(value, "\n") {
		segTag, segLevel := tag, level
		if i > 0 {
			segTag, segLevel = tagCont, contLevel
		}

		chunks := chunkValue(segment, maxPhysicalLine-lineOverhead(segLevel, segTag))
		fmt.Fprintf(b, "%d %s %s\n", segLevel, segTag, chunks[0])
		for _, chunk := range chunks[1:] {
			fmt.Fprintf(b, "%d %s %s\n", contLevel, tagConc, chunk)
		}
	}
}

// lineOverhead is the physical-line cost of everything before the value
func lineOverhead(level int, tag string) int {
	return len(fmt.Sprintf("%d %s ", level, tag))
}

// chunkValue splits a single-line value into rune-safe chunks of at most
// room characters. It always returns at least one (possibly empty) chunk.
func chunkValue(s string, room int) []string {
	if room < 1 {
		room = 1
	}
	runes := []rune(s)
	if len(runes) <= room {
		return []string{s}
	}

	var chunks []string
	for len(runes) > room {
		chunks = append(chunks, string(runes[:room]))
		runes = runes[room:]
	}
	return append(chunks, string(runes))
}
