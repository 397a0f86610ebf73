package codec

import (
	"strings"
	"testing"

	"lineaged/internal/domain"
)

func newPerson(given, surname string, sex domain.Sex) *domain.Individual {
	p := domain.NewIndividual(given, surname)
	p.Sex = sex
	return p
}

func sampleTree() *domain.Tree {
	john := newPerson("John", "Smith", domain.SexMale)
	john.BirthDate = "2 JAN 1960"
	john.BirthPlace = "Boston, Massachusetts"
	john.Occupation = "Carpenter"

	jane := newPerson("Jane", "Doe", domain.SexFemale)
	tim := newPerson("Tim", "Smith", domain.SexMale)

	fam := domain.NewFamily()
	fam.HusbandID = john.ID
	fam.WifeID = jane.ID
	fam.ChildIDs = []string{tim.ID}
	fam.MarriageDate = "14 FEB 1985"
	fam.MarriagePlace = "Boston"

	tree := domain.NewTree()
	tree.AddIndividual(john)
	tree.AddIndividual(jane)
	tree.AddIndividual(tim)
	tree.AddFamily(fam)
	return tree
}

func TestEncodeGolden(t *testing.T) {
	want := `0 HEAD
1 SOUR LINEAGED
1 GEDC
2 VERS 5.5.1
2 FORM LINEAGE-LINKED
1 CHAR UTF-8
0 @I1@ INDI
1 NAME John /Smith/
1 SEX M
1 BIRT
2 DATE 2 JAN 1960
2 PLAC Boston, Massachusetts
1 OCCU Carpenter
1 FAMS @F1@
0 @I2@ INDI
1 NAME Jane /Doe/
1 SEX F
1 FAMS @F1@
0 @I3@ INDI
1 NAME Tim /Smith/
1 SEX M
1 FAMC @F1@
0 @F1@ FAM
1 HUSB @I1@
1 WIFE @I2@
1 CHIL @I3@
1 MARR
2 DATE 14 FEB 1985
2 PLAC Boston
0 TRLR
`

	tree := sampleTree()
	got, err := NewEncoder().Encode(tree)
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	if got != want {
		t.Errorf("encoded output mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}

	again, err := NewEncoder().Encode(tree)
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	if again != got {
		t.Error("expected byte-identical output for repeated encodes")
	}
}

func TestEncodeOmitsEmptySubtrees(t *testing.T) {
	tree := domain.NewTree()
	tree.AddIndividual(newPerson("Ann", "Lee", domain.SexFemale))

	got, err := NewEncoder().Encode(tree)
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	for _, tag := range []string{"BIRT", "DEAT", "OCCU", "NOTE", "FAMC", "FAMS"} {
		if strings.Contains(got, tag) {
			t.Errorf("expected no %s for a person without that data:\n%s", tag, got)
		}
	}
}

func TestEncodeDeceasedMarker(t *testing.T) {
	t.Run("bare marker when no death facts", func(t *testing.T) {
		p := newPerson("Ann", "Lee", domain.SexFemale)
		p.Living = false

		tree := domain.NewTree()
		tree.AddIndividual(p)

		got, err := NewEncoder().Encode(tree)
		if err != nil {
			t.Fatalf("unexpected encode error: %v", err)
		}
		if !strings.Contains(got, "1 DEAT Y\n") {
			t.Errorf("expected bare DEAT Y marker:\n%s", got)
		}
	})

	t.Run("death subtree when facts exist", func(t *testing.T) {
		p := newPerson("Ann", "Lee", domain.SexFemale)
		p.Living = false
		p.DeathDate = "3 MAR 1990"

		tree := domain.NewTree()
		tree.AddIndividual(p)

		got, err := NewEncoder().Encode(tree)
		if err != nil {
			t.Fatalf("unexpected encode error: %v", err)
		}
		if !strings.Contains(got, "1 DEAT\n2 DATE 3 MAR 1990\n") {
			t.Errorf("expected DEAT subtree with date:\n%s", got)
		}
		if strings.Contains(got, "DEAT Y") {
			t.Errorf("expected no bare marker alongside death facts:\n%s", got)
		}
	})
}

func TestEncodeUnknownSexDefaults(t *testing.T) {
	p := domain.NewIndividual("Ann", "Lee")
	p.Sex = ""

	tree := domain.NewTree()
	tree.AddIndividual(p)

	got, err := NewEncoder().Encode(tree)
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	if !strings.Contains(got, "1 SEX U\n") {
		t.Errorf("expected SEX U for unset sex:\n%s", got)
	}
}

func TestEncodeMultilineNote(t *testing.T) {
	p := newPerson("Ann", "Lee", domain.SexFemale)
	p.Notes = "First paragraph\nSecond paragraph"

	tree := domain.NewTree()
	tree.AddIndividual(p)

	got, err := NewEncoder().Encode(tree)
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	if !strings.Contains(got, "1 NOTE First paragraph\n2 CONT Second paragraph\n") {
		t.Errorf("expected CONT continuation:\n%s", got)
	}
}

func TestEncodeLongNoteWrapped(t *testing.T) {
	p := newPerson("Ann", "Lee", domain.SexFemale)
	p.Notes = strings.Repeat("x", 600)

	tree := domain.NewTree()
	tree.AddIndividual(p)

	got, err := NewEncoder().Encode(tree)
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	if !strings.Contains(got, "2 CONC ") {
		t.Errorf("expected CONC wrapping for overlong note:\n%s", got)
	}
	for _, physical := range strings.Split(strings.TrimRight(got, "\n"), "\n") {
		if len(physical) > maxPhysicalLine {
			t.Errorf("physical line exceeds %d chars: %q", maxPhysicalLine, physical)
		}
	}

	result := decode(t, got)
	if notes := result.Tree.Individuals[0].Notes; notes != p.Notes {
		t.Errorf("expected note to survive wrapping, got %d chars", len(notes))
	}
}

func TestEncodeUnknownPersonReference(t *testing.T) {
	fam := domain.NewFamily()
	fam.HusbandID = "nobody"

	tree := domain.NewTree()
	tree.AddFamily(fam)

	_, err := NewEncoder().Encode(tree)
	if err == nil {
		t.Fatal("expected error for family referencing an unknown person")
	}
	if !strings.Contains(err.Error(), "not in the tree") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestEncodeInvalidFamily(t *testing.T) {
	tree := domain.NewTree()
	tree.AddFamily(domain.NewFamily())

	_, err := NewEncoder().Encode(tree)
	if err == nil {
		t.Fatal("expected error for a family with no members")
	}
}

func TestExportLeavesWriterUntouchedOnError(t *testing.T) {
	tree := domain.NewTree()
	tree.AddFamily(domain.NewFamily())

	var sb strings.Builder
	if err := NewEncoder().Export(tree, &sb); err == nil {
		t.Fatal("expected export error")
	}
	if sb.Len() != 0 {
		t.Errorf("expected no partial output, got %d bytes", sb.Len())
	}
}

func TestEncodeRejectsLineBreaksInSingleLineFields(t *testing.T) {
	t.Run("person field", func(t *testing.T) {
		p := newPerson("Ann", "Lee", domain.SexFemale)
		p.Occupation = "Day laborer\nand farmer"

		tree := domain.NewTree()
		tree.AddIndividual(p)

		_, err := NewEncoder().Encode(tree)
		if err == nil {
			t.Fatal("expected error for occupation with embedded newline")
		}
		if !strings.Contains(err.Error(), "line break") {
			t.Errorf("unexpected error: %v", err)
		}

		var sb strings.Builder
		if err := NewEncoder().Export(tree, &sb); err == nil {
			t.Fatal("expected export error")
		}
		if sb.Len() != 0 {
			t.Errorf("expected no partial output, got %d bytes", sb.Len())
		}
	})

	t.Run("family field", func(t *testing.T) {
		p := newPerson("Ann", "Lee", domain.SexFemale)
		f := domain.NewFamily()
		f.WifeID = p.ID
		f.MarriagePlace = "Boston\nMassachusetts"

		tree := domain.NewTree()
		tree.AddIndividual(p)
		tree.AddFamily(f)

		_, err := NewEncoder().Encode(tree)
		if err == nil {
			t.Fatal("expected error for marriage place with embedded newline")
		}
		if !strings.Contains(err.Error(), "line break") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("notes may span lines", func(t *testing.T) {
		p := newPerson("Ann", "Lee", domain.SexFemale)
		p.Notes = "First line.\nSecond line."

		tree := domain.NewTree()
		tree.AddIndividual(p)

		if _, err := NewEncoder().Encode(tree); err != nil {
			t.Fatalf("unexpected encode error: %v", err)
		}
	})
}

func TestEncodeCustomSource(t *testing.T) {
	enc := NewEncoder()
	enc.Source = "OTHERAPP"

	got, err := enc.Encode(domain.NewTree())
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	if !strings.Contains(got, "1 SOUR OTHERAPP\n") {
		t.Errorf("expected custom source in header:\n%s", got)
	}
}
