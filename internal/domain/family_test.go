package domain

import "testing"

func TestFamilyDegenerate(t *testing.T) {
	t.Run("empty family is degenerate", func(t *testing.T) {
		f := NewFamily()
		if !f.Degenerate() {
			t.Error("expected family with no members to be degenerate")
		}
	})

	t.Run("family with only a child is not degenerate", func(t *testing.T) {
		f := NewFamily()
		f.ChildIDs = []string{"p1"}
		if f.Degenerate() {
			t.Error("expected family with a child to not be degenerate")
		}
	})

	t.Run("family with only a spouse is not degenerate", func(t *testing.T) {
		f := NewFamily()
		f.WifeID = "p1"
		if f.Degenerate() {
			t.Error("expected family with a wife to not be degenerate")
		}
	})
}

func TestFamilyValidate(t *testing.T) {
	t.Run("valid family passes", func(t *testing.T) {
		f := NewFamily()
		f.HusbandID = "p1"
		f.WifeID = "p2"
		f.ChildIDs = []string{"p3"}
		if err := f.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("degenerate family fails", func(t *testing.T) {
		f := NewFamily()
		if err := f.Validate(); err == nil {
			t.Error("expected error for degenerate family")
		}
	})

	t.Run("spouse listed as child fails", func(t *testing.T) {
		f := NewFamily()
		f.HusbandID = "p1"
		f.ChildIDs = []string{"p1"}
		if err := f.Validate(); err == nil {
			t.Error("expected error when spouse is also a child")
		}
	})

	t.Run("missing ID fails", func(t *testing.T) {
		f := &Family{HusbandID: "p1"}
		if err := f.Validate(); err == nil {
			t.Error("expected error for missing ID")
		}
	})
}

func TestFamilyEnded(t *testing.T) {
	f := NewFamily()
	f.HusbandID = "p1"
	if f.Ended() {
		t.Error("expected family without divorce date to not be ended")
	}
	f.DivorceDate = "3 MAR 1970"
	if !f.Ended() {
		t.Error("expected family with divorce date to be ended")
	}
}

func TestTreeLookups(t *testing.T) {
	tree := NewTree()

	father := NewIndividual("John", "Smith")
	mother := NewIndividual("Jane", "Doe")
	child := NewIndividual("Tim", "Smith")
	tree.AddIndividual(father)
	tree.AddIndividual(mother)
	tree.AddIndividual(child)

	fam := NewFamily()
	fam.HusbandID = father.ID
	fam.WifeID = mother.ID
	fam.ChildIDs = []string{child.ID}
	tree.AddFamily(fam)

	second := NewFamily()
	second.HusbandID = father.ID
	tree.AddFamily(second)

	t.Run("Person finds by ID", func(t *testing.T) {
		if got := tree.Person(mother.ID); got != mother {
			t.Errorf("expected to find mother, got %v", got)
		}
		if got := tree.Person("missing"); got != nil {
			t.Errorf("expected nil for unknown ID, got %v", got)
		}
	})

	t.Run("ChildOfFamily finds the child link", func(t *testing.T) {
		if got := tree.ChildOfFamily(child.ID); got != fam {
			t.Errorf("expected child's family, got %v", got)
		}
		if got := tree.ChildOfFamily(father.ID); got != nil {
			t.Errorf("expected nil for a non-child, got %v", got)
		}
	})

	t.Run("SpouseFamilies returns remarriages in order", func(t *testing.T) {
		fams := tree.SpouseFamilies(father.ID)
		if len(fams) != 2 {
			t.Fatalf("expected 2 spouse families, got %d", len(fams))
		}
		if fams[0] != fam || fams[1] != second {
			t.Error("expected spouse families in tree order")
		}
	})
}

func TestIndividual(t *testing.T) {
	t.Run("new individual defaults", func(t *testing.T) {
		p := NewIndividual("Ada", "Lovelace")
		if p.ID == "" {
			t.Error("expected a generated ID")
		}
		if p.Sex != SexUnknown {
			t.Errorf("expected sex U, got %s", p.Sex)
		}
		if !p.Living {
			t.Error("expected new individual to be living")
		}
	})

	t.Run("full name", func(t *testing.T) {
		p := NewIndividual("Ada", "Lovelace")
		if got := p.FullName(); got != "Ada Lovelace" {
			t.Errorf("expected 'Ada Lovelace', got %q", got)
		}
		p.Surname = ""
		if got := p.FullName(); got != "Ada" {
			t.Errorf("expected 'Ada', got %q", got)
		}
	})

	t.Run("deceased follows death facts", func(t *testing.T) {
		p := NewIndividual("Ada", "Lovelace")
		if p.Deceased() {
			t.Error("expected no death facts")
		}
		p.DeathDate = "27 NOV 1852"
		if !p.Deceased() {
			t.Error("expected deceased with a death date")
		}
	})

	t.Run("validate requires a name", func(t *testing.T) {
		p := NewIndividual("", "")
		if err := p.Validate(); err == nil {
			t.Error("expected error for nameless person")
		}
	})

	t.Run("validate rejects living person with death facts", func(t *testing.T) {
		p := NewIndividual("Ada", "Lovelace")
		p.DeathDate = "27 NOV 1852"
		if err := p.Validate(); err == nil {
			t.Error("expected error for living person with a death date")
		}
		p.Living = false
		if err := p.Validate(); err != nil {
			t.Errorf("expected no error once marked not living, got %v", err)
		}
	})
}

func TestParseSex(t *testing.T) {
	tests := []struct {
		input string
		want  Sex
	}{
		{"M", SexMale},
		{"m", SexMale},
		{"F", SexFemale},
		{" f ", SexFemale},
		{"U", SexUnknown},
		{"", SexUnknown},
		{"X", SexUnknown},
	}
	for _, tt := range tests {
		if got := ParseSex(tt.input); got != tt.want {
			t.Errorf("ParseSex(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}
