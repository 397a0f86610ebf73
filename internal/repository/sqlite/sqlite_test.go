package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"lineaged/internal/domain"
)

// newTestRepo opens a repository against a throwaway database file.
// A file path is used rather than :memory: because the connection pool
// would otherwise hand each connection its own empty database.
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testPerson(given, surname string) *domain.Individual {
	p := domain.NewIndividual(given, surname)
	p.Sex = domain.SexFemale
	p.BirthDate = "2 JAN 1960"
	p.BirthPlace = "Boston, Massachusetts"
	p.Occupation = "Carpenter"
	p.Notes = "First line.\nSecond line."
	return p
}

func TestPersonCRUD(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := testPerson("Ada", "Brook")
	if err := repo.CreatePerson(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("get returns all fields", func(t *testing.T) {
		got, err := repo.GetPerson(ctx, p.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got == nil {
			t.Fatal("expected person, got nil")
		}
		if got.GivenName != "Ada" || got.Surname != "Brook" {
			t.Errorf("name mismatch: %q %q", got.GivenName, got.Surname)
		}
		if got.Sex != domain.SexFemale {
			t.Errorf("sex mismatch: %s", got.Sex)
		}
		if !got.Living {
			t.Error("expected living")
		}
		if got.BirthDate != p.BirthDate || got.BirthPlace != p.BirthPlace {
			t.Errorf("birth mismatch: %q %q", got.BirthDate, got.BirthPlace)
		}
		if got.Occupation != p.Occupation || got.Notes != p.Notes {
			t.Errorf("detail mismatch: %q %q", got.Occupation, got.Notes)
		}
		if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
			t.Error("expected timestamps to be set")
		}
	})

	t.Run("get missing returns nil", func(t *testing.T) {
		got, err := repo.GetPerson(ctx, "missing")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("update persists changes", func(t *testing.T) {
		p.Living = false
		p.DeathDate = "22 NOV 1971"
		if err := repo.UpdatePerson(ctx, p); err != nil {
			t.Fatalf("update: %v", err)
		}
		got, err := repo.GetPerson(ctx, p.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Living || got.DeathDate != "22 NOV 1971" {
			t.Errorf("update not persisted: living=%t death=%q", got.Living, got.DeathDate)
		}
	})

	t.Run("update missing person fails", func(t *testing.T) {
		ghost := domain.NewIndividual("No", "One")
		err := repo.UpdatePerson(ctx, ghost)
		if err == nil || !strings.Contains(err.Error(), "not found") {
			t.Errorf("expected not found error, got %v", err)
		}
	})

	t.Run("delete removes the person", func(t *testing.T) {
		if err := repo.DeletePerson(ctx, p.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		got, err := repo.GetPerson(ctx, p.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got != nil {
			t.Error("expected person to be gone")
		}
		err = repo.DeletePerson(ctx, p.ID)
		if err == nil || !strings.Contains(err.Error(), "not found") {
			t.Errorf("expected not found error, got %v", err)
		}
	})
}

func TestListPersonsOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	names := []string{"Ada", "Bram", "Clara", "Dov"}
	for _, name := range names {
		if err := repo.CreatePerson(ctx, domain.NewIndividual(name, "Brook")); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	persons, err := repo.ListPersons(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(persons) != len(names) {
		t.Fatalf("expected %d persons, got %d", len(names), len(persons))
	}
	for i, name := range names {
		if persons[i].GivenName != name {
			t.Errorf("position %d: expected %s, got %s", i, name, persons[i].GivenName)
		}
	}
}

func TestFamilyCRUD(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	husband := domain.NewIndividual("Bram", "Calder")
	wife := domain.NewIndividual("Ada", "Calder")
	kids := []*domain.Individual{
		domain.NewIndividual("Clara", "Calder"),
		domain.NewIndividual("Dov", "Calder"),
		domain.NewIndividual("Edith", "Calder"),
	}
	for _, p := range append([]*domain.Individual{husband, wife}, kids...) {
		if err := repo.CreatePerson(ctx, p); err != nil {
			t.Fatalf("create person: %v", err)
		}
	}

	f := domain.NewFamily()
	f.HusbandID = husband.ID
	f.WifeID = wife.ID
	f.ChildIDs = []string{kids[0].ID, kids[1].ID, kids[2].ID}
	f.MarriageDate = "5 JUN 1930"
	f.MarriagePlace = "Oslo"
	if err := repo.CreateFamily(ctx, f); err != nil {
		t.Fatalf("create family: %v", err)
	}

	t.Run("get preserves child order", func(t *testing.T) {
		got, err := repo.GetFamily(ctx, f.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got == nil {
			t.Fatal("expected family, got nil")
		}
		if got.HusbandID != husband.ID || got.WifeID != wife.ID {
			t.Errorf("spouse mismatch: %q %q", got.HusbandID, got.WifeID)
		}
		if got.MarriageDate != "5 JUN 1930" || got.MarriagePlace != "Oslo" {
			t.Errorf("marriage mismatch: %q %q", got.MarriageDate, got.MarriagePlace)
		}
		if len(got.ChildIDs) != 3 {
			t.Fatalf("expected 3 children, got %d", len(got.ChildIDs))
		}
		for i, kid := range kids {
			if got.ChildIDs[i] != kid.ID {
				t.Errorf("child %d out of order", i)
			}
		}
	})

	t.Run("get missing returns nil", func(t *testing.T) {
		got, err := repo.GetFamily(ctx, "missing")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("deleting a spouse clears the link", func(t *testing.T) {
		if err := repo.DeletePerson(ctx, husband.ID); err != nil {
			t.Fatalf("delete person: %v", err)
		}
		got, err := repo.GetFamily(ctx, f.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.HusbandID != "" {
			t.Errorf("expected husband link cleared, got %q", got.HusbandID)
		}
		if got.WifeID != wife.ID {
			t.Error("expected wife link untouched")
		}
	})

	t.Run("deleting a child removes the membership", func(t *testing.T) {
		if err := repo.DeletePerson(ctx, kids[1].ID); err != nil {
			t.Fatalf("delete person: %v", err)
		}
		got, err := repo.GetFamily(ctx, f.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if len(got.ChildIDs) != 2 {
			t.Fatalf("expected 2 children, got %d", len(got.ChildIDs))
		}
		if got.ChildIDs[0] != kids[0].ID || got.ChildIDs[1] != kids[2].ID {
			t.Error("expected remaining children in order")
		}
	})

	t.Run("delete removes the family", func(t *testing.T) {
		if err := repo.DeleteFamily(ctx, f.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		got, err := repo.GetFamily(ctx, f.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got != nil {
			t.Error("expected family to be gone")
		}
		err = repo.DeleteFamily(ctx, f.ID)
		if err == nil || !strings.Contains(err.Error(), "not found") {
			t.Errorf("expected not found error, got %v", err)
		}
	})
}

func TestImportTree(t *testing.T) {
	t.Run("imports people and families", func(t *testing.T) {
		repo := newTestRepo(t)
		ctx := context.Background()

		p1 := domain.NewIndividual("Ada", "Brook")
		p2 := domain.NewIndividual("Bram", "Brook")
		f := domain.NewFamily()
		f.HusbandID = p2.ID
		f.WifeID = p1.ID

		tree := domain.NewTree()
		tree.AddIndividual(p1)
		tree.AddIndividual(p2)
		tree.AddFamily(f)

		if err := repo.ImportTree(ctx, tree); err != nil {
			t.Fatalf("import: %v", err)
		}

		got, err := repo.GetTree(ctx)
		if err != nil {
			t.Fatalf("get tree: %v", err)
		}
		if len(got.Individuals) != 2 || len(got.Families) != 1 {
			t.Errorf("expected 2 persons and 1 family, got %d and %d",
				len(got.Individuals), len(got.Families))
		}
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		repo := newTestRepo(t)
		ctx := context.Background()

		p := domain.NewIndividual("Ada", "Brook")
		dup := domain.NewIndividual("Bram", "Brook")
		dup.ID = p.ID

		tree := domain.NewTree()
		tree.AddIndividual(p)
		tree.AddIndividual(dup)

		if err := repo.ImportTree(ctx, tree); err == nil {
			t.Fatal("expected import to fail on duplicate ID")
		}

		persons, err := repo.ListPersons(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(persons) != 0 {
			t.Errorf("expected rollback to leave no persons, got %d", len(persons))
		}
	})
}

func TestClearTree(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p1 := domain.NewIndividual("Ada", "Brook")
	p2 := domain.NewIndividual("Bram", "Brook")
	f := domain.NewFamily()
	f.HusbandID = p2.ID
	f.WifeID = p1.ID
	f.ChildIDs = nil

	tree := domain.NewTree()
	tree.AddIndividual(p1)
	tree.AddIndividual(p2)
	tree.AddFamily(f)
	if err := repo.ImportTree(ctx, tree); err != nil {
		t.Fatalf("import: %v", err)
	}

	if err := repo.ClearTree(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	got, err := repo.GetTree(ctx)
	if err != nil {
		t.Fatalf("get tree: %v", err)
	}
	if len(got.Individuals) != 0 || len(got.Families) != 0 {
		t.Errorf("expected empty tree, got %d persons and %d families",
			len(got.Individuals), len(got.Families))
	}
}
