package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"lineaged/internal/domain"

	_ "modernc.org/sqlite"
)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db *sql.DB
}

// New creates a new SQLite repository, enabling WAL mode and foreign keys
// and migrating the schema
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Pragmas are per-connection, so the pool is pinned to one
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS persons (
		id TEXT PRIMARY KEY,
		given_name TEXT NOT NULL DEFAULT '',
		surname TEXT NOT NULL DEFAULT '',
		sex TEXT NOT NULL DEFAULT 'U',
		living INTEGER NOT NULL DEFAULT 1,
		birth_date TEXT NOT NULL DEFAULT '',
		birth_place TEXT NOT NULL DEFAULT '',
		death_date TEXT NOT NULL DEFAULT '',
		death_place TEXT NOT NULL DEFAULT '',
		occupation TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS families (
		id TEXT PRIMARY KEY,
		husband_id TEXT REFERENCES persons(id) ON DELETE SET NULL,
		wife_id TEXT REFERENCES persons(id) ON DELETE SET NULL,
		marriage_date TEXT NOT NULL DEFAULT '',
		marriage_place TEXT NOT NULL DEFAULT '',
		divorce_date TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS family_children (
		family_id TEXT NOT NULL REFERENCES families(id) ON DELETE CASCADE,
		person_id TEXT NOT NULL REFERENCES persons(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		PRIMARY KEY (family_id, person_id)
	);

	CREATE INDEX IF NOT EXISTS idx_families_husband ON families(husband_id);
	CREATE INDEX IF NOT EXISTS idx_families_wife ON families(wife_id);
	CREATE INDEX IF NOT EXISTS idx_family_children_person ON family_children(person_id);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// CreatePerson inserts a new person record
func (r *Repository) CreatePerson(ctx context.Context, p *domain.Individual) error {
	return insertPerson(ctx, r.db, p)
}

// GetPerson returns the person with the given ID, or nil if not found
func (r *Repository) GetPerson(ctx context.Context, id string) (*domain.Individual, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, given_name, surname, sex, living, birth_date, birth_place,
		       death_date, death_place, occupation, notes, created_at, updated_at
		FROM persons WHERE id = ?
	`, id)

	p, err := scanPerson(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person %s: %w", id, err)
	}
	return p, nil
}

// ListPersons returns all persons in insertion order
func (r *Repository) ListPersons(ctx context.Context) ([]*domain.Individual, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, given_name, surname, sex, living, birth_date, birth_place,
		       death_date, death_place, occupation, notes, created_at, updated_at
		FROM persons ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query persons: %w", err)
	}
	defer rows.Close()

	var persons []*domain.Individual
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating persons: %w", err)
	}
	return persons, nil
}

// UpdatePerson rewrites an existing person record
func (r *Repository) UpdatePerson(ctx context.Context, p *domain.Individual) error {
	p.UpdatedAt = time.Now()
	res, err := r.db.ExecContext(ctx, `
		UPDATE persons
		SET given_name = ?, surname = ?, sex = ?, living = ?,
		    birth_date = ?, birth_place = ?, death_date = ?, death_place = ?,
		    occupation = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`, p.GivenName, p.Surname, string(p.Sex), p.Living,
		p.BirthDate, p.BirthPlace, p.DeathDate, p.DeathPlace,
		p.Occupation, p.Notes, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update person %s: %w", p.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("person %s not found", p.ID)
	}
	return nil
}

// DeletePerson removes a person. Family links referencing the person are
// cleaned up by the schema's foreign key actions.
func (r *Repository) DeletePerson(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM persons WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete person %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("person %s not found", id)
	}
	return nil
}

// CreateFamily inserts a new family record along with its child links
func (r *Repository) CreateFamily(ctx context.Context, f *domain.Family) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertFamily(ctx, tx, f); err != nil {
		return err
	}
	return tx.Commit()
}

// GetFamily returns the family with the given ID, or nil if not found
func (r *Repository) GetFamily(ctx context.Context, id string) (*domain.Family, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, husband_id, wife_id, marriage_date, marriage_place,
		       divorce_date, created_at, updated_at
		FROM families WHERE id = ?
	`, id)

	f, err := scanFamily(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get family %s: %w", id, err)
	}

	if err := r.loadChildren(ctx, map[string]*domain.Family{f.ID: f}); err != nil {
		return nil, err
	}
	return f, nil
}

// ListFamilies returns all families in insertion order, child links included
func (r *Repository) ListFamilies(ctx context.Context) ([]*domain.Family, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, husband_id, wife_id, marriage_date, marriage_place,
		       divorce_date, created_at, updated_at
		FROM families ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query families: %w", err)
	}
	defer rows.Close()

	var families []*domain.Family
	byID := make(map[string]*domain.Family)
	for rows.Next() {
		f, err := scanFamily(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan family: %w", err)
		}
		families = append(families, f)
		byID[f.ID] = f
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating families: %w", err)
	}

	if err := r.loadChildren(ctx, byID); err != nil {
		return nil, err
	}
	return families, nil
}

// DeleteFamily removes a family and its child links
func (r *Repository) DeleteFamily(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM families WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete family %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("family %s not found", id)
	}
	return nil
}

// GetTree loads the complete entity graph
func (r *Repository) GetTree(ctx context.Context) (*domain.Tree, error) {
	persons, err := r.ListPersons(ctx)
	if err != nil {
		return nil, err
	}
	families, err := r.ListFamilies(ctx)
	if err != nil {
		return nil, err
	}

	tree := domain.NewTree()
	tree.Individuals = persons
	tree.Families = families
	return tree, nil
}

// ImportTree persists a parsed tree in a single transaction. A failure
// partway through leaves the database exactly as it was.
func (r *Repository) ImportTree(ctx context.Context, tree *domain.Tree) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range tree.Individuals {
		if err := insertPerson(ctx, tx, p); err != nil {
			return err
		}
	}
	for _, f := range tree.Families {
		if err := insertFamily(ctx, tx, f); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ClearTree removes every person and family
func (r *Repository) ClearTree(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Order matters due to foreign keys
	if _, err := tx.ExecContext(ctx, `DELETE FROM family_children`); err != nil {
		return fmt.Errorf("failed to clear family_children: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM families`); err != nil {
		return fmt.Errorf("failed to clear families: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM persons`); err != nil {
		return fmt.Errorf("failed to clear persons: %w", err)
	}

	return tx.Commit()
}

// loadChildren fills the ChildIDs of every family in the map, preserving
// the recorded child order
func (r *Repository) loadChildren(ctx context.Context, families map[string]*domain.Family) error {
	if len(families) == 0 {
		return nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT family_id, person_id FROM family_children ORDER BY family_id, position
	`)
	if err != nil {
		return fmt.Errorf("failed to query family children: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var familyID, personID string
		if err := rows.Scan(&familyID, &personID); err != nil {
			return fmt.Errorf("failed to scan family child: %w", err)
		}
		if f, ok := families[familyID]; ok {
			f.ChildIDs = append(f.ChildIDs, personID)
		}
	}
	return rows.Err()
}
