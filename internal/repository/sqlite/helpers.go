package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"lineaged/internal/domain"
)

// execer is satisfied by both *sql.DB and *sql.Tx so the insert helpers
// can run standalone or inside the import transaction
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// scanner is satisfied by both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func insertPerson(ctx context.Context, e execer, p *domain.Individual) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}

	_, err := e.ExecContext(ctx, `
		INSERT INTO persons (id, given_name, surname, sex, living, birth_date,
			birth_place, death_date, death_place, occupation, notes,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.GivenName, p.Surname, string(p.Sex), p.Living,
		p.BirthDate, p.BirthPlace, p.DeathDate, p.DeathPlace,
		p.Occupation, p.Notes, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert person %s: %w", p.ID, err)
	}
	return nil
}

func insertFamily(ctx context.Context, e execer, f *domain.Family) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	if f.UpdatedAt.IsZero() {
		f.UpdatedAt = f.CreatedAt
	}

	_, err := e.ExecContext(ctx, `
		INSERT INTO families (id, husband_id, wife_id, marriage_date,
			marriage_place, divorce_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, f.ID, stringToNull(f.HusbandID), stringToNull(f.WifeID),
		f.MarriageDate, f.MarriagePlace, f.DivorceDate, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert family %s: %w", f.ID, err)
	}

	for i, childID := range f.ChildIDs {
		if _, err := e.ExecContext(ctx, `
			INSERT INTO family_children (family_id, person_id, position)
			VALUES (?, ?, ?)
		`, f.ID, childID, i); err != nil {
			return fmt.Errorf("failed to insert child link for family %s: %w", f.ID, err)
		}
	}
	return nil
}

func scanPerson(s scanner) (*domain.Individual, error) {
	var (
		p   domain.Individual
		sex string
	)
	if err := s.Scan(&p.ID, &p.GivenName, &p.Surname, &sex, &p.Living,
		&p.BirthDate, &p.BirthPlace, &p.DeathDate, &p.DeathPlace,
		&p.Occupation, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Sex = domain.Sex(sex)
	return &p, nil
}

func scanFamily(s scanner) (*domain.Family, error) {
	var (
		f             domain.Family
		husband, wife sql.NullString
	)
	if err := s.Scan(&f.ID, &husband, &wife, &f.MarriageDate, &f.MarriagePlace,
		&f.DivorceDate, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	f.HusbandID = nullToString(husband)
	f.WifeID = nullToString(wife)
	return &f, nil
}

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
