package repository

import (
	"context"

	"lineaged/internal/domain"
)

// Repository defines the interface for family-tree data access. The codec
// layer never touches it directly; the service layer calls it after a parse
// succeeds (import) or before a serialize begins (export).
//
// List methods return entities in insertion order. The GEDCOM encoder
// assigns cross-reference numbers in that order, so an unchanged tree
// re-exports byte-identically.
type Repository interface {
	// Person operations
	CreatePerson(ctx context.Context, p *domain.Individual) error
	GetPerson(ctx context.Context, id string) (*domain.Individual, error)
	ListPersons(ctx context.Context) ([]*domain.Individual, error)
	UpdatePerson(ctx context.Context, p *domain.Individual) error
	DeletePerson(ctx context.Context, id string) error

	// Family operations
	CreateFamily(ctx context.Context, f *domain.Family) error
	GetFamily(ctx context.Context, id string) (*domain.Family, error)
	ListFamilies(ctx context.Context) ([]*domain.Family, error)
	DeleteFamily(ctx context.Context, id string) error

	// Bulk operations
	GetTree(ctx context.Context) (*domain.Tree, error)
	// ImportTree persists a parsed tree in a single transaction: either
	// every entity is written or none is.
	ImportTree(ctx context.Context, tree *domain.Tree) error
	ClearTree(ctx context.Context) error

	// Close releases resources
	Close() error
}
