package service

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"lineaged/internal/codec"
	"lineaged/internal/domain"
	"lineaged/internal/repository"
)

// TreeService provides business logic for family-tree operations: GEDCOM
// validate/import/export, YAML import/export, and entity CRUD
type TreeService struct {
	repo     repository.Repository
	eventBus *EventBus
	decoder  *codec.Decoder
	encoder  *codec.Encoder
}

// NewTreeService creates a new tree service
func NewTreeService(repo repository.Repository, eventBus *EventBus) *TreeService {
	return &TreeService{
		repo:     repo,
		eventBus: eventBus,
		decoder:  codec.NewDecoder(),
		encoder:  codec.NewEncoder(),
	}
}

// SetMaxReportIssues caps the number of errors in validation reports
func (s *TreeService) SetMaxReportIssues(n int) {
	s.decoder.MaxIssues = n
}

// ImportResult represents the result of an import operation
type ImportResult struct {
	PeopleCreated   int            `json:"people_created"`
	FamiliesCreated int            `json:"families_created"`
	Warnings        []domain.Issue `json:"warnings,omitempty"`
	Incomplete      bool           `json:"incomplete,omitempty"`
}

// Stats summarizes the stored tree
type Stats struct {
	PeopleCount   int `json:"people_count"`
	FamiliesCount int `json:"families_count"`
}

// ValidateGEDCOM runs a dry-run parse and returns the preview report.
// Nothing is persisted regardless of the outcome.
func (s *TreeService) ValidateGEDCOM(data []byte) *domain.ValidationReport {
	return s.decoder.Validate(bytes.NewReader(data))
}

// ImportGEDCOM parses GEDCOM text and commits the resulting entities in a
// single transaction. A parse error means nothing is written; a commit
// error rolls everything back.
func (s *TreeService) ImportGEDCOM(ctx context.Context, data []byte) (*ImportResult, error) {
	result, err := s.decoder.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse GEDCOM: %w", err)
	}

	if err := s.repo.ImportTree(ctx, result.Tree); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}

	s.eventBus.Publish(Event{
		Type: EventTreeImported,
		Payload: map[string]int{
			"people":   len(result.Tree.Individuals),
			"families": len(result.Tree.Families),
		},
	})

	return &ImportResult{
		PeopleCreated:   len(result.Tree.Individuals),
		FamiliesCreated: len(result.Tree.Families),
		Warnings:        result.Warnings,
		Incomplete:      result.Incomplete,
	}, nil
}

// ExportGEDCOM serializes the stored tree to the writer. The document is
// built in full before anything is written, so a serialization error
// produces no partial output.
func (s *TreeService) ExportGEDCOM(ctx context.Context, w io.Writer) error {
	tree, err := s.repo.GetTree(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tree: %w", err)
	}
	return s.encoder.Export(tree, w)
}

// ImportYAML imports entities from the YAML tree format
func (s *TreeService) ImportYAML(ctx context.Context, data []byte) (*ImportResult, error) {
	tree, err := codec.NewYAMLCodec().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	for _, p := range tree.Individuals {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	for _, f := range tree.Families {
		if err := f.Validate(); err != nil {
			return nil, err
		}
	}

	if err := s.repo.ImportTree(ctx, tree); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}

	s.eventBus.Publish(Event{
		Type: EventTreeImported,
		Payload: map[string]int{
			"people":   len(tree.Individuals),
			"families": len(tree.Families),
		},
	})

	return &ImportResult{
		PeopleCreated:   len(tree.Individuals),
		FamiliesCreated: len(tree.Families),
	}, nil
}

// ExportYAML serializes the stored tree as YAML
func (s *TreeService) ExportYAML(ctx context.Context, w io.Writer) error {
	tree, err := s.repo.GetTree(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tree: %w", err)
	}
	return codec.NewYAMLCodec().Export(tree, w)
}

// GetTree returns the complete entity graph
func (s *TreeService) GetTree(ctx context.Context) (*domain.Tree, error) {
	return s.repo.GetTree(ctx)
}

// ClearTree removes every stored entity
func (s *TreeService) ClearTree(ctx context.Context) error {
	if err := s.repo.ClearTree(ctx); err != nil {
		return err
	}
	s.eventBus.Publish(Event{Type: EventTreeCleared})
	return nil
}

// GetStats returns entity counts for the stored tree
func (s *TreeService) GetStats(ctx context.Context) (*Stats, error) {
	tree, err := s.repo.GetTree(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		PeopleCount:   len(tree.Individuals),
		FamiliesCount: len(tree.Families),
	}, nil
}

// GetPerson retrieves a single person by ID
func (s *TreeService) GetPerson(ctx context.Context, id string) (*domain.Individual, error) {
	p, err := s.repo.GetPerson(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("person %s not found", id)
	}
	return p, nil
}

// ListPersons returns all persons
func (s *TreeService) ListPersons(ctx context.Context) ([]*domain.Individual, error) {
	return s.repo.ListPersons(ctx)
}

// CreatePerson creates a new person
func (s *TreeService) CreatePerson(ctx context.Context, p *domain.Individual) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if err := s.repo.CreatePerson(ctx, p); err != nil {
		return err
	}

	s.eventBus.Publish(Event{
		Type:    EventPersonCreated,
		Payload: map[string]string{"person_id": p.ID},
	})
	return nil
}

// UpdatePerson updates an existing person
func (s *TreeService) UpdatePerson(ctx context.Context, p *domain.Individual) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if err := s.repo.UpdatePerson(ctx, p); err != nil {
		return err
	}

	s.eventBus.Publish(Event{
		Type:    EventPersonUpdated,
		Payload: map[string]string{"person_id": p.ID},
	})
	return nil
}

// DeletePerson removes a person
func (s *TreeService) DeletePerson(ctx context.Context, id string) error {
	if err := s.repo.DeletePerson(ctx, id); err != nil {
		return err
	}

	s.eventBus.Publish(Event{
		Type:    EventPersonDeleted,
		Payload: map[string]string{"person_id": id},
	})
	return nil
}

// GetFamily retrieves a single family by ID
func (s *TreeService) GetFamily(ctx context.Context, id string) (*domain.Family, error) {
	f, err := s.repo.GetFamily(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("family %s not found", id)
	}
	return f, nil
}

// ListFamilies returns all families
func (s *TreeService) ListFamilies(ctx context.Context) ([]*domain.Family, error) {
	return s.repo.ListFamilies(ctx)
}

// CreateFamily creates a new family after checking its structural
// invariants and that every referenced person exists
func (s *TreeService) CreateFamily(ctx context.Context, f *domain.Family) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if err := s.checkMembers(ctx, f); err != nil {
		return err
	}

	if err := s.repo.CreateFamily(ctx, f); err != nil {
		return err
	}

	s.eventBus.Publish(Event{
		Type:    EventFamilyCreated,
		Payload: map[string]string{"family_id": f.ID},
	})
	return nil
}

// DeleteFamily removes a family
func (s *TreeService) DeleteFamily(ctx context.Context, id string) error {
	if err := s.repo.DeleteFamily(ctx, id); err != nil {
		return err
	}

	s.eventBus.Publish(Event{
		Type:    EventFamilyDeleted,
		Payload: map[string]string{"family_id": id},
	})
	return nil
}

// checkMembers verifies that every person the family references exists
func (s *TreeService) checkMembers(ctx context.Context, f *domain.Family) error {
	ids := make([]string, 0, len(f.ChildIDs)+2)
	if f.HusbandID != "" {
		ids = append(ids, f.HusbandID)
	}
	if f.WifeID != "" {
		ids = append(ids, f.WifeID)
	}
	ids = append(ids, f.ChildIDs...)

	for _, id := range ids {
		p, err := s.repo.GetPerson(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("family references unknown person %s", id)
		}
	}
	return nil
}
