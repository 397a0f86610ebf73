package domain

// Tree is the complete entity graph: every individual and every family.
// It is the unit of transfer between the codec, the repository, and the
// service layer.
type Tree struct {
	Individuals []*Individual `json:"individuals"`
	Families    []*Family     `json:"families"`
}

// NewTree creates an empty tree with initialized collections
func NewTree() *Tree {
	return &Tree{
		Individuals: make([]*Individual, 0),
		Families:    make([]*Family, 0),
	}
}

// AddIndividual appends a person to the tree
func (t *Tree) AddIndividual(p *Individual) {
	t.Individuals = append(t.Individuals, p)
}

// AddFamily appends a family to the tree
func (t *Tree) AddFamily(f *Family) {
	t.Families = append(t.Families, f)
}

// Person returns the individual with the given ID, or nil
func (t *Tree) Person(id string) *Individual {
	for _, p := range t.Individuals {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ChildOfFamily returns the family in which the person is a child, or nil
func (t *Tree) ChildOfFamily(personID string) *Family {
	for _, f := range t.Families {
		if f.HasChild(personID) {
			return f
		}
	}
	return nil
}

// SpouseFamilies returns every family in which the person is a spouse,
// in tree order. More than one entry indicates remarriage.
func (t *Tree) SpouseFamilies(personID string) []*Family {
	var out []*Family
	for _, f := range t.Families {
		if f.HasSpouse(personID) {
			out = append(out, f)
		}
	}
	return out
}
