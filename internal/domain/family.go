package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Family represents a union between people: spouses, children, and the
// marriage/divorce facts attached to the union
type Family struct {
	ID            string   `json:"id"`
	HusbandID     string   `json:"husband_id,omitempty"`
	WifeID        string   `json:"wife_id,omitempty"`
	ChildIDs      []string `json:"child_ids,omitempty"`
	MarriageDate  string   `json:"marriage_date,omitempty"`
	MarriagePlace string   `json:"marriage_place,omitempty"`
	DivorceDate   string   `json:"divorce_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewFamily creates a family with a fresh ID and initialized timestamps
func NewFamily() *Family {
	now := time.Now()
	return &Family{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Degenerate reports whether the family links no people at all.
// Such a record carries no genealogical information and is dropped on import.
func (f *Family) Degenerate() bool {
	return f.HusbandID == "" && f.WifeID == "" && len(f.ChildIDs) == 0
}

// Ended reports whether the union ended in divorce
func (f *Family) Ended() bool {
	return f.DivorceDate != ""
}

// HasSpouse reports whether the given person is the husband or wife
func (f *Family) HasSpouse(personID string) bool {
	return personID != "" && (f.HusbandID == personID || f.WifeID == personID)
}

// HasChild reports whether the given person is among the children
func (f *Family) HasChild(personID string) bool {
	for _, id := range f.ChildIDs {
		if id == personID {
			return true
		}
	}
	return false
}

// Validate checks the structural invariants of the family record.
// A person may not appear as both a spouse and a child of the same family.
func (f *Family) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("family ID is required")
	}
	if f.Degenerate() {
		return fmt.Errorf("family %s links no husband, wife, or children", f.ID)
	}
	for _, child := range f.ChildIDs {
		if f.HasSpouse(child) {
			return fmt.Errorf("family %s lists person %s as both spouse and child", f.ID, child)
		}
	}
	return nil
}
