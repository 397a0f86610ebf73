package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sex represents a person's recorded sex code
type Sex string

const (
	SexMale    Sex = "M"
	SexFemale  Sex = "F"
	SexUnknown Sex = "U"
)

// ParseSex maps a free-form sex code to a Sex, defaulting to unknown
func ParseSex(s string) Sex {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "M":
		return SexMale
	case "F":
		return SexFemale
	default:
		return SexUnknown
	}
}

// Individual represents a person record in the family tree
type Individual struct {
	ID         string `json:"id"`
	GivenName  string `json:"given_name"`
	Surname    string `json:"surname"`
	Sex        Sex    `json:"sex"`
	Living     bool   `json:"living"`
	BirthDate  string `json:"birth_date,omitempty"`
	BirthPlace string `json:"birth_place,omitempty"`
	DeathDate  string `json:"death_date,omitempty"`
	DeathPlace string `json:"death_place,omitempty"`
	Occupation string `json:"occupation,omitempty"`
	Notes      string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewIndividual creates a person with a fresh ID and initialized timestamps
func NewIndividual(given, surname string) *Individual {
	now := time.Now()
	return &Individual{
		ID:        uuid.NewString(),
		GivenName: given,
		Surname:   surname,
		Sex:       SexUnknown,
		Living:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FullName returns the display name in "Given Surname" form
func (p *Individual) FullName() string {
	switch {
	case p.GivenName == "":
		return p.Surname
	case p.Surname == "":
		return p.GivenName
	default:
		return p.GivenName + " " + p.Surname
	}
}

// Deceased reports whether any death fact is recorded
func (p *Individual) Deceased() bool {
	return p.DeathDate != "" || p.DeathPlace != ""
}

// Validate checks that the person record is well-formed
func (p *Individual) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("person ID is required")
	}
	if p.GivenName == "" && p.Surname == "" {
		return fmt.Errorf("person %s has no name", p.ID)
	}
	switch p.Sex {
	case SexMale, SexFemale, SexUnknown:
	default:
		return fmt.Errorf("person %s has invalid sex code %q", p.ID, p.Sex)
	}
	if p.Living && p.Deceased() {
		return fmt.Errorf("person %s is marked living but has death facts recorded", p.ID)
	}
	return nil
}
