package codec

import (
	"fmt"
	"io"

	"lineaged/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export of the entity tree. It is the
// machine-friendly sibling of the GEDCOM codec: same entities, no line
// grammar, no cross-reference tokens.
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlTree represents the YAML structure for family-tree data
type yamlTree struct {
	Individuals []yamlIndividual `yaml:"individuals"`
	Families    []yamlFamily     `yaml:"families"`
}

type yamlIndividual struct {
	ID         string `yaml:"id"`
	GivenName  string `yaml:"given_name"`
	Surname    string `yaml:"surname"`
	Sex        string `yaml:"sex,omitempty"`
	Living     bool   `yaml:"living"`
	BirthDate  string `yaml:"birth_date,omitempty"`
	BirthPlace string `yaml:"birth_place,omitempty"`
	DeathDate  string `yaml:"death_date,omitempty"`
	DeathPlace string `yaml:"death_place,omitempty"`
	Occupation string `yaml:"occupation,omitempty"`
	Notes      string `yaml:"notes,omitempty"`
}

type yamlFamily struct {
	ID            string   `yaml:"id"`
	HusbandID     string   `yaml:"husband_id,omitempty"`
	WifeID        string   `yaml:"wife_id,omitempty"`
	ChildIDs      []string `yaml:"child_ids,omitempty"`
	MarriageDate  string   `yaml:"marriage_date,omitempty"`
	MarriagePlace string   `yaml:"marriage_place,omitempty"`
	DivorceDate   string   `yaml:"divorce_date,omitempty"`
}

// Parse imports family-tree data from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Tree, error) {
	var yt yamlTree
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&yt); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	tree := domain.NewTree()

	for _, yi := range yt.Individuals {
		p := domain.NewIndividual(yi.GivenName, yi.Surname)
		if yi.ID != "" {
			p.ID = yi.ID
		}
		p.Sex = domain.ParseSex(yi.Sex)
		p.Living = yi.Living
		p.BirthDate = yi.BirthDate
		p.BirthPlace = yi.BirthPlace
		p.DeathDate = yi.DeathDate
		p.DeathPlace = yi.DeathPlace
		p.Occupation = yi.Occupation
		p.Notes = yi.Notes
		tree.AddIndividual(p)
	}

	for _, yf := range yt.Families {
		f := domain.NewFamily()
		if yf.ID != "" {
			f.ID = yf.ID
		}
		f.HusbandID = yf.HusbandID
		f.WifeID = yf.WifeID
		f.ChildIDs = yf.ChildIDs
		f.MarriageDate = yf.MarriageDate
		f.MarriagePlace = yf.MarriagePlace
		f.DivorceDate = yf.DivorceDate
		tree.AddFamily(f)
	}

	return tree, nil
}

// Export exports family-tree data to YAML
func (c *YAMLCodec) Export(tree *domain.Tree, w io.Writer) error {
	yt := yamlTree{
		Individuals: make([]yamlIndividual, 0, len(tree.Individuals)),
		Families:    make([]yamlFamily, 0, len(tree.Families)),
	}

	for _, p := range tree.Individuals {
		yt.Individuals = append(yt.Individuals, yamlIndividual{
			ID:         p.ID,
			GivenName:  p.GivenName,
			Surname:    p.Surname,
			Sex:        string(p.Sex),
			Living:     p.Living,
			BirthDate:  p.BirthDate,
			BirthPlace: p.BirthPlace,
			DeathDate:  p.DeathDate,
			DeathPlace: p.DeathPlace,
			Occupation: p.Occupation,
			Notes:      p.Notes,
		})
	}

	for _, f := range tree.Families {
		yt.Families = append(yt.Families, yamlFamily{
			ID:            f.ID,
			HusbandID:     f.HusbandID,
			WifeID:        f.WifeID,
			ChildIDs:      f.ChildIDs,
			MarriageDate:  f.MarriageDate,
			MarriagePlace: f.MarriagePlace,
			DivorceDate:   f.DivorceDate,
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&yt); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
