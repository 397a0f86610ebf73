package codec

import (
	"io"

	"lineaged/internal/domain"
)

// Importer interface for importing family-tree data from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.Tree, error)
	Format() string
}

// Exporter interface for exporting family-tree data to various formats
type Exporter interface {
	Export(tree *domain.Tree, w io.Writer) error
	Format() string
}
