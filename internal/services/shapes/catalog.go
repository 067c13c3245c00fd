package shapes

import (
	"errors"
	"fmt"

	"github.com/mcoot/blockgame-go/internal/model"
)

// ErrUnknownCatalog is returned by ByName for names with no catalog
var ErrUnknownCatalog = errors.New("unknown shape catalog")

// Monomino is the single-cell shape used as the last-resort deal
var Monomino = model.MustShape("mono", model.Offset{})

// Catalog is a fixed, ordered set of shapes pieces are drawn from
type Catalog struct {
	name   string
	shapes []model.Shape
}

// New creates a catalog. Shapes with a footprint already in the catalog are
// dropped, so the first occurrence wins.
func New(name string, shapes []model.Shape) (*Catalog, error) {
	seenIDs := make(map[model.ShapeID]bool, len(shapes))
	seenFootprints := make(map[string]bool, len(shapes))
	kept := make([]model.Shape, 0, len(shapes))

	for _, s := range shapes {
		if s.Size() == 0 {
			return nil, fmt.Errorf("catalog %s: %w", name, model.ErrEmptyShape)
		}
		if seenIDs[s.ID] {
			return nil, fmt.Errorf("catalog %s: duplicate shape id %q", name, s.ID)
		}
		seenIDs[s.ID] = true

		fp := s.Footprint()
		if seenFootprints[fp] {
			continue
		}
		seenFootprints[fp] = true
		kept = append(kept, s)
	}

	if len(kept) == 0 {
		return nil, fmt.Errorf("catalog %s: %w", name, model.ErrEmptyShape)
	}

	return &Catalog{name: name, shapes: kept}, nil
}

// Name returns the catalog name
func (c *Catalog) Name() string {
	return c.name
}

// Len returns the number of shapes
func (c *Catalog) Len() int {
	return len(c.shapes)
}

// At returns the i-th shape in catalog order
func (c *Catalog) At(i int) model.Shape {
	return c.shapes[i]
}

// Shapes returns a copy of the shapes in catalog order
func (c *Catalog) Shapes() []model.Shape {
	result := make([]model.Shape, len(c.shapes))
	copy(result, c.shapes)
	return result
}

// Get returns the shape with the given ID
func (c *Catalog) Get(id model.ShapeID) (model.Shape, bool) {
	for _, s := range c.shapes {
		if s.ID == id {
			return s, true
		}
	}
	return model.Shape{}, false
}

// Smallest returns the first shape with the fewest cells
func (c *Catalog) Smallest() model.Shape {
	best := c.shapes[0]
	for _, s := range c.shapes[1:] {
		if s.Size() < best.Size() {
			best = s
		}
	}
	return best
}

// Filter returns the shapes matching pred, in catalog order
func (c *Catalog) Filter(pred func(model.Shape) bool) []model.Shape {
	var result []model.Shape
	for _, s := range c.shapes {
		if pred(s) {
			result = append(result, s)
		}
	}
	return result
}

// ByName returns one of the built-in catalogs
func ByName(name string) (*Catalog, error) {
	switch name {
	case model.CatalogClassic:
		return Classic(), nil
	case model.CatalogObstacle:
		return Obstacle(), nil
	case model.CatalogExtended:
		return Extended(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCatalog, name)
	}
}

// Names returns the names of the built-in catalogs
func Names() []string {
	return []string{model.CatalogClassic, model.CatalogObstacle, model.CatalogExtended}
}
