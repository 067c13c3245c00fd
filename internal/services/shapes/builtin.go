package shapes

import "github.com/mcoot/blockgame-go/internal/model"

type o = model.Offset

// classicShapes are offset lists, as dealt by the tap-to-place game
var classicShapes = []model.Shape{
	Monomino,
	model.MustShape("domino-h", o{0, 0}, o{1, 0}),
	model.MustShape("tromino-h", o{0, 0}, o{2, 0}, o{1, 0}),
	model.MustShape("square-2", o{0, 0}, o{1, 0}, o{0, 1}, o{1, 1}),
	model.MustShape("tee-down", o{0, 0}, o{1, 0}, o{2, 0}, o{1, 1}),
	model.MustShape("tromino-v", o{0, 0}, o{0, 1}, o{0, 2}),
}

// obstacleMatrices are the boolean matrices of the obstacle game, in its order
var obstacleMatrices = []struct {
	id     model.ShapeID
	matrix [][]int
}{
	{"mono", [][]int{{1}}},
	{"domino-h", [][]int{{1, 1}}},
	{"tromino-h", [][]int{{1, 1, 1}}},
	{"domino-v", [][]int{{1}, {1}}},
	{"tromino-v", [][]int{{1}, {1}, {1}}},
	{"square-2", [][]int{{1, 1}, {1, 1}}},
	{"corner-sw", [][]int{{1, 0}, {1, 1}}},
	{"corner-se", [][]int{{0, 1}, {1, 1}}},
	{"zig", [][]int{{1, 1, 0}, {0, 1, 1}}},
	{"zag", [][]int{{0, 1, 1}, {1, 1, 0}}},
	{"tee-down", [][]int{{1, 1, 1}, {0, 1, 0}}},
}

var extraShapes = []model.Shape{
	model.MustShape("corner-nw", o{0, 0}, o{1, 0}, o{0, 1}),
	model.MustShape("corner-ne", o{0, 0}, o{1, 0}, o{1, 1}),
	model.MustShape("line-4h", o{0, 0}, o{1, 0}, o{2, 0}, o{3, 0}),
	model.MustShape("line-4v", o{0, 0}, o{0, 1}, o{0, 2}, o{0, 3}),
	model.MustShape("line-5h", o{0, 0}, o{1, 0}, o{2, 0}, o{3, 0}, o{4, 0}),
	model.MustShape("line-5v", o{0, 0}, o{0, 1}, o{0, 2}, o{0, 3}, o{0, 4}),
	model.MustShape("square-3",
		o{0, 0}, o{1, 0}, o{2, 0},
		o{0, 1}, o{1, 1}, o{2, 1},
		o{0, 2}, o{1, 2}, o{2, 2},
	),
}

// Classic returns the six-shape catalog
func Classic() *Catalog {
	return mustCatalog(model.CatalogClassic, classicShapes)
}

// Obstacle returns the eleven-shape catalog of the obstacle game
func Obstacle() *Catalog {
	return mustCatalog(model.CatalogObstacle, obstacleShapes())
}

// Extended returns the union of the classic and obstacle catalogs plus
// long lines and the 3x3 square
func Extended() *Catalog {
	all := append(append(append([]model.Shape{}, classicShapes...), obstacleShapes()...), extraShapes...)
	return mustCatalog(model.CatalogExtended, dedupeIDs(all))
}

func obstacleShapes() []model.Shape {
	result := make([]model.Shape, 0, len(obstacleMatrices))
	for _, m := range obstacleMatrices {
		s, err := model.ShapeFromMatrix(m.id, m.matrix)
		if err != nil {
			panic(err)
		}
		result = append(result, s)
	}
	return result
}

// dedupeIDs drops later shapes whose ID was already used; the classic and
// obstacle catalogs share IDs for identical footprints
func dedupeIDs(shapes []model.Shape) []model.Shape {
	seen := make(map[model.ShapeID]bool, len(shapes))
	result := make([]model.Shape, 0, len(shapes))
	for _, s := range shapes {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		result = append(result, s)
	}
	return result
}

func mustCatalog(name string, shapes []model.Shape) *Catalog {
	c, err := New(name, shapes)
	if err != nil {
		panic(err)
	}
	return c
}
