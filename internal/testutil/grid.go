package testutil

import (
	"fmt"

	"github.com/mcoot/blockgame-go/internal/model"
)

// GridFromRows builds a square grid from text rows: '.' empty, '#' filled,
// 'X' obstacle. The grid size is the number of rows.
func GridFromRows(rows ...string) *model.Grid {
	g := model.NewGrid(len(rows))
	for y, row := range rows {
		if len(row) != len(rows) {
			panic(fmt.Sprintf("row %d has %d cells, want %d", y, len(row), len(rows)))
		}
		for x, c := range row {
			pos := model.Position{X: x, Y: y}
			switch c {
			case '#':
				g.SetFilled(pos)
			case 'X':
				g.SetObstacle(pos)
			case '.':
			default:
				panic(fmt.Sprintf("unknown cell %q", c))
			}
		}
	}
	return g
}

// FullGridExcept returns a filled grid with the given cells left empty
func FullGridExcept(size int, empty ...model.Position) *model.Grid {
	g := model.NewGrid(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			g.SetFilled(model.Position{X: x, Y: y})
		}
	}
	for _, pos := range empty {
		g.Clear(pos)
	}
	return g
}
