// Package board draws a grid and a route as text.
package board

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	astar "github.com/arcanis/astar-wasm"
)

const (
	wallGlyph  = '#'
	floorGlyph = '.'
	pathGlyph  = 'x'
)

// Render draws grid one row per line: '#' for walls, '.' for passable cells and
// 'x' for cells on path. Every row, including the last, ends with '\n'.
func Render(grid astar.Grid, path []astar.Point) string {
	onPath := pathSet(path)

	var b strings.Builder
	b.Grow(grid.Height() * (grid.Width() + 1))
	for y := range grid.Height() {
		for x := range grid.Width() {
			b.WriteRune(glyph(grid, astar.Pt(x, y), onPath))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Styles colours the glyphs of RenderStyled.
type Styles struct {
	Wall     lipgloss.Style
	Floor    lipgloss.Style
	Path     lipgloss.Style
	Endpoint lipgloss.Style
}

// DefaultStyles returns the palette used by the CLI.
func DefaultStyles() Styles {
	return Styles{
		Wall:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Floor:    lipgloss.NewStyle().Foreground(lipgloss.Color("237")),
		Path:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Endpoint: lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
	}
}

// RenderStyled draws the same board as Render, marking start 'S' and goal 'G'
// and colouring each glyph with styles.
func RenderStyled(grid astar.Grid, path []astar.Point, start, goal astar.Point, styles Styles) string {
	onPath := pathSet(path)

	rows := make([]string, 0, grid.Height())
	for y := range grid.Height() {
		var row strings.Builder
		for x := range grid.Width() {
			p := astar.Pt(x, y)
			switch {
			case p == start:
				row.WriteString(styles.Endpoint.Render("S"))
			case p == goal:
				row.WriteString(styles.Endpoint.Render("G"))
			default:
				g := glyph(grid, p, onPath)
				row.WriteString(styleFor(styles, g).Render(string(g)))
			}
		}
		rows = append(rows, row.String())
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

func styleFor(styles Styles, g rune) lipgloss.Style {
	switch g {
	case wallGlyph:
		return styles.Wall
	case pathGlyph:
		return styles.Path
	default:
		return styles.Floor
	}
}

func glyph(grid astar.Grid, p astar.Point, onPath map[astar.Point]struct{}) rune {
	if _, ok := onPath[p]; ok {
		return pathGlyph
	}
	if grid.Cost(p) == astar.Blocked {
		return wallGlyph
	}
	return floorGlyph
}

func pathSet(path []astar.Point) map[astar.Point]struct{} {
	set := make(map[astar.Point]struct{}, len(path))
	for _, p := range path {
		set[p] = struct{}{}
	}
	return set
}
