// Package gridfile reads and writes grids as JSON (with comments), YAML or text maps.
package gridfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"

	astar "github.com/arcanis/astar-wasm"
	"github.com/arcanis/astar-wasm/internal/board"
)

// Format selects the on-disk encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

var (
	ErrUnknownFormat = errors.New("unknown grid format")
	ErrMalformed     = errors.New("malformed grid document")
)

// document is the shape shared by JSON and YAML files. Exactly one of Cells
// and Rows describes the grid.
type document struct {
	Width  int      `json:"width,omitempty" yaml:"width,omitempty"`
	Height int      `json:"height,omitempty" yaml:"height,omitempty"`
	Cells  []int    `json:"cells,omitempty" yaml:"cells,omitempty,flow"`
	Rows   []string `json:"rows,omitempty" yaml:"rows,omitempty"`
}

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc", ".hujson":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".txt", ".map":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Load reads the grid stored at path.
func Load(path string) (*astar.CostGrid, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grid %s: %w", path, err)
	}
	grid, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("load grid %s: %w", path, err)
	}
	return grid, nil
}

// Save writes grid to path atomically, in the format implied by the extension.
func Save(path string, grid astar.Grid) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, grid, format); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("write grid %s: %w", path, err)
	}
	return nil
}

// Decode parses a grid document.
func Decode(r io.Reader, format Format) (*astar.CostGrid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatText:
		return parseRows(splitLines(string(data)))
	case FormatJSON:
		standardized, err := hujson.Standardize(data)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid JSONC: %w", ErrMalformed, err)
		}
		var doc document
		if err := json.Unmarshal(standardized, &doc); err != nil {
			return nil, fmt.Errorf("%w: invalid JSON: %w", ErrMalformed, err)
		}
		return doc.grid()
	case FormatYAML:
		var doc document
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: invalid YAML: %w", ErrMalformed, err)
		}
		return doc.grid()
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Encode writes grid in format. JSON and YAML keep every cell cost; the text
// format only distinguishes walls from passable cells.
func Encode(w io.Writer, grid astar.Grid, format Format) error {
	switch format {
	case FormatText:
		_, err := io.WriteString(w, board.Render(grid, nil))
		return err
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(newDocument(grid))
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(newDocument(grid)); err != nil {
			return err
		}
		return encoder.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func newDocument(grid astar.Grid) document {
	doc := document{
		Width:  grid.Width(),
		Height: grid.Height(),
		Cells:  make([]int, 0, grid.Width()*grid.Height()),
	}
	for y := range grid.Height() {
		for x := range grid.Width() {
			doc.Cells = append(doc.Cells, grid.Cost(astar.Pt(x, y)))
		}
	}
	return doc
}

func (doc document) grid() (*astar.CostGrid, error) {
	if len(doc.Rows) > 0 {
		if len(doc.Cells) > 0 {
			return nil, fmt.Errorf("%w: both cells and rows given", ErrMalformed)
		}
		grid, err := parseRows(doc.Rows)
		if err != nil {
			return nil, err
		}
		if (doc.Width != 0 && doc.Width != grid.Width()) || (doc.Height != 0 && doc.Height != grid.Height()) {
			return nil, fmt.Errorf("%w: rows are %dx%d, header says %dx%d",
				ErrMalformed, grid.Width(), grid.Height(), doc.Width, doc.Height)
		}
		return grid, nil
	}

	grid, err := astar.NewCostGrid(doc.Width, doc.Height, doc.Cells)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return grid, nil
}

func splitLines(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// parseRows reads a text map: '#' is a wall, and '.', ' ', 'x', 'S' and 'G' are floor.
func parseRows(rows []string) (*astar.CostGrid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformed)
	}
	width := len(rows[0])
	cells := make([]int, 0, width*len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformed, y, len(row), width)
		}
		for x, c := range []byte(row) {
			switch c {
			case '#':
				cells = append(cells, astar.Blocked)
			case '.', ' ', 'x', 'S', 'G':
				cells = append(cells, 0)
			default:
				return nil, fmt.Errorf("%w: unexpected %q at (%d,%d)", ErrMalformed, c, x, y)
			}
		}
	}
	grid, err := astar.NewCostGrid(width, len(rows), cells)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return grid, nil
}
