// Package units defines the size and position types shared by the window,
// persistence and backend packages.
package units

import (
	"fmt"
	"strconv"
	"strings"
)

// GridSize is a size in character cells.
type GridSize struct {
	Columns int `toml:"width"`
	Rows    int `toml:"height"`
}

// Max returns the component-wise maximum of g and other.
func (g GridSize) Max(other GridSize) GridSize {
	return GridSize{Columns: max(g.Columns, other.Columns), Rows: max(g.Rows, other.Rows)}
}

func (g GridSize) String() string {
	return fmt.Sprintf("%dx%d", g.Columns, g.Rows)
}

// PixelSize is a size in physical pixels.
type PixelSize struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

func (p PixelSize) String() string {
	return fmt.Sprintf("%dx%d", p.Width, p.Height)
}

// PixelPos is a window position in physical pixels.
type PixelPos struct {
	X int `toml:"x"`
	Y int `toml:"y"`
}

// ParseGridSize parses "COLSxROWS".
func ParseGridSize(s string) (GridSize, error) {
	w, h, err := parsePair(s)
	if err != nil {
		return GridSize{}, fmt.Errorf("invalid grid size %q: %w", s, err)
	}
	return GridSize{Columns: w, Rows: h}, nil
}

// ParsePixelSize parses "WIDTHxHEIGHT".
func ParsePixelSize(s string) (PixelSize, error) {
	w, h, err := parsePair(s)
	if err != nil {
		return PixelSize{}, fmt.Errorf("invalid window size %q: %w", s, err)
	}
	return PixelSize{Width: w, Height: h}, nil
}

func parsePair(s string) (int, int, error) {
	left, right, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("expected <width>x<height>")
	}
	w, err := strconv.Atoi(left)
	if err != nil {
		return 0, 0, fmt.Errorf("width: %w", err)
	}
	h, err := strconv.Atoi(right)
	if err != nil {
		return 0, 0, fmt.Errorf("height: %w", err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("dimensions must be positive")
	}
	return w, h, nil
}
