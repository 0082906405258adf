// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statseries

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// A Kind identifies which sub-counter a series shows.
type Kind int

const (
	Total Kind = iota
	Core
	Atom
	BranchMisses
	Duration
)

func (k Kind) String() string {
	switch k {
	case Total:
		return "total"
	case Core:
		return "core"
	case Atom:
		return "atom"
	case BranchMisses:
		return "branch-misses"
	case Duration:
		return "duration"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// A Marker is the glyph drawn at each point of a series.
type Marker string

const (
	Circle Marker = "circle"
	Square Marker = "square"
)

// A Style describes how a series is drawn.
type Style struct {
	Color     string  `toml:"color"` // "#rrggbb"
	LineWidth float64 `toml:"line-width"`
	PointSize float64 `toml:"point-size"`
	Marker    Marker  `toml:"marker"`
	Legend    string  `toml:"legend"`
}

// RGBA parses s.Color.
func (s Style) RGBA() (color.RGBA, error) {
	return ParseColor(s.Color)
}

// ParseColor parses a color of the form "#rrggbb".
func ParseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("bad color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// A Palette holds the styles of one compared variant, one per Kind.
type Palette struct {
	Name string `toml:"name"`

	Total        Style `toml:"total"`
	Core         Style `toml:"core"`
	Atom         Style `toml:"atom"`
	BranchMisses Style `toml:"branch-misses"`
	Duration     Style `toml:"duration"`
}

// Style returns the style of kind k.
func (p *Palette) Style(k Kind) Style {
	switch k {
	case Total:
		return p.Total
	case Core:
		return p.Core
	case Atom:
		return p.Atom
	case BranchMisses:
		return p.BranchMisses
	case Duration:
		return p.Duration
	}
	panic(fmt.Sprintf("bad Kind %v", k))
}

func (p *Palette) validate() error {
	for k := Total; k <= Duration; k++ {
		if _, err := p.Style(k).RGBA(); err != nil {
			return fmt.Errorf("palette %s: %s: %w", p.Name, k, err)
		}
	}
	return nil
}

// Palettes holds the palettes of the two compared variants.
type Palettes struct {
	Branching  Palette `toml:"branching"`
	Branchless Palette `toml:"branchless"`
}

// cpuStyles builds the total, core and atom styles of a variant.
func cpuStyles(name string, marker Marker, total, core, atom string) (Style, Style, Style) {
	return Style{total, 3, 4, marker, name + " TOTAL"},
		Style{core, 1.5, 2.5, marker, name + " CORE"},
		Style{atom, 1, 2, marker, name + " ATOM"}
}

func newPalette(name string, marker Marker, total, core, atom, misses string) Palette {
	p := Palette{Name: name}
	p.Total, p.Core, p.Atom = cpuStyles(name, marker, total, core, atom)
	p.BranchMisses = Style{misses, 2, 1, Circle, name + ": Branch misses"}
	p.Duration = Style{core, 2, 1, Circle, name + ": Duration [s]"}
	return p
}

// DefaultPalettes returns the built-in palettes: orange circles for
// the branching variant and blue squares for the branchless one.
func DefaultPalettes() Palettes {
	return Palettes{
		Branching:  newPalette("Branching", Circle, "#e59000", "#e5a73e", "#e4ca9d", "#d14419"),
		Branchless: newPalette("Branchless", Square, "#0369c5", "#1691ff", "#88bae7", "#5d00d1"),
	}
}

// LoadPalettes reads palette overrides from a TOML file. Settings the
// file does not mention keep their DefaultPalettes value.
func LoadPalettes(path string) (Palettes, error) {
	pals := DefaultPalettes()
	data, err := os.ReadFile(path)
	if err != nil {
		return pals, fmt.Errorf("failed to read palette file '%s': %w", path, err)
	}
	if err := toml.Unmarshal(data, &pals); err != nil {
		return pals, fmt.Errorf("failed to decode palette file '%s': %w", path, err)
	}
	if err := pals.Branching.validate(); err != nil {
		return pals, err
	}
	if err := pals.Branchless.validate(); err != nil {
		return pals, err
	}
	return pals, nil
}
