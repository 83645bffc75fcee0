// Package style holds the fixed set of named text styles used by the
// document engine. Styles are immutable values; the registry is read-only
// after construction and safe for concurrent use.
package style

import (
	"errors"
	"fmt"
	"sort"
)

type Name string

const (
	Title      Name = "title"
	H1         Name = "h1"
	H2         Name = "h2"
	Normal     Name = "normal"
	Muted      Name = "muted"
	Cell       Name = "cell"
	CellHeader Name = "cell_header"
	Link       Name = "link"
	Bullet     Name = "bullet"
)

var ErrUnknownStyle = errors.New("unknown style")

// Wrap controls how a paragraph breaks lines that exceed the available width.
type Wrap int

const (
	// WrapWord breaks on spaces and only splits words longer than a line.
	WrapWord Wrap = iota
	// WrapChar may split anywhere; used inside narrow table cells.
	WrapChar
)

type Color struct {
	R, G, B int
}

var (
	Black = Color{0, 0, 0}
	Grey  = Color{128, 128, 128}
	Blue  = Color{0, 0, 255}
)

// Hex parses a #RRGGBB color. It panics on malformed input and is only used
// with constants.
func Hex(s string) Color {
	var c Color
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		panic(fmt.Sprintf("style: bad color %q", s))
	}
	return c
}

type Style struct {
	Name         Name
	Font         string
	Bold         bool
	Size         float64
	Leading      float64
	SpaceBefore  float64
	SpaceAfter   float64
	LeftIndent   float64
	BulletIndent float64
	Color        Color
	Wrap         Wrap
}

// FontStyle returns the fpdf style string for the style.
func (s Style) FontStyle() string {
	if s.Bold {
		return "B"
	}
	return ""
}

type Registry interface {
	Resolve(name Name) (Style, error)
	MustResolve(name Name) Style
	Names() []Name
}

type registry struct {
	styles map[Name]Style
}

// NewRegistry builds a registry from the given styles, keyed by Style.Name.
func NewRegistry(styles ...Style) Registry {
	r := &registry{styles: make(map[Name]Style, len(styles))}
	for _, s := range styles {
		r.styles[s.Name] = s
	}
	return r
}

func (r *registry) Resolve(name Name) (Style, error) {
	s, ok := r.styles[name]
	if !ok {
		return Style{}, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return s, nil
}

// MustResolve is for callers that only reference registered names.
func (r *registry) MustResolve(name Name) Style {
	s, err := r.Resolve(name)
	if err != nil {
		panic(err)
	}
	return s
}

func (r *registry) Names() []Name {
	names := make([]Name, 0, len(r.styles))
	for n := range r.styles {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

const helvetica = "Helvetica"

var defaultRegistry = NewRegistry(
	Style{Name: Title, Font: helvetica, Bold: true, Size: 20, Leading: 24, SpaceAfter: 8, Color: Black},
	Style{Name: H1, Font: helvetica, Bold: true, Size: 16, Leading: 20, SpaceBefore: 14, SpaceAfter: 8, Color: Black},
	Style{Name: H2, Font: helvetica, Bold: true, Size: 13, Leading: 16, SpaceBefore: 12, SpaceAfter: 6, Color: Black},
	Style{Name: Normal, Font: helvetica, Size: 10.5, Leading: 14, Color: Black},
	Style{Name: Muted, Font: helvetica, Size: 9.5, Leading: 12, Color: Hex("#555555")},
	Style{Name: Cell, Font: helvetica, Size: 9.5, Leading: 12, Color: Black, Wrap: WrapChar},
	Style{Name: CellHeader, Font: helvetica, Bold: true, Size: 9.5, Leading: 12, Color: Black, Wrap: WrapChar},
	Style{Name: Link, Font: helvetica, Size: 11, Leading: 14, Color: Blue},
	Style{Name: Bullet, Font: helvetica, Size: 10.5, Leading: 14, LeftIndent: 14, BulletIndent: 6, Color: Black},
)

// Default returns the shared registry of document styles.
func Default() Registry {
	return defaultRegistry
}
