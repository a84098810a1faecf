// Package scene describes the fixed demo picture: a vertical background
// gradient with translucent panels painted over it.
package scene

import (
	"fmt"

	"headless/pkg/css"
)

// Rect is an axis-aligned rectangle in viewport pixels.
type Rect struct {
	X, Y, Width, Height float64
}

// Empty reports whether the rectangle covers no pixels. A negative size
// still covers pixels: see Sorted.
func (r Rect) Empty() bool {
	return r.Width == 0 || r.Height == 0
}

// Sorted returns the same area with a non-negative width and height. A
// negative size extends left or up from the origin.
func (r Rect) Sorted() Rect {
	if r.Width < 0 {
		r.X, r.Width = r.X+r.Width, -r.Width
	}
	if r.Height < 0 {
		r.Y, r.Height = r.Y+r.Height, -r.Height
	}
	return r
}

// Fill is a rectangle painted with a single color.
type Fill struct {
	Name  string
	Rect  Rect
	Color css.Color
}

// Scene is everything needed to paint one frame.
type Scene struct {
	Width, Height int
	Background    *css.Gradient // resolved against Height
	Fills         []Fill        // painted in order, over the background
}

// Theme holds the colors and panel geometry of the demo scene.
type Theme struct {
	Background string  `yaml:"background,omitempty"`
	Header     string  `yaml:"header,omitempty"`
	Box        string  `yaml:"box,omitempty"`
	Margin     float64 `yaml:"margin,omitempty"`
	HeaderSize float64 `yaml:"headerHeight,omitempty"`
	BoxWidth   float64 `yaml:"boxWidth,omitempty"`
	BoxHeight  float64 `yaml:"boxHeight,omitempty"`
	Spacing    float64 `yaml:"spacing,omitempty"`
	StartY     float64 `yaml:"startY,omitempty"`
	Columns    int     `yaml:"columns,omitempty"`
	Boxes      int     `yaml:"boxes,omitempty"`
}

// DefaultTheme is the stock demo look: a #667eea to #764ba2 gradient, a
// white header band at alpha 200 and four white boxes at alpha 150 in two columns.
func DefaultTheme() Theme {
	return Theme{
		Background: "linear-gradient(to bottom, #667eea, #764ba2)",
		Header:     "#ffffffc8",
		Box:        "#ffffff96",
		Margin:     50,
		HeaderSize: 100,
		BoxWidth:   200,
		BoxHeight:  120,
		Spacing:    20,
		StartY:     200,
		Columns:    2,
		Boxes:      4,
	}
}

// Merge returns t with every zero field replaced by the value from base.
func (t Theme) Merge(base Theme) Theme {
	if t.Background == "" {
		t.Background = base.Background
	}
	if t.Header == "" {
		t.Header = base.Header
	}
	if t.Box == "" {
		t.Box = base.Box
	}
	if t.Margin == 0 {
		t.Margin = base.Margin
	}
	if t.HeaderSize == 0 {
		t.HeaderSize = base.HeaderSize
	}
	if t.BoxWidth == 0 {
		t.BoxWidth = base.BoxWidth
	}
	if t.BoxHeight == 0 {
		t.BoxHeight = base.BoxHeight
	}
	if t.Spacing == 0 {
		t.Spacing = base.Spacing
	}
	if t.StartY == 0 {
		t.StartY = base.StartY
	}
	if t.Columns == 0 {
		t.Columns = base.Columns
	}
	if t.Boxes == 0 {
		t.Boxes = base.Boxes
	}
	return t
}

// Demo builds the demo scene for a width x height viewport.
func Demo(width, height int, theme Theme) (*Scene, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid viewport size %dx%d", width, height)
	}
	theme = theme.Merge(DefaultTheme())
	if theme.Columns < 0 || theme.Boxes < 0 {
		return nil, fmt.Errorf("invalid box grid: %d boxes in %d columns", theme.Boxes, theme.Columns)
	}

	grad, ok := css.ParseLinearGradient(theme.Background)
	if !ok {
		if c, isColor := css.ParseColor(theme.Background); isColor {
			grad = &css.Gradient{
				Direction:  "to bottom",
				ColorStops: []css.ColorStop{{Color: c}, {Color: c}},
			}
		} else {
			return nil, fmt.Errorf("invalid background %q", theme.Background)
		}
	}
	header, ok := css.ParseColor(theme.Header)
	if !ok {
		return nil, fmt.Errorf("invalid header color %q", theme.Header)
	}
	box, ok := css.ParseColor(theme.Box)
	if !ok {
		return nil, fmt.Errorf("invalid box color %q", theme.Box)
	}

	s := &Scene{
		Width:      width,
		Height:     height,
		Background: grad.Resolve(float64(height)),
	}

	s.Fills = append(s.Fills, Fill{
		Name:  "header",
		Rect:  Rect{theme.Margin, theme.Margin, float64(width) - 2*theme.Margin, theme.HeaderSize},
		Color: header,
	})

	for i := 0; i < theme.Boxes; i++ {
		col, row := i%theme.Columns, i/theme.Columns
		s.Fills = append(s.Fills, Fill{
			Name: fmt.Sprintf("box-%d", i+1),
			Rect: Rect{
				X:      theme.Margin + float64(col)*(theme.BoxWidth+theme.Spacing),
				Y:      theme.StartY + float64(row)*(theme.BoxHeight+theme.Spacing),
				Width:  theme.BoxWidth,
				Height: theme.BoxHeight,
			},
			Color: box,
		})
	}

	return s, nil
}

// RowColor returns the background color of pixel row y.
func (s *Scene) RowColor(y int) css.Color {
	return s.Background.At(float64(y) / float64(s.Height))
}
