package css

import (
	"strconv"
	"strings"
)

// StopUnit says how a color stop offset was written.
type StopUnit int

const (
	StopUnset StopUnit = iota
	StopFraction
	StopPixels
)

// ColorStop represents a color and its position in a gradient
type ColorStop struct {
	Color  Color
	Offset float64 // 0.0 to 1.0 for StopFraction, pixels for StopPixels
	Unit   StopUnit
}

// Gradient is a vertical linear gradient.
type Gradient struct {
	Direction  string // "to bottom" or "to top"
	ColorStops []ColorStop
}

// ParseLinearGradient parses a vertical linear-gradient() value.
// Example: "linear-gradient(to bottom, #667eea, #764ba2)"
func ParseLinearGradient(value string) (*Gradient, bool) {
	value = strings.TrimSpace(value)

	if !strings.HasPrefix(value, "linear-gradient(") || !strings.HasSuffix(value, ")") {
		return nil, false
	}
	content := value[len("linear-gradient(") : len(value)-1]

	parts := splitGradientParts(content)
	if len(parts) < 2 {
		return nil, false
	}

	grad := &Gradient{Direction: "to bottom"}

	startIdx := 0
	firstPart := strings.TrimSpace(parts[0])
	if strings.HasPrefix(firstPart, "to ") {
		switch firstPart {
		case "to bottom", "to top":
			grad.Direction = firstPart
		default:
			return nil, false
		}
		startIdx = 1
	}

	for i := startIdx; i < len(parts); i++ {
		stop, ok := parseColorStop(strings.TrimSpace(parts[i]))
		if !ok {
			return nil, false
		}
		grad.ColorStops = append(grad.ColorStops, stop)
	}

	if len(grad.ColorStops) < 2 {
		return nil, false
	}
	return grad, true
}

// parseColorStop parses a color stop like "blue", "red 50%" or "rgba(0, 0, 0, 0.5) 120px"
func parseColorStop(stop string) (ColorStop, bool) {
	if stop == "" {
		return ColorStop{}, false
	}

	// The color may contain spaces inside rgb(...), so split after the closing paren.
	colorPart, pos := stop, ""
	if i := strings.LastIndexByte(stop, ')'); i >= 0 {
		colorPart, pos = stop[:i+1], strings.TrimSpace(stop[i+1:])
	} else if fields := strings.Fields(stop); len(fields) == 2 {
		colorPart, pos = fields[0], fields[1]
	} else if len(fields) > 2 {
		return ColorStop{}, false
	}

	color, ok := ParseColor(colorPart)
	if !ok {
		return ColorStop{}, false
	}
	cs := ColorStop{Color: color}

	switch {
	case pos == "":
	case pos == "0":
		cs.Unit = StopFraction
	case strings.HasSuffix(pos, "px"):
		px, err := strconv.ParseFloat(strings.TrimSuffix(pos, "px"), 64)
		if err != nil {
			return ColorStop{}, false
		}
		cs.Offset, cs.Unit = px, StopPixels
	case strings.HasSuffix(pos, "%"):
		pct, err := strconv.ParseFloat(strings.TrimSuffix(pos, "%"), 64)
		if err != nil {
			return ColorStop{}, false
		}
		cs.Offset, cs.Unit = pct/100.0, StopFraction
	default:
		return ColorStop{}, false
	}

	return cs, true
}

// splitGradientParts splits gradient content by commas, respecting parentheses
func splitGradientParts(content string) []string {
	var parts []string
	var current strings.Builder
	parenDepth := 0

	for _, ch := range content {
		switch {
		case ch == '(':
			parenDepth++
			current.WriteRune(ch)
		case ch == ')':
			parenDepth--
			current.WriteRune(ch)
		case ch == ',' && parenDepth == 0:
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}

// Resolve returns a copy of the gradient whose stops are all fractions of
// length (the gradient line, i.e. the painted height).
func (g *Gradient) Resolve(length float64) *Gradient {
	out := &Gradient{
		Direction:  g.Direction,
		ColorStops: make([]ColorStop, len(g.ColorStops)),
	}
	copy(out.ColorStops, g.ColorStops)

	for i := range out.ColorStops {
		if out.ColorStops[i].Unit == StopPixels {
			if length > 0 {
				out.ColorStops[i].Offset /= length
			} else {
				out.ColorStops[i].Offset = 0
			}
			out.ColorStops[i].Unit = StopFraction
		}
	}
	out.fillMissingOffsets()
	return out
}

// fillMissingOffsets fills in any color stops that don't have explicit offsets
func (g *Gradient) fillMissingOffsets() {
	if len(g.ColorStops) == 0 {
		return
	}

	if g.ColorStops[0].Unit == StopUnset {
		g.ColorStops[0].Offset, g.ColorStops[0].Unit = 0, StopFraction
	}
	lastIdx := len(g.ColorStops) - 1
	if g.ColorStops[lastIdx].Unit == StopUnset {
		g.ColorStops[lastIdx].Offset, g.ColorStops[lastIdx].Unit = 1.0, StopFraction
	}

	for i := 0; i < len(g.ColorStops); i++ {
		if g.ColorStops[i].Unit != StopUnset {
			continue
		}
		prevIdx := i - 1
		nextIdx := i + 1
		for g.ColorStops[nextIdx].Unit == StopUnset {
			nextIdx++
		}
		prevOffset := g.ColorStops[prevIdx].Offset
		step := (g.ColorStops[nextIdx].Offset - prevOffset) / float64(nextIdx-prevIdx)
		g.ColorStops[i].Offset = prevOffset + step
		g.ColorStops[i].Unit = StopFraction
	}

	// Stops never move backwards along the gradient line.
	for i := 1; i < len(g.ColorStops); i++ {
		if g.ColorStops[i].Offset < g.ColorStops[i-1].Offset {
			g.ColorStops[i].Offset = g.ColorStops[i-1].Offset
		}
	}
}

// At returns the color at position t in [0, 1] along a resolved gradient.
// Channels are interpolated linearly and truncated.
func (g *Gradient) At(t float64) Color {
	if g.Direction == "to top" {
		t = 1 - t
	}
	stops := g.ColorStops
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		if t > stops[i].Offset {
			continue
		}
		span := stops[i].Offset - stops[i-1].Offset
		if span <= 0 {
			return stops[i].Color
		}
		return mix(stops[i-1].Color, stops[i].Color, (t-stops[i-1].Offset)/span)
	}
	return stops[len(stops)-1].Color
}

func mix(a, b Color, p float64) Color {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + p*(float64(y)-float64(x)))
	}
	return Color{
		R: lerp(a.R, b.R),
		G: lerp(a.G, b.G),
		B: lerp(a.B, b.B),
		A: lerp(a.A, b.A),
	}
}
