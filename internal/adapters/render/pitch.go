package render

import (
	"math"

	svg "github.com/ajstarks/svgo"
)

// Marking dimensions in yards, per the laws of the game.
const (
	penaltyAreaDepth = 18.0
	penaltyAreaWidth = 44.0
	goalAreaDepth    = 6.0
	goalAreaWidth    = 20.0
	goalWidth        = 8.0
	penaltySpot      = 12.0
	centreRadius     = 10.0
)

const (
	pitchStyle   = "fill:#f4f4f4;stroke:#6b6b6b;stroke-width:1"
	lineStyle    = "fill:none;stroke:#6b6b6b;stroke-width:1"
	spotStyle    = "fill:#6b6b6b"
	titleStyle   = "font-family:Helvetica,Arial,sans-serif;font-size:16px;text-anchor:middle;fill:#222"
	captionStyle = "font-family:Helvetica,Arial,sans-serif;font-size:11px;text-anchor:middle;fill:#222"
)

// frame maps pitch coordinates onto a canvas region whose top-left corner is
// at (ox, oy).
type frame struct {
	ox, oy int
	scale  float64
	length float64
	width  float64
}

func (f frame) x(v float64) int { return f.ox + int(math.Round(v*f.scale)) }
func (f frame) y(v float64) int { return f.oy + int(math.Round(v*f.scale)) }
func (f frame) d(v float64) int { return int(math.Round(v * f.scale)) }

// w and h are the pixel size of the drawn pitch.
func (f frame) w() int { return f.d(f.length) }
func (f frame) h() int { return f.d(f.width) }

// drawPitch draws the outline and markings of a horizontal pitch.
func drawPitch(c *svg.SVG, f frame) {
	c.Rect(f.ox, f.oy, f.w(), f.h(), pitchStyle)

	c.Gstyle(lineStyle)
	half := f.length / 2
	c.Line(f.x(half), f.y(0), f.x(half), f.y(f.width))
	c.Circle(f.x(half), f.y(f.width/2), f.d(centreRadius))

	for _, end := range []struct{ line, dir float64 }{{0, 1}, {f.length, -1}} {
		box(c, f, end.line, end.dir, penaltyAreaDepth, penaltyAreaWidth)
		box(c, f, end.line, end.dir, goalAreaDepth, goalAreaWidth)
		// goal mouth, drawn just outside the line
		box(c, f, end.line, -end.dir, 2, goalWidth)
	}
	c.Gend()

	r := max(1, f.d(0.4))
	c.Circle(f.x(half), f.y(f.width/2), r, spotStyle)
	c.Circle(f.x(penaltySpot), f.y(f.width/2), r, spotStyle)
	c.Circle(f.x(f.length-penaltySpot), f.y(f.width/2), r, spotStyle)
}

// box draws a rectangle of the given depth from the goal line at x=line into
// the pitch in direction dir, centred on the pitch's width.
func box(c *svg.SVG, f frame, line, dir, depth, span float64) {
	top := (f.width - span) / 2
	left := line
	if dir < 0 {
		left = line - depth
	}
	c.Rect(f.x(left), f.y(top), f.d(depth), f.d(span))
}

// markerRadius converts an area in display units to a radius in pixels. A
// scale of DefaultScale draws the area as square pixels.
func markerRadius(area float64, scale int) int {
	if area <= 0 {
		return 0
	}
	return int(math.Round(math.Sqrt(area/math.Pi) * float64(scale) / DefaultScale))
}
