// Package render draws figures as SVG documents.
package render

import (
	"context"
	"fmt"
	"io"
	"time"

	svg "github.com/ajstarks/svgo"
	"github.com/okian/pitchmap/internal/domain/figure"
	"github.com/okian/pitchmap/internal/domain/model"
	"github.com/okian/pitchmap/pkg/logger"
	"github.com/okian/pitchmap/pkg/metrics"
)

const (
	margin      = 20
	titleHeight = 30
	panelGap    = 16
	captionGap  = 14

	ownColour      = "red"
	opponentColour = "blue"
	edgeColour     = "grey"
	nodeColour     = "red"

	shotRadius = 1.5
	passRadius = 2.0
)

// Renderer writes figures as SVG. It holds configuration only and is safe for
// concurrent use.
type Renderer struct {
	length float64
	width  float64
	scale  int
	log    logger.Logger
}

// New returns a Renderer for a 120x80 pitch at six pixels per yard.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		length: DefaultPitchLength,
		width:  DefaultPitchWidth,
		scale:  DefaultScale,
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ContentType is the media type of everything the renderer writes.
const ContentType = "image/svg+xml"

// ShotMap draws all shots on a single pitch: the team's in red at their own
// coordinates, everyone else's in blue mirrored through the centre spot.
// Goals are opaque and other shots faint.
func (r *Renderer) ShotMap(ctx context.Context, w io.Writer, f figure.ShotMap) error {
	return r.single(ctx, w, figure.KindShotMap, f.Title(), func(c *svg.SVG, fr frame) {
		for _, s := range f.Shots {
			colour := opponentColour
			if s.Own {
				colour = ownColour
			}
			opacity := 0.2
			if s.Goal {
				opacity = 1
			}
			c.Circle(fr.x(s.Location.X), fr.y(s.Location.Y), max(1, fr.d(shotRadius)),
				fmt.Sprintf("fill:%s;fill-opacity:%g", colour, opacity))
		}
	})
}

// PlayerPasses draws one player's passes as a faint circle at each origin and
// an arrow to the destination.
func (r *Renderer) PlayerPasses(ctx context.Context, w io.Writer, f figure.PlayerPassMap) error {
	return r.single(ctx, w, figure.KindPlayerPass, f.Title(), func(c *svg.SVG, fr frame) {
		drawPasses(c, fr, f.Passes)
	})
}

// PassNetwork draws edges first, then node markers sized by pass count, then
// labels on top.
func (r *Renderer) PassNetwork(ctx context.Context, w io.Writer, f figure.PassNetwork) error {
	return r.single(ctx, w, figure.KindPassNetwork, f.Title(), func(c *svg.SVG, fr frame) {
		c.Gid("edges")
		for _, e := range f.Network.Edges {
			a, okA := f.Network.Node(e.Pair.A)
			b, okB := f.Network.Node(e.Pair.B)
			if !okA || !okB || e.LineWidth <= 0 {
				continue
			}
			c.Line(fr.x(a.Position.X), fr.y(a.Position.Y), fr.x(b.Position.X), fr.y(b.Position.Y),
				fmt.Sprintf("stroke:%s;stroke-opacity:0.8;stroke-linecap:round;stroke-width:%.2f",
					edgeColour, e.LineWidth*float64(r.scale)/DefaultScale))
		}
		c.Gend()

		c.Gid("nodes")
		for _, n := range f.Network.Nodes {
			c.Circle(fr.x(n.Position.X), fr.y(n.Position.Y), markerRadius(n.MarkerSize, r.scale),
				"fill:"+nodeColour+";stroke:#222;stroke-width:1")
		}
		c.Gend()

		c.Gstyle("font-family:Helvetica,Arial,sans-serif;font-size:12px;font-weight:bold;text-anchor:middle;fill:#222")
		for _, n := range f.Network.Nodes {
			c.Text(fr.x(n.Position.X), fr.y(n.Position.Y)+4, n.Player)
		}
		c.Gend()
	})
}

// PassGrid draws one small pitch per panel, Columns wide. Only the rows that
// hold a panel are drawn.
func (r *Renderer) PassGrid(ctx context.Context, w io.Writer, f figure.PassGrid) error {
	if f.Columns <= 0 {
		return model.WrapKind("render.grid", model.ErrBadRequest, ErrNoColumns)
	}

	start := time.Now()
	ew := &errWriter{w: w}
	c := svg.New(ew)

	panel := frame{scale: float64(max(1, r.scale/2)), length: r.length, width: r.width}
	cellW := panel.w() + panelGap
	cellH := captionGap + panel.h() + panelGap
	cols := min(f.Columns, max(1, len(f.Panels)))
	width := 2*margin + cols*cellW - panelGap
	height := 2*margin + titleHeight + f.Rows()*cellH

	c.Start(width, height)
	c.Title(f.Title())
	c.Text(width/2, margin+titleHeight/2, f.Title(), titleStyle)
	definitions(c)
	for i, p := range f.Panels {
		fr := panel
		fr.ox = margin + (i%f.Columns)*cellW
		fr.oy = margin + titleHeight + (i/f.Columns)*cellH + captionGap
		c.Text(fr.ox+fr.w()/2, fr.oy-4, p.Player, captionStyle)
		drawPitch(c, fr)
		drawPasses(c, fr, p.Passes)
	}
	c.End()

	return r.finish(ctx, figure.KindPassGrid, start, ew.err)
}

// single lays out a titled figure on one full-size pitch.
func (r *Renderer) single(ctx context.Context, w io.Writer, kind figure.Kind, title string, draw func(*svg.SVG, frame)) error {
	start := time.Now()
	ew := &errWriter{w: w}
	c := svg.New(ew)

	fr := frame{ox: margin, oy: margin + titleHeight, scale: float64(r.scale), length: r.length, width: r.width}
	width := fr.w() + 2*margin
	height := fr.h() + 2*margin + titleHeight

	c.Start(width, height)
	c.Title(title)
	c.Text(width/2, margin+titleHeight/2, title, titleStyle)
	definitions(c)
	drawPitch(c, fr)
	draw(c, fr)
	c.End()

	return r.finish(ctx, kind, start, ew.err)
}

func (r *Renderer) finish(ctx context.Context, kind figure.Kind, start time.Time, err error) error {
	if err != nil {
		r.log.Error(ctx, "figure write failed", logger.String("kind", string(kind)), logger.Error(err))
		return model.Wrap("render."+string(kind), err)
	}
	elapsed := time.Since(start)
	metrics.RecordFigureRendered(string(kind), float64(elapsed.Microseconds())/1000)
	r.log.Debug(ctx, "figure rendered", logger.String("kind", string(kind)), logger.Duration("elapsed", elapsed))
	return nil
}

// definitions declares the arrow head used by pass arrows.
func definitions(c *svg.SVG) {
	c.Def()
	c.Marker("arrow", 8, 4, 8, 8, `orient="auto"`, `markerUnits="userSpaceOnUse"`)
	c.Path("M0,0 L8,4 L0,8 z", "fill:"+opponentColour)
	c.MarkerEnd()
	c.DefEnd()
}

// drawPasses draws a faint circle at each pass origin and an arrow to its end.
func drawPasses(c *svg.SVG, fr frame, passes []model.Event) {
	radius := max(1, fr.d(passRadius))
	for _, p := range passes {
		if !p.HasLocation {
			continue
		}
		x, y := fr.x(p.Location.X), fr.y(p.Location.Y)
		c.Circle(x, y, radius, "fill:"+opponentColour+";fill-opacity:0.2")
		if p.HasEnd {
			c.Line(x, y, fr.x(p.End.X), fr.y(p.End.Y),
				"stroke:"+opponentColour+";stroke-width:1", `marker-end="url(#arrow)"`)
		}
	}
}

// errWriter keeps the first write error; svgo itself never reports one.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
