package geom

import (
	"fmt"
	"sync"

	"github.com/gekko3d/painter/core"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

const (
	// Outlines are loaded at 64 pixels per em so one em is 64*64 in 26.6
	// fixed point.
	textPPEM    = 64
	textEmUnits = textPPEM * 64

	quadSteps  = 4
	cubicSteps = 6

	lineSpacing = 1.25
)

// TextParams renders Text as glyph outlines. Size is the em height in
// local units; newlines start a new line below the previous one.
type TextParams struct {
	Text  string     `yaml:"text"`
	Size  float32    `yaml:"size"`
	Color [4]float32 `yaml:"color"`
}

// TextClass draws vector text as line segments tracing the outline of
// each glyph of the Go Regular font. The baseline of the first line runs
// along local X through the origin.
func TextClass() Class {
	return Define("Text", func() TextParams {
		return TextParams{Size: 5, Color: [4]float32{1, 1, 1, 0.5}}
	}, buildText)
}

var (
	regularOnce sync.Once
	regularFont *sfnt.Font
	regularErr  error
)

func loadRegular() (*sfnt.Font, error) {
	regularOnce.Do(func() {
		regularFont, regularErr = opentype.Parse(goregular.TTF)
	})
	return regularFont, regularErr
}

func buildText(p TextParams) (Shape, error) {
	if p.Size <= 0 {
		return Shape{}, invalid("text size %v", p.Size)
	}
	f, err := loadRegular()
	if err != nil {
		return Shape{}, fmt.Errorf("load font: %w", err)
	}

	o := outliner{scale: p.Size / textEmUnits, color: p.Color}
	var buf sfnt.Buffer
	ppem := fixed.I(textPPEM)
	var penX, penY float32
	for _, r := range p.Text {
		if r == '\n' {
			penX = 0
			penY -= lineSpacing * p.Size
			continue
		}
		gi, err := f.GlyphIndex(&buf, r)
		if err != nil {
			return Shape{}, fmt.Errorf("glyph %q: %w", r, err)
		}
		segs, err := f.LoadGlyph(&buf, gi, ppem, nil)
		if err != nil {
			return Shape{}, fmt.Errorf("glyph %q: %w", r, err)
		}
		o.trace(segs, penX, penY)

		adv, err := f.GlyphAdvance(&buf, gi, ppem, font.HintingNone)
		if err != nil {
			return Shape{}, fmt.Errorf("glyph %q: %w", r, err)
		}
		penX += float32(adv) * o.scale
	}
	return Shape{Geometry: core.Geometry{Primitive: core.Lines, Vertices: o.verts}}, nil
}

// outliner flattens glyph segments into line list vertices.
type outliner struct {
	scale float32
	color [4]float32
	verts []core.Vertex

	ox, oy       float32
	start, last  [2]float32
	contourStart bool
}

func (o *outliner) trace(segs sfnt.Segments, ox, oy float32) {
	o.ox, o.oy = ox, oy
	o.contourStart = false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			o.closeContour()
			o.start = o.point(s.Args[0])
			o.last = o.start
			o.contourStart = true
		case sfnt.SegmentOpLineTo:
			o.lineTo(o.point(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			p0, p1, p2 := o.last, o.point(s.Args[0]), o.point(s.Args[1])
			for i := 1; i <= quadSteps; i++ {
				t := float32(i) / quadSteps
				u := 1 - t
				o.lineTo([2]float32{
					u*u*p0[0] + 2*u*t*p1[0] + t*t*p2[0],
					u*u*p0[1] + 2*u*t*p1[1] + t*t*p2[1],
				})
			}
		case sfnt.SegmentOpCubeTo:
			p0, p1, p2, p3 := o.last, o.point(s.Args[0]), o.point(s.Args[1]), o.point(s.Args[2])
			for i := 1; i <= cubicSteps; i++ {
				t := float32(i) / cubicSteps
				u := 1 - t
				a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
				o.lineTo([2]float32{
					a*p0[0] + b*p1[0] + c*p2[0] + d*p3[0],
					a*p0[1] + b*p1[1] + c*p2[1] + d*p3[1],
				})
			}
		}
	}
	o.closeContour()
}

// point converts a 26.6 outline point, y down, to local units, y up.
func (o *outliner) point(p fixed.Point26_6) [2]float32 {
	return [2]float32{
		o.ox + float32(p.X)*o.scale,
		o.oy - float32(p.Y)*o.scale,
	}
}

func (o *outliner) lineTo(p [2]float32) {
	if p != o.last {
		o.verts = append(o.verts, vtx(o.last[0], o.last[1], 0, o.color), vtx(p[0], p[1], 0, o.color))
	}
	o.last = p
}

func (o *outliner) closeContour() {
	if o.contourStart && o.last != o.start {
		o.lineTo(o.start)
	}
	o.contourStart = false
}
