package annotate

import (
	"math"

	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/pointer"
	"github.com/example/markshot/internal/scene"
)

// Draw renders every finalized shape and, while the cursor is over bounds,
// the in-progress shape on top. Geometry is expressed relative to the
// surface's top-left corner. Results are memoized until the engine changes.
func (e *Engine) Draw(bounds geom.Rect, cursor pointer.Cursor) scene.Primitive {
	over := cursor.IsOver(bounds)
	if over != e.cacheOver {
		e.cache.Clear()
		e.cacheOver = over
	}
	vp := geom.NewViewport(e.image, e.crop, bounds.Size())
	return e.cache.Draw(bounds.Size(), func(f *scene.Frame) {
		for _, s := range e.shapes {
			e.paint(f, s, vp)
		}
		if over && e.draft != nil {
			e.paint(f, e.draft, vp)
		}
	})
}

func roundStroke(c scene.Color, width float32) scene.Stroke {
	return scene.Stroke{
		Paint: scene.Solid{Color: c},
		Width: width,
		Cap:   scene.CapRound,
		Join:  scene.JoinRound,
	}
}

func (e *Engine) paint(f *scene.Frame, s Shape, vp geom.Viewport) {
	clip := geom.WithSize(f.Size())
	switch s := s.(type) {
	case Text:
		f.WithClip(clip, func(c *scene.Frame) {
			c.FillText(scene.Text{
				Content:  s.Content,
				Position: vp.Apply(s.Position),
				Color:    s.Color,
				Size:     s.Size * vp.Scale * Magnification,
				Font:     s.Font,
				HAlign:   scene.AlignCenter,
				VAlign:   scene.AlignCenter,
			})
		})
	case Rectangle:
		path := scene.Rectangle(s.Bounds.Origin(), s.Bounds.Size()).Transform(vp.Apply)
		f.WithClip(clip, func(c *scene.Frame) {
			if s.Fill.Filled {
				c.Fill(path, scene.Solid{Color: s.Color})
				return
			}
			c.Stroke(path, roundStroke(s.Color, s.Fill.Width*vp.Scale*Magnification))
		})
	case Arrow:
		path := arrowPath(s.Start, s.End, ArrowHeadRatio*e.image.H).Transform(vp.Apply)
		f.WithClip(clip, func(c *scene.Frame) {
			c.Stroke(path, roundStroke(s.Color, s.StrokeWidth*vp.Scale*Magnification))
		})
	case FreeHand:
		if len(s.Points) == 0 {
			return
		}
		path := scene.Polyline(s.Points).Transform(vp.Apply)
		f.WithClip(clip, func(c *scene.Frame) {
			c.Stroke(path, roundStroke(s.Color, s.StrokeWidth*vp.Scale*Magnification))
		})
	}
}

// arrowPath builds the shaft from start to end plus two barbs of length
// barb at the end point. A zero-length arrow has no barbs.
func arrowPath(start, end geom.Point, barb float32) scene.Path {
	var b scene.Builder
	b.MoveTo(start).LineTo(end)
	if start.Distance(end) > 0 {
		angle := math.Atan2(float64(end.Y-start.Y), float64(end.X-start.X))
		spread := math.Pi/2 + math.Pi/3
		upper := angle + spread
		lower := angle - spread
		b.LineTo(geom.Pt(
			end.X+float32(math.Cos(upper))*barb,
			end.Y+float32(math.Sin(upper))*barb,
		))
		b.MoveTo(end)
		b.LineTo(geom.Pt(
			end.X+float32(math.Cos(lower))*barb,
			end.Y+float32(math.Sin(lower))*barb,
		))
	}
	return b.Build()
}
