package optics

import (
	"image"
	"image/png"
	"math"
	"os"

	"github.com/fogleman/gg"
)

// Circle marks a curved interface: its reference plane at X and its radius
type Circle struct {
	X float64
	R float64
}

// Diagram is everything drawn in a ray diagram
type Diagram struct {
	Rays      []Trace
	AngleRays []AngleTrace
	Prisms    []Prism
	// x positions of lenses, mirrors and flat interfaces
	Planes   []float64
	Surfaces []Circle
}

// ElementPlanes walks elements from x0 and returns where each one sits along the axis
func ElementPlanes(x0 float64, elements []Element) (planes []float64, surfaces []Circle) {
	x, sign := x0, 1.0
	for _, e := range elements {
		switch e := e.(type) {
		case Space:
			x += sign * e.D
		case CurvedSurface:
			surfaces = append(surfaces, Circle{X: x, R: e.R})
		case Mirror:
			planes = append(planes, x)
			sign = -sign
		default:
			planes = append(planes, x)
		}
	}
	return planes, surfaces
}

// AngleElementPlanes returns the positioned planes and the prisms of an angle-form bench
func AngleElementPlanes(elements []AngleElement) (planes []float64, prisms []Prism) {
	for _, e := range elements {
		switch e := e.(type) {
		case PointLens:
			planes = append(planes, e.Position)
		case MirrorAt:
			planes = append(planes, e.Position)
		case Prism:
			prisms = append(prisms, e)
		}
	}
	return planes, prisms
}

func (d Diagram) BoundingBox() (XMin, XMax, YMin, YMax float64) {
	grow := func(x, y float64) {
		XMin = math.Min(XMin, x)
		XMax = math.Max(XMax, x)
		YMin = math.Min(YMin, y)
		YMax = math.Max(YMax, y)
	}
	for _, t := range d.Rays {
		for _, s := range t {
			grow(s.Primary.X, s.Primary.Y)
			if s.Secondary.Amplitude > 0 {
				grow(s.Secondary.X, s.Secondary.Y)
			}
		}
	}
	for _, t := range d.AngleRays {
		for _, s := range t {
			grow(s.X, s.Y)
		}
	}
	for _, p := range d.Prisms {
		for _, v := range p.Vertices() {
			grow(v.X, v.Y)
		}
	}
	for _, x := range d.Planes {
		grow(x, 0)
	}
	for _, c := range d.Surfaces {
		grow(c.X-c.R, -c.R)
		grow(c.X+c.R, c.R)
	}
	return
}

// View renders a Diagram to an image of XSize by YSize pixels
type View struct {
	Diagram Diagram
	XSize   int
	YSize   int
	// Line width in pixels of a ray of amplitude 1
	Thickness float64
	// These cache the values needed to scale and translate from the diagram to the requested image size
	scale      float64
	xTranslate float64
	yTranslate float64
	xMin, xMax float64
	yMin, yMax float64
}

// Fraction of the image left empty around the diagram
const viewMargin = 0.05

func (view *View) computeScaleAndTranslation() {
	XMin, XMax, YMin, YMax := view.Diagram.BoundingBox()
	// Keep the plane markers visible on a diagram that is all on the axis
	if YMax-YMin < 1 {
		YMin, YMax = YMin-0.5, YMax+0.5
	}
	if XMax-XMin == 0 {
		XMin, XMax = XMin-0.5, XMax+0.5
	}
	padX := (XMax - XMin) * viewMargin
	padY := (YMax - YMin) * viewMargin
	XMin, XMax, YMin, YMax = XMin-padX, XMax+padX, YMin-padY, YMax+padY

	view.xMin, view.xMax, view.yMin, view.yMax = XMin, XMax, YMin, YMax
	view.xTranslate = -XMin
	view.yTranslate = -YMin
	XScale := float64(view.XSize) / (XMax - XMin)
	YScale := float64(view.YSize) / (YMax - YMin)
	view.scale = math.Min(XScale, YScale)
}

func (view *View) getScale() float64 {
	if view.scale == 0 {
		view.computeScaleAndTranslation()
	}
	return view.scale
}

// translateAndScale maps a diagram point to pixels. Image rows grow downward, so y is flipped.
func (view *View) translateAndScale(p Point) Point {
	s := view.getScale()
	return Point{
		X: (p.X + view.xTranslate) * s,
		Y: float64(view.YSize) - (p.Y+view.yTranslate)*s,
	}
}

func (view *View) lineWidth(amplitude float64) float64 {
	return math.Max(0.5, amplitude*view.Thickness)
}

func (view *View) line(c *gg.Context, a, b Point) {
	p1 := view.translateAndScale(a)
	p2 := view.translateAndScale(b)
	c.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
	c.Stroke()
}

// Draw renders the diagram: primary branches solid, secondary branches dashed, line width
// proportional to amplitude
func (view *View) Draw() image.Image {
	c := gg.NewContext(view.XSize, view.YSize)
	c.SetRGB(1, 1, 1)
	c.Clear()
	view.getScale()

	// Optical axis
	c.SetRGB(0.6, 0.6, 0.6)
	c.SetLineWidth(1)
	c.SetDash(6, 4)
	view.line(c, Point{view.xMin, 0}, Point{view.xMax, 0})
	c.SetDash()

	for _, x := range view.Diagram.Planes {
		view.line(c, Point{x, view.yMin}, Point{x, view.yMax})
	}
	c.SetRGB(0.2, 0.2, 0.6)
	for _, s := range view.Diagram.Surfaces {
		center := view.translateAndScale(Point{s.X, 0})
		c.DrawCircle(center.X, center.Y, s.R*view.scale)
		c.Stroke()
	}
	for _, p := range view.Diagram.Prisms {
		v := p.Vertices()
		c.SetLineWidth(2)
		for i := range v {
			view.line(c, v[i], v[(i+1)%len(v)])
		}
	}

	c.SetRGB(0, 0, 0)
	for _, t := range view.Diagram.Rays {
		for i := 0; i < len(t)-1; i++ {
			a, b := t[i], t[i+1]
			c.SetLineWidth(view.lineWidth(b.Primary.Amplitude))
			view.line(c, Point{a.Primary.X, a.Primary.Y}, Point{b.Primary.X, b.Primary.Y})

			if b.Secondary.Amplitude <= 0 {
				continue
			}
			c.SetDash(4, 3)
			c.SetLineWidth(view.lineWidth(b.Secondary.Amplitude))
			view.line(c, Point{a.Secondary.X, a.Secondary.Y}, Point{b.Secondary.X, b.Secondary.Y})
			c.SetDash()
		}
	}

	c.SetLineWidth(view.lineWidth(1))
	for _, t := range view.Diagram.AngleRays {
		for i := 0; i < len(t)-1; i++ {
			view.line(c, Point{t[i].X, t[i].Y}, Point{t[i+1].X, t[i+1].Y})
		}
		// The last state has no successor: extend it in its own direction to the edge
		last := t.Last()
		d := direction(last.Angle)
		reach := (view.xMax - view.xMin) + (view.yMax - view.yMin)
		view.line(c, Point{last.X, last.Y}, Point{last.X + d.X*reach, last.Y + d.Y*reach})
	}
	return c.Image()
}

func SaveImage(filename string, i image.Image) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, i)
}
