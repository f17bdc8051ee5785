// Native PNG rendering of automaton diagrams.

package fafile

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Colors used in rendering
var (
	colorWhite      = color.RGBA{255, 255, 255, 255}
	colorBlack      = color.RGBA{51, 51, 51, 255}    // #333
	colorInitial    = color.RGBA{232, 245, 233, 255} // #e8f5e9
	colorInitialBdr = color.RGBA{46, 125, 50, 255}   // #2e7d32
	colorAccepting  = color.RGBA{255, 243, 224, 255} // #fff3e0
	colorAcceptBdr  = color.RGBA{230, 81, 0, 255}    // #e65100
	colorBoth       = color.RGBA{227, 242, 253, 255} // #e3f2fd
	colorBothBdr    = color.RGBA{21, 101, 192, 255}  // #1565c0
)

// renderContext holds rendering parameters including scale
type renderContext struct {
	img       *image.RGBA
	scale     float64 // multiplier for line thickness, arrow size, etc.
	lineWidth float64
	fontSize  float64
	face      font.Face
}

func newRenderContext(img *image.RGBA, scale, fontSize int) (*renderContext, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	size := float64(fontSize * scale)
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone, // supersampled instead
	})
	if err != nil {
		return nil, err
	}
	return &renderContext{
		img:       img,
		scale:     float64(scale),
		lineWidth: float64(scale) * 2,
		fontSize:  size,
		face:      face,
	}, nil
}

// RenderPNG draws def as a state diagram laid out per opts.Layout. It
// renders at 4x and downsamples for smoother output.
func RenderPNG(def *Definition, w io.Writer, opts DiagramOptions) error {
	const scale = 4
	large := opts
	large.Width = opts.Width * scale
	large.Height = opts.Height * scale
	large.Padding = opts.Padding * scale
	large.StateRadius = opts.StateRadius * scale

	largeImg, err := renderDiagram(def, large, scale)
	if err != nil {
		return err
	}
	finalImg := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.CatmullRom.Scale(finalImg, finalImg.Bounds(), largeImg, largeImg.Bounds(), draw.Over, nil)
	return png.Encode(w, finalImg)
}

func renderDiagram(def *Definition, opts DiagramOptions, scale int) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorWhite), image.Point{}, draw.Src)

	ctx, err := newRenderContext(img, scale, opts.FontSize)
	if err != nil {
		return nil, err
	}
	if opts.Title != "" {
		drawTextCentered(ctx, opts.Width/2, int(25*ctx.scale), opts.Title, colorBlack)
	}

	lay := layoutDiagram(def, opts, ctx.scale, ctx.fontSize*0.6)
	for _, e := range lay.edges {
		from, to := lay.pos[e.from], lay.pos[e.to]
		if e.from == e.to {
			drawSelfLoop(ctx, from[0], from[1], lay.dims[e.from], e.label, lay.centreY)
			continue
		}
		// opposite edges bend apart
		drawEdge(ctx, from, to, lay.dims[e.from], lay.dims[e.to], e.label, e.bidi)
	}

	for _, s := range def.Initial {
		p, d := lay.pos[s], lay.dims[s]
		drawArrowLine(ctx, p[0]-d[0]-30*ctx.scale, p[1], p[0]-d[0]-2*ctx.scale, p[1], colorBlack)
	}

	for _, name := range def.States {
		p, d := lay.pos[name], lay.dims[name]
		isInitial, isAccepting := def.IsInitial(name), def.IsAccepting(name)

		fill, border := colorWhite, colorBlack
		switch {
		case isInitial && isAccepting:
			fill, border = colorBoth, colorBothBdr
		case isInitial:
			fill, border = colorInitial, colorInitialBdr
		case isAccepting:
			fill, border = colorAccepting, colorAcceptBdr
		}
		drawEllipse(ctx, p[0], p[1], d[0], d[1], fill, border)
		if isAccepting {
			drawEllipse(ctx, p[0], p[1], d[0]-4*ctx.scale, d[1]-4*ctx.scale, color.Transparent, border)
		}
		drawTextCentered(ctx, int(p[0]), int(p[1]+4*ctx.scale), name, colorBlack)
	}
	return img, nil
}

// drawEllipse draws an ellipse outline and optional fill.
func drawEllipse(ctx *renderContext, cx, cy, rx, ry float64, fill, stroke color.Color) {
	img := ctx.img
	if fill != color.Transparent {
		for dy := -ry; dy <= ry; dy++ {
			yNorm := dy / ry
			xExtent := rx * math.Sqrt(1-yNorm*yNorm)
			for dx := -xExtent; dx <= xExtent; dx++ {
				img.Set(int(cx+dx), int(cy+dy), fill)
			}
		}
	}
	for angle := 0.0; angle < 2*math.Pi; angle += 0.005 {
		nx, ny := math.Cos(angle), math.Sin(angle)
		x, y := cx+rx*nx, cy+ry*ny
		for t := -ctx.lineWidth / 2; t <= ctx.lineWidth/2; t += 0.5 {
			img.Set(int(x+nx*t), int(y+ny*t), stroke)
		}
	}
}

// drawLine draws a line between two points with thickness from context.
func drawLine(ctx *renderContext, x1, y1, x2, y2 float64, c color.Color) {
	dx, dy := x2-x1, y2-y1
	dist := math.Hypot(dx, dy)
	half := ctx.lineWidth / 2
	if dist < 1 {
		for ty := -half; ty <= half; ty++ {
			for tx := -half; tx <= half; tx++ {
				ctx.img.Set(int(x1+tx), int(y1+ty), c)
			}
		}
		return
	}
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	perpX, perpY := -dy/dist, dx/dist
	for i := 0.0; i <= steps; i++ {
		t := i / steps
		px, py := x1+dx*t, y1+dy*t
		for off := -half; off <= half; off += 0.5 {
			ctx.img.Set(int(px+perpX*off), int(py+perpY*off), c)
		}
	}
}

// drawArrowHead fills an arrowhead at (x, y) pointing along (nx, ny).
func drawArrowHead(ctx *renderContext, x, y, nx, ny float64, c color.Color) {
	arrowLen := 8.0 * ctx.scale
	arrowWidth := 4.0 * ctx.scale
	ax1, ay1 := x-nx*arrowLen+ny*arrowWidth, y-ny*arrowLen-nx*arrowWidth
	ax2, ay2 := x-nx*arrowLen-ny*arrowWidth, y-ny*arrowLen+nx*arrowWidth
	for t := 0.0; t <= 1.0; t += 0.05 {
		drawLine(ctx, x, y, ax1+(ax2-ax1)*t, ay1+(ay2-ay1)*t, c)
	}
}

// drawArrowLine draws a line with an arrowhead at the end.
func drawArrowLine(ctx *renderContext, x1, y1, x2, y2 float64, c color.Color) {
	drawLine(ctx, x1, y1, x2, y2, c)
	dx, dy := x2-x1, y2-y1
	dist := math.Hypot(dx, dy)
	if dist < 1 {
		return
	}
	drawArrowHead(ctx, x2, y2, dx/dist, dy/dist, c)
}

// drawQuadBezierArrow draws a quadratic Bezier curve with an arrowhead.
func drawQuadBezierArrow(ctx *renderContext, x1, y1, cx, cy, x2, y2 float64, c color.Color) {
	const steps = 100.0
	prevX, prevY := x1, y1
	for i := 1.0; i <= steps; i++ {
		t := i / steps
		x := (1-t)*(1-t)*x1 + 2*(1-t)*t*cx + t*t*x2
		y := (1-t)*(1-t)*y1 + 2*(1-t)*t*cy + t*t*y2
		drawLine(ctx, prevX, prevY, x, y, c)
		prevX, prevY = x, y
	}
	tx, ty := x2-cx, y2-cy
	if dist := math.Hypot(tx, ty); dist >= 1 {
		drawArrowHead(ctx, x2, y2, tx/dist, ty/dist, c)
	}
}

// drawEdge draws a transition between two distinct states. When bent is
// set the edge curves to its left so that opposite edges do not overlap.
func drawEdge(ctx *renderContext, from, to, fromDims, toDims [2]float64, label string, bent bool) {
	dx, dy := to[0]-from[0], to[1]-from[1]
	dist := math.Hypot(dx, dy)
	if dist < 1 {
		return
	}
	nx, ny := dx/dist, dy/dist
	x1, y1 := ellipseEdgePoint(from[0], from[1], fromDims[0], fromDims[1], nx, ny)
	x2, y2 := ellipseEdgePoint(to[0], to[1], toDims[0], toDims[1], -nx, -ny)
	mx, my := (x1+x2)/2, (y1+y2)/2

	if !bent {
		drawArrowLine(ctx, x1, y1, x2, y2, colorBlack)
		drawTextCentered(ctx, int(mx-ny*10*ctx.scale), int(my+nx*10*ctx.scale), label, colorBlack)
		return
	}
	bend := 25 * ctx.scale
	cx, cy := mx+ny*bend, my-nx*bend
	drawQuadBezierArrow(ctx, x1, y1, cx, cy, x2, y2, colorBlack)
	drawTextCentered(ctx, int(cx), int(cy), label, colorBlack)
}

// drawSelfLoop draws a loop arc on the outer side of a state, above it for
// states in the upper half of the diagram and below otherwise.
func drawSelfLoop(ctx *renderContext, x, y float64, dims [2]float64, label string, centreY float64) {
	rx, ry := dims[0], dims[1]
	arcRx, arcRy := rx*0.45, ry*0.6
	dir := -1.0
	if y > centreY {
		dir = 1.0
	}
	arcCx, arcCy := x, y+dir*(ry+arcRy*0.6)

	start, end := 0.85*math.Pi, 2.15*math.Pi
	if dir > 0 {
		start, end = -0.15*math.Pi, 1.15*math.Pi
	}
	const steps = 50
	prevX, prevY := arcCx+arcRx*math.Cos(start), arcCy+arcRy*math.Sin(start)
	for i := 1; i <= steps; i++ {
		angle := start + (end-start)*float64(i)/steps
		px, py := arcCx+arcRx*math.Cos(angle), arcCy+arcRy*math.Sin(angle)
		drawLine(ctx, prevX, prevY, px, py, colorBlack)
		prevX, prevY = px, py
	}
	tx, ty := -arcRx*math.Sin(end), arcRy*math.Cos(end)
	if dist := math.Hypot(tx, ty); dist > 0 {
		drawArrowHead(ctx, prevX, prevY, tx/dist, ty/dist, colorBlack)
	}
	drawTextCentered(ctx, int(arcCx), int(arcCy+dir*(arcRy+10*ctx.scale)), label, colorBlack)
}

// drawTextCentered draws text centred on (x, y) using the Go Regular font.
func drawTextCentered(ctx *renderContext, x, y int, text string, c color.Color) {
	width := font.MeasureString(ctx.face, text).Ceil()
	ascent := ctx.face.Metrics().Ascent.Ceil()
	d := &font.Drawer{
		Dst:  ctx.img,
		Src:  image.NewUniform(c),
		Face: ctx.face,
		Dot: fixed.Point26_6{
			X: fixed.I(x - width/2),
			Y: fixed.I(y + int(float64(ascent)*0.15)),
		},
	}
	d.DrawString(text)
}
