package stream

import (
	"math"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledtween/easing"
	"github.com/matt-g-everett/ledtween/keyframes"
	"github.com/matt-g-everett/ledtween/util"
)

// A Layer draws the latest value of an animation onto a frame. Layers are
// updated from animation callbacks and rendered from the streamer, so
// implementations guard their value.
type Layer interface {
	Render(f *Frame)
}

// FillLayer paints the whole strip with an animated colour.
type FillLayer struct {
	mu     sync.Mutex
	colour colorful.Color
}

// NewFillLayer creates a FillLayer showing colour until its first update.
func NewFillLayer(colour colorful.Color) *FillLayer {
	l := new(FillLayer)
	l.colour = colour
	return l
}

// Set updates the colour.
func (l *FillLayer) Set(c colorful.Color) {
	l.mu.Lock()
	l.colour = c
	l.mu.Unlock()
}

// Render fills f.
func (l *FillLayer) Render(f *Frame) {
	l.mu.Lock()
	c := l.colour
	l.mu.Unlock()
	f.Fill(c)
}

// CursorLayer draws a soft spot of light centred on an animated pixel index.
type CursorLayer struct {
	colour colorful.Color
	lut    []float64

	mu       sync.Mutex
	position int
}

// NewCursorLayer creates a CursorLayer whose spot is width pixels wide.
func NewCursorLayer(colour colorful.Color, width int) *CursorLayer {
	if width < 1 {
		width = 1
	}
	l := new(CursorLayer)
	l.colour = colour
	l.lut = util.GenerateLut(easing.InOutQuad, width)
	return l
}

// Set moves the cursor to pixel i.
func (l *CursorLayer) Set(i int) {
	l.mu.Lock()
	l.position = i
	l.mu.Unlock()
}

// Render blends the spot over f.
func (l *CursorLayer) Render(f *Frame) {
	l.mu.Lock()
	start := l.position - len(l.lut)/2
	l.mu.Unlock()

	for j, level := range l.lut {
		i := start + j
		if i < 0 || i >= f.Len() {
			continue
		}
		f.Set(i, f.Pixel(i).BlendRgb(l.colour, level))
	}
}

// BrightnessLayer dims everything rendered beneath it by an animated level,
// where 1 leaves the frame untouched and 0 is black.
type BrightnessLayer struct {
	mu    sync.Mutex
	level float64
}

// NewBrightnessLayer creates a BrightnessLayer at full brightness.
func NewBrightnessLayer() *BrightnessLayer {
	l := new(BrightnessLayer)
	l.level = 1
	return l
}

// Set updates the brightness level.
func (l *BrightnessLayer) Set(level float64) {
	l.mu.Lock()
	l.level = math.Max(0, math.Min(1, level))
	l.mu.Unlock()
}

// Render dims f.
func (l *BrightnessLayer) Render(f *Frame) {
	l.mu.Lock()
	level := l.level
	l.mu.Unlock()

	if level == 1 {
		return
	}
	dimmed := f.InterpolateFrame(NewFrame(f.Len()), 1-level)
	copy(f.pixels, dimmed.pixels)
}

// SpanLayer lights the pixels between an animated pair of indices, using the
// point's X as the first pixel and Y as the last. Nothing is lit while X is
// past Y.
type SpanLayer struct {
	colour colorful.Color

	mu   sync.Mutex
	span keyframes.Point
}

// NewSpanLayer creates an empty SpanLayer.
func NewSpanLayer(colour colorful.Color) *SpanLayer {
	l := new(SpanLayer)
	l.colour = colour
	l.span = keyframes.Point{X: 0, Y: -1}
	return l
}

// Set updates the span.
func (l *SpanLayer) Set(p keyframes.Point) {
	l.mu.Lock()
	l.span = p
	l.mu.Unlock()
}

// Render paints the span onto f.
func (l *SpanLayer) Render(f *Frame) {
	l.mu.Lock()
	from, to := l.span.X, l.span.Y
	l.mu.Unlock()

	for i := from; i <= to; i++ {
		f.Set(i, l.colour)
	}
}

// TrailLayer cycles a gradient along the strip. The animated value is the
// offset of the gradient as a fraction of the trail length.
type TrailLayer struct {
	gradient    GradientTable
	trailLength int
	saturation  float64
	luminance   float64

	mu      sync.Mutex
	current float64
}

// NewTrailLayer creates a TrailLayer repeating gradient every trailLength
// pixels.
func NewTrailLayer(gradient GradientTable, trailLength int) *TrailLayer {
	if len(gradient) == 0 {
		gradient = RainbowGradient
	}
	if trailLength < 1 {
		trailLength = 1
	}
	g := new(TrailLayer)
	g.gradient = gradient
	g.trailLength = trailLength
	g.saturation = 1.0
	g.luminance = 0.05
	return g
}

// Set updates the gradient offset.
func (g *TrailLayer) Set(offset float64) {
	g.mu.Lock()
	g.current = offset
	g.mu.Unlock()
}

// Render paints the gradient onto f.
func (g *TrailLayer) Render(f *Frame) {
	g.mu.Lock()
	current := g.current
	g.mu.Unlock()

	length := float64(g.trailLength)
	for i := 0; i < f.Len(); i++ {
		t := math.Mod(float64(i)/length-current, 1)
		if t < 0 {
			t += 1
		}
		f.Set(i, g.gradient.GetColor(t, g.saturation, g.luminance))
	}
}
