// Package scenery paints the grass verges either side of the road.
package scenery

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
)

// Kind of roadside feature
type Kind int

const (
	Bush Kind = iota
	Tree
)

// Feature is one tree or bush placed on a verge tile.
type Feature struct {
	Kind   Kind
	X, Y   int
	Size   int // Bush radius or tree height in pixels
	Colour color.RGBA
}

var grass = color.RGBA{30, 100, 30, 255}

// Generator lays out verge tiles. A tile wraps vertically so it can be
// repeated down the screen as the road scrolls.
type Generator struct {
	Width  int
	Height int
}

// NewGenerator creates a new verge generator
func NewGenerator(width, height int) *Generator {
	return &Generator{
		Width:  width,
		Height: height,
	}
}

// Plan places the features of one tile. The same seed always gives the same
// verge.
func (g *Generator) Plan(seed int64) []Feature {
	rng := rand.New(rand.NewSource(seed))
	var features []Feature

	for y := 0; y < g.Height; y += 12 {
		density := 0.45 + 0.3*math.Sin(float64(y)*0.02)
		for x := 4; x < g.Width-4; x += 6 + rng.Intn(12) {
			if rng.Float64() > density {
				continue
			}
			f := Feature{
				X: x + rng.Intn(7) - 3,
				Y: y + rng.Intn(7) - 3,
			}
			if rng.Float64() < 0.3 {
				f.Kind = Tree
				f.Size = 24 + rng.Intn(16)
				f.Colour = color.RGBA{uint8(20 + rng.Intn(30)), uint8(80 + rng.Intn(60)), uint8(20 + rng.Intn(30)), 255}
			} else {
				f.Kind = Bush
				f.Size = 4 + rng.Intn(6)
				f.Colour = color.RGBA{uint8(40 + rng.Intn(40)), uint8(100 + rng.Intn(50)), uint8(40 + rng.Intn(40)), 255}
			}
			features = append(features, f)
		}
	}
	return features
}

// Tile renders the planned features onto a grass image.
func (g *Generator) Tile(seed int64) *ebiten.Image {
	img := ebiten.NewImage(g.Width, g.Height)
	img.Fill(grass)

	// speckle the grass
	rng := rand.New(rand.NewSource(seed ^ 0x5eed))
	for i := 0; i < g.Width*g.Height/12; i++ {
		shade := uint8(80 + rng.Intn(50))
		img.Set(rng.Intn(g.Width), rng.Intn(g.Height), color.RGBA{30, shade, 30, 255})
	}

	for _, f := range g.Plan(seed) {
		switch f.Kind {
		case Tree:
			g.drawTree(img, f)
		case Bush:
			g.drawBush(img, f)
		}
	}
	return img
}

// set paints one pixel, wrapping vertically and clipping horizontally.
func (g *Generator) set(img *ebiten.Image, x, y int, c color.Color) {
	if x < 0 || x >= g.Width {
		return
	}
	y %= g.Height
	if y < 0 {
		y += g.Height
	}
	img.Set(x, y, c)
}

// drawTree draws a pine seen from above: a trunk shadow under layered
// triangles.
func (g *Generator) drawTree(img *ebiten.Image, f Feature) {
	trunk := color.RGBA{60, 40, 20, 255}
	for ty := 0; ty < f.Size/4; ty++ {
		g.set(img, f.X, f.Y-ty, trunk)
		g.set(img, f.X+1, f.Y-ty, trunk)
	}

	width := f.Size * 2 / 3
	third := f.Size / 3
	for l := 0; l < 3; l++ {
		layerY := f.Y - f.Size/4 - l*f.Size/5
		layerW := max(width-l*4, 4)
		for ly := 0; ly < third; ly++ {
			rowW := layerW * (third - ly) / third
			for lx := -rowW / 2; lx < rowW/2; lx++ {
				g.set(img, f.X+lx, layerY-ly, f.Colour)
			}
		}
	}
}

func (g *Generator) drawBush(img *ebiten.Image, f Feature) {
	r := f.Size
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				g.set(img, f.X+dx, f.Y+dy, f.Colour)
			}
		}
	}
}
