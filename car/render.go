package car

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/golangdaddy/highway/traffic"
)

// Car dimensions in pixels
const (
	Width  = 30.0
	Length = 50.0
)

var (
	PlayerColor = color.RGBA{100, 150, 255, 255}
	SlowColor   = color.RGBA{90, 190, 110, 255}
	MediumColor = color.RGBA{230, 200, 70, 255}
	FastColor   = color.RGBA{230, 80, 70, 255}
	shadowColor = color.RGBA{0, 0, 0, 90}
)

// DriverColor returns the body colour used for a driver type.
func DriverColor(d traffic.DriverType) color.RGBA {
	switch d {
	case traffic.Slow:
		return SlowColor
	case traffic.Fast:
		return FastColor
	}
	return MediumColor
}

// Renderer draws top-down cars. Bodies are built once per colour.
type Renderer struct {
	bodies map[color.RGBA]*ebiten.Image
	shadow *ebiten.Image
}

// NewRenderer creates a renderer with an empty body cache.
func NewRenderer() *Renderer {
	shadow := ebiten.NewImage(int(Width), int(Length))
	shadow.Fill(shadowColor)
	return &Renderer{
		bodies: make(map[color.RGBA]*ebiten.Image),
		shadow: shadow,
	}
}

func (r *Renderer) body(c color.RGBA) *ebiten.Image {
	if img, ok := r.bodies[c]; ok {
		return img
	}

	img := ebiten.NewImage(int(Width), int(Length))
	img.Fill(c)

	// outline
	outline := color.RGBA{20, 20, 20, 255}
	const edge = 2.0
	fill(img, 0, 0, Width, edge, outline)
	fill(img, 0, Length-edge, Width, edge, outline)
	fill(img, 0, 0, edge, Length, outline)
	fill(img, Width-edge, 0, edge, Length, outline)

	// windshield at the front
	fill(img, Width*0.2, 0, Width*0.6, Length*0.2, color.RGBA{150, 200, 255, 200})

	// wheels
	wheel := color.RGBA{30, 30, 30, 255}
	const wheelW, wheelH = 6.0, 8.0
	fill(img, 2, 5, wheelW, wheelH, wheel)
	fill(img, Width-wheelW-2, 5, wheelW, wheelH, wheel)
	fill(img, 2, Length-wheelH-5, wheelW, wheelH, wheel)
	fill(img, Width-wheelW-2, Length-wheelH-5, wheelW, wheelH, wheel)

	r.bodies[c] = img
	return img
}

func fill(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	part := ebiten.NewImage(int(w), int(h))
	part.Fill(c)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	dst.DrawImage(part, op)
}

// RenderCar draws a car centred on (x, y) facing up the screen. angle tilts
// the car in degrees; pose applies a crash animation.
func (r *Renderer) RenderCar(screen *ebiten.Image, x, y, angle float64, pose traffic.Pose, c color.RGBA) {
	// Pitch and roll squash the sprite, lift raises it off its shadow
	scaleX := math.Max(0.4, math.Abs(math.Cos(pose.RotZ)))
	scaleY := math.Max(0.4, math.Abs(math.Cos(pose.RotX)))
	lift := 1 + pose.Lift*0.15
	rotation := angle*math.Pi/180 + pose.RotY

	if pose.Lift > 0 {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-Width/2, -Length/2)
		op.GeoM.Scale(scaleX, scaleY)
		op.GeoM.Rotate(rotation)
		op.GeoM.Translate(x+pose.Lift*3, y+pose.Lift*3)
		screen.DrawImage(r.shadow, op)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-Width/2, -Length/2)
	op.GeoM.Scale(scaleX*lift, scaleY*lift)
	op.GeoM.Rotate(rotation)
	op.GeoM.Translate(x, y)
	screen.DrawImage(r.body(c), op)
}
