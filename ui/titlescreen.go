package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/bitmapfont/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// controls lists the key help shown under the title.
var controls = []string{
	"W / S      speed up / slow down",
	"Q / E      left / right signal",
	"A / D      change lane",
	"R          restart after a crash",
}

// TitleScreen represents the main title screen
type TitleScreen struct {
	startTime      time.Time
	onStartPressed func() // Callback when user presses to start
	face           text.Face
	line           *ebiten.Image
}

// NewTitleScreen creates a new title screen
func NewTitleScreen(onStartPressed func()) *TitleScreen {
	line := ebiten.NewImage(1, 1)
	line.Fill(color.RGBA{50, 60, 80, 100})
	return &TitleScreen{
		startTime:      time.Now(),
		onStartPressed: onStartPressed,
		face:           text.NewGoXFace(bitmapfont.Face),
		line:           line,
	}
}

// Update handles input for the title screen
func (ts *TitleScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if ts.onStartPressed != nil {
			ts.onStartPressed()
		}
	}
	return nil
}

// Draw renders the title screen
func (ts *TitleScreen) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	screen.Fill(color.RGBA{15, 20, 35, 255})

	elapsed := time.Since(ts.startTime).Seconds()
	centerX := float64(width) / 2
	centerY := float64(height) / 3

	// Pulsing title
	titleScale := 7.0 * (1.0 + 0.08*math.Sin(elapsed*2.0))
	brightness := math.Min(1.0, 1.0+0.2*math.Sin(elapsed*1.5))
	ts.drawCentred(screen, "HIGHWAY", centerX, centerY-40, titleScale, color.RGBA{
		uint8(255 * brightness),
		uint8(200 * brightness),
		uint8(50 * brightness),
		255,
	})

	ts.drawCentred(screen, "Keep right. Signal. Don't tailgate.", centerX, centerY+50, 1.5, color.RGBA{180, 180, 200, 255})

	for i, c := range controls {
		ts.drawCentred(screen, c, centerX, centerY+100+float64(i)*20, 1.2, color.RGBA{140, 150, 170, 255})
	}

	// Blink every 0.5 seconds
	if int(elapsed*2)%2 == 0 {
		ts.drawCentred(screen, "Press ENTER or SPACE to Start", centerX, float64(height)-70, 1.5, color.RGBA{150, 200, 255, 255})
	}

	ts.drawLine(screen, width, float64(height)/8)
	ts.drawLine(screen, width, float64(height)*7/8)
}

func (ts *TitleScreen) drawCentred(screen *ebiten.Image, s string, x, y, scale float64, c color.Color) {
	w := text.Advance(s, ts.face) * scale
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x-w/2, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, ts.face, op)
}

func (ts *TitleScreen) drawLine(screen *ebiten.Image, width int, y float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(width), 2)
	op.GeoM.Translate(0, y)
	screen.DrawImage(ts.line, op)
}
