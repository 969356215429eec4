package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/golangdaddy/highway/scoring"
	"github.com/golangdaddy/highway/sim"
)

var (
	hudColor      = color.RGBA{240, 240, 240, 255}
	positiveColor = color.RGBA{90, 230, 120, 255}
	negativeColor = color.RGBA{255, 90, 80, 255}
	signalColor   = color.RGBA{255, 190, 40, 255}
)

// HUD draws the score, speed, signals, feedback and the game over overlay.
type HUD struct {
	startTime time.Time
}

// NewHUD creates a HUD
func NewHUD() *HUD {
	return &HUD{startTime: time.Now()}
}

// Draw renders the HUD for the simulation's current state
func (h *HUD) Draw(screen *ebiten.Image, s *sim.Simulation, seed int64) {
	width, height := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	player := s.Player()

	fillRect(screen, 0, 0, 200, 64, color.RGBA{0, 0, 0, 140})
	drawText(screen, fmt.Sprintf("SCORE %d %s", s.Score(), trend(s.Mode())), 10, 8, 2, hudColor, 1, false)
	drawText(screen, fmt.Sprintf("SPEED %3.0f km/h", player.Speed), 10, 34, 1.5, hudColor, 1, false)
	drawText(screen, fmt.Sprintf("seed %d", seed), 10, height-20, 1, hudColor, 0.5, false)

	// signals blink while on
	blinkOn := int(time.Since(h.startTime).Seconds()*3)%2 == 0
	if player.LeftSignal && blinkOn {
		drawText(screen, "<", width/2-140, 8, 3, signalColor, 1, true)
	}
	if player.RightSignal && blinkOn {
		drawText(screen, ">", width/2+140, 8, 3, signalColor, 1, true)
	}

	if msg := s.Feedback(); msg.Visible() {
		clr := positiveColor
		if !msg.Positive {
			clr = negativeColor
		}
		drawText(screen, msg.Text, width/2, height/4, 2.5, clr, msg.Alpha(), true)
	}

	if over, reason := s.GameOver(); over {
		h.drawGameOver(screen, width, height, reason, s.Score(), s.Player().Stats.TotalDistance)
	}
}

func trend(m scoring.Mode) string {
	switch m {
	case scoring.Increasing:
		return "+"
	case scoring.Decreasing:
		return "-"
	}
	return ""
}

func (h *HUD) drawGameOver(screen *ebiten.Image, width, height float64, reason string, score int, distance float64) {
	fillRect(screen, 0, 0, width, height, color.RGBA{0, 0, 0, 170})

	centerX := width / 2
	drawText(screen, "GAME OVER", centerX, height/3-20, 5, negativeColor, 1, true)
	drawText(screen, reason, centerX, height/3+50, 1.5, hudColor, 1, true)
	drawText(screen, fmt.Sprintf("Final Score: %d", score), centerX, height/3+80, 2, hudColor, 1, true)
	drawText(screen, fmt.Sprintf("Distance: %.1f km", distance/1000), centerX, height/3+110, 1.5, hudColor, 1, true)
	drawText(screen, "Press R to restart", centerX, height-100, 1.5, color.RGBA{150, 200, 255, 255}, 1, true)
}
