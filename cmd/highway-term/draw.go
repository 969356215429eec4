package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/golangdaddy/highway/scoring"
	"github.com/golangdaddy/highway/traffic"
)

// World units covered by one terminal cell.
const (
	unitsPerRow = 2.5
	colsPerUnit = 3.0
	carRows     = 2
)

var (
	grassStyle   = tcell.StyleDefault.Background(tcell.ColorDarkGreen)
	roadStyle    = tcell.StyleDefault.Background(tcell.ColorDimGray)
	edgeStyle    = roadStyle.Foreground(tcell.ColorYellow)
	dividerStyle = roadStyle.Foreground(tcell.ColorWhite)
	playerStyle  = roadStyle.Foreground(tcell.ColorAqua).Bold(true)
	crashStyle   = roadStyle.Foreground(tcell.ColorWhite).Bold(true)
	hudStyle     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	goodStyle    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	badStyle     = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	signalStyle  = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
)

var driverStyles = map[traffic.DriverType]tcell.Style{
	traffic.Slow:   roadStyle.Foreground(tcell.ColorBlue),
	traffic.Medium: roadStyle.Foreground(tcell.ColorGreen),
	traffic.Fast:   roadStyle.Foreground(tcell.ColorRed),
}

// view maps world coordinates onto terminal cells. The player sits on
// playerRow and the road is centred on centreCol.
type view struct {
	playerRow int
	centreCol int
	camera    float64
}

func newView(width, height int, camera float64) view {
	return view{playerRow: height * 3 / 4, centreCol: width / 2, camera: camera}
}

// row returns the screen row of a longitudinal position. Smaller positions
// are further ahead and so higher up.
func (v view) row(position float64) int {
	return v.playerRow + int(math.Floor((position-v.camera)/unitsPerRow))
}

// col returns the screen column of a lateral position.
func (v view) col(x float64) int {
	return v.centreCol + int(math.Round(x*colsPerUnit))
}

func (t *terminal) draw() {
	t.screen.Clear()
	width, height := t.screen.Size()
	player := t.sim.Player()
	v := newView(width, height, player.Position)

	t.drawRoad(v, width, height)
	for _, c := range t.sim.Traffic() {
		glyph, style := '#', driverStyles[c.Driver]
		if c.Crashed() {
			glyph, style = 'X', crashStyle
		}
		t.drawCar(v, c.X, c.Position, glyph, style, height)
	}
	t.drawCar(v, player.X, player.Position, '@', playerStyle, height)
	t.drawStatus(width, height)
	t.screen.Show()
}

func (t *terminal) drawRoad(v view, width, height int) {
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			t.screen.SetContent(x, y, ' ', nil, grassStyle)
		}
	}

	r := t.sim.Road()
	left, right := v.col(-r.RoadWidth/2), v.col(r.RoadWidth/2)
	// Dashes scroll with the camera: a cell is painted when its world row
	// falls in the first half of a dash period.
	const dashPeriod = 6
	offset := int(math.Floor(v.camera / unitsPerRow))
	for y := 0; y < height; y++ {
		for x := left; x <= right; x++ {
			t.screen.SetContent(x, y, ' ', nil, roadStyle)
		}
		t.screen.SetContent(left, y, '│', nil, edgeStyle)
		t.screen.SetContent(right, y, '│', nil, edgeStyle)

		world := y - v.playerRow + offset
		if ((world%dashPeriod)+dashPeriod)%dashPeriod >= dashPeriod/2 {
			continue
		}
		for lane := 1; lane < r.NumLanes; lane++ {
			divider := (r.LaneX(lane-1) + r.LaneX(lane)) / 2
			t.screen.SetContent(v.col(divider), y, '┆', nil, dividerStyle)
		}
	}
}

func (t *terminal) drawCar(v view, x, position float64, glyph rune, style tcell.Style, height int) {
	top, col := v.row(position), v.col(x)
	for dy := 0; dy < carRows; dy++ {
		y := top + dy
		if y < 0 || y >= height {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			t.screen.SetContent(col+dx, y, glyph, nil, style)
		}
	}
}

func (t *terminal) drawStatus(width, height int) {
	player := t.sim.Player()
	drawString(t.screen, 1, 0, fmt.Sprintf("SCORE %d %s", t.sim.Score(), trend(t.sim.Mode())), hudStyle)
	drawString(t.screen, 1, 1, fmt.Sprintf("SPEED %3.0f km/h", player.Speed), hudStyle)
	drawString(t.screen, 1, height-1, fmt.Sprintf("seed %d  esc quits", t.session.Seed()), hudStyle)

	mid := width / 2
	if player.LeftSignal {
		drawString(t.screen, mid-10, 0, "<<", signalStyle)
	}
	if player.RightSignal {
		drawString(t.screen, mid+8, 0, ">>", signalStyle)
	}

	if msg := t.sim.Feedback(); msg.Visible() {
		style := goodStyle
		if !msg.Positive {
			style = badStyle
		}
		drawCentred(t.screen, mid, 3, msg.Text, style)
	}

	if over, reason := t.sim.GameOver(); over {
		drawCentred(t.screen, mid, height/3, "GAME OVER", badStyle)
		drawCentred(t.screen, mid, height/3+2, reason, hudStyle)
		drawCentred(t.screen, mid, height/3+3, fmt.Sprintf("Final Score: %d", t.sim.Score()), hudStyle)
		drawCentred(t.screen, mid, height/3+4, fmt.Sprintf("Distance: %.1f km", player.Stats.TotalDistance/1000), hudStyle)
		drawCentred(t.screen, mid, height/3+6, "Press R to restart", hudStyle)
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

func drawString(s tcell.Screen, x, y int, str string, style tcell.Style) {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func drawCentred(s tcell.Screen, x, y int, str string, style tcell.Style) {
	drawString(s, x-len([]rune(str))/2, y, str, style)
}
