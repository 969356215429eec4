package game

import (
	"image/color"
	"math"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/golangdaddy/highway/car"
	"github.com/golangdaddy/highway/scenery"
	"github.com/golangdaddy/highway/session"
	"github.com/golangdaddy/highway/sim"
	"github.com/golangdaddy/highway/traffic"
)

// keyNames maps keyboard keys to simulation controls. Arrows mirror WASD.
var keyNames = map[ebiten.Key]string{
	ebiten.KeyW:          "w",
	ebiten.KeyArrowUp:    "w",
	ebiten.KeyS:          "s",
	ebiten.KeyArrowDown:  "s",
	ebiten.KeyA:          "a",
	ebiten.KeyArrowLeft:  "a",
	ebiten.KeyD:          "d",
	ebiten.KeyArrowRight: "d",
	ebiten.KeyQ:          "q",
	ebiten.KeyE:          "e",
	ebiten.KeyR:          "r",
}

// releasedNames returns the controls whose every bound key is now up.
// Releasing the arrow while W is still down keeps the throttle held.
func releasedNames(released []ebiten.Key, pressed func(ebiten.Key) bool) []string {
	var names []string
	for _, k := range released {
		name, ok := keyNames[k]
		if !ok || slices.Contains(names, name) {
			continue
		}
		held := false
		for other, otherName := range keyNames {
			if otherName == name && other != k && pressed(other) {
				held = true
				break
			}
		}
		if !held {
			names = append(names, name)
		}
	}
	return names
}

var (
	grassColor   = color.RGBA{40, 90, 40, 255}
	roadColor    = color.RGBA{60, 60, 60, 255}
	dividerColor = color.RGBA{255, 255, 255, 220}
	edgeColor    = color.RGBA{255, 255, 0, 255}
)

// Lane marking pattern in world units
const (
	dashPeriod = 15.0
	dashLength = 6.0
)

// RoadView represents the main driving view
type RoadView struct {
	session *session.Session
	sim     *sim.Simulation
	cars    *car.Renderer
	hud     *HUD
	verge   *ebiten.Image

	lastUpdate time.Time
	keys       []ebiten.Key
}

// NewRoadView creates a road view driving the session's simulation
func NewRoadView(s *session.Session) *RoadView {
	return &RoadView{
		session:    s,
		sim:        s.Sim(),
		cars:       car.NewRenderer(),
		hud:        NewHUD(),
		lastUpdate: time.Now(),
	}
}

// Update forwards key edges to the simulation and advances it by the time
// since the previous frame.
func (rv *RoadView) Update() error {
	rv.keys = inpututil.AppendJustPressedKeys(rv.keys[:0])
	for _, k := range rv.keys {
		if name, ok := keyNames[k]; ok {
			rv.sim.KeyDown(name)
		}
	}
	rv.keys = inpututil.AppendJustReleasedKeys(rv.keys[:0])
	for _, name := range releasedNames(rv.keys, ebiten.IsKeyPressed) {
		rv.sim.KeyUp(name)
	}

	now := time.Now()
	dt := now.Sub(rv.lastUpdate).Seconds()
	rv.lastUpdate = now
	rv.sim.Tick(dt)
	return nil
}

// Draw renders the road view
func (rv *RoadView) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	proj := NewProjection(width, height)
	player := rv.sim.Player()
	camera := player.Position

	screen.Fill(grassColor)
	rv.drawVerges(screen, proj, camera)
	rv.drawRoad(screen, proj, camera)

	for _, c := range rv.sim.Traffic() {
		x, y := proj.ToScreen(c.X, c.Position, camera)
		if !proj.OnScreen(y, car.Length) {
			continue
		}
		rv.cars.RenderCar(screen, x, y, laneTilt(c.Lane, c.TargetLane), c.Crash.Pose, car.DriverColor(c.Driver))
	}

	x, y := proj.ToScreen(player.X, player.Position, camera)
	rv.cars.RenderCar(screen, x, y, laneTilt(player.Lane, player.TargetLane), traffic.Pose{}, car.PlayerColor)

	rv.drawRadar(screen, proj, camera)
	rv.hud.Draw(screen, rv.sim, rv.session.Seed())
}

// laneTilt angles a car slightly toward the lane it is moving into.
func laneTilt(lane, target int) float64 {
	switch {
	case target < lane:
		return -5
	case target > lane:
		return 5
	}
	return 0
}

// drawVerges tiles the roadside scenery down both sides of the road,
// scrolled with the camera.
func (rv *RoadView) drawVerges(screen *ebiten.Image, proj Projection, camera float64) {
	roadLeft := proj.Width/2 - rv.sim.Road().RoadWidth/2*proj.LateralScale
	if roadLeft <= 0 {
		return
	}
	if rv.verge == nil || rv.verge.Bounds().Dx() != int(roadLeft) || rv.verge.Bounds().Dy() != int(proj.Height) {
		rv.verge = scenery.NewGenerator(int(roadLeft), int(proj.Height)).Tile(rv.session.Seed())
	}

	shift := math.Mod(-camera*proj.LongitudinalScale, proj.Height)
	if shift < 0 {
		shift += proj.Height
	}
	for _, y := range []float64{shift - proj.Height, shift} {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(0, y)
		screen.DrawImage(rv.verge, op)

		// the right verge is mirrored
		op = &ebiten.DrawImageOptions{}
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(proj.Width, y)
		screen.DrawImage(rv.verge, op)
	}
}

func (rv *RoadView) drawRoad(screen *ebiten.Image, proj Projection, camera float64) {
	r := rv.sim.Road()
	halfWidth := r.RoadWidth / 2 * proj.LateralScale
	left := proj.Width/2 - halfWidth
	fillRect(screen, left, 0, halfWidth*2, proj.Height, roadColor)

	// solid edges
	const edgeWidth = 3.0
	fillRect(screen, left-edgeWidth/2, 0, edgeWidth, proj.Height, edgeColor)
	fillRect(screen, left+halfWidth*2-edgeWidth/2, 0, edgeWidth, proj.Height, edgeColor)

	// dashed dividers scroll with the camera
	ahead, behind := proj.VisibleRange(camera)
	first := math.Floor(ahead/dashPeriod) * dashPeriod
	const dividerWidth = 2.0
	for lane := 1; lane < r.NumLanes; lane++ {
		divider := (r.LaneX(lane-1) + r.LaneX(lane)) / 2
		for z := first; z < behind; z += dashPeriod {
			x, y := proj.ToScreen(divider, z, camera)
			fillRect(screen, x-dividerWidth/2, y, dividerWidth, dashLength*proj.LongitudinalScale, dividerColor)
		}
	}
}

// radarRange is the longitudinal distance shown each way on the radar strip.
const radarRange = 350.0

// drawRadar shows every car around the player on a compressed strip at the
// right edge of the screen.
func (rv *RoadView) drawRadar(screen *ebiten.Image, proj Projection, camera float64) {
	const (
		stripWidth = 36.0
		margin     = 8.0
		dot        = 4.0
	)
	x0 := proj.Width - stripWidth - margin
	h := proj.Height - 2*margin
	fillRect(screen, x0, margin, stripWidth, h, color.RGBA{0, 0, 0, 120})

	r := rv.sim.Road()
	laneStep := stripWidth / float64(r.NumLanes)
	toRadar := func(lane int, position float64) (float64, float64) {
		offset := (position - camera) / radarRange // -1 ahead .. +1 behind
		return x0 + laneStep*(float64(lane)+0.5), margin + h/2 + offset*h/2
	}

	for _, c := range rv.sim.Traffic() {
		if math.Abs(c.Position-camera) > radarRange {
			continue
		}
		x, y := toRadar(c.Lane, c.Position)
		clr := car.DriverColor(c.Driver)
		if c.Crashed() {
			clr = color.RGBA{255, 255, 255, 255}
		}
		fillRect(screen, x-dot/2, y-dot/2, dot, dot, clr)
	}
	player := rv.sim.Player()
	x, y := toRadar(player.Lane, player.Position)
	fillRect(screen, x-dot, y-dot, dot*2, dot*2, car.PlayerColor)
}
