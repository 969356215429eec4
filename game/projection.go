package game

// Projection maps world coordinates to the top-down screen. The road is
// centred horizontally and the camera follows the player along the road.
type Projection struct {
	Width, Height     float64
	LateralScale      float64 // Pixels per lateral world unit
	LongitudinalScale float64 // Pixels per longitudinal world unit
	PlayerY           float64 // Screen row the player is drawn on
}

// NewProjection returns the projection used for a screen of the given size.
func NewProjection(width, height int) Projection {
	return Projection{
		Width:             float64(width),
		Height:            float64(height),
		LateralScale:      20,
		LongitudinalScale: 10,
		PlayerY:           float64(height) * 0.8,
	}
}

// ToScreen converts a lateral x and longitudinal position to screen
// coordinates for a camera at cameraPosition. Forward (decreasing position)
// is up.
func (p Projection) ToScreen(x, position, cameraPosition float64) (float64, float64) {
	sx := p.Width/2 + x*p.LateralScale
	sy := p.PlayerY + (position-cameraPosition)*p.LongitudinalScale
	return sx, sy
}

// VisibleRange returns the longitudinal world range shown on screen.
func (p Projection) VisibleRange(cameraPosition float64) (ahead, behind float64) {
	ahead = cameraPosition - p.PlayerY/p.LongitudinalScale
	behind = cameraPosition + (p.Height-p.PlayerY)/p.LongitudinalScale
	return ahead, behind
}

// OnScreen reports whether a screen row is within margin pixels of the screen.
func (p Projection) OnScreen(sy, margin float64) bool {
	return sy >= -margin && sy <= p.Height+margin
}
