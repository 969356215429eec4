package road

import "math"

// Road describes the highway cross-section. Lane 0 is the inner (left,
// overtaking) lane and the highest index is the outer (right) lane.
type Road struct {
	NumLanes  int       // Number of lanes
	LaneWidth float64   // Width of each lane in world units
	RoadWidth float64   // Total width of all lanes
	positions []float64 // Lateral centre of each lane, left to right
}

// NewRoad creates a road whose lanes are centred around lateral X = 0.
func NewRoad(numLanes int, laneWidth float64) *Road {
	r := &Road{
		NumLanes:  numLanes,
		LaneWidth: laneWidth,
		RoadWidth: float64(numLanes) * laneWidth,
		positions: make([]float64, numLanes),
	}
	// For two 4-wide lanes this gives [-2, +2]
	for i := range r.positions {
		r.positions[i] = (float64(i) - float64(numLanes-1)/2) * laneWidth
	}
	return r
}

// InnerLane returns the overtaking lane index.
func (r *Road) InnerLane() int {
	return 0
}

// OuterLane returns the slow lane index.
func (r *Road) OuterLane() int {
	return r.NumLanes - 1
}

// Valid reports whether lane is an index into the lane table.
func (r *Road) Valid(lane int) bool {
	return lane >= 0 && lane < r.NumLanes
}

// LaneX returns the lateral coordinate of the centre of lane.
// Out-of-range lanes are clamped to the nearest edge lane.
func (r *Road) LaneX(lane int) float64 {
	if lane < 0 {
		lane = 0
	}
	if lane >= r.NumLanes {
		lane = r.NumLanes - 1
	}
	return r.positions[lane]
}

// LanePositions returns a copy of the lane centre table.
func (r *Road) LanePositions() []float64 {
	out := make([]float64, len(r.positions))
	copy(out, r.positions)
	return out
}

// LaneAt returns the lane whose centre is nearest to x.
func (r *Road) LaneAt(x float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, p := range r.positions {
		if d := math.Abs(p - x); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Other returns the neighbouring lane a car would pass into. On a two lane
// road that is the only other lane; on wider roads the inner neighbour is
// preferred and the outer one used from lane 0.
func (r *Road) Other(lane int) int {
	if lane > 0 {
		return lane - 1
	}
	return lane + 1
}

// Ease moves current toward target by at most rate*dt and never past it.
// arrived is true once the remaining distance is below epsilon, in which case
// the returned position is exactly target.
func Ease(current, target, rate, dt, epsilon float64) (next float64, arrived bool) {
	diff := target - current
	if math.Abs(diff) < epsilon {
		return target, true
	}
	step := rate * dt
	if step >= math.Abs(diff) {
		return target, true
	}
	return current + math.Copysign(step, diff), false
}
