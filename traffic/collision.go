package traffic

import "math"

// PlayerCollision returns the first uncrashed car in lane closer than
// threshold to position, or nil.
func PlayerCollision(cars []*Car, lane int, position, threshold float64) *Car {
	for _, car := range cars {
		if car.Crashed() {
			continue
		}
		if car.Lane == lane && math.Abs(car.Position-position) < threshold {
			return car
		}
	}
	return nil
}

// Pair is two cars that collided.
type Pair struct {
	A, B *Car
}

// FindCollisions returns every unordered pair of uncrashed cars sharing a lane
// closer than threshold. It does not modify the cars.
func FindCollisions(cars []*Car, threshold float64) []Pair {
	var pairs []Pair
	for i := 0; i < len(cars); i++ {
		a := cars[i]
		if a.Crashed() {
			continue
		}
		for j := i + 1; j < len(cars); j++ {
			b := cars[j]
			if b.Crashed() {
				continue
			}
			if a.Lane == b.Lane && math.Abs(a.Position-b.Position) < threshold {
				pairs = append(pairs, Pair{A: a, B: b})
			}
		}
	}
	return pairs
}

// resolveCollisions crashes both cars of every colliding pair. Pairs are found
// before any car is marked, so a car hit by two others crashes once and the
// outcome does not depend on which pair is visited first.
func (tc *Controller) resolveCollisions() []*Car {
	var crashed []*Car
	for _, p := range FindCollisions(tc.cars, tc.cfg.Crash.TrafficDistance) {
		for _, car := range []*Car{p.A, p.B} {
			if car.Crashed() {
				continue
			}
			initiateCrash(car, tc.rng)
			crashed = append(crashed, car)
			tc.log.Debug("traffic collision", "car", car.ID, "lane", car.Lane, "position", car.Position)
		}
	}
	return crashed
}
