package traffic

import (
	"io"
	"log/slog"

	"github.com/golangdaddy/highway/config"
	"github.com/golangdaddy/highway/models"
	"github.com/golangdaddy/highway/road"
)

// Rand is the source of randomness for spawning and driver decisions.
// *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// UpdateResult lists the cars whose state changed during an Update.
type UpdateResult struct {
	Crashed []*Car // Cars that collided this tick
	Removed []*Car // Cars whose crash animation finished and left the set
	Spawned []*Car // Cars added by the population manager
}

// Controller owns the active traffic set. Cars keep spawn order, which is
// also the update order.
type Controller struct {
	cfg    *config.Config
	road   *road.Road
	rng    Rand
	log    *slog.Logger
	cars   []*Car
	nextID int64
}

// NewController creates an empty traffic controller. A nil logger discards
// output.
func NewController(cfg *config.Config, r *road.Road, rng Rand, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{
		cfg:  cfg,
		road: r,
		rng:  rng,
		log:  logger,
	}
}

// Cars returns the active cars in update order. The slice must not be
// modified by callers.
func (tc *Controller) Cars() []*Car {
	return tc.cars
}

// Len returns the number of active cars, crashed ones included.
func (tc *Controller) Len() int {
	return len(tc.cars)
}

// Add places a car in the active set without a safety check and assigns it an
// ID if it has none.
func (tc *Controller) Add(car *Car) {
	if car.ID == 0 {
		tc.nextID++
		car.ID = tc.nextID
	} else if car.ID > tc.nextID {
		tc.nextID = car.ID
	}
	tc.cars = append(tc.cars, car)
}

// NewCar builds a car for lane without adding it.
func (tc *Controller) NewCar(lane int, position, speed float64, driver DriverType) *Car {
	tc.nextID++
	return newCar(tc.nextID, tc.road, lane, position, speed, driver)
}

// Reset removes every car.
func (tc *Controller) Reset() {
	tc.cars = nil
}

// SetRand replaces the source of randomness.
func (tc *Controller) SetRand(rng Rand) {
	tc.rng = rng
}

// snapshot is the pre-tick view of a car used for proximity checks, so no
// car observes a sibling that has already moved this tick.
type snapshot struct {
	id       int64
	lane     int
	position float64
	crashed  bool
}

func (tc *Controller) snapshot() []snapshot {
	snap := make([]snapshot, len(tc.cars))
	for i, c := range tc.cars {
		snap[i] = snapshot{id: c.ID, lane: c.Lane, position: c.Position, crashed: c.Crashed()}
	}
	return snap
}

// Update advances every car by dt given the player's state at the start of
// the tick, then resolves traffic collisions, repositions far-away cars and
// tops up the minimum distribution around the player.
func (tc *Controller) Update(dt float64, player models.Player) UpdateResult {
	var res UpdateResult
	snap := tc.snapshot()

	active := tc.cars[:0]
	for _, car := range tc.cars {
		if car.Crashed() {
			if advanceCrash(car, dt, tc.cfg.Crash) {
				res.Removed = append(res.Removed, car)
				continue
			}
		} else {
			tc.drive(car, dt, player, snap)
		}
		active = append(active, car)
	}
	// clear the tail so removed cars can be collected
	for i := len(active); i < len(tc.cars); i++ {
		tc.cars[i] = nil
	}
	tc.cars = active

	res.Crashed = tc.resolveCollisions()
	tc.reposition(player)
	res.Spawned = tc.ensureMinimum(player)
	return res
}

// TopUp randomly adds a car while the traffic is below the density cap.
func (tc *Controller) TopUp(player models.Player) (*Car, bool) {
	return tc.spawnDensity(player)
}

