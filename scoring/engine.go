package scoring

import (
	"fmt"
	"math"

	"github.com/golangdaddy/highway/config"
)

// Vehicle is the part of a car's state the engine rates against.
type Vehicle struct {
	Lane     int
	Position float64
	Speed    float64
	Crashed  bool
}

// View is a snapshot of the road taken when the engine is updated.
type View struct {
	Player    Vehicle
	Traffic   []Vehicle
	InnerLane int // Overtaking lane
	OuterLane int // Cruising lane
}

// Evaluation records one rating and its effect on the score.
type Evaluation struct {
	Time     float64 // Seconds since the session started
	Speed    float64
	Lane     int
	Position float64
	Reason   Reason
	Mode     Mode
	Score    int
	Traffic  int // Uncrashed cars on the road
}

// Engine keeps the score and the feedback state.
type Engine struct {
	cfg      config.ScoringConfig
	feedback config.FeedbackConfig

	score    int
	elapsed  float64 // Total simulated time
	timer    float64 // Time since the last evaluation
	mode     Mode
	trickle  float64 // Time accumulated towards the next point
	last     Reason  // Last reason given feedback for
	debounce float64 // Seconds until new feedback may be shown
	message  Message
}

// NewEngine creates an engine holding the initial score.
func NewEngine(cfg *config.Config) *Engine {
	e := &Engine{
		cfg:      cfg.Scoring,
		feedback: cfg.Feedback,
	}
	e.Reset()
	return e
}

// Reset restores the initial score and clears timers, trickle and feedback.
func (e *Engine) Reset() {
	e.score = e.cfg.InitialScore
	e.elapsed = 0
	e.timer = 0
	e.mode = Halted
	e.trickle = 0
	e.last = None
	e.debounce = 0
	e.message = Message{}
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// Mode returns the current trickle direction.
func (e *Engine) Mode() Mode {
	return e.mode
}

// LastReason returns the reason feedback was last given for.
func (e *Engine) LastReason() Reason {
	return e.last
}

// Feedback returns the current feedback message.
func (e *Engine) Feedback() Message {
	return e.message
}

// Update advances the engine by dt. Debounce, message age and the trickle
// move every call; the driving is rated once per configured interval, in
// which case the evaluation is returned with true.
func (e *Engine) Update(dt float64, view View) (Evaluation, bool) {
	e.elapsed += dt
	e.timer += dt
	e.debounce = math.Max(0, e.debounce-dt)
	if e.message.Shown {
		e.message.Age += dt
	}
	e.advanceTrickle(dt)

	if e.timer < e.cfg.Interval {
		return Evaluation{}, false
	}
	e.timer = 0
	return e.apply(view), true
}

func (e *Engine) apply(view View) Evaluation {
	reason := Evaluate(view, e.cfg)

	if reason != e.last && e.debounce <= 0 {
		if text := reason.Message(); text != "" {
			e.show(text, !reason.Negative())
		}
		e.last = reason
		e.debounce = e.feedback.Debounce
	}

	switch {
	case reason.Negative():
		e.setMode(Decreasing)
	case reason == Driving:
		e.setMode(Increasing)
	default:
		e.Halt()
		e.last = None
	}

	traffic := 0
	for _, v := range view.Traffic {
		if !v.Crashed {
			traffic++
		}
	}
	return Evaluation{
		Time:     e.elapsed,
		Speed:    view.Player.Speed,
		Lane:     view.Player.Lane,
		Position: view.Player.Position,
		Reason:   reason,
		Mode:     e.mode,
		Score:    e.score,
		Traffic:  traffic,
	}
}

// Evaluate rates the driving in view. Later checks override earlier ones, so
// blocking wins over the wrong lane, which wins over tailgating.
func Evaluate(view View, cfg config.ScoringConfig) Reason {
	player := view.Player
	reason := None
	if player.Speed > cfg.DrivingMinSpeed {
		reason = Driving
	}

	for _, car := range view.Traffic {
		if car.Crashed || car.Lane != player.Lane {
			continue
		}
		ahead := player.Position - car.Position
		if ahead > 0 && ahead < cfg.TailgateDistance {
			reason = Tailgating
			break
		}
	}

	if player.Lane != view.InnerLane {
		return reason
	}

	passing := false
	passingRange := cfg.TailgateDistance * 2
	for _, car := range view.Traffic {
		if car.Crashed || car.Lane != view.OuterLane {
			continue
		}
		if math.Abs(car.Position-player.Position) <= passingRange {
			passing = true
			break
		}
	}
	if !passing {
		reason = LeftLane
	}

	for _, car := range view.Traffic {
		if car.Crashed || car.Lane != view.InnerLane {
			continue
		}
		behind := car.Position - player.Position
		if behind > 0 && behind < cfg.BlockingDistance && car.Speed > player.Speed {
			reason = Blocking
			break
		}
	}
	return reason
}

// setMode starts trickling in mode. Re-entering the current mode keeps the
// accumulated time.
func (e *Engine) setMode(mode Mode) {
	if e.mode == mode {
		return
	}
	e.mode = mode
	e.trickle = 0
}

// Halt stops the trickle.
func (e *Engine) Halt() {
	e.mode = Halted
	e.trickle = 0
}

func (e *Engine) advanceTrickle(dt float64) {
	var step float64
	var delta int
	switch e.mode {
	case Increasing:
		step, delta = e.cfg.IncreaseStep, 1
	case Decreasing:
		step, delta = e.cfg.DecreaseStep, -1
	default:
		return
	}
	if step <= 0 {
		return
	}
	e.trickle += dt
	for e.trickle >= step {
		e.trickle -= step
		e.add(delta)
	}
}

// Penalize deducts points at once and shows text, ignoring the debounce.
func (e *Engine) Penalize(points int, text string) {
	e.add(-points)
	e.show(text, false)
}

// LaneChangePenalty applies the penalty for an unsignalled lane change.
func (e *Engine) LaneChangePenalty() {
	points := e.cfg.LaneChangePenalty
	e.Penalize(points, fmt.Sprintf("No Signal -%d", points))
}

func (e *Engine) add(delta int) {
	e.score += delta
	if e.score < 0 {
		e.score = 0
	}
}

func (e *Engine) show(text string, positive bool) {
	e.message = newMessage(text, positive, e.feedback)
}
