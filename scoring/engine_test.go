package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/highway/config"
)

// dt divides every scoring interval exactly
const dt = 1.0 / 16

func player(lane int, speed float64) Vehicle {
	return Vehicle{Lane: lane, Position: 0, Speed: speed}
}

func view(p Vehicle, traffic ...Vehicle) View {
	return View{Player: p, Traffic: traffic, InnerLane: 0, OuterLane: 1}
}

func run(e *Engine, v View, seconds float64) []Evaluation {
	var out []Evaluation
	for i := 0; i < int(seconds/dt); i++ {
		if ev, ok := e.Update(dt, v); ok {
			out = append(out, ev)
		}
	}
	return out
}

func TestEvaluate(t *testing.T) {
	cfg := config.Default().Scoring
	cases := []struct {
		name string
		view View
		want Reason
	}{
		{"driving", view(player(1, 100)), Driving},
		{"too slow to score", view(player(1, 20)), None},
		{"tailgating", view(player(1, 100), Vehicle{Lane: 1, Position: -10, Speed: 100}), Tailgating},
		{"tailgate edge", view(player(1, 100), Vehicle{Lane: 1, Position: -15, Speed: 100}), Driving},
		{"car behind is not tailgated", view(player(1, 100), Vehicle{Lane: 1, Position: 10, Speed: 100}), Driving},
		{"crashed car ignored", view(player(1, 100), Vehicle{Lane: 1, Position: -10, Crashed: true}), Driving},
		{"left lane with nothing to pass", view(player(0, 100)), LeftLane},
		{"left lane while passing", view(player(0, 100), Vehicle{Lane: 1, Position: 30, Speed: 100}), Driving},
		{"crashed car is not passed", view(player(0, 100), Vehicle{Lane: 1, Position: 0, Crashed: true}), LeftLane},
		{"left lane beats tailgating", view(player(0, 100), Vehicle{Lane: 0, Position: -10, Speed: 100}), LeftLane},
		{
			"blocking",
			view(player(0, 100), Vehicle{Lane: 1, Position: 10, Speed: 100}, Vehicle{Lane: 0, Position: 20, Speed: 120}),
			Blocking,
		},
		{
			"slower car behind is not blocked",
			view(player(0, 100), Vehicle{Lane: 1, Position: 10, Speed: 100}, Vehicle{Lane: 0, Position: 20, Speed: 90}),
			Driving,
		},
		{"blocking beats left lane", view(player(0, 100), Vehicle{Lane: 0, Position: 40, Speed: 130}), Blocking},
		{"blocking out of range", view(player(0, 100), Vehicle{Lane: 0, Position: 50, Speed: 130}), LeftLane},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Evaluate(tc.view, cfg))
		})
	}
}

func TestGoodDrivingTricklesUp(t *testing.T) {
	e := NewEngine(config.Default())
	v := view(player(1, 100), Vehicle{Lane: 0, Position: -200, Speed: 120})

	evs := run(e, v, 1)
	require.Len(t, evs, 1)
	ev := evs[0]
	assert.Equal(t, Driving, ev.Reason)
	assert.Equal(t, Increasing, ev.Mode)
	assert.Equal(t, 1000, ev.Score)
	assert.Equal(t, 1.0, ev.Time)
	assert.Equal(t, 1, ev.Traffic)

	msg := e.Feedback()
	assert.Equal(t, "Good Driving", msg.Text)
	assert.True(t, msg.Positive)
	assert.True(t, msg.Visible())

	run(e, v, 1)
	assert.Equal(t, 1004, e.Score())
}

func TestLeftLaneScenario(t *testing.T) {
	e := NewEngine(config.Default())
	v := view(player(0, 100), Vehicle{Lane: 1, Position: 100, Speed: 100})

	evs := run(e, v, 1)
	require.Len(t, evs, 1)
	assert.Equal(t, LeftLane, evs[0].Reason)
	assert.Equal(t, "left_lane", evs[0].Reason.String())
	assert.Equal(t, Decreasing, e.Mode())
	assert.Equal(t, "Wrong Lane", e.Feedback().Text)
	assert.False(t, e.Feedback().Positive)

	run(e, v, 1)
	assert.InDelta(t, 980, e.Score(), 1)
}

func TestFeedbackIsDebounced(t *testing.T) {
	e := NewEngine(config.Default())
	right := view(player(1, 100))
	left := view(player(0, 100))

	run(e, right, 1)
	require.Equal(t, "Good Driving", e.Feedback().Text)

	run(e, left, 1)
	assert.Equal(t, "Good Driving", e.Feedback().Text, "still cooling down")
	assert.Equal(t, Driving, e.LastReason())
	assert.Equal(t, Decreasing, e.Mode(), "points follow the rating regardless")

	run(e, left, 2)
	assert.Equal(t, "Wrong Lane", e.Feedback().Text)
	assert.Equal(t, LeftLane, e.LastReason())
}

func TestNoReasonHaltsTrickle(t *testing.T) {
	e := NewEngine(config.Default())
	run(e, view(player(1, 100)), 2)
	require.Equal(t, Increasing, e.Mode())
	score := e.Score()

	run(e, view(player(1, 20)), 1)
	assert.Equal(t, Halted, e.Mode())
	assert.Equal(t, None, e.LastReason())

	run(e, view(player(1, 20)), 3)
	assert.Equal(t, score+4, e.Score(), "only the second before the halt counted")
}

func TestModeSwitchResetsAccumulator(t *testing.T) {
	e := NewEngine(config.Default())
	e.setMode(Increasing)
	e.advanceTrickle(0.2)
	e.setMode(Increasing)
	e.advanceTrickle(0.05)
	assert.Equal(t, 1001, e.Score(), "re-entering keeps the accumulated time")

	e.advanceTrickle(0.2)
	e.setMode(Decreasing)
	e.setMode(Increasing)
	e.advanceTrickle(0.2)
	assert.Equal(t, 1001, e.Score())
}

func TestLaneChangePenalty(t *testing.T) {
	e := NewEngine(config.Default())
	run(e, view(player(1, 100)), 1) // debounce is now armed

	e.LaneChangePenalty()
	assert.Equal(t, 990, e.Score())
	msg := e.Feedback()
	assert.Equal(t, "No Signal -10", msg.Text)
	assert.False(t, msg.Positive)
	assert.Equal(t, 0.0, msg.Age)
}

func TestScoreNeverNegative(t *testing.T) {
	e := NewEngine(config.Default())
	for i := 0; i < 150; i++ {
		e.LaneChangePenalty()
		require.GreaterOrEqual(t, e.Score(), 0)
	}
	assert.Zero(t, e.Score())

	run(e, view(player(0, 100)), 5)
	assert.Zero(t, e.Score())
}

func TestMessageFades(t *testing.T) {
	e := NewEngine(config.Default())
	e.Penalize(1, "test")
	v := view(player(1, 20))

	run(e, v, 2)
	assert.Equal(t, 1.0, e.Feedback().Alpha())
	assert.False(t, e.Feedback().Fading())

	run(e, v, 0.75)
	msg := e.Feedback()
	assert.True(t, msg.Visible())
	assert.True(t, msg.Fading())
	assert.InDelta(t, 0.5, msg.Alpha(), 1e-9)

	run(e, v, 0.25)
	assert.False(t, e.Feedback().Visible())
	assert.Zero(t, e.Feedback().Alpha())
}

func TestReset(t *testing.T) {
	e := NewEngine(config.Default())
	run(e, view(player(0, 100)), 3)
	e.LaneChangePenalty()

	e.Reset()
	assert.Equal(t, 1000, e.Score())
	assert.Equal(t, Halted, e.Mode())
	assert.Equal(t, None, e.LastReason())
	assert.False(t, e.Feedback().Visible())

	evs := run(e, view(player(1, 100)), 1)
	require.Len(t, evs, 1)
	assert.Equal(t, 1.0, evs[0].Time)
	assert.Equal(t, "Good Driving", e.Feedback().Text, "debounce was cleared")
}

func TestReasonCSV(t *testing.T) {
	for r := None; r <= Blocking; r++ {
		s, err := r.MarshalCSV()
		require.NoError(t, err)
		var back Reason
		require.NoError(t, back.UnmarshalCSV(s))
		assert.Equal(t, r, back)
	}
}
