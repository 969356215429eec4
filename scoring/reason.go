// Package scoring rates the player's driving once per interval and turns the
// rating into a score that trickles up or down, with debounced feedback.
package scoring

// Reason is the outcome of one driving evaluation.
type Reason int

const (
	None Reason = iota
	Driving
	Tailgating
	LeftLane
	Blocking
)

var reasonNames = [...]string{
	None:       "none",
	Driving:    "driving",
	Tailgating: "tailgating",
	LeftLane:   "left_lane",
	Blocking:   "blocking",
}

var reasonMessages = [...]string{
	Driving:    "Good Driving",
	Tailgating: "Following too close",
	LeftLane:   "Wrong Lane",
	Blocking:   "Blocking Traffic",
}

func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonNames) {
		return "unknown"
	}
	return reasonNames[r]
}

// MarshalCSV lets gocsv write the reason by name.
func (r Reason) MarshalCSV() (string, error) {
	return r.String(), nil
}

// UnmarshalCSV parses a reason written by MarshalCSV.
func (r *Reason) UnmarshalCSV(s string) error {
	for i, name := range reasonNames {
		if name == s {
			*r = Reason(i)
			return nil
		}
	}
	*r = None
	return nil
}

// Negative reports whether the reason costs points.
func (r Reason) Negative() bool {
	return r == Tailgating || r == LeftLane || r == Blocking
}

// Message returns the feedback text shown for the reason. None has no text.
func (r Reason) Message() string {
	if r <= None || int(r) >= len(reasonMessages) {
		return ""
	}
	return reasonMessages[r]
}

// Mode is the direction the score is trickling in.
type Mode int

const (
	Halted Mode = iota
	Increasing
	Decreasing
)

func (m Mode) String() string {
	switch m {
	case Increasing:
		return "increasing"
	case Decreasing:
		return "decreasing"
	}
	return "halted"
}

// MarshalCSV lets gocsv write the mode by name.
func (m Mode) MarshalCSV() (string, error) {
	return m.String(), nil
}

// UnmarshalCSV parses a mode written by MarshalCSV.
func (m *Mode) UnmarshalCSV(s string) error {
	switch s {
	case "increasing":
		*m = Increasing
	case "decreasing":
		*m = Decreasing
	default:
		*m = Halted
	}
	return nil
}
