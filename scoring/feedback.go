package scoring

import "github.com/golangdaddy/highway/config"

// Message is the feedback text currently on screen.
type Message struct {
	Text     string
	Positive bool
	Age      float64 // Seconds since shown
	Shown    bool    // False until the first message
	show     float64
	fade     float64
}

func newMessage(text string, positive bool, cfg config.FeedbackConfig) Message {
	return Message{
		Text:     text,
		Positive: positive,
		Shown:    true,
		show:     cfg.ShowDuration,
		fade:     cfg.FadeDuration,
	}
}

// Visible reports whether the message is still on screen, fading included.
func (m Message) Visible() bool {
	return m.Shown && m.Age < m.show+m.fade
}

// Fading reports whether the message is in its fade-out.
func (m Message) Fading() bool {
	return m.Visible() && m.Age >= m.show
}

// Alpha returns the message opacity in [0, 1].
func (m Message) Alpha() float64 {
	switch {
	case !m.Visible():
		return 0
	case m.Age < m.show:
		return 1
	case m.fade <= 0:
		return 0
	}
	return 1 - (m.Age-m.show)/m.fade
}
