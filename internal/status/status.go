// Package status holds the single status slot shown under a form.
package status

// Tone is the colour of a status message.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneError   Tone = "error"
	ToneInfo    Tone = "info"
)

// Message is a status line. Every new attempt overwrites the previous one.
type Message struct {
	Text string `json:"text"`
	Tone Tone   `json:"tone"`
}

// Success is a green status line.
func Success(text string) *Message { return &Message{Text: text, Tone: ToneSuccess} }

// Error is a red status line.
func Error(text string) *Message { return &Message{Text: text, Tone: ToneError} }

// Info is a neutral status line.
func Info(text string) *Message { return &Message{Text: text, Tone: ToneInfo} }

// String renders the message for a terminal.
func (m *Message) String() string {
	if m == nil {
		return ""
	}
	switch m.Tone {
	case ToneError:
		return "[error] " + m.Text
	case ToneSuccess:
		return "[ok] " + m.Text
	default:
		return m.Text
	}
}
