package engine

import "strings"

// MsgPriority controls how a log entry is presented by the host.
type MsgPriority uint8

const (
	MsgInfo    MsgPriority = iota // routine status
	MsgEvent                      // autopilot engaged, ship reset
	MsgWarning                    // collisions, store fallbacks
)

// Message is a single entry in the ship's log.
type Message struct {
	Text     string
	Priority MsgPriority
}

// MessageLog is a bounded FIFO of messages for the host HUD.
type MessageLog struct {
	Messages []Message
	maxSize  int
	maxWidth int
}

// NewMessageLog creates a log keeping the most recent maxSize entries,
// wrapping long text at maxWidth characters.
func NewMessageLog(maxSize, maxWidth int) *MessageLog {
	return &MessageLog{
		Messages: make([]Message, 0, maxSize),
		maxSize:  maxSize,
		maxWidth: maxWidth,
	}
}

// Add appends a message, evicting the oldest if full.
func (l *MessageLog) Add(text string, priority MsgPriority) {
	for _, line := range wrapText(text, l.maxWidth) {
		msg := Message{Text: line, Priority: priority}
		if len(l.Messages) >= l.maxSize {
			copy(l.Messages, l.Messages[1:])
			l.Messages[len(l.Messages)-1] = msg
		} else {
			l.Messages = append(l.Messages, msg)
		}
	}
}

// Recent returns up to n of the newest messages, oldest first.
func (l *MessageLog) Recent(n int) []Message {
	if n > len(l.Messages) {
		n = len(l.Messages)
	}
	return l.Messages[len(l.Messages)-n:]
}

// wrapText splits text into lines no longer than maxWidth.
func wrapText(s string, maxWidth int) []string {
	if maxWidth <= 0 || len(s) <= maxWidth {
		return []string{s}
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var out []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= maxWidth {
			line += " " + w
		} else {
			out = append(out, line)
			line = w
		}
	}
	return append(out, line)
}
