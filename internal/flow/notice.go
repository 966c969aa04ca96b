package flow

import "sync"

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notice is a short message for the person filling a form.
type Notice struct {
	Level       Level  `json:"level"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type Notifier interface {
	Notify(n Notice)
}

type NotifierFunc func(n Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// NoticeBuffer queues notices until the next response drains them.
type NoticeBuffer struct {
	mu    sync.Mutex
	items []Notice
}

func (b *NoticeBuffer) Notify(n Notice) {
	b.mu.Lock()
	b.items = append(b.items, n)
	b.mu.Unlock()
}

// Drain returns the queued notices in order and empties the buffer. It never
// returns nil so responses always carry an array.
func (b *NoticeBuffer) Drain() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.items
	b.items = nil
	if out == nil {
		out = []Notice{}
	}
	return out
}

func success(title, desc string) Notice {
	return Notice{Level: LevelSuccess, Title: title, Description: desc}
}

func failure(title, desc string) Notice {
	return Notice{Level: LevelError, Title: title, Description: desc}
}

func orDefault(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
