package reminder

import (
	"sync"
)

// NotificationSink is the consumed notification capability. The tag equals
// the event id; platforms that support it replace an earlier notification
// with the same tag instead of stacking.
type NotificationSink interface {
	Show(title, body, tag string) error
}

// notifyFunc posts one notification, replacing the platform notification
// with id replaceID when it is non-zero. It returns the platform id of the
// posted notification, or zero when the backend has no id concept.
type notifyFunc func(replaceID uint32, title, body string) (uint32, error)

// DesktopSink shows native desktop notifications. It remembers the platform
// notification id per tag, so a re-fired notification for the same event
// replaces the previous one where the platform supports it.
type DesktopSink struct {
	notify notifyFunc

	mu     sync.Mutex
	active map[string]uint32
}

func NewDesktopSink() *DesktopSink {
	return &DesktopSink{notify: platformNotify, active: make(map[string]uint32)}
}

func (s *DesktopSink) Show(title, body, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.notify(s.active[tag], title, body)
	if err != nil {
		return err
	}
	if id != 0 {
		s.active[tag] = id
	}
	return nil
}

// StubSink records notifications for tests.
type StubSink struct {
	mu    sync.Mutex
	shown []Notification
}

type Notification struct {
	Title string
	Body  string
	Tag   string
}

func NewStubSink() *StubSink {
	return &StubSink{}
}

func (s *StubSink) Show(title, body, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = append(s.shown, Notification{Title: title, Body: body, Tag: tag})
	return nil
}

func (s *StubSink) Shown() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Notification(nil), s.shown...)
}

func (s *StubSink) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = nil
}
