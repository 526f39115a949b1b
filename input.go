package orbit3d

import (
	"sync"
)

type EventKind int

const (
	PointerDown EventKind = iota
	PointerUp
	PointerMove
	Scroll
	KeyDown
	KeyUp
	// Translate moves the camera directly by DX, DY, DZ.
	Translate
)

// InputEvent is one device event. DX/DY carry pointer motion in pixels or
// scroll amounts; Key names a key ("A".."Z", "Up", "Down", "Left", "Right",
// "Space").
type InputEvent struct {
	Kind       EventKind
	DX, DY, DZ float64
	Key        string
}

// InputQueue collects events from device callbacks. Any goroutine may Push;
// the frame loop is the only caller of Drain.
type InputQueue struct {
	mu     sync.Mutex
	events []InputEvent
}

func (q *InputQueue) Push(e InputEvent) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
}

// Drain returns everything pushed since the previous Drain.
func (q *InputQueue) Drain() []InputEvent {
	q.mu.Lock()
	events := q.events
	q.events = nil
	q.mu.Unlock()
	return events
}

func (q *InputQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// InputDelta is this frame's camera motion.
type InputDelta struct {
	Dragging  bool
	Translate [3]float64
	Rotate    [3]float64
}

// Reset zeroes the motion. Dragging is state, not motion, and survives.
func (d *InputDelta) Reset() {
	d.Translate = [3]float64{}
	d.Rotate = [3]float64{}
}

func (d InputDelta) Moved() bool {
	return d.Translate != [3]float64{} || d.Rotate != [3]float64{}
}

// InputState folds queued events into a delta and tracks held keys.
type InputState struct {
	Delta InputDelta
	held  map[string]bool
}

func NewInputState() *InputState {
	return &InputState{held: make(map[string]bool)}
}

func (s *InputState) Held(key string) bool {
	return s.held[key]
}

// Fold applies events in order. Pointer motion only rotates while a button
// is down; scrolling dollies along Z.
func (s *InputState) Fold(events []InputEvent, cfg CameraConfig) {
	for _, e := range events {
		switch e.Kind {
		case PointerDown:
			s.Delta.Dragging = true
		case PointerUp:
			s.Delta.Dragging = false
		case PointerMove:
			if s.Delta.Dragging {
				s.Delta.Rotate[0] += e.DY * cfg.RotateSpeed
				s.Delta.Rotate[1] += e.DX * cfg.RotateSpeed
			}
		case Scroll:
			s.Delta.Translate[2] += e.DY * cfg.ZoomSpeed
		case KeyDown:
			s.held[e.Key] = true
		case KeyUp:
			delete(s.held, e.Key)
		case Translate:
			s.Delta.Translate[0] += e.DX
			s.Delta.Translate[1] += e.DY
			s.Delta.Translate[2] += e.DZ
		}
	}
}

// Pan adds held-key camera panning for one frame.
func (s *InputState) Pan(keys KeysConfig, step float64) {
	if s.held[keys.PanLeft] {
		s.Delta.Translate[0] += step
	}
	if s.held[keys.PanRight] {
		s.Delta.Translate[0] -= step
	}
	if s.held[keys.PanUp] {
		s.Delta.Translate[1] -= step
	}
	if s.held[keys.PanDown] {
		s.Delta.Translate[1] += step
	}
}
