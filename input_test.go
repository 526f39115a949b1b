package orbit3d

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputQueueConcurrentPush(t *testing.T) {
	var q InputQueue
	var wg sync.WaitGroup

	const pushers, each = 8, 200
	for p := 0; p < pushers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				q.Push(InputEvent{Kind: PointerMove, DX: 1})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, pushers*each, q.Len())
	assert.Len(t, q.Drain(), pushers*each)
	assert.Empty(t, q.Drain(), "events are consumed once")
	assert.Zero(t, q.Len())
}

func TestInputQueueKeepsOrder(t *testing.T) {
	var q InputQueue
	q.Push(InputEvent{Kind: KeyDown, Key: "A"})
	q.Push(InputEvent{Kind: KeyUp, Key: "A"})

	events := q.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, KeyDown, events[0].Kind)
	assert.Equal(t, KeyUp, events[1].Kind)
}

func TestFold(t *testing.T) {
	cfg := CameraConfig{RotateSpeed: 0.5, ZoomSpeed: 2}

	testCases := []struct {
		name      string
		events    []InputEvent
		dragging  bool
		translate [3]float64
		rotate    [3]float64
	}{
		{
			name:   "Move without button",
			events: []InputEvent{{Kind: PointerMove, DX: 10, DY: 4}},
		},
		{
			name: "Drag",
			events: []InputEvent{
				{Kind: PointerDown},
				{Kind: PointerMove, DX: 10, DY: 4},
				{Kind: PointerMove, DX: 2, DY: -2},
			},
			dragging: true,
			rotate:   [3]float64{1, 6, 0},
		},
		{
			name: "Release stops rotation",
			events: []InputEvent{
				{Kind: PointerDown},
				{Kind: PointerMove, DX: 2},
				{Kind: PointerUp},
				{Kind: PointerMove, DX: 100},
			},
			rotate: [3]float64{0, 1, 0},
		},
		{
			name:      "Scroll",
			events:    []InputEvent{{Kind: Scroll, DY: 1}, {Kind: Scroll, DY: -3}},
			translate: [3]float64{0, 0, -4},
		},
		{
			name:      "Translate",
			events:    []InputEvent{{Kind: Translate, DX: 1, DY: 2, DZ: 3}, {Kind: Translate, DX: 1}},
			translate: [3]float64{2, 2, 3},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewInputState()
			s.Fold(tc.events, cfg)

			assert.Equal(t, tc.dragging, s.Delta.Dragging)
			assert.Equal(t, tc.translate, s.Delta.Translate)
			assert.Equal(t, tc.rotate, s.Delta.Rotate)
		})
	}
}

func TestFoldHeldKeys(t *testing.T) {
	s := NewInputState()
	s.Fold([]InputEvent{{Kind: KeyDown, Key: "Up"}, {Kind: KeyDown, Key: "A"}}, CameraConfig{})
	assert.True(t, s.Held("Up"))
	assert.True(t, s.Held("A"))

	// held state carries across frames until released
	s.Fold(nil, CameraConfig{})
	assert.True(t, s.Held("Up"))

	s.Fold([]InputEvent{{Kind: KeyUp, Key: "Up"}}, CameraConfig{})
	assert.False(t, s.Held("Up"))
	assert.True(t, s.Held("A"))
}

func TestDeltaReset(t *testing.T) {
	s := NewInputState()
	s.Fold([]InputEvent{{Kind: PointerDown}, {Kind: PointerMove, DX: 3}, {Kind: Scroll, DY: 1}}, CameraConfig{RotateSpeed: 1, ZoomSpeed: 1})
	require.True(t, s.Delta.Moved())

	s.Delta.Reset()
	assert.False(t, s.Delta.Moved())
	assert.True(t, s.Delta.Dragging)
}

func TestPan(t *testing.T) {
	keys := DefaultConfig().Keys

	testCases := []struct {
		name string
		held []string
		want [3]float64
	}{
		{"Left", []string{"A"}, [3]float64{0.5, 0, 0}},
		{"Right", []string{"D"}, [3]float64{-0.5, 0, 0}},
		{"Up", []string{"Q"}, [3]float64{0, -0.5, 0}},
		{"Down", []string{"E"}, [3]float64{0, 0.5, 0}},
		{"Opposites cancel", []string{"A", "D"}, [3]float64{}},
		{"Nothing held", nil, [3]float64{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewInputState()
			var events []InputEvent
			for _, k := range tc.held {
				events = append(events, InputEvent{Kind: KeyDown, Key: k})
			}
			s.Fold(events, CameraConfig{})
			s.Pan(keys, 0.5)

			assert.Equal(t, tc.want, s.Delta.Translate)
		})
	}
}
