package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/smasonuk/orbit3d"
)

var keyNames = map[glfw.Key]string{
	glfw.KeyUp:    "Up",
	glfw.KeyDown:  "Down",
	glfw.KeyLeft:  "Left",
	glfw.KeyRight: "Right",
	glfw.KeySpace: "Space",
}

func init() {
	// GLFW letter keys share their ASCII codes
	for c := 'A'; c <= 'Z'; c++ {
		keyNames[glfw.Key(c)] = string(c)
	}
}

// inputAdapter turns GLFW callbacks into scene input events.
type inputAdapter struct {
	queue        *orbit3d.InputQueue
	lastX, lastY float64
	havePointer  bool
}

func (a *inputAdapter) attach(w *glfw.Window) {
	w.SetMouseButtonCallback(a.mouseButton)
	w.SetCursorPosCallback(a.cursorPos)
	w.SetScrollCallback(a.scroll)
	w.SetKeyCallback(a.key)
}

func (a *inputAdapter) mouseButton(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}
	switch action {
	case glfw.Press:
		a.queue.Push(orbit3d.InputEvent{Kind: orbit3d.PointerDown})
	case glfw.Release:
		a.queue.Push(orbit3d.InputEvent{Kind: orbit3d.PointerUp})
	}
}

func (a *inputAdapter) cursorPos(w *glfw.Window, x, y float64) {
	if a.havePointer {
		a.queue.Push(orbit3d.InputEvent{Kind: orbit3d.PointerMove, DX: x - a.lastX, DY: y - a.lastY})
	}
	a.lastX, a.lastY = x, y
	a.havePointer = true
}

func (a *inputAdapter) scroll(w *glfw.Window, xoff, yoff float64) {
	a.queue.Push(orbit3d.InputEvent{Kind: orbit3d.Scroll, DX: xoff, DY: yoff})
}

func (a *inputAdapter) key(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
		return
	}
	name, ok := keyNames[key]
	if !ok {
		return
	}
	switch action {
	case glfw.Press:
		a.queue.Push(orbit3d.InputEvent{Kind: orbit3d.KeyDown, Key: name})
	case glfw.Release:
		a.queue.Push(orbit3d.InputEvent{Kind: orbit3d.KeyUp, Key: name})
	}
}
