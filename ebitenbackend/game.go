package ebitenbackend

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/smasonuk/orbit3d"
)

var watchedKeys = map[ebiten.Key]string{
	ebiten.KeyUp:    "Up",
	ebiten.KeyDown:  "Down",
	ebiten.KeyLeft:  "Left",
	ebiten.KeyRight: "Right",
	ebiten.KeySpace: "Space",
	ebiten.KeyA:     "A",
	ebiten.KeyB:     "B",
	ebiten.KeyC:     "C",
	ebiten.KeyD:     "D",
	ebiten.KeyE:     "E",
	ebiten.KeyF:     "F",
	ebiten.KeyG:     "G",
	ebiten.KeyH:     "H",
	ebiten.KeyI:     "I",
	ebiten.KeyJ:     "J",
	ebiten.KeyK:     "K",
	ebiten.KeyL:     "L",
	ebiten.KeyM:     "M",
	ebiten.KeyN:     "N",
	ebiten.KeyO:     "O",
	ebiten.KeyP:     "P",
	ebiten.KeyQ:     "Q",
	ebiten.KeyR:     "R",
	ebiten.KeyS:     "S",
	ebiten.KeyT:     "T",
	ebiten.KeyU:     "U",
	ebiten.KeyV:     "V",
	ebiten.KeyW:     "W",
	ebiten.KeyX:     "X",
	ebiten.KeyY:     "Y",
	ebiten.KeyZ:     "Z",
}

// Game drives a Scene from Ebitengine: Update pushes input and renders a
// frame into the backend, Draw paints it.
type Game struct {
	scene   *orbit3d.Scene
	backend *Backend
	start   time.Time

	width, height int
	lastX, lastY  int
	dragging      bool
	ShowFPS       bool
}

func NewGame(scene *orbit3d.Scene, backend *Backend, width, height int) *Game {
	return &Game{
		scene:   scene,
		backend: backend,
		start:   time.Now(),
		width:   width,
		height:  height,
		ShowFPS: true,
	}
}

func (g *Game) Update() error {
	g.pushInput()

	ts := float64(time.Since(g.start).Microseconds()) / 1000
	if err := g.scene.Render(ts); err != nil {
		log.Printf("Frame failed: %v", err)
	}
	return nil
}

func (g *Game) pushInput() {
	in := g.scene.Input()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.dragging = true
		g.lastX, g.lastY = ebiten.CursorPosition()
		in.Push(orbit3d.InputEvent{Kind: orbit3d.PointerDown})
	}
	if g.dragging {
		x, y := ebiten.CursorPosition()
		if x != g.lastX || y != g.lastY {
			in.Push(orbit3d.InputEvent{Kind: orbit3d.PointerMove, DX: float64(x - g.lastX), DY: float64(y - g.lastY)})
		}
		g.lastX, g.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dragging = false
		in.Push(orbit3d.InputEvent{Kind: orbit3d.PointerUp})
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		in.Push(orbit3d.InputEvent{Kind: orbit3d.Scroll, DY: dy})
	}

	for k, name := range watchedKeys {
		if inpututil.IsKeyJustPressed(k) {
			in.Push(orbit3d.InputEvent{Kind: orbit3d.KeyDown, Key: name})
		}
		if inpututil.IsKeyJustReleased(k) {
			in.Push(orbit3d.InputEvent{Kind: orbit3d.KeyUp, Key: name})
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.backend.Flush(screen)
	if g.ShowFPS {
		o := g.scene.Orbit()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.2f  radius: %0.2f  speed: %0.2f  triangles: %d",
			ebiten.ActualFPS(), o.Radius, o.Speed, g.backend.Triangles()))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.backend.SetViewport(outsideWidth, outsideHeight)
		g.scene.SetViewport(outsideWidth, outsideHeight)
	}
	return g.width, g.height
}
