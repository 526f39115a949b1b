package ebitenbackend

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteOnce sync.Once
	whiteSub  *ebiten.Image
)

// solidWhite is a 1x1 white source for flat coloured triangles; sampling it
// at (1,1) leaves only the vertex colour.
func solidWhite() *ebiten.Image {
	whiteOnce.Do(func() {
		whiteImage := ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSub
}

// batcher groups consecutive triangles with the same source image into one
// DrawTriangles call, keeping paint order.
type batcher struct {
	screen   *ebiten.Image
	src      *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func newBatcher(screen *ebiten.Image) *batcher {
	return &batcher{screen: screen}
}

func (b *batcher) add(src *ebiten.Image, verts [3]ebiten.Vertex) {
	if b.src != src || len(b.vertices)+3 > math.MaxUint16 {
		b.flush()
		b.src = src
	}
	base := uint16(len(b.vertices))
	b.vertices = append(b.vertices, verts[:]...)
	b.indices = append(b.indices, base, base+1, base+2)
}

func (b *batcher) flush() {
	if len(b.indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	b.screen.DrawTriangles(b.vertices, b.indices, b.src, op)
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
}

func drawLine(screen *ebiten.Image, l line) {
	vector.StrokeLine(screen, l.x0, l.y0, l.x1, l.y1, 1, l.color, true)
}
