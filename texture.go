package orbit3d

import (
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// TextureResult is the outcome of an asynchronous texture load.
type TextureResult struct {
	Path  string
	Image *image.RGBA
	Err   error
}

// LoadTextureAsync decodes the image at path on its own goroutine. The
// result arrives on the returned channel exactly once; the channel is
// buffered so the loader never waits on the frame loop.
func LoadTextureAsync(path string, maxSize int) <-chan TextureResult {
	out := make(chan TextureResult, 1)
	go func() {
		img, err := LoadTextureFile(path, maxSize)
		out <- TextureResult{Path: path, Image: img, Err: err}
	}()
	return out
}

func LoadTextureFile(path string, maxSize int) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open texture %s", path)
	}
	defer f.Close()

	img, err := DecodeTexture(f, maxSize)
	if err != nil {
		return nil, errors.Wrapf(err, "texture %s", path)
	}
	return img, nil
}

// DecodeTexture decodes any registered image format into RGBA, scaling it
// down so neither side exceeds maxSize. maxSize <= 0 disables scaling.
func DecodeTexture(r io.Reader, maxSize int) (*image.RGBA, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "decode")
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, errors.Errorf("empty %s image", format)
	}

	if maxSize > 0 && (w > maxSize || h > maxSize) {
		if w >= h {
			h = max(1, h*maxSize/w)
			w = maxSize
		} else {
			w = max(1, w*maxSize/h)
			h = maxSize
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
		return dst, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst, nil
}

// placeholderImage is what a textured material samples until its real
// texture has loaded.
func placeholderImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}

func logTextureResult(res TextureResult) {
	if res.Err != nil {
		log.Printf("Texture %s failed, keeping placeholder: %v", res.Path, res.Err)
		return
	}
	b := res.Image.Bounds()
	log.Printf("Texture %s loaded (%dx%d).", res.Path, b.Dx(), b.Dy())
}
