package editor

import (
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/rotisserie/eris"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/Garsondee/Symbol-Sense/internal/mapfile"
	"github.com/Garsondee/Symbol-Sense/internal/symbol"
)

// Background is a map image laid under the symbols, centred on the world
// origin and scaled to a fixed world width.
type Background struct {
	RelPath     string
	img         *ebiten.Image
	targetWidth float64
}

// LoadBackground decodes the image at rel, resolved against the save directory.
func LoadBackground(saveDir, rel string, targetWidth float64) (*Background, error) {
	path := rel
	if !filepath.IsAbs(rel) {
		path = filepath.Join(saveDir, rel)
	}
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, eris.Wrapf(mapfile.ErrIOFailure, "background %s: %v", path, err)
	}
	return &Background{RelPath: rel, img: img, targetWidth: targetWidth}, nil
}

// WorldSize returns the image's size in world units.
func (b *Background) WorldSize() (w, h float64) {
	iw, ih := b.img.Bounds().Dx(), b.img.Bounds().Dy()
	if iw == 0 {
		return 0, 0
	}
	return b.targetWidth, b.targetWidth * float64(ih) / float64(iw)
}

// Draw renders the image through the camera.
func (b *Background) Draw(dst *ebiten.Image, cam *Camera) {
	if b == nil || b.img == nil {
		return
	}
	w, h := b.WorldSize()
	if w == 0 {
		return
	}
	x, y := cam.WorldToScreen(symbol.V(-w/2, h/2))
	s := w * cam.PixelsPerUnit() / float64(b.img.Bounds().Dx())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(b.img, op)
}
