package desktop

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/planewar/internal/draw"
)

// Debug font cell size used by ebitenutil.DebugPrintAt.
const (
	glyphWidth  = 6
	glyphHeight = 16
)

var background = color.NRGBA{A: 0xff}

// Surface draws onto an offscreen ebiten image of the canvas size.
type Surface struct {
	img *ebiten.Image
}

var _ draw.Surface = (*Surface)(nil)

func NewSurface(img *ebiten.Image) *Surface {
	return &Surface{img: img}
}

func (s *Surface) Size() (w, h float64) {
	b := s.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *Surface) Clear() {
	s.img.Fill(background)
}

func (s *Surface) FillRect(x, y, w, h float64, c color.NRGBA) {
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), c, false)
}

func (s *Surface) FillCircle(cx, cy, r float64, c color.NRGBA) {
	vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(r), c, true)
}

// FillText ignores size and color; the debug font is fixed white.
func (s *Surface) FillText(x, y float64, text string, _ float64, _ color.NRGBA) {
	printCentered(s.img, text, x, y)
}

func printCentered(img *ebiten.Image, text string, x, y float64) {
	tx := int(x) - len(text)*glyphWidth/2
	ty := int(y) - glyphHeight/2
	ebitenutil.DebugPrintAt(img, text, tx, ty)
}
