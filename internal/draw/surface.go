package draw

import "image/color"

// Surface is an immediate-mode drawing target in logical canvas units.
// The game renderer only talks to this interface, so any backend that can
// fill rectangles, circles and text can display the game.
type Surface interface {
	// Size returns the logical width and height of the surface.
	Size() (w, h float64)
	// Clear erases the whole surface.
	Clear()
	// FillRect fills an axis-aligned rectangle with its top-left at (x, y).
	FillRect(x, y, w, h float64, c color.NRGBA)
	// FillCircle fills a circle centered at (cx, cy).
	FillCircle(cx, cy, r float64, c color.NRGBA)
	// FillText draws text centered on (x, y). size is a nominal font size
	// in logical units that backends with fixed fonts may ignore.
	FillText(x, y float64, text string, size float64, c color.NRGBA)
}

// Palette
var (
	ColorPlayer    = color.NRGBA{R: 0x4e, G: 0xcd, B: 0xc4, A: 0xff}
	ColorCockpit   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	ColorEngine    = color.NRGBA{R: 0xff, G: 0x44, B: 0x44, A: 0xff}
	ColorBullet    = color.NRGBA{R: 0xff, G: 0xff, B: 0x00, A: 0xff}
	ColorEnemy     = color.NRGBA{R: 0xff, G: 0x6b, B: 0x6b, A: 0xff}
	ColorWindow    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	ColorExplosion = color.NRGBA{R: 0xff, G: 0x66, B: 0x00, A: 0xff}
	ColorStar      = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 204} // 0.8 alpha
	ColorOverlay   = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 179} // 0.7 alpha
	ColorText      = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// WithAlpha returns c with its alpha scaled by opacity in [0, 1].
func WithAlpha(c color.NRGBA, opacity float64) color.NRGBA {
	if opacity <= 0 {
		c.A = 0
		return c
	}
	if opacity >= 1 {
		return c
	}
	c.A = uint8(float64(c.A)*opacity + 0.5)
	return c
}

// Hex formats c as #rrggbb (alpha is dropped).
func Hex(c color.NRGBA) string {
	const digits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.R, c.G, c.B} {
		b[1+i*2] = digits[v>>4]
		b[2+i*2] = digits[v&0x0f]
	}
	return string(b)
}
