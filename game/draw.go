package game

import (
	"image/color"

	"github.com/hajimehoshi/bitmapfont/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	pixel    = newPixel()
	fontFace = text.NewGoXFace(bitmapfont.Face)
)

func newPixel() *ebiten.Image {
	img := ebiten.NewImage(1, 1)
	img.Fill(color.White)
	return img
}

// fillRect draws a solid rectangle by scaling a single white pixel.
func fillRect(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(pixel, op)
}

// drawText draws s scaled with its top-left corner at (x, y), or centred on
// x when centred is set.
func drawText(dst *ebiten.Image, s string, x, y, scale float64, c color.Color, alpha float64, centred bool) {
	if centred {
		x -= text.Advance(s, fontFace) * scale / 2
	}
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(dst, s, fontFace, op)
}
