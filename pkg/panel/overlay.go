package panel

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	overlayWidth  = 280
	overlayMargin = 8
	rowHeight     = 16
	indent        = 14
)

var (
	overlayBackground = color.RGBA{A: 190}
	headerBackground  = color.RGBA{R: 26, G: 26, B: 26, A: 220}
	focusBackground   = color.RGBA{R: 47, G: 161, B: 214, A: 200}
	textColor         = color.RGBA{R: 238, G: 238, B: 238, A: 255}
	valueColor        = color.RGBA{R: 47, G: 161, B: 214, A: 255}
	focusTextColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Draw renders the panel into the top right corner of dst, scrolled so the
// navigator cursor stays on screen. nav may be nil.
func (p *Panel) Draw(dst *image.RGBA, nav *Navigator) {
	if !p.Visible || dst == nil {
		return
	}
	if nav == nil {
		nav = NewNavigator(p)
	}
	rows := nav.Rows()
	bounds := dst.Bounds()
	maxRows := (bounds.Dy() - 2*overlayMargin) / rowHeight
	if maxRows <= 0 || len(rows) == 0 {
		return
	}

	cursor := nav.Cursor()
	first := 0
	if cursor >= maxRows {
		first = cursor - maxRows + 1
	}
	last := min(len(rows), first+maxRows)

	left := max(bounds.Max.X-overlayWidth-overlayMargin, bounds.Min.X)
	top := bounds.Min.Y + overlayMargin
	area := image.Rect(left, top, bounds.Max.X-overlayMargin, top+(last-first)*rowHeight)
	fill(dst, area, overlayBackground)

	face := basicfont.Face7x13
	for i := first; i < last; i++ {
		row := rows[i]
		y := top + (i-first)*rowHeight
		line := image.Rect(area.Min.X, y, area.Max.X, y+rowHeight)
		focused := i == cursor

		switch {
		case focused:
			fill(dst, line, focusBackground)
		case row.Control == nil:
			fill(dst, line, headerBackground)
		}

		labelColor, valColor := textColor, valueColor
		if focused {
			labelColor, valColor = focusTextColor, focusTextColor
		}
		baseline := y + rowHeight - 4

		if row.Control == nil {
			marker := "- "
			if row.Group.Collapsed {
				marker = "+ "
			}
			drawText(dst, face, marker+row.Group.Title, line.Min.X+4, baseline, labelColor)
			continue
		}
		drawText(dst, face, row.Control.Name(), line.Min.X+indent, baseline, labelColor)
		value := row.Control.Format()
		width := font.MeasureString(face, value).Ceil()
		drawText(dst, face, value, line.Max.X-width-4, baseline, valColor)
	}
}

func fill(dst *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}

func drawText(dst *image.RGBA, face font.Face, s string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
