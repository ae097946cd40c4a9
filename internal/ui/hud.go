//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strings"
	"unicode"

	"arbor/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	panelColor  = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor  = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	mutedColor  = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	buttonColor = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonOff   = color.RGBA{R: 32, G: 34, B: 40, A: 255}
	glyphColor  = color.RGBA{R: 230, G: 230, B: 240, A: 255}
	glyphOff    = color.RGBA{R: 120, G: 120, B: 130, A: 255}
)

// HUD renders the parameter panel to the right of the preview.
type HUD struct {
	variant  core.Variant
	controls *Controls
	width    int
	title    string
	footer   string

	panel *ebiten.Image
}

// NewHUD constructs a HUD for v with the given panel width.
func NewHUD(v core.Variant, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{
		variant:  v,
		controls: NewControls(v, width),
		width:    width,
		title:    buildTitle(v),
	}
}

// SetFooter sets the status line drawn at the bottom of the panel.
func (h *HUD) SetFooter(s string) {
	if h != nil {
		h.footer = s
	}
}

// Update refreshes the control values and handles clicks. It reports
// whether a parameter changed, in which case the caller regrows.
func (h *HUD) Update(offsetX int) bool {
	if h == nil {
		return false
	}
	if provider, ok := h.variant.(core.ParameterProvider); ok {
		h.controls.Refresh(provider.Parameters())
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if mx >= offsetX {
			h.controls.Click(mx-offsetX, my)
		}
	}
	return h.controls.TakeChanged()
}

// Draw paints the panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelColor)
	h.drawControls(height)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(v core.Variant) string {
	if v == nil || v.Name() == "" {
		return "Controls"
	}
	name := []rune(v.Name())
	name[0] = unicode.ToUpper(name[0])
	return string(name) + " Controls"
}

func (h *HUD) drawControls(height int) {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, headerY, titleColor)
	if h.footer != "" {
		lines := strings.Split(h.footer, "\n")
		for i, line := range lines {
			text.Draw(h.panel, line, face, panelPadding, height-panelPadding-(len(lines)-1-i)*16, mutedColor)
		}
	}
	if h.controls.Len() == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, headerY+infoSpacing, mutedColor)
		return
	}
	for i := range h.controls.states {
		st := &h.controls.states[i]
		y := st.top + labelBaseline
		text.Draw(h.panel, st.control.Label, face, panelPadding, y, labelColor)
		vc := labelColor
		if !st.hasValue {
			vc = mutedColor
		}
		w := text.BoundString(face, st.value).Dx()
		text.Draw(h.panel, st.value, face, st.minusRect.Min.X-buttonGap-w, y, vc)
		h.drawButton(st.minusRect, "-", h.controls.CanAdjust(i, -1))
		h.drawButton(st.plusRect, "+", h.controls.CanAdjust(i, 1))
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg, fg := buttonColor, glyphColor
	if !enabled {
		bg, fg = buttonOff, glyphOff
	}
	vector.DrawFilledRect(h.panel, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), bg, false)
	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-b.Dx())/2
	y := rect.Min.Y + (rect.Dy()-b.Dy())/2 + b.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}
