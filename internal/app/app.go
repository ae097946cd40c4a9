//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"log/slog"

	"arbor/internal/core"
	"arbor/internal/render"
	"arbor/internal/ui"
	pkgcore "arbor/pkg/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var background = color.RGBA{R: 10, G: 12, B: 16, A: 255}

// Game adapts a variant to the ebiten.Game interface. It regrows the
// structure on demand and reveals it a few instances per frame.
type Game struct {
	variant core.Variant
	hud     *ui.HUD
	overlay *ui.Overlay
	pacer   *core.Pacer
	logger  *slog.Logger

	size  int
	panel int
	seed  int64

	segments []render.Segment
	err      error
}

// New constructs a Game for v and grows the first structure.
func New(v core.Variant, cfg Config, logger *slog.Logger) *Game {
	g := &Game{
		variant: v,
		hud:     ui.NewHUD(v, cfg.Panel),
		overlay: ui.NewOverlay(v),
		pacer:   core.NewPacer(cfg.Rate),
		logger:  logger,
		size:    cfg.Size,
		panel:   cfg.Panel,
	}
	g.Regrow(cfg.Seed)
	return g
}

// Regrow generates the variant again from seed and restarts the reveal.
func (g *Game) Regrow(seed int64) {
	g.seed = seed
	res, err := core.Generate(g.variant, seed)
	g.err = err
	if err != nil {
		g.segments = nil
		g.logger.Error("generate", "variant", g.variant.Name(), "seed", seed, "error", err)
		g.hud.SetFooter(fmt.Sprintf("seed %d\n%v", seed, err))
		return
	}
	g.segments = Preview(g.variant, res.Transforms, g.size)
	g.pacer.Restart()
	g.logger.Debug("regrow", "variant", g.variant.Name(), "seed", seed, "instances", len(g.segments), "grammar_length", len(res.Grammar))
	g.hud.SetFooter(fmt.Sprintf("seed %d\n%d instances", seed, len(g.segments)))
}

// Update handles per-frame input.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Regrow(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		seed, err := pkgcore.EntropySeed()
		if err != nil {
			return err
		}
		g.Regrow(seed)
	}
	g.overlay.Update()
	if g.hud.Update(g.size) {
		g.Regrow(g.seed)
	}
	return nil
}

// Draw renders the terrain, the revealed part of the structure and the panel.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.overlay.Draw(screen, g.size)
	visible := g.pacer.Visible(len(g.segments))
	render.DrawSegments(screen, g.segments[:visible], render.DefaultStyles)
	g.hud.Draw(screen, g.size, g.size)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.size + g.panel, g.size
}
