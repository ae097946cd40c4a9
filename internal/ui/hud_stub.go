//go:build !ebiten

package ui

import "arbor/internal/core"

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(core.Variant, int) *HUD { return nil }

// SetFooter is a no-op in the headless build.
func (h *HUD) SetFooter(string) {}

// Update is a no-op in the headless build.
func (h *HUD) Update(int) bool { return false }

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}
