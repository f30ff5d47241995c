// Package bonecolor resolves the display color of skeleton bone categories
// and applies the bulk color edits offered by the overlay settings.
//
// All operations read and write the overlay section of the configuration
// passed in; none keep state of their own.
package bonecolor

import (
	"github.com/jask/ktisis/internal/bones"
	"github.com/jask/ktisis/internal/config"
)

// EraseColor is what erased categories (or the linked color) are set to.
var EraseColor = bones.RGBA{R: 1, G: 1, B: 1, A: 0.5647059}

// NoCategoriesHint is shown in place of the color list while no category is visible.
const NoCategoriesHint = "Categories will be added after bones are displayed once."

// Visible reports whether c belongs in the color editing list: it has been
// drawn at least once, or the user already customized it.
func Visible(c *bones.Category, cfg *config.OverlayConfig) bool {
	if c.ShouldDisplay {
		return true
	}
	_, ok := cfg.BoneCategoryColors[c.Name]
	return ok
}

// ListVisibleCategories returns the visible categories in registry order.
// An empty result means no category has been displayed yet.
func ListVisibleCategories(reg *bones.Registry, cfg *config.OverlayConfig) []*bones.Category {
	var out []*bones.Category
	for _, c := range reg.Categories() {
		if Visible(c, cfg) {
			out = append(out, c)
		}
	}
	return out
}

// EffectiveColor is the color the category's bones are drawn with. Outside
// link mode a category without override falls back to the linked color.
func EffectiveColor(c *bones.Category, cfg *config.OverlayConfig) bones.RGBA {
	if cfg.LinkBoneCategoryColors {
		return cfg.LinkedBoneCategoryColor
	}
	if col, ok := cfg.BoneCategoryColors[c.Name]; ok {
		return col
	}
	return cfg.LinkedBoneCategoryColor
}

// SetColor records a user edit of the category's color.
func SetColor(c *bones.Category, col bones.RGBA, cfg *config.OverlayConfig) {
	if cfg.LinkBoneCategoryColors {
		cfg.LinkedBoneCategoryColor = col
		return
	}
	ensureColors(cfg)
	cfg.BoneCategoryColors[c.Name] = col
}

// EraseColors sets the linked color, or every visible category's override,
// to EraseColor. It does nothing unless confirmed.
func EraseColors(reg *bones.Registry, cfg *config.OverlayConfig, confirmed bool) {
	if !confirmed {
		return
	}
	if cfg.LinkBoneCategoryColors {
		cfg.LinkedBoneCategoryColor = EraseColor
		return
	}
	for _, c := range ListVisibleCategories(reg, cfg) {
		SetColor(c, EraseColor, cfg)
	}
}

// ResetToDefaults sets every visible category's override to its default
// color. It does nothing unless confirmed, and nothing in link mode.
func ResetToDefaults(reg *bones.Registry, cfg *config.OverlayConfig, confirmed bool) {
	if !confirmed || cfg.LinkBoneCategoryColors {
		return
	}
	for _, c := range ListVisibleCategories(reg, cfg) {
		SetColor(c, c.DefaultColor, cfg)
	}
}

// ToggleLinkMode flips link mode. Stored colors are left alone so
// per-category overrides come back when link mode is turned off.
func ToggleLinkMode(cfg *config.OverlayConfig) {
	cfg.LinkBoneCategoryColors = !cfg.LinkBoneCategoryColors
}

func ensureColors(cfg *config.OverlayConfig) {
	if cfg.BoneCategoryColors == nil {
		cfg.BoneCategoryColors = map[string]bones.RGBA{}
	}
}
