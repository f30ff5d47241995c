package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/jask/ktisis/internal/bonecolor"
	"github.com/jask/ktisis/internal/bones"
	"github.com/jask/ktisis/internal/config"
)

const thicknessStep = 0.1

// row is one line of a tab. Rows with neither activate nor adjust are plain text.
type row struct {
	text     string
	swatch   *bones.RGBA
	activate func() tea.Cmd
	adjust   func(dir int) tea.Cmd
}

func (r row) selectable() bool { return r.activate != nil || r.adjust != nil }

func (a *App) rows() []row {
	switch a.tab {
	case tabInterface:
		return a.interfaceRows()
	case tabOverlay:
		return a.overlayRows()
	case tabGizmo:
		return a.gizmoRows()
	case tabLanguage:
		return a.languageRows()
	case tabData:
		return a.dataRows()
	}
	return nil
}

func (a *App) toggle(label string, on bool, set func(bool)) row {
	return row{
		text: checkbox(label, on),
		activate: func() tea.Cmd {
			set(!on)
			return a.saveCmd()
		},
	}
}

func (a *App) interfaceRows() []row {
	return []row{
		a.toggle("Hide character name", !a.cfg.Interface.DisplayCharName, func(hide bool) {
			a.cfg.Interface.DisplayCharName = !hide
		}),
	}
}

func (a *App) gizmoRows() []row {
	return []row{
		a.toggle("Flip axis to face camera", a.cfg.Gizmo.AllowAxisFlip, func(v bool) {
			a.cfg.Gizmo.AllowAxisFlip = v
		}),
	}
}

func (a *App) overlayRows() []row {
	ov := &a.cfg.Overlay
	rows := []row{
		a.toggle("Draw lines on skeleton", ov.DrawLinesOnSkeleton, func(v bool) {
			ov.DrawLinesOnSkeleton = v
		}),
		{
			text: fmt.Sprintf("Lines thickness  %s %.1f", slider(ov.SkeletonLineThickness, config.MinLineThickness, config.MaxLineThickness, 20), ov.SkeletonLineThickness),
			adjust: func(dir int) tea.Cmd {
				ov.SkeletonLineThickness = config.ClampLineThickness(ov.SkeletonLineThickness + float32(dir)*thicknessStep)
				return a.saveCmd()
			},
		},
	}

	linkLabel := "Link bones colors"
	if ov.LinkBoneCategoryColors {
		linkLabel = "Unlink bones colors"
	}
	rows = append(rows,
		row{},
		row{
			text: button(linkLabel, ov.LinkBoneCategoryColors),
			activate: func() tea.Cmd {
				bonecolor.ToggleLinkMode(ov)
				a.clampCursor(1)
				return a.saveCmd()
			},
		},
		row{
			text: button("Erase colors", false),
			activate: func() tea.Cmd {
				return a.confirm("Erase bone colors?", func(confirmed bool) tea.Cmd {
					bonecolor.EraseColors(a.registry, ov, confirmed)
					if !confirmed {
						return nil
					}
					return a.saveCmd()
				})
			},
		},
	)

	if ov.LinkBoneCategoryColors {
		linked := ov.LinkedBoneCategoryColor
		return append(rows, row{
			text:   "Bones color  " + linked.Hex(),
			swatch: &linked,
			activate: func() tea.Cmd {
				return a.editColor("", linked)
			},
		})
	}

	rows = append(rows,
		row{
			text: button("Reset colors to default", false),
			activate: func() tea.Cmd {
				return a.confirm("Reset bone colors to their default values?", func(confirmed bool) tea.Cmd {
					bonecolor.ResetToDefaults(a.registry, ov, confirmed)
					if !confirmed {
						return nil
					}
					return a.saveCmd()
				})
			},
		},
		row{},
		row{text: "Bone colors by category"},
	)

	visible := bonecolor.ListVisibleCategories(a.registry, ov)
	if len(visible) == 0 {
		return append(rows, row{text: bonecolor.NoCategoriesHint})
	}
	for _, c := range visible {
		col := bonecolor.EffectiveColor(c, ov)
		rows = append(rows, row{
			text:   fmt.Sprintf("%-12s %s", c.Name, col.Hex()),
			swatch: &col,
			activate: func() tea.Cmd {
				return a.editColor(c.Name, col)
			},
		})
	}
	return rows
}

func (a *App) languageRows() []row {
	return []row{
		{
			text: "Language  " + languageName(a.cfg.Language.Localization),
			activate: func() tea.Cmd {
				a.langCursor = 0
				for i, tag := range config.Languages {
					if tag == a.cfg.Language.Localization {
						a.langCursor = i
					}
				}
				a.modal = modalLanguage
				return nil
			},
		},
		a.toggle("Translate bone names", a.cfg.Language.TranslateBones, func(v bool) {
			a.cfg.Language.TranslateBones = v
		}),
	}
}

func (a *App) dataRows() []row {
	if a.services.Plates == nil {
		return []row{{text: "Glamour plate memory unavailable"}}
	}
	summary := fmt.Sprintf("Glamour Plates in memory: %d", a.plates.Count)
	if a.plates.Count > 0 && !a.plates.CapturedAt.IsZero() {
		summary += "  (captured " + humanize.RelTime(a.plates.CapturedAt, a.now(), "ago", "from now") + ")"
	}
	return []row{
		{text: summary},
		{
			text:     button("Refresh plate memory", false),
			activate: a.loadPlates,
		},
		{
			text: button("Dispose of plate memory", false),
			activate: func() tea.Cmd {
				return a.confirm("Dispose of the glamour plate memory?", func(confirmed bool) tea.Cmd {
					if !confirmed {
						return nil
					}
					return a.disposePlatesCmd()
				})
			},
		},
		{
			text: button("Reset bone category catalog", false),
			activate: func() tea.Cmd {
				return a.confirm("Forget every catalogued bone category and plate?", func(confirmed bool) tea.Cmd {
					if !confirmed {
						return nil
					}
					return a.resetCatalogCmd()
				})
			},
		},
	}
}

// languageName is the language's name in itself, or "" for tags the
// overlay does not ship.
func languageName(tag language.Tag) string {
	for _, l := range config.Languages {
		if l == tag {
			return display.Self.Name(l)
		}
	}
	return ""
}

func checkbox(label string, on bool) string {
	if on {
		return "[x] " + label
	}
	return "[ ] " + label
}

func button(label string, active bool) string {
	if active {
		return "(" + label + ")*"
	}
	return "(" + label + ")"
}

func slider(v, lo, hi float32, width int) string {
	pos := int((v - lo) / (hi - lo) * float32(width))
	if pos < 0 {
		pos = 0
	}
	if pos > width {
		pos = width
	}
	return "[" + strings.Repeat("=", pos) + strings.Repeat("-", width-pos) + "]"
}
