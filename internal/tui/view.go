package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/ktisis/internal/bones"
	"github.com/jask/ktisis/internal/config"
)

// styles
var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(colorSubtext0)
	activeTabStyle = tabStyle.Bold(true).Foreground(colorBase).Background(colorFocus)
	cursorStyle    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(colorMuted)
	modalStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1)
	okStyle        = lipgloss.NewStyle().Foreground(colorSuccess)
	errStyle       = lipgloss.NewStyle().Foreground(colorError)
)

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Ktisis Settings"))
	b.WriteString("\n")
	b.WriteString(a.renderTabBar())
	b.WriteString("\n\n")
	b.WriteString(a.renderRows())
	if a.modal != modalNone {
		b.WriteString("\n\n")
		b.WriteString(modalStyle.Render(a.renderModal()))
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(a.renderHelp()))
	if a.status != "" {
		style := okStyle
		if strings.HasPrefix(a.status, "error:") || strings.HasPrefix(a.status, "invalid") {
			style = errStyle
		}
		b.WriteString("\n" + style.Render(a.status))
	}
	return b.String()
}

func (a *App) renderTabBar() string {
	parts := make([]string, len(tabTitles))
	for i, t := range tabTitles {
		if tabID(i) == a.tab {
			parts[i] = activeTabStyle.Render(t)
		} else {
			parts[i] = tabStyle.Render(t)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a *App) renderRows() string {
	rows := a.rows()
	lines := make([]string, 0, len(rows))
	for i, r := range rows {
		marker := "  "
		if i == a.cursor && r.selectable() {
			marker = cursorStyle.Render("▶ ")
		}
		text := r.text
		if r.swatch != nil {
			text = swatch(*r.swatch) + " " + text
		}
		if !r.selectable() && r.text != "" {
			text = dimStyle.Render(text)
		}
		lines = append(lines, marker+text)
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalConfirm:
		return titleStyle.Render(a.pendingText) + "\n" + helpLine(a.keys.Confirm, a.keys.Cancel)
	case modalColor:
		title := "Bones color"
		if a.editing != "" {
			title = a.editing + " color"
		}
		return titleStyle.Render(title) + "\n" + a.input.View() + "\n[enter] Save  [esc] Cancel"
	case modalObserve:
		return titleStyle.Render("Observe bone category") + "\n" + a.input.View() + "\n[enter] Observe  [esc] Cancel"
	case modalLanguage:
		var b strings.Builder
		b.WriteString(titleStyle.Render("Language"))
		for i, tag := range config.Languages {
			marker := "  "
			if i == a.langCursor {
				marker = cursorStyle.Render("▶ ")
			}
			b.WriteString("\n" + marker + languageName(tag))
		}
		b.WriteString("\n[enter] Select  [esc] Cancel")
		return b.String()
	}
	return ""
}

func (a *App) renderHelp() string {
	k := a.keys
	help := helpLine(k.NextTab, k.Up, k.Down, k.Activate)
	if a.tab == tabOverlay {
		help += "  " + helpLine(k.Increase, k.Decrease, k.Observe)
	}
	return help + "  " + helpLine(k.Quit)
}

func swatch(c bones.RGBA) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(c.RGBHex())).Render("  ")
}
