package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/ktisis/internal/bonecolor"
	"github.com/jask/ktisis/internal/bones"
	"github.com/jask/ktisis/internal/config"
	"github.com/jask/ktisis/internal/service"
)

// App is the settings window.
type App struct {
	ctx      context.Context
	cfg      config.Config
	registry *bones.Registry
	services Services
	saver    *saver
	keys     keyMap
	now      func() time.Time

	tab    tabID
	cursor int
	status string

	modal      modalState
	input      textinput.Model
	editing    string // category whose color is being edited; "" edits the linked color
	langCursor int

	// pending runs once the confirmation modal closes; confirmed reports
	// whether the user accepted.
	pending     func(confirmed bool) tea.Cmd
	pendingText string

	plates service.PlateSummary
}

type Services struct {
	Skeleton    *service.SkeletonService
	Plates      *service.PlateService
	Maintenance *service.MaintenanceService
}

type tabID int

const (
	tabInterface tabID = iota
	tabOverlay
	tabGizmo
	tabLanguage
	tabData
)

var tabTitles = []string{"Interface", "Overlay", "Gizmo", "Language", "Data"}

type modalState string

const (
	modalNone     modalState = ""
	modalConfirm  modalState = "confirm"
	modalColor    modalState = "color"
	modalLanguage modalState = "language"
	modalObserve  modalState = "observe"
)

// New builds the settings window. save persists the configuration after
// every change; nil means config.Save.
func New(ctx context.Context, cfg config.Config, reg *bones.Registry, services Services, save func(config.Config) error) *App {
	if save == nil {
		save = config.Save
	}
	if reg == nil {
		reg = bones.NewRegistry()
	}
	if cfg.Overlay.BoneCategoryColors == nil {
		cfg.Overlay.BoneCategoryColors = map[string]bones.RGBA{}
	}
	return &App{
		ctx:      ctx,
		cfg:      cfg,
		registry: reg,
		services: services,
		saver:    &saver{save: save},
		keys:     defaultKeyMap(),
		now:      time.Now,
	}
}

// Config returns the configuration as currently edited.
func (a *App) Config() config.Config { return a.cfg.Clone() }

func (a *App) Init() tea.Cmd {
	return a.loadPlates()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		return a.handleKey(m)
	case plateSummaryMsg:
		a.plates = m.summary
		if m.status != "" {
			a.status = m.status
		}
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.NextTab):
		a.selectTab(tabID((int(a.tab) + 1) % len(tabTitles)))
	case key.Matches(m, a.keys.PrevTab):
		a.selectTab(tabID((int(a.tab) + len(tabTitles) - 1) % len(tabTitles)))
	case key.Matches(m, a.keys.Up):
		a.moveCursor(-1)
	case key.Matches(m, a.keys.Down):
		a.moveCursor(1)
	case key.Matches(m, a.keys.Activate):
		if r, ok := a.currentRow(); ok && r.activate != nil {
			return a, r.activate()
		}
	case key.Matches(m, a.keys.Increase):
		if r, ok := a.currentRow(); ok && r.adjust != nil {
			return a, r.adjust(1)
		}
	case key.Matches(m, a.keys.Decrease):
		if r, ok := a.currentRow(); ok && r.adjust != nil {
			return a, r.adjust(-1)
		}
	case key.Matches(m, a.keys.Observe):
		if a.tab == tabOverlay {
			a.openInput(modalObserve, "", "category name")
		}
	default:
		if s := m.String(); len(s) == 1 && s[0] >= '1' && s[0] < '1'+byte(len(tabTitles)) {
			a.selectTab(tabID(s[0] - '1'))
		}
	}
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalConfirm:
		switch {
		case key.Matches(m, a.keys.Confirm):
			return a, a.closeConfirm(true)
		case key.Matches(m, a.keys.Cancel):
			return a, a.closeConfirm(false)
		}
	case modalLanguage:
		switch {
		case key.Matches(m, a.keys.Up):
			if a.langCursor > 0 {
				a.langCursor--
			}
		case key.Matches(m, a.keys.Down):
			if a.langCursor < len(config.Languages)-1 {
				a.langCursor++
			}
		case key.Matches(m, a.keys.Submit):
			a.modal = modalNone
			a.cfg.Language.Localization = config.Languages[a.langCursor]
			return a, a.saveCmd()
		case m.Type == tea.KeyEsc:
			a.modal = modalNone
		}
	case modalColor, modalObserve:
		switch m.Type {
		case tea.KeyEsc:
			a.closeInput()
			return a, nil
		case tea.KeyEnter:
			text := strings.TrimSpace(a.input.Value())
			if text == "" {
				a.status = "enter a value"
				return a, nil
			}
			mode := a.modal
			if mode == modalColor {
				return a, a.submitColor(text)
			}
			a.closeInput()
			return a, a.observe(text)
		}
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(m)
		return a, cmd
	}
	return a, nil
}

func (a *App) selectTab(t tabID) {
	if t == a.tab {
		return
	}
	a.tab = t
	a.cursor = 0
	a.status = ""
	a.clampCursor(1)
}

// moveCursor steps to the next selectable row in direction dir.
func (a *App) moveCursor(dir int) {
	rows := a.rows()
	for i := a.cursor + dir; i >= 0 && i < len(rows); i += dir {
		if rows[i].selectable() {
			a.cursor = i
			return
		}
	}
}

// clampCursor keeps the cursor on a selectable row after the rows changed,
// searching in direction dir first.
func (a *App) clampCursor(dir int) {
	rows := a.rows()
	if a.cursor >= len(rows) {
		a.cursor = len(rows) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
	if len(rows) == 0 || rows[a.cursor].selectable() {
		return
	}
	for _, d := range []int{dir, -dir} {
		for i := a.cursor + d; i >= 0 && i < len(rows); i += d {
			if rows[i].selectable() {
				a.cursor = i
				return
			}
		}
	}
}

func (a *App) currentRow() (row, bool) {
	rows := a.rows()
	if a.cursor < 0 || a.cursor >= len(rows) || !rows[a.cursor].selectable() {
		return row{}, false
	}
	return rows[a.cursor], true
}

// confirm opens the confirmation modal; fn runs with the user's answer.
func (a *App) confirm(text string, fn func(confirmed bool) tea.Cmd) tea.Cmd {
	a.modal = modalConfirm
	a.pendingText = text
	a.pending = fn
	return nil
}

func (a *App) closeConfirm(confirmed bool) tea.Cmd {
	fn := a.pending
	a.modal = modalNone
	a.pending = nil
	a.pendingText = ""
	if fn == nil {
		return nil
	}
	return fn(confirmed)
}

func (a *App) openInput(mode modalState, value, placeholder string) {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	ti.SetValue(value)
	ti.Focus()
	a.input = ti
	a.modal = mode
}

func (a *App) closeInput() {
	a.modal = modalNone
	a.editing = ""
	a.input.Blur()
}

func (a *App) editColor(name string, current bones.RGBA) tea.Cmd {
	a.editing = name
	a.openInput(modalColor, current.Hex(), "#rrggbbaa")
	return nil
}

func (a *App) submitColor(text string) tea.Cmd {
	col, err := bones.ParseHex(text)
	if err != nil {
		a.status = "invalid color: " + text
		return nil
	}
	name := a.editing
	a.closeInput()
	if name == "" {
		a.cfg.Overlay.LinkedBoneCategoryColor = col
	} else {
		c, ok := a.registry.Get(name)
		if !ok {
			c = &bones.Category{Name: name}
		}
		bonecolor.SetColor(c, col, &a.cfg.Overlay)
	}
	return a.saveCmd()
}

// observe registers a drawn bone category. The registry is owned by the
// update loop, so this runs inline rather than as a command.
func (a *App) observe(name string) tea.Cmd {
	if a.services.Skeleton == nil {
		a.registry.Observe(name)
	} else if _, err := a.services.Skeleton.ObserveBone(a.ctx, a.registry, name); err != nil {
		a.status = "error: " + err.Error()
		return nil
	}
	a.status = fmt.Sprintf("observed %s bones", name)
	return nil
}

// commands

// saver writes config snapshots one at a time. Commands run on their own
// goroutines in any order, so a snapshot older than the newest one queued
// is dropped instead of written.
type saver struct {
	save   func(config.Config) error
	mu     sync.Mutex
	latest atomic.Uint64
}

func (s *saver) cmd(cfg config.Config) tea.Cmd {
	gen := s.latest.Add(1)
	return func() tea.Msg {
		s.mu.Lock()
		defer s.mu.Unlock()
		if gen < s.latest.Load() {
			return nil
		}
		if err := s.save(cfg); err != nil {
			return errMsg{err}
		}
		return statusMsg("settings saved")
	}
}

func (a *App) saveCmd() tea.Cmd {
	return a.saver.cmd(a.cfg.Clone())
}

func (a *App) loadPlates() tea.Cmd {
	if a.services.Plates == nil {
		return nil
	}
	plates, ctx := a.services.Plates, a.ctx
	return func() tea.Msg {
		sum, err := plates.Summary(ctx)
		if err != nil {
			return errMsg{err}
		}
		return plateSummaryMsg{summary: sum}
	}
}

func (a *App) disposePlatesCmd() tea.Cmd {
	plates, ctx := a.services.Plates, a.ctx
	return func() tea.Msg {
		if err := plates.Dispose(ctx); err != nil {
			return errMsg{err}
		}
		sum, err := plates.Summary(ctx)
		if err != nil {
			return errMsg{err}
		}
		return plateSummaryMsg{summary: sum, status: "glamour plate memory disposed"}
	}
}

// resetCatalogCmd forgets the catalog and plates. Categories already in this
// session's registry stay listed until restart.
func (a *App) resetCatalogCmd() tea.Cmd {
	if a.services.Maintenance == nil {
		return func() tea.Msg { return errMsg{fmt.Errorf("maintenance not configured")} }
	}
	maint, plates, ctx := a.services.Maintenance, a.services.Plates, a.ctx
	return func() tea.Msg {
		if err := maint.Reset(ctx); err != nil {
			return errMsg{err}
		}
		const done = "catalog reset (applies next session)"
		if plates == nil {
			return statusMsg(done)
		}
		sum, err := plates.Summary(ctx)
		if err != nil {
			return errMsg{err}
		}
		return plateSummaryMsg{summary: sum, status: done}
	}
}

// messages
type statusMsg string

type errMsg struct{ error }

// plateSummaryMsg carries fresh plate figures and, after an action, the
// status line to show.
type plateSummaryMsg struct {
	summary service.PlateSummary
	status  string
}
