package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yc365/storefront/internal/faucet"
	"github.com/yc365/storefront/internal/market"
	"github.com/yc365/storefront/internal/toast"
	"github.com/yc365/storefront/internal/tour"
)

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if m.ctrl.Status() == tour.StatusActive {
		return m, m.handleTourKey(msg)
	}
	if m.searching {
		return m, m.handleSearchKey(msg)
	}
	if m.view == viewDetail && m.detail != nil && m.detail.focus != focusNone {
		return m, m.handleInputKey(msg)
	}

	// keys shared by both pages
	switch msg.String() {
	case "q":
		return m.quit()
	case "?":
		return m, m.startTour()
	case "t":
		m.applyTheme(m.feed.Toggle())
		return m, nil
	case "L":
		if m.lang == "zh" {
			m.setLanguage("en")
		} else {
			m.setLanguage("zh")
		}
		m.requery()
		return m, nil
	case "f":
		return m, m.claimFaucet()
	case "pgdown":
		m.scroll += m.bodyHeight() / 2
		return m, nil
	case "pgup":
		m.scroll = max(0, m.scroll-m.bodyHeight()/2)
		return m, nil
	}

	if m.view == viewDetail {
		return m, m.handleDetailKey(msg)
	}
	return m, m.handleHomeKey(msg)
}

// handleTourKey drives the walkthrough. The host pages follow the step.
func (m *Model) handleTourKey(msg tea.KeyMsg) tea.Cmd {
	step, _, _ := m.ctrl.Current()
	switch msg.String() {
	case "right", "l", "n", " ":
		m.ctrl.Next()
	case "enter":
		if step.Gate {
			m.activateGate()
		} else {
			m.ctrl.Next()
		}
	case "left", "h", "p", "backspace":
		m.ctrl.Prev()
	case "esc", "q", "s":
		m.ctrl.Close()
	case "t":
		m.applyTheme(m.feed.Toggle())
	default:
		return nil
	}
	m.followTour()
	return m.ensureFrames()
}

// activateGate performs the action the gate step asks for: opening the
// highlighted market card.
func (m *Model) activateGate() {
	step, _, ok := m.ctrl.Current()
	if !ok || !step.Gate {
		return
	}
	if mk, ok := m.onboardingMarket(); ok {
		m.openDetail(mk)
	}
	m.ctrl.Advance()
}

// followTour switches page so the current step target exists.
func (m *Model) followTour() {
	if m.ctrl.Status() != tour.StatusActive {
		return
	}
	idx := m.ctrl.Index()
	gate := gateIndex(m.steps)
	switch {
	case gate < 0:
	case idx > gate && m.view != viewDetail:
		if mk, ok := m.onboardingMarket(); ok {
			m.openDetail(mk)
		}
	case idx <= gate && m.view == viewDetail:
		m.closeDetail()
	}
}

func gateIndex(steps []tour.Step) int {
	for i, s := range steps {
		if s.Gate {
			return i
		}
	}
	return -1
}

// onboardingMarket is the first card of the grid.
func (m *Model) onboardingMarket() (market.Market, bool) {
	if len(m.visible) > 0 {
		return m.visible[0], true
	}
	if len(m.markets) > 0 {
		return m.markets[0], true
	}
	return market.Market{}, false
}

func (m *Model) startTour() tea.Cmd {
	m.searching = false
	m.search.Blur()
	if m.view == viewDetail {
		m.closeDetail()
	}
	m.scroll = 0
	m.scrolledFor = -1
	m.ctrl.Start()
	return m.ensureFrames()
}

// ensureFrames starts the frame chain if the tour is active and no chain is
// running.
func (m *Model) ensureFrames() tea.Cmd {
	if m.framing || m.ctrl.Status() != tour.StatusActive {
		return nil
	}
	m.framing = true
	return frameCmd(m.cfg.Tour.FrameInterval)
}

// handleFrame is one tick of the sync loop. The chain stops once the tour
// leaves the active state.
func (m *Model) handleFrame() tea.Cmd {
	if step, idx, ok := m.ctrl.Current(); ok && idx != m.scrolledFor {
		if m.scrollTo(step.TargetID) {
			m.scrolledFor = idx
		}
	}
	var (
		layout tour.Layout
		active bool
	)
	m.metrics.TimeFrame(func() { layout, active = m.loop.Tick(m.viewport()) })
	if !active {
		m.framing = false
		m.layout = tour.Layout{}
		return nil
	}
	m.metrics.Frame()
	m.layout = layout
	return frameCmd(m.cfg.Tour.FrameInterval)
}

func (m *Model) viewport() tour.Viewport {
	return tour.Viewport{Width: float64(m.width), Height: float64(m.height)}
}

func (m *Model) bodyHeight() int {
	return max(1, m.height-headerHeight-footerHeight)
}

// locate resolves an anchor to screen cells. Header and footer anchors are
// fixed; body anchors move with the scroll offset and count as missing
// while scrolled out of view.
func (m *Model) locate(key string) (tour.Rect, bool) {
	if r, ok := m.fixed.Locate(key); ok {
		return r, true
	}
	r, ok := m.body.Locate(key)
	if !ok {
		return tour.Rect{}, false
	}
	r.Top += float64(headerHeight - m.scroll)
	if r.Bottom() <= headerHeight || r.Top >= float64(headerHeight+m.bodyHeight()) {
		return tour.Rect{}, false
	}
	return r, true
}

// scrollTo brings a body anchor into view. It reports whether the anchor
// is known.
func (m *Model) scrollTo(key string) bool {
	if _, ok := m.fixed.Locate(key); ok {
		return true
	}
	r, ok := m.body.Locate(key)
	if !ok {
		return false
	}
	top, bottom := int(r.Top), int(r.Bottom())
	h := m.bodyHeight()
	switch {
	case top < m.scroll:
		m.scroll = max(0, top-1)
	case bottom > m.scroll+h:
		// prefer showing the top of tall targets
		m.scroll = max(0, min(top-1, bottom-h))
	}
	return true
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.search.SetValue("")
		m.searching = false
		m.search.Blur()
		m.requery()
		return nil
	case "enter":
		m.searching = false
		m.search.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.selected = 0
	m.requery()
	return cmd
}

func (m *Model) handleHomeKey(msg tea.KeyMsg) tea.Cmd {
	cols := m.gridColumns()
	switch msg.String() {
	case "/":
		m.searching = true
		return m.search.Focus()
	case "right", "l":
		m.moveSelection(1)
	case "left", "h":
		m.moveSelection(-1)
	case "down", "j":
		m.moveSelection(cols)
	case "up", "k":
		m.moveSelection(-cols)
	case "enter":
		if m.selected < len(m.visible) {
			m.openDetail(m.visible[m.selected])
		}
	case "tab":
		m.catIndex = (m.catIndex + 1) % len(market.Categories)
		m.selected = 0
		m.requery()
	case "shift+tab":
		m.catIndex = (m.catIndex + len(market.Categories) - 1) % len(market.Categories)
		m.selected = 0
		m.requery()
	case "i":
		m.filterIndex = (m.filterIndex + 1) % len(market.Filters)
		m.selected = 0
		m.requery()
	case "o":
		m.sortIndex = (m.sortIndex + 1) % len(market.Sorts)
		m.requery()
	case "c":
		return m.pushToast(text(m.lang, "Market creation opens soon", "创建市场即将开放"), toast.Success)
	case "d":
		return m.pushToast(text(m.lang, "Deposits are disabled on testnet, use the faucet", "测试网暂不支持充值，请使用水龙头"), toast.Error)
	}
	return nil
}

func (m *Model) moveSelection(delta int) {
	if len(m.visible) == 0 {
		return
	}
	m.selected = max(0, min(len(m.visible)-1, m.selected+delta))
	m.scrollTo(cardKey(m.selected))
}

// claimFaucet starts a simulated mint.
func (m *Model) claimFaucet() tea.Cmd {
	if err := m.faucet.Begin(); err != nil {
		var cd *faucet.CooldownError
		if errors.As(err, &cd) {
			return m.pushToast(text(m.lang, "Next claim in ", "下次领取还需 ")+faucet.FormatCooldown(cd.Remaining), toast.Error)
		}
		return nil
	}
	return tea.Batch(mintCmd(m.faucet.MintDelay()), m.spinner.Tick)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		m.scroll++
		return nil
	case tea.MouseButtonWheelUp:
		m.scroll = max(0, m.scroll-1)
		return nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	for id, r := range m.toastRects {
		if contains(r, msg.X, msg.Y) {
			m.toasts.Dismiss(id)
			delete(m.toastRects, id)
			return nil
		}
	}

	if m.ctrl.Status() == tour.StatusActive {
		step, _, _ := m.ctrl.Current()
		if r, ok := m.locate(step.TargetID); ok && step.Gate && contains(snap(r), msg.X, msg.Y) {
			m.activateGate()
			m.followTour()
			return m.ensureFrames()
		}
		return nil
	}

	if r, ok := m.fixed.Locate(tour.TargetFaucet); ok && contains(snap(r), msg.X, msg.Y) {
		return m.claimFaucet()
	}
	if m.view == viewHome {
		for i := range m.visible {
			if r, ok := m.locate(cardKey(i)); ok && contains(snap(r), msg.X, msg.Y) {
				m.selected = i
				m.openDetail(m.visible[i])
				return nil
			}
		}
	}
	return nil
}

func contains(r cellRect, x, y int) bool {
	return x >= r.left && x < r.left+r.width && y >= r.top && y < r.top+r.height
}
