package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/yc365/storefront/internal/emoji"
	"github.com/yc365/storefront/internal/faucet"
	"github.com/yc365/storefront/internal/market"
	"github.com/yc365/storefront/internal/toast"
	"github.com/yc365/storefront/internal/tour"
	"github.com/yc365/storefront/internal/ui/components"
)

const (
	cardWidth = 34
	cardGap   = 1
)

func cardKey(i int) string { return fmt.Sprintf("card:%d", i) }

// View renders the screen. It republishes every anchor the tour can target.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading YC365..."
	}

	m.fixed.Reset()
	m.body.Reset()

	var body string
	if m.view == viewDetail && m.detail != nil {
		body = m.renderDetail()
	} else {
		body = m.renderHome()
	}

	bodyLines := strings.Split(body, "\n")
	h := m.bodyHeight()
	m.scroll = max(0, min(m.scroll, len(bodyLines)-h))

	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderHeader()...)
	for i := 0; i < h; i++ {
		if y := m.scroll + i; y < len(bodyLines) {
			lines = append(lines, bodyLines[y])
		} else {
			lines = append(lines, "")
		}
	}
	lines = append(lines, m.renderFooter())
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, m.width, "")
	}

	screen := strings.Join(lines, "\n")
	if m.ctrl.Status() == tour.StatusActive && m.framing {
		screen = overlayTour(screen, m.layout, m.solver.Params().PillRadius, m.renderTooltip(), m.st)
	}
	return m.overlayToasts(screen)
}

// header segment with an optional anchor key
type segment struct {
	key  string
	text string
}

func (m *Model) renderHeader() []string {
	st := m.st
	segs := []segment{
		{"", st.Title.Render("YC365")},
		{tour.TargetSearch, m.searchBox()},
		{tour.TargetFaucet, m.faucetButton()},
		{tour.TargetBalance, st.Body.Render(fmt.Sprintf("%s %.2f %s", emoji.GetEmoji("wallet"), m.faucet.Balance(), m.cfg.Faucet.Token))},
		{tour.TargetDeposit, st.Button.Render("[" + emoji.GetEmoji("plus") + " " + text(m.lang, "Deposit", "充值") + "]")},
		{tour.TargetProfile, st.Button.Render("[" + emoji.GetEmoji("user") + "]")},
	}

	var b strings.Builder
	x := 0
	for i, s := range segs {
		if i > 0 {
			b.WriteString("  ")
			x += 2
		}
		w := ansi.StringWidth(s.text)
		if s.key != "" {
			m.fixed.Set(s.key, tour.Rect{Top: 0, Left: float64(x), Width: float64(w), Height: 1})
		}
		b.WriteString(s.text)
		x += w
	}

	tabs := make([]string, 0, len(market.Categories))
	for i, c := range market.Categories {
		if i == m.catIndex {
			tabs = append(tabs, st.TabOn.Render(c.Label(m.lang)))
		} else {
			tabs = append(tabs, st.Tab.Render(c.Label(m.lang)))
		}
	}

	return []string{
		b.String(),
		strings.Join(tabs, ""),
		st.Muted.Render(strings.Repeat("─", m.width)),
	}
}

func (m *Model) searchBox() string {
	icon := emoji.GetEmoji("search")
	if m.searching {
		return "[" + icon + " " + m.search.View() + "]"
	}
	v := m.search.Value()
	if v == "" {
		return m.st.Muted.Render("[" + icon + " " + padLine(m.search.Placeholder, m.search.Width) + "]")
	}
	return "[" + icon + " " + padLine(ansi.Truncate(v, m.search.Width, "…"), m.search.Width) + "]"
}

func (m *Model) faucetButton() string {
	switch {
	case m.faucet.Minting():
		return m.st.Warning.Render(m.spinner.View() + " " + text(m.lang, "Minting...", "铸造中..."))
	case !m.faucet.CanClaim():
		return m.st.Muted.Render(emoji.GetEmoji("clock") + " " + faucet.FormatCooldown(m.faucet.Remaining()))
	default:
		return m.st.Success.Render("[" + emoji.GetEmoji("droplet") + " " + text(m.lang, "Faucet", "领水") + "]")
	}
}

func (m *Model) renderFooter() string {
	var help string
	switch {
	case m.ctrl.Status() == tour.StatusActive:
		help = text(m.lang, "←/→ step · enter select · esc skip tour", "←/→ 切换 · enter 选择 · esc 跳过引导")
	case m.searching:
		help = text(m.lang, "type to search · enter apply · esc clear", "输入搜索 · enter 确认 · esc 清除")
	case m.view == viewDetail:
		help = text(m.lang, "esc back · a AI · f faucet · t theme · ? tour · q quit", "esc 返回 · a AI · f 领水 · t 主题 · ? 引导 · q 退出")
	default:
		help = text(m.lang, "arrows move · enter open · / search · tab category · i filter · o sort · f faucet · t theme · L lang · ? tour · q quit",
			"方向键 移动 · enter 打开 · / 搜索 · tab 分类 · i 筛选 · o 排序 · f 领水 · t 主题 · L 语言 · ? 引导 · q 退出")
	}

	fab := m.st.Button.Bold(true).Render("[" + emoji.GetEmoji("plus") + " " + text(m.lang, "Create", "创建") + "]")
	fabW := ansi.StringWidth(fab)
	left := m.width - fabW
	m.fixed.Set(tour.TargetCreate, tour.Rect{Top: float64(m.height - 1), Left: float64(left), Width: float64(fabW), Height: 1})

	help = padLine(ansi.Truncate(m.st.Muted.Render(help), max(0, left-1), "…"), left)
	return help + fab
}

func (m *Model) gridColumns() int {
	return max(1, (m.width+cardGap)/(cardWidth+cardGap))
}

func (m *Model) renderHome() string {
	st := m.st
	var page stack

	hero := m.renderHero()
	m.anchor(tour.TargetHero, page.add(hero), 0, hero)

	ticker := m.renderTicker()
	m.anchor(tour.TargetTicker, page.add(ticker), 0, ticker)

	filters := make([]string, 0, len(market.Filters))
	for i, f := range market.Filters {
		if i == m.filterIndex {
			filters = append(filters, st.Selected.Render(f.Label(m.lang)))
		} else {
			filters = append(filters, st.Muted.Render(f.Label(m.lang)))
		}
	}
	page.add(strings.Join(filters, "  ") + st.Muted.Render("   · "+text(m.lang, "Sort: ", "排序：")) +
		st.Body.Render(market.Sorts[m.sortIndex].Label(m.lang)))
	page.add("")

	grid := m.renderGrid(page.height)
	m.anchor(tour.TargetGrid, page.add(grid), 0, grid)
	return page.String()
}

func (m *Model) renderHero() string {
	featured := market.Featured(m.markets)
	if len(featured) == 0 {
		featured = market.Hot(m.markets, 1)
	}
	if len(featured) == 0 {
		return m.st.Hero.Width(m.width - 2).Render(text(m.lang, "No featured events", "暂无精选活动"))
	}
	mk := featured[m.heroIndex%len(featured)]
	dots := make([]string, len(featured))
	for i := range featured {
		dots[i] = "○"
		if i == m.heroIndex%len(featured) {
			dots[i] = "●"
		}
	}
	lines := []string{
		m.st.Warning.Render(emoji.GetEmoji("bolt")+" "+text(m.lang, "FEATURED", "精选")) + "  " + m.st.Muted.Render(strings.Join(dots, " ")),
		m.st.Header.Render(mk.Title(m.lang)),
		fmt.Sprintf("%s  %s  %s",
			m.st.Yes.Render(fmt.Sprintf("YES %.0f¢", mk.PriceYes()*100)),
			m.st.No.Render(fmt.Sprintf("NO %.0f¢", mk.PriceNo()*100)),
			m.st.Muted.Render(text(m.lang, "Vol ", "交易量 ")+market.FormatVolume(mk.Volume))),
	}
	return m.st.Hero.Width(m.width - 2).Render(strings.Join(lines, "\n"))
}

// renderTicker scrolls the hottest markets right to left.
func (m *Model) renderTicker() string {
	label := m.st.Error.Render(emoji.GetEmoji("fire") + " " + text(m.lang, "HOT", "热门") + " ")
	room := m.width - ansi.StringWidth(label)
	hot := market.Hot(m.markets, 8)
	if room <= 0 || len(hot) == 0 {
		return label
	}
	items := make([]string, len(hot))
	for i, mk := range hot {
		items[i] = fmt.Sprintf("%s %d%%", mk.Title(m.lang), mk.Chance)
	}
	loop := strings.Join(items, "  ·  ") + "  ·  "
	loopW := ansi.StringWidth(loop)
	for ansi.StringWidth(loop) < room+loopW {
		loop += loop
	}
	offset := m.tickerPos % loopW
	window := ansi.Truncate(ansi.TruncateLeft(loop, offset, ""), room, "")
	return label + m.st.Body.Render(window)
}

func (m *Model) renderGrid(top int) string {
	if len(m.visible) == 0 {
		return m.st.Muted.Render(text(m.lang, "No markets match your search", "没有符合条件的市场"))
	}
	cols := m.gridColumns()
	var rows []string
	y := 0
	for start := 0; start < len(m.visible); start += cols {
		end := min(start+cols, len(m.visible))
		cards := make([]string, 0, 2*(end-start))
		h := 0
		for i := start; i < end; i++ {
			card := m.renderCard(m.visible[i], i == m.selected)
			left := (i - start) * (cardWidth + cardGap)
			m.anchor(cardKey(i), top+y, left, card)
			if i == 0 {
				m.anchor(tour.TargetMarketCard, top+y, left, card)
			}
			if i > start {
				cards = append(cards, strings.Repeat(" ", cardGap))
			}
			cards = append(cards, card)
			h = max(h, lipgloss.Height(card))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
		y += h
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderCard(mk market.Market, active bool) string {
	st := m.st
	inner := cardWidth - 4

	title := strings.Split(lipgloss.NewStyle().Width(inner).Render(mk.Title(m.lang)), "\n")
	if len(title) > 2 {
		title = title[:2]
		title[1] = ansi.Truncate(title[1], inner-1, "") + "…"
	}
	for len(title) < 2 {
		title = append(title, "")
	}

	chanceStyle := st.No
	if mk.Chance >= 50 {
		chanceStyle = st.Yes
	}
	bar := components.Bar{Width: 10, Filled: chanceStyle.UnsetBold(), Empty: st.Muted}.Render(float64(mk.Chance) / 100)

	lines := []string{
		st.Header.Render(title[0]),
		st.Header.Render(title[1]),
		chanceStyle.Render(fmt.Sprintf("%d%% %s", mk.Chance, text(m.lang, "chance", "概率"))) + " " + bar,
		st.Muted.Render(fmt.Sprintf("%s %s · %s %d", market.FormatVolume(mk.Volume), text(m.lang, "Vol", "交易量"), emoji.GetEmoji("comment"), mk.CommentCount)),
	}
	style := st.Card
	if active {
		style = st.CardActive
	}
	return style.Width(cardWidth - 2).Render(strings.Join(lines, "\n"))
}

// overlayToasts stacks live toasts above the footer, newest at the bottom.
func (m *Model) overlayToasts(screen string) string {
	clear(m.toastRects)
	active := m.toasts.Active()
	if len(active) == 0 {
		return screen
	}
	lines := strings.Split(screen, "\n")
	y := m.height - footerHeight
	for i := len(active) - 1; i >= 0; i-- {
		t := active[i]
		box := m.renderToast(t)
		w, h := lipgloss.Width(box), lipgloss.Height(box)
		y -= h
		x := max(0, m.width-w-1)
		lines = placeBox(lines, box, y, x)
		m.toastRects[t.ID] = cellRect{top: y, left: x, width: w, height: h}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderToast(t toast.Toast) string {
	color, icon := m.theme.Success, "success"
	if t.Kind == toast.Error {
		color, icon = m.theme.Error, "error"
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(min(40, max(12, m.width-4)))
	if IsColorDisabled() {
		style = style.UnsetBorderForeground()
	}
	return style.Render(emoji.GetEmoji(icon) + " " + t.Message)
}

// renderTooltip draws the tour panel sized to the solved tooltip box.
func (m *Model) renderTooltip() string {
	_, idx, ok := m.ctrl.Current()
	if !ok || idx >= len(m.steps) {
		return ""
	}
	step := m.steps[idx]
	st := m.st
	w := max(12, int(m.layout.Tooltip.Width))
	h := max(6, int(m.layout.Tooltip.Height))
	inner := w - 4

	counter := st.Muted.Render(tour.Counter(idx, len(m.steps)))
	head := emoji.GetEmoji(step.Icon) + " " + st.Title.Render(step.Title)
	head = ansi.Truncate(head, inner-ansi.StringWidth(counter)-1, "…")
	head = padLine(head, inner-ansi.StringWidth(counter)) + counter

	// head, blank, blank, nav and skip lines leave the rest for the text
	room := max(1, h-2-5)
	desc := strings.Split(st.Body.Width(inner).Render(step.Description), "\n")
	if len(desc) > room {
		desc = desc[:room]
	}

	var nav string
	if step.Gate {
		nav = st.Warning.Render(m.labels.GateHint)
	} else {
		next := m.labels.Next + " →"
		if m.ctrl.IsLast() {
			next = m.labels.Finish + " " + emoji.GetEmoji("sparkles")
		}
		back := ""
		if idx > 0 {
			back = st.Muted.Render("← " + m.labels.Back)
		}
		nextW := ansi.StringWidth(next) + 2
		nav = padLine(back, inner-nextW) + st.Button.Bold(true).Render("["+next+"]")
	}
	skip := st.Muted.Render("esc " + m.labels.Close)

	body := strings.Join([]string{head, "", strings.Join(desc, "\n"), "", nav, skip}, "\n")
	return st.Tooltip.Width(w - 2).Height(h - 2).MaxHeight(h).Render(body)
}
