package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/yc365/storefront/internal/emoji"
	"github.com/yc365/storefront/internal/logger"
	"github.com/yc365/storefront/internal/market"
	"github.com/yc365/storefront/internal/toast"
	"github.com/yc365/storefront/internal/tour"
	"github.com/yc365/storefront/internal/ui/components"
)

type focusField int

const (
	focusNone focusField = iota
	focusShares
	focusLimit
	focusComment
)

// detailState is the open market page.
type detailState struct {
	market  market.Market
	book    market.OrderBook
	history []float64
	ticket  *market.Ticket
	thread  *market.Thread
	shares  textinput.Model
	limit   textinput.Model
	comment textinput.Model
	focus   focusField
}

func newInput(placeholder string, width int) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.Width = width
	in.CharLimit = 12
	return in
}

func (m *Model) openDetail(mk market.Market) {
	ticket := market.NewTicket(mk.Chance)
	d := &detailState{
		market:  mk,
		book:    market.GenerateOrderBook(mk.PriceYes(), m.cfg.Market.OrderBookDepth, m.rng),
		history: market.PriceHistory(mk.Chance, historyPoints, m.rng),
		ticket:  ticket,
		thread:  m.thread(mk.ID),
		shares:  newInput("0", 10),
		limit:   newInput("0", 8),
		comment: newInput(text(m.lang, "Share your thoughts", "分享您的观点"), 40),
	}
	d.comment.CharLimit = 280
	d.limit.SetValue(ticket.LimitPrice)
	m.detail = d
	m.view = viewDetail
	m.scroll = 0
	m.scrolledFor = -1
	m.log.Debug("opened market %s", mk.ID)
}

func (m *Model) closeDetail() {
	m.detail = nil
	m.view = viewHome
	m.scroll = 0
	m.scrolledFor = -1
}

// thread returns the comment feed of a market, kept for the session.
func (m *Model) thread(id string) *market.Thread {
	if m.threads == nil {
		m.threads = make(map[string]*market.Thread)
	}
	t, ok := m.threads[id]
	if !ok {
		t = market.NewThread()
		m.threads[id] = t
	}
	return t
}

func (d *detailState) setFocus(f focusField) tea.Cmd {
	d.focus = f
	d.shares.Blur()
	d.limit.Blur()
	d.comment.Blur()
	switch f {
	case focusShares:
		return d.shares.Focus()
	case focusLimit:
		return d.limit.Focus()
	case focusComment:
		return d.comment.Focus()
	}
	return nil
}

func (d *detailState) nextFocus() focusField {
	switch d.focus {
	case focusNone:
		return focusShares
	case focusShares:
		if d.ticket.Type == market.LimitOrder {
			return focusLimit
		}
		return focusComment
	case focusLimit:
		return focusComment
	default:
		return focusNone
	}
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	d := m.detail
	if d == nil {
		m.view = viewHome
		return nil
	}
	switch msg.String() {
	case "esc", "backspace":
		m.closeDetail()
	case "a":
		return m.requestAnalysis()
	case "b":
		if d.ticket.Side == market.Buy {
			d.ticket.Side = market.Sell
		} else {
			d.ticket.Side = market.Buy
		}
	case "m":
		if d.ticket.Type == market.MarketOrder {
			d.ticket.Type = market.LimitOrder
		} else {
			d.ticket.Type = market.MarketOrder
		}
	case "y":
		d.ticket.SetOutcome(market.Yes)
		d.limit.SetValue(d.ticket.LimitPrice)
	case "n":
		d.ticket.SetOutcome(market.No)
		d.limit.SetValue(d.ticket.LimitPrice)
	case "x":
		if d.ticket.FillMax() {
			d.shares.SetValue(d.ticket.Shares)
		}
	case "tab", "s":
		return d.setFocus(focusShares)
	case "c":
		return d.setFocus(focusComment)
	case "enter":
		return m.placeOrder()
	case "down", "j":
		m.scroll++
	case "up", "k":
		m.scroll = max(0, m.scroll-1)
	}
	return nil
}

// handleInputKey routes keys to the focused text field.
func (m *Model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	d := m.detail
	switch msg.String() {
	case "esc":
		return d.setFocus(focusNone)
	case "tab":
		return d.setFocus(d.nextFocus())
	case "enter":
		if d.focus == focusComment {
			return m.postComment()
		}
		d.setFocus(focusNone)
		return m.placeOrder()
	}

	var cmd tea.Cmd
	switch d.focus {
	case focusShares:
		d.shares, cmd = d.shares.Update(msg)
		d.ticket.Shares = d.shares.Value()
	case focusLimit:
		d.limit, cmd = d.limit.Update(msg)
		d.ticket.LimitPrice = d.limit.Value()
	case focusComment:
		d.comment, cmd = d.comment.Update(msg)
	}
	return cmd
}

func (m *Model) placeOrder() tea.Cmd {
	d := m.detail
	q := d.ticket.Quote()
	if q.Shares <= 0 {
		return m.pushToast(text(m.lang, "Enter the number of shares", "请输入份额"), toast.Error)
	}
	if q.Price <= 0 {
		return m.pushToast(text(m.lang, "Enter a limit price", "请输入限价"), toast.Error)
	}
	m.log.InfoWithFields("order placed", []logger.Field{
		logger.F("market", d.market.ID),
		logger.F("side", q.Side),
		logger.F("outcome", q.Outcome),
		logger.F("shares", q.Shares),
		logger.F("cost", q.Cost),
	})
	m.metrics.Order()
	d.ticket.Shares = ""
	d.shares.SetValue("")
	return m.pushToast(text(m.lang, "Order Placed Successfully!", "下单成功！"), toast.Success)
}

func (m *Model) postComment() tea.Cmd {
	d := m.detail
	if _, err := d.thread.Post(text(m.lang, "You", "我"), d.comment.Value()); err != nil {
		return m.pushToast(text(m.lang, "Comment is empty", "评论不能为空"), toast.Error)
	}
	m.metrics.Comment()
	d.comment.SetValue("")
	d.setFocus(focusNone)
	return m.pushToast(text(m.lang, "Comment posted!", "评论已发布！"), toast.Success)
}

// requestAnalysis asks for an AI insight. Requests made while one is in
// flight are ignored.
func (m *Model) requestAnalysis() tea.Cmd {
	if m.analyzer == nil || m.analyzing != "" {
		return nil
	}
	mk := m.detail.market
	m.analyzing = mk.ID
	m.asked = time.Now()
	return tea.Batch(
		analyzeCmd(m.analyzer, mk.ID, mk.Title(m.lang), m.cfg.AI.Timeout),
		m.spinner.Tick,
	)
}

// stack collects blocks vertically and remembers where each one starts.
type stack struct {
	rows   []string
	height int
}

func (s *stack) add(block string) int {
	top := s.height
	s.rows = append(s.rows, block)
	s.height += lipgloss.Height(block)
	return top
}

func (s *stack) String() string { return strings.Join(s.rows, "\n") }

// anchor publishes a body block at content coordinates.
func (m *Model) anchor(key string, top, left int, block string) {
	m.body.Set(key, tour.Rect{
		Top:    float64(top),
		Left:   float64(left),
		Width:  float64(lipgloss.Width(block)),
		Height: float64(lipgloss.Height(block)),
	})
}

const (
	wideLayout    = 100
	orderWidth    = 38
	historyPoints = 96
)

func (m *Model) renderDetail() string {
	d := m.detail
	mk := d.market
	w := m.width
	st := m.st

	var page stack
	cat, _ := market.FindOption(market.Categories, mk.Category)
	page.add(st.Muted.Render("← esc  " + text(m.lang, "Markets", "市场") + " / " + cat.Label(m.lang)))
	page.add(st.Title.Width(w).Render(mk.Title(m.lang)))
	page.add(fmt.Sprintf("%s  %s  %s  %s  %s",
		st.Yes.Render(fmt.Sprintf("YES %.0f¢", mk.PriceYes()*100)),
		st.No.Render(fmt.Sprintf("NO %.0f¢", mk.PriceNo()*100)),
		st.Body.Render(fmt.Sprintf("%d%% %s", mk.Chance, text(m.lang, "chance", "概率"))),
		st.Muted.Render(text(m.lang, "Vol ", "交易量 ")+market.FormatVolume(mk.Volume)),
		st.Muted.Render(emoji.GetEmoji("clock")+" "+mk.ExpiresAt.Format("Jan 2, 2006")),
	))
	page.add("")
	page.add(m.renderInsight(w))
	page.add("")
	top := page.height

	if w >= wideLayout {
		leftW := w - orderWidth - 2
		var left, right stack
		book := m.renderOrderBook(leftW)
		m.anchor(tour.TargetOrderBook, top+left.add(book), 0, book)
		rules := m.renderRules(leftW)
		m.anchor(tour.TargetRules, top+left.add(rules), 0, rules)
		comments := m.renderComments(leftW)
		m.anchor(tour.TargetComments, top+left.add(comments), 0, comments)
		panel := m.renderOrderPanel(orderWidth)
		m.anchor(tour.TargetOrderPanel, top+right.add(panel), leftW+2, panel)
		page.add(lipgloss.JoinHorizontal(lipgloss.Top, left.String(), "  ", right.String()))
		return page.String()
	}

	book := m.renderOrderBook(w)
	m.anchor(tour.TargetOrderBook, page.add(book), 0, book)
	panel := m.renderOrderPanel(w)
	m.anchor(tour.TargetOrderPanel, page.add(panel), 0, panel)
	rules := m.renderRules(w)
	m.anchor(tour.TargetRules, page.add(rules), 0, rules)
	comments := m.renderComments(w)
	m.anchor(tour.TargetComments, page.add(comments), 0, comments)
	return page.String()
}

func (m *Model) renderInsight(w int) string {
	st := m.st
	id := m.detail.market.ID
	head := st.Header.Render(emoji.GetEmoji("brain") + " " + text(m.lang, "AI Insight", "AI 洞察"))
	var body string
	switch insight, ok := m.insights[id]; {
	case m.analyzing == id:
		body = m.spinner.View() + " " + text(m.lang, "Analyzing market...", "正在分析市场...")
	case ok:
		body = st.Body.Render(insight)
	case m.analyzer == nil:
		body = st.Muted.Render(text(m.lang, "AI summaries are not configured", "未配置 AI 摘要"))
	default:
		body = st.Muted.Render(text(m.lang, "Press a for an AI summary", "按 a 获取 AI 摘要"))
	}
	return st.Panel.Width(w - 2).Render(head + "\n" + body)
}

func (m *Model) renderOrderBook(w int) string {
	st := m.st
	book := m.detail.book
	row := func(l market.Level) string {
		return fmt.Sprintf("%-8s %9d %11d", fmt.Sprintf("%.0f¢", l.Price*100), l.Size, l.Total)
	}

	chart := components.NewSparkline(m.detail.history, max(8, min(48, w-16)))
	lines := []string{
		st.Header.Render(emoji.GetEmoji("chart")+" "+text(m.lang, "Order Book", "订单簿")) +
			st.Muted.Render(fmt.Sprintf("   %s %.0f¢", text(m.lang, "Spread", "价差"), book.Spread()*100)),
		st.Muted.Render(text(m.lang, "Price  ", "价格走势  ")) + st.Yes.Render(chart.Render()),
		"",
		st.Muted.Render(fmt.Sprintf("%-8s %9s %11s", text(m.lang, "PRICE", "价格"), text(m.lang, "SHARES", "份额"), text(m.lang, "TOTAL", "累计"))),
	}
	for i := len(book.Asks) - 1; i >= 0; i-- {
		lines = append(lines, st.No.Render(row(book.Asks[i])))
	}
	lines = append(lines, st.Muted.Render(fmt.Sprintf("── %s %.0f¢ ──", text(m.lang, "Last", "最新"), m.detail.market.PriceYes()*100)))
	for _, l := range book.Bids {
		lines = append(lines, st.Yes.Render(row(l)))
	}
	return st.Panel.Width(w - 2).Render(strings.Join(lines, "\n"))
}

// renderRules renders the market rules markdown, cached per width and theme.
func (m *Model) renderRules(w int) string {
	st := m.st
	mk := m.detail.market
	inner := max(10, w-4)

	style := string(m.theme.Name)
	if IsColorDisabled() {
		style = "notty"
	}
	key := fmt.Sprintf("%s|%s|%d", mk.ID, style, inner)
	rendered, ok := m.rulesCache[key]
	if !ok {
		rendered = mk.Rules
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(inner),
		)
		if err == nil {
			var out string
			out, err = r.Render(mk.Rules)
			if err == nil {
				rendered = strings.Trim(out, "\n")
			}
		}
		if err != nil {
			m.log.Debug("rules render failed: %v", err)
		}
		m.rulesCache[key] = rendered
	}

	head := st.Header.Render(emoji.GetEmoji("gavel") + " " + text(m.lang, "Rules", "规则"))
	return st.Panel.Width(w - 2).Render(head + "\n" + rendered)
}

func (m *Model) renderComments(w int) string {
	st := m.st
	d := m.detail
	comments := d.thread.Comments()

	lines := []string{st.Header.Render(fmt.Sprintf("%s %s (%d)", emoji.GetEmoji("comment"), text(m.lang, "Comments", "评论"), len(comments)))}
	if d.focus == focusComment {
		lines = append(lines, "> "+d.comment.View())
	} else {
		lines = append(lines, st.Muted.Render(text(m.lang, "Press c to comment", "按 c 发表评论")))
	}
	for i, c := range comments {
		if i == 5 {
			break
		}
		lines = append(lines,
			st.Body.Bold(true).Render(c.User)+"  "+st.Muted.Render(c.Time),
			st.Body.Width(max(10, w-4)).Render(c.Text),
		)
	}
	return st.Panel.Width(w - 2).Render(strings.Join(lines, "\n"))
}

// toggle renders a segmented control with the active option highlighted.
func (m *Model) toggle(active int, options ...string) string {
	parts := make([]string, len(options))
	for i, o := range options {
		if i == active {
			parts[i] = m.st.Selected.Render(" " + o + " ")
		} else {
			parts[i] = m.st.Muted.Render(" " + o + " ")
		}
	}
	return strings.Join(parts, "")
}

func (m *Model) renderOrderPanel(w int) string {
	st := m.st
	d := m.detail
	t := d.ticket
	q := t.Quote()

	side := 0
	if t.Side == market.Sell {
		side = 1
	}
	kind := 0
	if t.Type == market.LimitOrder {
		kind = 1
	}

	yes := fmt.Sprintf(" Yes %.0f¢ ", t.PriceYes()*100)
	no := fmt.Sprintf(" No %.0f¢ ", t.PriceNo()*100)
	if t.Outcome == market.Yes {
		yes = st.Yes.Reverse(true).Render(yes)
		no = st.No.Render(no)
	} else {
		yes = st.Yes.Render(yes)
		no = st.No.Reverse(true).Render(no)
	}

	field := func(in textinput.Model, f focusField) string {
		if d.focus == f {
			return "[" + in.View() + "]"
		}
		v := in.Value()
		if v == "" {
			v = st.Muted.Render(in.Placeholder)
		}
		return "[" + v + "]"
	}

	lines := []string{
		st.Header.Render(emoji.GetEmoji("bolt") + " " + text(m.lang, "Trade", "交易")),
		m.toggle(side, text(m.lang, "Buy", "买入"), text(m.lang, "Sell", "卖出")) + "  " +
			m.toggle(kind, text(m.lang, "Market", "市价"), text(m.lang, "Limit", "限价")),
		yes + " " + no,
	}
	if t.Type == market.LimitOrder {
		lines = append(lines, fmt.Sprintf("%-12s %s", text(m.lang, "Limit (¢)", "限价 (¢)"), field(d.limit, focusLimit)))
	}
	lines = append(lines,
		fmt.Sprintf("%-12s %s %s", text(m.lang, "Shares", "份额"), field(d.shares, focusShares), st.Muted.Render("x max")),
		st.Muted.Render(strings.Repeat("─", max(1, w-4))),
		fmt.Sprintf("%-12s %.1f¢", text(m.lang, "Avg price", "均价"), q.Price*100),
		fmt.Sprintf("%-12s $%.2f", text(m.lang, "Cost", "成本"), q.Cost),
		fmt.Sprintf("%-12s %s", text(m.lang, "To win", "潜在收益"),
			st.Success.Render(fmt.Sprintf("$%.2f (+%s%%)", q.PotentialReturn, q.ReturnPercent))),
		"",
		st.Button.Bold(true).Render("[ "+text(m.lang, "Place order", "确认下单")+" ⏎ ]"),
		st.Muted.Render("b side · m type · y/n · tab edit"),
	)
	return st.Panel.Width(w - 2).Render(strings.Join(lines, "\n"))
}
