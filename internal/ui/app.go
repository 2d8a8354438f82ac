// Package ui is the bubbletea storefront: market browsing, the market detail
// page, the faucet, toasts and the onboarding tour overlay.
package ui

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yc365/storefront/internal/config"
	"github.com/yc365/storefront/internal/faucet"
	"github.com/yc365/storefront/internal/logger"
	"github.com/yc365/storefront/internal/market"
	"github.com/yc365/storefront/internal/monitor"
	"github.com/yc365/storefront/internal/state"
	"github.com/yc365/storefront/internal/toast"
	"github.com/yc365/storefront/internal/tour"
)

// viewState is the page being shown.
type viewState int

const (
	viewHome viewState = iota
	viewDetail
)

const (
	headerHeight = 3
	footerHeight = 1
)

// Options wire the storefront to its collaborators. Nil fields get working
// in-memory defaults.
type Options struct {
	Config   *config.Config
	Markets  []market.Market
	Store    state.FlagStore
	Feed     *tour.ThemeFeed
	Analyzer Analyzer
	Faucet   *faucet.Faucet
	Toasts   *toast.Queue
	Logger   *logger.Logger
	Rand     *rand.Rand
	Metrics  *monitor.Session
}

// Model is the storefront application state.
type Model struct {
	cfg *config.Config
	log *logger.Logger
	rng *rand.Rand

	width    int
	height   int
	lang     string
	theme    Theme
	st       *Styles
	quitting bool

	feed        *tour.ThemeFeed
	themeCh     <-chan tour.Theme
	cancelTheme func()

	// browsing
	markets     []market.Market
	visible     []market.Market
	catIndex    int
	filterIndex int
	sortIndex   int
	selected    int
	scroll      int
	view        viewState
	search      textinput.Model
	searching   bool
	tickerPos   int
	ticks       int
	heroIndex   int

	detail  *detailState
	threads map[string]*market.Thread

	// services
	analyzer   Analyzer
	insights   map[string]string
	analyzing  string
	asked      time.Time
	faucet     *faucet.Faucet
	toasts     *toast.Queue
	toastRects map[string]cellRect
	spinner    spinner.Model

	// tour
	ctrl        *tour.Controller
	loop        *tour.SyncLoop
	solver      *tour.Solver
	fixed       *tour.AnchorMap
	body        *tour.AnchorMap
	steps       []tour.Step
	labels      tour.Labels
	layout      tour.Layout
	framing     bool
	scrolledFor int

	rulesCache map[string]string
	metrics    *monitor.Session
}

// NewModel creates the storefront model.
func NewModel(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	markets := opts.Markets
	if markets == nil {
		markets = market.Catalog(time.Now())
	}
	feed := opts.Feed
	if feed == nil {
		t, err := tour.ParseTheme(cfg.UI.Theme)
		if err != nil {
			t = tour.ThemeLight
		}
		feed = tour.NewThemeFeed(t)
	}
	store := opts.Store
	if store == nil {
		store = state.NewMemoryStore(false)
	}
	rng := opts.Rand
	if rng == nil {
		seed := cfg.Market.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	fct := opts.Faucet
	if fct == nil {
		fct = faucet.New(faucet.Options{
			Amount:    cfg.Faucet.Amount,
			Token:     cfg.Faucet.Token,
			MintDelay: cfg.Faucet.MintDelay,
			Cooldown:  cfg.Faucet.Cooldown,
		})
	}
	toasts := opts.Toasts
	if toasts == nil {
		toasts = toast.NewQueue(cfg.Toast.Lifetime, cfg.Toast.MaxShown)
	}

	lang := cfg.UI.Language
	if lang == "" {
		lang = "en"
	}

	search := textinput.New()
	search.Prompt = ""
	search.CharLimit = 64
	search.Width = 22

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		cfg:         cfg,
		log:         log.WithComponent("ui"),
		rng:         rng,
		lang:        lang,
		feed:        feed,
		markets:     markets,
		search:      search,
		analyzer:    opts.Analyzer,
		insights:    make(map[string]string),
		faucet:      fct,
		toasts:      toasts,
		toastRects:  make(map[string]cellRect),
		spinner:     sp,
		fixed:       tour.NewAnchorMap(),
		body:        tour.NewAnchorMap(),
		scrolledFor: -1,
		rulesCache:  make(map[string]string),
		metrics:     opts.Metrics,
	}

	m.catIndex = optionIndex(market.Categories, cfg.Market.DefaultCategory)
	m.filterIndex = optionIndex(market.Filters, cfg.Market.DefaultFilter)
	m.sortIndex = optionIndex(market.Sorts, cfg.Market.DefaultSort)
	m.applyTheme(feed.Current())
	m.setLanguage(lang)
	m.requery()

	m.solver = tour.NewSolver(SolverParams(cfg.Tour))
	m.ctrl = tour.NewController(tour.Steps(lang), store, log)
	m.ctrl.OnChange(func(status tour.Status, index int) {
		m.log.Debug("tour %s at step %d", status, index)
		if status == tour.StatusActive {
			m.metrics.TourStep()
		}
	})
	m.loop = tour.NewSyncLoop(m.ctrl, tour.LocatorFunc(m.locate), m.solver)

	return m
}

// SolverParams maps the configured cell geometry onto solver params.
func SolverParams(c config.TourConfig) tour.Params {
	p := tour.CellParams()
	if c.TooltipWidth > 0 {
		p.TooltipWidth = c.TooltipWidth
	}
	if c.TooltipHeight > 0 {
		p.TooltipHeight = c.TooltipHeight
	}
	p.Margin = c.Margin
	p.HeaderLine = c.HeaderLine
	p.Inset = c.Inset
	if c.PillThreshold > 0 {
		p.PillThreshold = c.PillThreshold
	}
	return p
}

func optionIndex(opts []market.Option, id string) int {
	for i, o := range opts {
		if o.ID == id {
			return i
		}
	}
	return 0
}

// Controller exposes the tour controller, mainly for the CLI and tests.
func (m *Model) Controller() *tour.Controller { return m.ctrl }

// Init subscribes to theme changes, starts the ticker and auto-starts the
// tour when it has not been seen.
func (m *Model) Init() tea.Cmd {
	m.themeCh, m.cancelTheme = m.feed.Subscribe()
	cmds := []tea.Cmd{tickerCmd(), waitTheme(m.themeCh)}

	if m.cfg.Tour.AutoStart && m.ctrl.ShouldAutoStart() {
		m.ctrl.Start()
		cmds = append(cmds, m.ensureFrames())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and navigation
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.search.Width = min(22, max(8, m.width/5))
		return m, m.ensureFrames()
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case frameMsg:
		return m, m.handleFrame()
	case tickerMsg:
		m.handleTicker()
		return m, tickerCmd()
	case analysisMsg:
		// last write wins
		m.insights[msg.marketID] = msg.text
		if m.analyzing == msg.marketID {
			m.analyzing = ""
			m.metrics.RecordAnalysis(time.Since(m.asked))
		}
		return m, nil
	case mintedMsg:
		claim := m.faucet.Complete()
		m.metrics.Mint()
		return m, m.pushToast(faucet.SuccessMessage(claim, m.lang), toast.Success)
	case toastExpireMsg:
		for _, t := range m.toasts.Expire() {
			delete(m.toastRects, t.ID)
		}
		return m, nil
	case themeMsg:
		m.applyTheme(tour.Theme(msg))
		return m, waitTheme(m.themeCh)
	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) busy() bool {
	return m.analyzing != "" || m.faucet.Minting()
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.cancelTheme != nil {
		m.cancelTheme()
	}
	return m, tea.Quit
}

func (m *Model) applyTheme(t tour.Theme) {
	m.theme = ThemeFor(t)
	m.st = GetStyles(m.theme)
}

func (m *Model) setLanguage(lang string) {
	m.lang = lang
	m.steps = tour.Steps(lang)
	m.labels = tour.LabelsFor(lang)
	m.search.Placeholder = text(lang, "Search markets", "搜索市场")
}

// requery rebuilds the visible market list from the browse controls.
func (m *Model) requery() {
	m.visible = market.Apply(m.markets, m.query())
	if m.selected >= len(m.visible) {
		m.selected = max(0, len(m.visible)-1)
	}
}

func (m *Model) query() market.Query {
	return market.Query{
		Category: market.Categories[m.catIndex].ID,
		Filter:   market.Filters[m.filterIndex].ID,
		Sort:     market.Sorts[m.sortIndex].ID,
		Text:     m.search.Value(),
		Lang:     m.lang,
	}
}

func (m *Model) handleTicker() {
	m.ticks++
	m.tickerPos++
	// rotate the hero every five seconds
	if featured := market.Featured(m.markets); len(featured) > 0 && m.ticks%20 == 0 {
		m.heroIndex = (m.heroIndex + 1) % len(featured)
	}
}

func (m *Model) pushToast(message string, kind toast.Kind) tea.Cmd {
	m.toasts.Push(message, kind)
	m.metrics.ToastShown()
	return expireCmd(m.toasts.Lifetime())
}

// text picks the string for lang.
func text(lang, en, zh string) string {
	if lang == "zh" {
		return zh
	}
	return en
}
