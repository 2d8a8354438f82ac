package tour

import "fmt"

// Anchor keys the host must publish for the tour to find its targets.
const (
	TargetWelcome    = "welcome-tour"
	TargetSearch     = "header-search"
	TargetFaucet     = "header-faucet"
	TargetBalance    = "header-balance"
	TargetDeposit    = "header-deposit"
	TargetProfile    = "header-profile"
	TargetHero       = "hero-banner"
	TargetTicker     = "trending-ticker"
	TargetCreate     = "fab-create"
	TargetGrid       = "market-grid"
	TargetMarketCard = "onboarding-market-card"
	TargetOrderBook  = "market-orderbook-section"
	TargetRules      = "market-rules-section"
	TargetComments   = "market-comments-section"
	TargetOrderPanel = "order-panel-container"
)

// Step is one stop of the tour. Gate steps cannot be advanced with Next; the
// host advances them once the user acts on the target itself.
type Step struct {
	TargetID    string
	Title       string
	Description string
	Icon        string // emoji key
	Gate        bool
}

// Labels are the localised strings of the tooltip chrome.
type Labels struct {
	Next     string
	Back     string
	Finish   string
	GateHint string
	Close    string
}

var stepCatalog = map[string][]Step{
	"en": {
		{TargetWelcome, "Welcome to YC365", "The world's leading decentralized prediction market. Here, your insights are your assets.", "sparkles", false},
		{TargetSearch, "Smart Search", "Quickly find markets by keywords, candidates, or event names.", "search", false},
		{TargetFaucet, "Claim Testnet USDT", "Click here to get free test tokens and start your prediction journey with zero cost.", "droplet", false},
		{TargetBalance, "Asset Overview", "View your real-time balance and track your account performance at any time.", "wallet", false},
		{TargetDeposit, "Quick Deposit", "Add more assets to your wallet to participate in larger market positions.", "plus", false},
		{TargetProfile, "Personal Center", "Access your dashboard, manage settings, and personalize your experience here.", "user", false},
		{TargetHero, "Featured Events", "The carousel highlights the hottest official events and high-reward opportunities.", "bolt", false},
		{TargetTicker, "Trend Tracker", "Real-time scrolling shows the most active markets.", "trending", false},
		{TargetCreate, "Create Market", "Everyone is a market maker! Click here to create your own event and earn fees.", "plus", false},
		{TargetGrid, "Browse Markets", "Find your interests in massive projects and participate quickly.", "pointer", false},
		{TargetMarketCard, "Market Details", "Click this card to enter the detail page to see more rules and order books.", "layout", true},
		{TargetOrderBook, "Order Book & Charts", "Analyze market liquidity and price trends through order books and real-time charts.", "chart", false},
		{TargetRules, "Market Rules", "Check the specific resolution criteria for this market before you trade.", "gavel", false},
		{TargetComments, "Community Insights", "See what other traders are saying or share your own perspective.", "comment", false},
		{TargetOrderPanel, "Place Your Trade", "Select Yes or No, enter the amount, and confirm your prediction.", "bolt", false},
	},
	"zh": {
		{TargetWelcome, "欢迎来到 YC365", "全球领先的去中心化预测市场。在这里，您的见解就是您的资产。", "sparkles", false},
		{TargetSearch, "智能搜索", "通过关键词、候选人或事件名称快速定位您感兴趣的市场。", "search", false},
		{TargetFaucet, "领取测试币", "点击这里领取免费的 USDT，零门槛开始您的预测之旅。", "droplet", false},
		{TargetBalance, "资产总览", "随时查看您的实时余额和账户变动。", "wallet", false},
		{TargetDeposit, "快捷充值", "向您的钱包存入更多资产，参与更大规模的市场预测。", "plus", false},
		{TargetProfile, "个人中心", "管理您的仪表盘、设置并个性化您的体验。", "user", false},
		{TargetHero, "精选活动", "轮播图为您呈现平台最热门、奖励最丰厚的官方活动。", "bolt", false},
		{TargetTicker, "趋势追踪", "实时滚动展示当前成交最活跃的市场趋势。", "trending", false},
		{TargetCreate, "发起预测", "每个人都是市场主理人！您可以点击这里创建属于您的预测市场。", "plus", false},
		{TargetGrid, "浏览市场", "在海量预测项目中寻找您感兴趣的领域。", "pointer", false},
		{TargetMarketCard, "查看市场详情", "点击此卡片进入详情页，查看更详细的订单簿和规则。", "layout", true},
		{TargetOrderBook, "订单簿与图表", "通过实时订单簿和价格走势图分析市场流动性。", "chart", false},
		{TargetRules, "结算规则", "下单前请务必阅读该市场的具体结算标准。", "gavel", false},
		{TargetComments, "社区讨论", "查看其他交易者的观点，或分享您对该事件的见解。", "comment", false},
		{TargetOrderPanel, "立即下单", "选择立场（是/否），输入金额并确认您的预测。", "bolt", false},
	},
}

var labelCatalog = map[string]Labels{
	"en": {Next: "Next", Back: "Back", Finish: "Start", GateHint: "▶ CLICK TARGET TO CONTINUE", Close: "Skip"},
	"zh": {Next: "下一步", Back: "返回", Finish: "完成", GateHint: "▶ 请点击目标以继续", Close: "跳过"},
}

// Steps returns a copy of the step list for lang, falling back to English.
func Steps(lang string) []Step {
	steps, ok := stepCatalog[lang]
	if !ok {
		steps = stepCatalog["en"]
	}
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// LabelsFor returns the tooltip labels for lang, falling back to English.
func LabelsFor(lang string) Labels {
	if l, ok := labelCatalog[lang]; ok {
		return l
	}
	return labelCatalog["en"]
}

// Counter renders the "01 / 15" step counter for a zero-based index.
func Counter(index, total int) string {
	return fmt.Sprintf("%02d / %02d", index+1, total)
}
