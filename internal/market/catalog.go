package market

import (
	"fmt"
	"time"
)

type seed struct {
	id, category, en, zh string
	chance               int
	volume, vol24h, liq  float64
	ageDays, daysLeft    float64
	comments             int
	featured             bool
	resolves             string
}

var seeds = []seed{
	{"btc-150k", "crypto", "Will Bitcoin reach $150k by the end of the year?", "比特币年底前会达到 15 万美元吗？", 32, 48_200_000, 3_100_000, 2_400_000, 40, 74, 1284, true, "the CoinGecko BTC/USD daily close exceeds $150,000"},
	{"fed-cut-dec", "politics", "Will the Fed cut rates in December?", "美联储会在 12 月降息吗？", 71, 21_500_000, 1_900_000, 1_200_000, 25, 45, 642, true, "the FOMC statement announces a lower target range"},
	{"eth-etf-flows", "crypto", "Will ETH ETFs see net inflows this week?", "以太坊 ETF 本周会出现净流入吗？", 58, 3_800_000, 640_000, 310_000, 3, 5, 88, false, "aggregate net flows reported by issuers are positive"},
	{"champions-final", "sports", "Will a Premier League club win the Champions League?", "英超球队会赢得欧冠冠军吗？", 44, 12_900_000, 870_000, 950_000, 60, 210, 391, false, "the final is won by a club playing in the Premier League"},
	{"gpt-next", "tech", "Will a new frontier AI model launch this quarter?", "本季度会发布新的前沿 AI 模型吗？", 83, 9_400_000, 1_200_000, 700_000, 12, 30, 517, true, "a major lab makes a new flagship model generally available"},
	{"oscars-best-picture", "pop", "Will a streaming film win Best Picture?", "流媒体电影会获得最佳影片吗？", 27, 2_100_000, 95_000, 180_000, 90, 120, 143, false, "the Academy awards Best Picture to a streaming-first release"},
	{"apple-foldable", "tech", "Will Apple announce a foldable iPhone this year?", "苹果今年会发布折叠屏 iPhone 吗？", 12, 4_600_000, 210_000, 260_000, 18, 100, 230, false, "Apple announces a foldable iPhone at an official event"},
	{"sol-flip-eth", "crypto", "Will SOL market cap flip ETH by June?", "SOL 市值会在 6 月前超过 ETH 吗？", 9, 6_700_000, 450_000, 390_000, 5, 0.5, 305, false, "CoinGecko lists SOL above ETH by market cap on any day"},
	{"mars-sample", "science", "Will the Mars sample return mission be confirmed?", "火星采样返回任务会被确认吗？", 36, 820_000, 12_000, 60_000, 2, 160, 21, false, "the agency publishes a funded mission timeline"},
	{"nba-mvp", "sports", "Will the reigning MVP repeat this season?", "卫冕 MVP 本赛季会蝉联吗？", 23, 5_300_000, 330_000, 410_000, 30, 150, 198, false, "the league names the same player MVP"},
	{"tesla-robotaxi", "business", "Will Tesla launch a paid robotaxi service?", "特斯拉会推出付费 Robotaxi 服务吗？", 51, 7_900_000, 980_000, 520_000, 1, 60, 455, true, "paid rides without a safety driver are offered to the public"},
	{"election-turnout", "politics", "Will turnout exceed 65% in the next election?", "下届选举投票率会超过 65% 吗？", 62, 15_400_000, 520_000, 880_000, 70, 300, 276, false, "the official certified turnout is above 65%"},
}

// Catalog returns the static market list, with dates relative to now.
func Catalog(now time.Time) []Market {
	out := make([]Market, 0, len(seeds))
	for _, s := range seeds {
		out = append(out, Market{
			ID:           s.id,
			Titles:       map[string]string{"en": s.en, "zh": s.zh},
			Category:     s.category,
			Chance:       s.chance,
			Volume:       s.volume,
			Volume24h:    s.vol24h,
			Liquidity:    s.liq,
			CreatedAt:    now.Add(-days(s.ageDays)),
			ExpiresAt:    now.Add(days(s.daysLeft)),
			CommentCount: s.comments,
			Featured:     s.featured,
			Rules:        rules(s.en, s.resolves),
		})
	}
	return out
}

// Find returns the market with id.
func Find(markets []Market, id string) (Market, bool) {
	for _, m := range markets {
		if m.ID == id {
			return m, true
		}
	}
	return Market{}, false
}

func days(d float64) time.Duration {
	return time.Duration(d * float64(24*time.Hour))
}

func rules(title, resolves string) string {
	return fmt.Sprintf(`## Resolution

This market resolves **YES** if %s before the expiry date. It resolves **NO** otherwise.

- Question: *%s*
- Each winning share pays **$1.00**
- Ambiguous outcomes are settled by the resolution committee
`, resolves, title)
}
