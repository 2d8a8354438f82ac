package config

// SampleConfig returns a fully commented configuration file.
func SampleConfig() string {
	return `# yc365 storefront configuration
version: "1.0"

ai:
  # gemini | openai (any OpenAI-compatible endpoint, e.g. a local Ollama /v1)
  provider: "gemini"
  model: "gemini-2.5-flash"
  # endpoint is only used by the openai provider
  endpoint: ""
  # leave empty to read YC365_AI_API_KEY, API_KEY or GEMINI_API_KEY
  api_key: ""
  timeout: 20s
  temperature: 0.7

ui:
  theme: "light"       # light | dark
  language: "en"       # en | zh
  color_mode: "auto"   # auto | always | never
  no_emoji: false

tour:
  auto_start: true
  frame_interval: 16ms
  # geometry in terminal cells
  tooltip_width: 44
  tooltip_height: 11
  margin: 2
  header_line: 3
  inset: 1
  pill_threshold: 12

market:
  default_category: "all"
  default_filter: "all"
  default_sort: "24h_volume"  # created_at | expires_at | total_volume | 24h_volume | liquidity
  order_book_depth: 8
  seed: 0                      # 0 seeds the mock order book from the clock

faucet:
  amount: 50
  token: "USDT"
  mint_delay: 2s
  cooldown: 24h

toast:
  lifetime: 3s
  max_shown: 3

state:
  backend: "gdata"   # gdata | memory
  app_name: "yc365"

log:
  file: ""
  verbose: false
`
}

// MinimalSampleConfig returns a compact configuration with the settings most
// people change.
func MinimalSampleConfig() string {
	return `version: "1.0"
ai:
  provider: "gemini"
  api_key: ""
ui:
  theme: "light"
  language: "en"
`
}
