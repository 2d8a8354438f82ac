package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yc365/storefront/internal/ai"
	"github.com/yc365/storefront/internal/analysis"
	"github.com/yc365/storefront/internal/formatter"
	"github.com/yc365/storefront/internal/state"
	"github.com/yc365/storefront/internal/tour"
)

// run executes the root command with args and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	globalConfig = nil
	t.Cleanup(func() { globalConfig = nil })

	root := NewRootCommand("1.2.3", "abc1234", "2026-01-01")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--no-emoji", "--no-color"))
	err := root.Execute()
	return out.String(), err
}

// writeConfig stores body as a config file and clears credential variables
// so the host environment cannot leak in.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	for _, env := range []string{"YC365_AI_API_KEY", "API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY", "YC365_AI_PROVIDER", "YC365_AI_ENDPOINT"} {
		t.Setenv(env, "")
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "YC365 1.2.3 (abc1234) built on 2026-01-01")
}

func TestMarketsJSON(t *testing.T) {
	cfg := writeConfig(t, "version: \"1.0\"\n")
	out, err := run(t, "markets", "--config", cfg, "-o", "json", "--category", "crypto", "--sort", "liquidity")
	require.NoError(t, err)

	var listing formatter.ListingOutput
	require.NoError(t, json.Unmarshal([]byte(out), &listing))
	require.NotEmpty(t, listing.Markets)
	assert.Equal(t, len(listing.Markets), listing.Count)
	assert.Equal(t, "crypto", listing.Query.Category)
	for i, m := range listing.Markets {
		assert.Equal(t, "crypto", m.Category)
		if i > 0 {
			assert.GreaterOrEqual(t, listing.Markets[i-1].Liquidity, m.Liquidity)
		}
	}
}

func TestMarketsSearchAndLimit(t *testing.T) {
	cfg := writeConfig(t, "version: \"1.0\"\n")
	out, err := run(t, "markets", "--config", cfg, "-o", "csv", "--limit", "1", "btc-150k")
	require.NoError(t, err)
	assert.Contains(t, out, "btc-150k")
	assert.Len(t, bytes.Split(bytes.TrimSpace([]byte(out)), []byte("\n")), 2, "header plus one row")
}

func TestMarketsRejectsUnknownOptions(t *testing.T) {
	cfg := writeConfig(t, "version: \"1.0\"\n")
	_, err := run(t, "markets", "--config", cfg, "--sort", "popularity")
	assert.ErrorContains(t, err, "unknown sort")

	_, err = run(t, "markets", "--config", cfg, "-o", "xml")
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestAnalyzeWithoutCredential(t *testing.T) {
	cfg := writeConfig(t, "version: \"1.0\"\n")
	out, err := run(t, "analyze", "--config", cfg, "btc-150k")
	require.NoError(t, err)
	assert.Contains(t, out, analysis.MsgNoCredential)
}

func TestAnalyzeThroughOpenAICompatibleEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"id":"1","model":"m","choices":[{"index":0,"message":{"role":"assistant","content":"Momentum favours YES."},"finish_reason":"stop"}],"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`)
	}))
	defer server.Close()

	cfg := writeConfig(t, "version: \"1.0\"\nai:\n  provider: openai\n  model: test-model\n")
	t.Setenv("YC365_AI_ENDPOINT", server.URL)
	t.Setenv("YC365_AI_API_KEY", "test-key")

	out, err := run(t, "analyze", "--config", cfg, "-o", "json", "btc-150k")
	require.NoError(t, err)

	var res analysisOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "btc-150k", res.MarketID)
	assert.True(t, res.Configured)
	assert.Equal(t, "Momentum favours YES.", res.Insight)
}

func TestAnalyzeProviderFailureFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := writeConfig(t, "version: \"1.0\"\nai:\n  provider: openai\n")
	t.Setenv("YC365_AI_ENDPOINT", server.URL)
	t.Setenv("YC365_AI_API_KEY", "test-key")

	out, err := run(t, "analyze", "--config", cfg, "Will it snow?")
	require.NoError(t, err)
	assert.Contains(t, out, analysis.MsgUnavailable)
}

func TestAnalyzeRejectsBadEndpoint(t *testing.T) {
	cfg := writeConfig(t, "version: \"1.0\"\nai:\n  provider: openai\n")
	t.Setenv("YC365_AI_ENDPOINT", "ftp://models.internal")
	t.Setenv("YC365_AI_API_KEY", "test-key")

	_, err := run(t, "analyze", "--config", cfg, "btc-150k")
	require.Error(t, err)
	assert.ErrorContains(t, err, `invalid ai settings for provider "openai"`)
	assert.True(t, ai.IsConfigurationError(err))
}

func TestFaucetCommand(t *testing.T) {
	cfg := writeConfig(t, "version: \"1.0\"\nfaucet:\n  amount: 50\n  token: USDT\n  mint_delay: 1ms\n  cooldown: 24h\n")
	out, err := run(t, "faucet", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully claimed 50 Test USDT!")
	assert.Contains(t, out, "Next claim in 23h 59m")
}

func TestTourStatusAndReset(t *testing.T) {
	app := fmt.Sprintf("yc365_cli_test_%d", time.Now().UnixNano())
	store, err := state.OpenGdata(app)
	if err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			_ = os.RemoveAll(filepath.Join(home, ".local", "share", app))
		}
	})
	cfg := writeConfig(t, fmt.Sprintf("version: \"1.0\"\nstate:\n  backend: gdata\n  app_name: %s\n", app))

	out, err := run(t, "tour", "status", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "not seen")

	require.NoError(t, store.MarkTourSeen())
	out, err = run(t, "tour", "status", "--config", cfg, "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"seen":true`)

	_, err = run(t, "tour", "reset", "--config", cfg)
	require.NoError(t, err)
	seen, err := store.TourSeen()
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestTourSteps(t *testing.T) {
	cfg := writeConfig(t, "version: \"1.0\"\n")
	out, err := run(t, "tour", "steps", "--config", cfg, "--lang", "zh")
	require.NoError(t, err)
	assert.Contains(t, out, "01 / 15")
	assert.Contains(t, out, "欢迎来到 YC365")
	assert.Contains(t, out, tour.TargetMarketCard+"  [gate]")
}

func TestTourLayout(t *testing.T) {
	cfg := writeConfig(t, "version: \"1.0\"\n")
	out, err := run(t, "tour", "layout", "--config", cfg, "--pixels", "--viewport", "1280x800", "--target", "700,100,300,200", "-o", "json")
	require.NoError(t, err)

	var layout tour.Layout
	require.NoError(t, json.Unmarshal([]byte(out), &layout))
	assert.True(t, layout.Spotlight.Visible)
	assert.Equal(t, 456.0, layout.Tooltip.Top, "above the target")
	assert.Equal(t, 90.0, layout.Tooltip.Left)

	out, err = run(t, "tour", "layout", "--config", cfg, "--viewport", "120x40")
	require.NoError(t, err)
	assert.Contains(t, out, "placement: center")
	assert.Contains(t, out, "spotlight: hidden")

	_, err = run(t, "tour", "layout", "--config", cfg, "--viewport", "wide")
	assert.ErrorContains(t, err, "invalid viewport")
	_, err = run(t, "tour", "layout", "--config", cfg, "--target", "1,2,3")
	assert.ErrorContains(t, err, "invalid target")
}

func TestConfigInitAndValidate(t *testing.T) {
	writeConfig(t, "")
	path := filepath.Join(t.TempDir(), "nested", "yc365.yaml")

	out, err := run(t, "config", "init", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration file created at")

	_, err = run(t, "config", "init", "--output", path)
	assert.ErrorContains(t, err, "already exists")

	out, err = run(t, "config", "validate", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "Theme / Language: light / en")
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	cfg := writeConfig(t, "version: \"1.0\"\nui:\n  theme: neon\n")
	out, err := run(t, "config", "validate", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, out, "invalid theme: neon")
}

func TestConfigShowRedactsKey(t *testing.T) {
	cfg := writeConfig(t, "version: \"1.0\"\nai:\n  api_key: secret-value\n")
	out, err := run(t, "config", "show", "--config", cfg, "--format", "toml")
	require.NoError(t, err)
	assert.NotContains(t, out, "secret-value")
	assert.Contains(t, out, "********")
}

func TestLanguageFlagIsValidated(t *testing.T) {
	cfg := writeConfig(t, "version: \"1.0\"\n")
	_, err := run(t, "tour", "steps", "--config", cfg, "--lang", "fr")
	assert.ErrorContains(t, err, "invalid language")
}
