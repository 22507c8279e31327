package config

import (
	"bufio"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// --- minimal .env loader (no extra deps) ---
func loadDotenv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return // silently ignore if .env doesn’t exist
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// KEY=VALUE (keep everything after first '=' as the value)
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		k := strings.TrimSpace(parts[0])
		v := strings.TrimSpace(parts[1])
		// remove surrounding quotes if present
		v = strings.Trim(v, `"'`)
		_ = os.Setenv(k, v) // set into process env
	}
}

type APICfg struct {
	BaseURL          string
	TransactionsPath string
	TimeoutSec       int // 0 disables the client timeout
}

type UICfg struct {
	PageSize       int
	CurrencySymbol string
}

type Cfg struct {
	API      APICfg
	UI       UICfg
	LogLevel string
	StubPort string
}

// Load reads viewer configuration and fails fast on required settings.
func Load() Cfg {
	cfg := load()

	if cfg.API.BaseURL == "" {
		log.Fatal().Msg("API_BASE_URL is required")
	}
	if cfg.UI.PageSize <= 0 {
		log.Fatal().Msg("PAGE_SIZE must be positive")
	}

	return cfg
}

// LoadStub reads configuration for the stub server, which serves locally and
// never dials the remote API, so no base URL is required.
func LoadStub() Cfg {
	return load()
}

func load() Cfg {
	// 1) Load .env into process env (if file exists)
	loadDotenv(".env")

	// 2) Read from env via viper
	viper.AutomaticEnv()
	viper.SetDefault("API_TRANSACTIONS_PATH", "/transactions")
	viper.SetDefault("HTTP_TIMEOUT_SEC", 0)
	viper.SetDefault("PAGE_SIZE", 10)
	viper.SetDefault("CURRENCY_SYMBOL", "£")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STUB_PORT", "8089")

	return Cfg{
		API: APICfg{
			BaseURL:          strings.TrimRight(viper.GetString("API_BASE_URL"), "/"),
			TransactionsPath: viper.GetString("API_TRANSACTIONS_PATH"),
			TimeoutSec:       viper.GetInt("HTTP_TIMEOUT_SEC"),
		},
		UI: UICfg{
			PageSize:       viper.GetInt("PAGE_SIZE"),
			CurrencySymbol: viper.GetString("CURRENCY_SYMBOL"),
		},
		LogLevel: viper.GetString("LOG_LEVEL"),
		StubPort: viper.GetString("STUB_PORT"),
	}
}
