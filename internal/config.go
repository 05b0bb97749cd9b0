package internal

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration. It is loaded once at startup
// and passed by value; components never share mutable settings.
type Config struct {
	Crawler CrawlerConfig
	Storage StorageConfig
}

// CrawlerConfig holds crawl settings
type CrawlerConfig struct {
	Subreddit     string
	PostLimit     int
	CommentLimit  int
	SymbolsFile   string
	MinSymbolLen  int
	MaxSymbolLen  int
	ExcludedWords []string
}

// StorageConfig holds storage backend selection and identity
type StorageConfig struct {
	Type      string // "local" or "s3"
	Root      string // local root directory
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	CacheDir  string
}

// defaultExcludedWords suppresses short all-caps tokens that collide with
// real tickers: English stop words plus finance/board slang.
var defaultExcludedWords = []string{
	"THE", "AND", "FOR", "ARE", "BUT", "NOT", "YOU", "ALL", "CAN", "HER",
	"WAS", "ONE", "OUR", "HAD", "WHAT", "YOUR", "WHEN", "HIM", "MY", "HAS",
	"IT", "I", "A", "TO", "OF", "IN", "IS", "ON", "AT", "BE", "OR", "AS",
	"FROM", "UP", "BY", "IF", "DO", "NO", "SO", "WE", "GO", "ME", "AM",
	"US", "AN", "HE", "SHE", "WHO", "OIL", "GAS", "CAR", "CEO", "CFO",
	"CTO", "IPO", "SEC", "FDA", "FED", "GDP", "CPI", "ATH", "ATL", "DD",
	"TA", "PE", "EPS", "ROI", "YOY", "QOQ", "MOM", "EOD", "AH", "PM",
	"WSB", "YOLO", "FD", "HODL", "MOON", "STONK", "STONKS", "TENDIES",
	"DIAMOND", "HANDS", "PAPER", "ROCKET", "BULL", "BEAR", "APES", "APE",
	"WIFE", "BOYFRIEND", "LOSS", "GAIN", "PORN", "BUY", "SELL", "HOLD",
	"LONG", "SHORT", "CALL", "PUT", "PUTS", "CALLS", "OPTION", "OPTIONS",
	"STRIKE", "EXPIRY", "DTE", "IV", "THETA", "DELTA", "GAMMA", "VEGA",
	"RHO",
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Crawler: CrawlerConfig{
			Subreddit:     getEnv("SUBREDDIT", "wallstreetbets"),
			PostLimit:     getEnvAsInt("POST_LIMIT", 100),
			CommentLimit:  getEnvAsInt("COMMENT_LIMIT", 50),
			SymbolsFile:   getEnv("SYMBOLS_FILE", "data/stock_symbols.csv"),
			MinSymbolLen:  getEnvAsInt("MIN_SYMBOL_LENGTH", 1),
			MaxSymbolLen:  getEnvAsInt("MAX_SYMBOL_LENGTH", 5),
			ExcludedWords: getEnvAsSlice("EXCLUDED_WORDS", defaultExcludedWords),
		},
		Storage: StorageConfig{
			Type:      getEnv("STORAGE_TYPE", "local"),
			Root:      getEnv("STORAGE_ROOT", "data"),
			Endpoint:  getEnv("S3_ENDPOINT", "s3.amazonaws.com"),
			Bucket:    getEnv("S3_BUCKET", ""),
			Region:    getEnv("S3_REGION", "us-east-1"),
			AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			UseSSL:    getEnvAsBool("S3_USE_SSL", true),
			CacheDir:  getEnv("CACHE_DIR", ""),
		},
	}
	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool gets an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice gets an environment variable as a comma-separated slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
