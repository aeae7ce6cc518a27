package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is everything the probe process needs, sourced from the
// environment. Credentials never come from flags.
type Config struct {
	APIKey      string
	APISecret   string
	BaseURL     string
	ProfilePath string
	Account     string

	Proxy       string
	SeedCookies map[string]string

	MinInterval    time.Duration
	Quota          int
	TimeoutSeconds int

	ProbeInterval time.Duration
	SignedProbe   bool
	Debug         bool
}

// LoadEnv pulls in an env file before reading the environment:
// ENV_FILE if set, otherwise .env in the working directory.
func LoadEnv() {
	if p := os.Getenv("ENV_FILE"); p != "" {
		_ = godotenv.Overload(p)
		return
	}
	_ = godotenv.Load()
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// ParseCookies splits a "name=value; name2=value2" cookie header into
// a map, skipping malformed fragments.
func ParseCookies(raw string) map[string]string {
	out := map[string]string{}
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, "=")
		if !ok || name == "" {
			continue
		}
		out[name] = value
	}
	return out
}

func Load() Config {
	return Config{
		APIKey:      getenv("DY_API_KEY", ""),
		APISecret:   getenv("DY_API_SECRET", ""),
		BaseURL:     getenv("DY_BASE_URL", "https://www.douyin.com"),
		ProfilePath: getenv("DY_PROFILE_PATH", "/aweme/v1/web/user/profile/self/"),
		Account:     getenv("DY_ACCOUNT", "default"),

		Proxy:       getenv("DY_PROXY", ""),
		SeedCookies: ParseCookies(getenv("DY_COOKIES", "")),

		MinInterval:    time.Duration(getenvInt("DY_MIN_INTERVAL_MS", 1500)) * time.Millisecond,
		Quota:          getenvInt("DY_QUOTA_PER_MINUTE", 30),
		TimeoutSeconds: getenvInt("DY_TIMEOUT_SECONDS", 30),

		ProbeInterval: time.Duration(getenvInt("DY_PROBE_INTERVAL_SECONDS", 300)) * time.Second,
		SignedProbe:   getenvBool("DY_SIGNED_PROBE", false),
		Debug:         getenvBool("DY_DEBUG", false),
	}
}
