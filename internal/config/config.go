// Package config loads server settings from flags and the environment. A
// .env file in the working directory is honored when present.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string
	LLM  LLMConfig
	// SandboxDSN selects the Postgres sandbox backend when non-empty.
	SandboxDSN string
}

type LLMConfig struct {
	APIKey string
	Model  string
	RPS    float64
	Burst  int
}

// Load reads configuration from flags, .env, and the environment. It does
// not require a Gemini key; callers decide whether a missing key is fatal.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8080", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:       *port,
		Env:        env,
		LLM:        loadLLMConfig(),
		SandboxDSN: strings.TrimSpace(os.Getenv("SANDBOX_PG_DSN")),
	}, nil
}

func loadLLMConfig() LLMConfig {
	return LLMConfig{
		APIKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		Model:  firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_MODEL")), "gemini-2.0-flash"),
		RPS:    envFloat("LLM_RPS", 1),
		Burst:  envInt("LLM_BURST", 2),
	}
}

func envFloat(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
