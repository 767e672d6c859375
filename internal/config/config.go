package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

type Config struct {
	Host          string
	Port          int
	AllowOrigins  []string
	LogLevel      string
	MaxUploadMB   int
	LogFile       string
	Workers       int
	FreqCacheDir  string
	FreqChunkSize int
	Delimiter     rune
	Pprof         bool
}

func Load() Config {
	port, _ := strconv.Atoi(getenv("PORT", "8082"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "256"))
	workers, _ := strconv.Atoi(getenv("WORKERS", "0"))
	chunk, _ := strconv.Atoi(getenv("FREQ_CHUNK_SIZE", "500000"))
	if chunk <= 0 {
		chunk = 500000
	}
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	return Config{
		Host:          getenv("HOST", "127.0.0.1"),
		Port:          port,
		AllowOrigins:  origins,
		LogLevel:      getenv("LOG_LEVEL", "info"),
		MaxUploadMB:   mb,
		LogFile:       getenv("LOG_FILE", "logs/linkage-service.log"),
		Workers:       workers,
		FreqCacheDir:  getenv("FREQ_CACHE_DIR", ".freq_cache"),
		FreqChunkSize: chunk,
		Delimiter:     delimiter(getenv("DELIMITER", "|")),
		Pprof:         getenv("PPROF", "") == "true",
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// delimiter takes the first rune of s; "\t" and "tab" mean a tab.
func delimiter(s string) rune {
	switch s {
	case "":
		return '|'
	case `\t`, "tab":
		return '\t'
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
