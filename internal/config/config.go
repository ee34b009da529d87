package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	OutputDir string

	AbstractBaseURL     string
	AbstractListURL     string
	AbstractRateLimitPS int
	AbstractTimeoutMs   int

	Years []int

	ItemList2018 string
	ItemList2020 string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "abstracts.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		AbstractBaseURL:     getEnv("ABSTRACT_BASE_URL", "http://transport.dot.state.mn.us/PostLetting/abstractCSV.aspx"),
		AbstractListURL:     getEnv("ABSTRACT_LIST_URL", "http://transport.dot.state.mn.us/PostLetting/Abstract.aspx"),
		AbstractRateLimitPS: getEnvInt("ABSTRACT_RATE_LIMIT_RPS", 2),
		AbstractTimeoutMs:   getEnvInt("ABSTRACT_TIMEOUT_MS", 30000),

		Years: getEnvYears("ABSTRACT_YEARS", []int{2021, 2020, 2019, 2018}),

		ItemList2018: getEnv("ITEM_LIST_2018", filepath.Join(cwd, "data", "2018_TrnsportItemList.csv")),
		ItemList2020: getEnv("ITEM_LIST_2020", filepath.Join(cwd, "data", "2020_TrnsportItemList.csv")),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvYears(key string, fallback []int) []int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	out := make([]int, 0, 4)
	for _, part := range strings.Split(value, ",") {
		parsed, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fallback
		}
		out = append(out, parsed)
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
