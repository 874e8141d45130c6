package constants

import (
	"os"
	"strconv"
	"time"

	"github.com/jsphweid/hummingbird/errs"
)

const (
	DefaultPort            = "8001"
	DefaultOutputDir       = "./outputs"
	DefaultCrepePath       = "crepe"
	DefaultCrepeModel      = "tiny"
	DefaultMaxFileAgeHours = 24
	DefaultLogLevel        = "info"

	// MaxUploadSize bounds multipart bodies accepted by the server.
	MaxUploadSize = 64 << 20
)

type Config struct {
	Port          string
	OutputDir     string
	CrepePath     string
	CrepeModel    string
	SoundFontPath string
	MaxFileAge    time.Duration
	LogLevel      string
}

func Load() (*Config, error) {
	hours, err := getEnvFloat("MAX_FILE_AGE_HOURS", DefaultMaxFileAgeHours)
	if err != nil {
		return nil, err
	}
	if hours <= 0 {
		return nil, errs.NewConfigError("MAX_FILE_AGE_HOURS", hours, "must be positive")
	}
	return &Config{
		Port:          getEnv("PORT", DefaultPort),
		OutputDir:     getEnv("OUTPUT_DIR", DefaultOutputDir),
		CrepePath:     getEnv("CREPE_PATH", DefaultCrepePath),
		CrepeModel:    getEnv("CREPE_MODEL", DefaultCrepeModel),
		SoundFontPath: getEnv("SOUNDFONT_PATH", ""),
		MaxFileAge:    Hours(hours),
		LogLevel:      getEnv("LOG_LEVEL", DefaultLogLevel),
	}, nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func Hours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &errs.ConfigError{Field: key, Value: value, Reason: "not a number", Cause: err}
	}
	return f, nil
}
