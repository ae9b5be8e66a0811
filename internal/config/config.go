package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/matchboard/internal/normalize"
	"github.com/riskibarqy/matchboard/internal/platform/logging"
)

const (
	defaultFixturesBaseURL = "http://localhost:8080/api/fixtures"
	defaultDisplayTimezone = "Europe/Moscow"
)

// Config stores runtime configuration for the matchboard binary.
type Config struct {
	AppEnv         string `validate:"oneof=dev stage prod"`
	ServiceName    string `validate:"required"`
	ServiceVersion string `validate:"required"`
	LogLevel       logging.Level

	FixturesBaseURL               string               `validate:"required,url"`
	MatchCenterBaseURL            string               `validate:"omitempty,url"`
	FixturesTimeout               time.Duration        `validate:"gt=0"`
	FixturesMaxRetries            int                  `validate:"gte=0,lte=5"`
	FixturesCircuitEnabled        bool
	FixturesCircuitFailureCount   int                  `validate:"gte=1"`
	FixturesCircuitOpenTimeout    time.Duration        `validate:"gt=0"`
	FixturesCircuitHalfOpenMaxReq int                  `validate:"gte=1"`
	DisplayTimezone               string               `validate:"required"`
	DisplayLocation               *time.Location       `validate:"required"`
	Workers                       int                  `validate:"gte=1,lte=64"`
	VocabularyFile                string
	Vocabulary                    normalize.Vocabulary

	UptraceEnabled             bool
	UptraceDSN                 string `validate:"required_if=UptraceEnabled true"`
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string `validate:"required_if=PyroscopeEnabled true"`
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration `validate:"gt=0"`
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logLevel, ok := logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info"))
	if !ok {
		return Config{}, fmt.Errorf("invalid APP_LOG_LEVEL %q", os.Getenv("APP_LOG_LEVEL"))
	}

	fixturesTimeout, err := time.ParseDuration(getEnv("FIXTURES_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FIXTURES_TIMEOUT: %w", err)
	}
	fixturesMaxRetries, err := getEnvAsInt("FIXTURES_MAX_RETRIES", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse FIXTURES_MAX_RETRIES: %w", err)
	}
	circuitEnabled, err := strconv.ParseBool(getEnv("FIXTURES_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FIXTURES_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailureCount, err := getEnvAsInt("FIXTURES_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FIXTURES_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	circuitOpenTimeout, err := time.ParseDuration(getEnv("FIXTURES_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FIXTURES_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	circuitHalfOpenMaxReq, err := getEnvAsInt("FIXTURES_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse FIXTURES_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	displayTimezone := strings.TrimSpace(getEnv("DISPLAY_TIMEZONE", defaultDisplayTimezone))
	displayLocation, err := time.LoadLocation(displayTimezone)
	if err != nil {
		return Config{}, fmt.Errorf("parse DISPLAY_TIMEZONE: %w", err)
	}

	workers, err := getEnvAsInt("MATCHBOARD_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCHBOARD_WORKERS: %w", err)
	}

	vocabularyFile := strings.TrimSpace(getEnv("MATCHBOARD_VOCABULARY_FILE", ""))
	vocabulary := normalize.DefaultVocabulary()
	if vocabularyFile != "" {
		extra, err := LoadVocabulary(vocabularyFile)
		if err != nil {
			return Config{}, err
		}
		vocabulary = vocabulary.Merge(extra)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}

	fixturesBaseURL := strings.TrimSpace(getEnv("FIXTURES_BASE_URL", defaultFixturesBaseURL))
	cfg := Config{
		AppEnv:                        appEnv,
		ServiceName:                   getEnv("APP_SERVICE_NAME", "matchboard"),
		ServiceVersion:                getEnv("APP_SERVICE_VERSION", "dev"),
		LogLevel:                      logLevel,
		FixturesBaseURL:               fixturesBaseURL,
		MatchCenterBaseURL:            strings.TrimSpace(getEnv("MATCH_CENTER_BASE_URL", fixturesBaseURL)),
		FixturesTimeout:               fixturesTimeout,
		FixturesMaxRetries:            fixturesMaxRetries,
		FixturesCircuitEnabled:        circuitEnabled,
		FixturesCircuitFailureCount:   circuitFailureCount,
		FixturesCircuitOpenTimeout:    circuitOpenTimeout,
		FixturesCircuitHalfOpenMaxReq: circuitHalfOpenMaxReq,
		DisplayTimezone:               displayTimezone,
		DisplayLocation:               displayLocation,
		Workers:                       workers,
		VocabularyFile:                vocabularyFile,
		Vocabulary:                    vocabulary,
		UptraceEnabled:                uptraceEnabled,
		UptraceDSN:                    strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		PyroscopeEnabled:              pyroscopeEnabled,
		PyroscopeServerAddress:        strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAuthToken:            strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:        strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:    strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:           pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
