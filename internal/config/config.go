package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"gopkg.in/yaml.v3"

	"github.com/jm-RBT/Pagasa-WebScraper/internal/domain"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/header"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Extraction settings.
	GazetteerPath      string
	GazetteerCacheSize int
	AliasesFile        string
	ExtractWorkers     int
	OutputMode         string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	cacheSize, err := parsePositiveInt("GAZETTEER_CACHE_SIZE", 1000)
	if err != nil {
		return nil, err
	}

	workers, err := parsePositiveInt("EXTRACT_WORKERS", 4)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "bulletin-pages"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "bulletin-records"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "bulletin-etl"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		GazetteerPath:      os.Getenv("GAZETTEER_PATH"),
		GazetteerCacheSize: cacheSize,
		AliasesFile:        os.Getenv("ALIASES_FILE"),
		ExtractWorkers:     workers,
		OutputMode:         sharedcfg.EnvOrDefault("OUTPUT_MODE", domain.ModeConfidence),
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if cfg.OutputMode != domain.ModeConfidence && cfg.OutputMode != domain.ModeDataset {
		return nil, fmt.Errorf("invalid OUTPUT_MODE %q: want %s or %s", cfg.OutputMode, domain.ModeConfidence, domain.ModeDataset)
	}

	return cfg, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", key, s)
	}
	return n, nil
}

// LoadAliases returns the built-in header aliases with any lists from the
// YAML file at path replacing the defaults. An empty path returns the
// defaults.
func LoadAliases(path string) (header.Aliases, error) {
	aliases := header.DefaultAliases()
	if path == "" {
		return aliases, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return header.Aliases{}, fmt.Errorf("read aliases file: %w", err)
	}
	var override header.Aliases
	if err := yaml.Unmarshal(data, &override); err != nil {
		return header.Aliases{}, fmt.Errorf("parse aliases file: %w", err)
	}
	return aliases.Merge(override), nil
}
