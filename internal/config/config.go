package config

import (
	"strings"

	"github.com/spf13/viper"

	"tablens/internal/errors"
)

// EnvPrefix namespaces every environment override, e.g. TABLENS_SERVER_PORT.
const EnvPrefix = "TABLENS"

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	WordCloud WordCloudConfig `mapstructure:"wordcloud"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// DatabaseConfig holds the optional Postgres table source.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// LogConfig selects level (ERROR..TRACE) and format (text|json).
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AnalysisConfig holds sampling windows, thresholds and output bounds.
// A sample size of 0 means every non-null value.
type AnalysisConfig struct {
	ChartSampleSize       int     `mapstructure:"chart_sample_size"`
	ChartThreshold        float64 `mapstructure:"chart_threshold"`
	CorrelationSampleSize int     `mapstructure:"correlation_sample_size"`
	CorrelationThreshold  float64 `mapstructure:"correlation_threshold"`
	StatisticsSampleSize  int     `mapstructure:"statistics_sample_size"`
	StatisticsThreshold   float64 `mapstructure:"statistics_threshold"`
	MaxPartitions         int     `mapstructure:"max_partitions"`
	TopWords              int     `mapstructure:"top_words"`
	TextSampleSize        int     `mapstructure:"text_sample_size"`
	SentimentMinLength    int     `mapstructure:"sentiment_min_length"`
	WordCloudMinLength    int     `mapstructure:"wordcloud_min_length"`
}

// WordCloudConfig holds layout canvas settings.
type WordCloudConfig struct {
	Width    float64 `mapstructure:"width"`
	Height   float64 `mapstructure:"height"`
	Attempts int     `mapstructure:"attempts"`
	Scheme   string  `mapstructure:"scheme"`
	Seed     int64   `mapstructure:"seed"`
}

var defaults = map[string]interface{}{
	"server.port":                      "8080",
	"database.url":                     "",
	"log.level":                        "INFO",
	"log.format":                       "text",
	"analysis.chart_sample_size":       10,
	"analysis.chart_threshold":         0.7,
	"analysis.correlation_sample_size": 20,
	"analysis.correlation_threshold":   0.8,
	"analysis.statistics_sample_size":  0,
	"analysis.statistics_threshold":    0.7,
	"analysis.max_partitions":          50,
	"analysis.top_words":               100,
	"analysis.text_sample_size":        10,
	"analysis.sentiment_min_length":    5,
	"analysis.wordcloud_min_length":    2,
	"wordcloud.width":                  800,
	"wordcloud.height":                 400,
	"wordcloud.attempts":               50,
	"wordcloud.scheme":                 "default",
	"wordcloud.seed":                   1,
}

// legacy environment names honoured next to the prefixed ones.
var legacyEnv = map[string]string{
	"server.port":  "PORT",
	"database.url": "DATABASE_URL",
	"log.level":    "LOG_LEVEL",
	"log.format":   "LOG_FORMAT",
}

// Default returns the built-in defaults. It reads neither the environment
// nor a config file, so it never fails and never returns nil.
func Default() *Config {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	cfg := &Config{}
	// the defaults map decodes into Config by construction
	_ = v.Unmarshal(cfg)
	return cfg
}

// Load reads defaults, then the optional YAML file at path, then
// environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, errors.Wrapf(err, "bind %s", key)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WithCode(errors.CodeConfigInvalid, errors.Wrapf(err, "read config %s", path))
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, errors.Wrap(err, "decode configuration"))
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}

	a := config.Analysis
	for name, threshold := range map[string]float64{
		"chart_threshold":       a.ChartThreshold,
		"correlation_threshold": a.CorrelationThreshold,
		"statistics_threshold":  a.StatisticsThreshold,
	} {
		if threshold <= 0 || threshold >= 1 {
			return errors.ConfigInvalid(name + " must be between 0 and 1")
		}
	}
	for name, size := range map[string]int{
		"chart_sample_size":       a.ChartSampleSize,
		"correlation_sample_size": a.CorrelationSampleSize,
		"statistics_sample_size":  a.StatisticsSampleSize,
		"text_sample_size":        a.TextSampleSize,
		"sentiment_min_length":    a.SentimentMinLength,
		"wordcloud_min_length":    a.WordCloudMinLength,
	} {
		if size < 0 {
			return errors.ConfigInvalid(name + " must not be negative")
		}
	}
	if a.MaxPartitions <= 0 || a.TopWords <= 0 {
		return errors.ConfigInvalid("max_partitions and top_words must be positive")
	}

	w := config.WordCloud
	if w.Width <= 0 || w.Height <= 0 || w.Attempts <= 0 {
		return errors.ConfigInvalid("word cloud width, height and attempts must be positive")
	}
	return nil
}
