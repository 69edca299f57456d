package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultDBPath             = "data/feed"
	defaultServiceName        = "campaignfeed"
	defaultRefreshMS          = 10000
	defaultStreamIntervalMS   = 5000
	defaultRefreshConcurrency = 4
	maxRefreshConcurrency     = 64
)

type Config struct {
	Environment   string
	Server        ServerConfig
	Database      DatabaseConfig
	Feed          FeedConfig
	Ingestion     IngestionConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Path      string
	LogTiming bool
}

// FeedConfig drives the refresh scheduler and the stream cadence.
type FeedConfig struct {
	RefreshMS          int
	StreamIntervalMS   int
	RefreshConcurrency int
}

type IngestionConfig struct {
	Token string
}

type ObservabilityConfig struct {
	Enabled           bool
	OTLPEndpoint      string
	OTLPTraceHeaders  map[string]string
	OTLPMetricHeaders map[string]string
	ServiceName       string
	ServiceVer        string
	SamplingRatio     float64
	MetricsConsole    bool
}

func Load() (Config, error) {
	return load(true)
}

// LoadForTool loads config for CLI tools that never accept ingestion traffic.
func LoadForTool() (Config, error) {
	return load(false)
}

func load(requireIngestToken bool) (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("feed_env", "")
	v.SetDefault("app_env", "")
	v.SetDefault("go_env", "")
	v.SetDefault("feed_port", 8080)
	v.SetDefault("feed_db_path", defaultDBPath)
	v.SetDefault("feed_db_timing", false)
	v.SetDefault("feed_refresh_ms", defaultRefreshMS)
	v.SetDefault("feed_stream_interval_ms", defaultStreamIntervalMS)
	v.SetDefault("feed_refresh_concurrency", defaultRefreshConcurrency)
	v.SetDefault("feed_ingest_token", "")
	v.SetDefault("feed_otel_enabled", false)
	v.SetDefault("otel_exporter_otlp_endpoint", "")
	v.SetDefault("otel_exporter_otlp_headers", "")
	v.SetDefault("otel_exporter_otlp_traces_headers", "")
	v.SetDefault("otel_exporter_otlp_metrics_headers", "")
	v.SetDefault("otel_service_name", defaultServiceName)
	v.SetDefault("feed_version", "dev")
	v.SetDefault("otel_service_version", "")
	v.SetDefault("feed_otel_sampling_ratio", 1.0)
	v.SetDefault("feed_otel_metrics_console", false)

	env := resolveEnvironment(v)
	port := v.GetInt("feed_port")
	if port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid FEED_PORT: %d", port)
	}

	refreshMS := v.GetInt("feed_refresh_ms")
	if refreshMS <= 0 {
		return Config{}, fmt.Errorf("invalid FEED_REFRESH_MS: %d", refreshMS)
	}

	streamMS := v.GetInt("feed_stream_interval_ms")
	if streamMS <= 0 {
		streamMS = defaultStreamIntervalMS
	}

	concurrency := v.GetInt("feed_refresh_concurrency")
	if concurrency <= 0 {
		concurrency = 1
	}
	if concurrency > maxRefreshConcurrency {
		concurrency = maxRefreshConcurrency
	}

	samplingRatio := v.GetFloat64("feed_otel_sampling_ratio")
	if samplingRatio < 0 {
		samplingRatio = 0
	}
	if samplingRatio > 1 {
		samplingRatio = 1
	}

	serviceName := strings.TrimSpace(v.GetString("otel_service_name"))
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	serviceVersion := strings.TrimSpace(v.GetString("feed_version"))
	if serviceVersion == "" {
		serviceVersion = strings.TrimSpace(v.GetString("otel_service_version"))
	}
	if serviceVersion == "" {
		serviceVersion = "dev"
	}

	otlpEndpoint := strings.TrimSpace(v.GetString("otel_exporter_otlp_endpoint"))
	otlpCommonHeaders := parseOTLPHeaders(v.GetString("otel_exporter_otlp_headers"))
	otlpTraceHeaders := parseOTLPHeaders(v.GetString("otel_exporter_otlp_traces_headers"))
	otlpMetricHeaders := parseOTLPHeaders(v.GetString("otel_exporter_otlp_metrics_headers"))
	metricsConsole := v.GetBool("feed_otel_metrics_console")
	otelEnabled := v.GetBool("feed_otel_enabled") || otlpEndpoint != "" || metricsConsole

	cfg := Config{
		Environment: env,
		Server:      ServerConfig{Port: port},
		Database: DatabaseConfig{
			Path:      strings.TrimSpace(v.GetString("feed_db_path")),
			LogTiming: v.GetBool("feed_db_timing"),
		},
		Feed: FeedConfig{
			RefreshMS:          refreshMS,
			StreamIntervalMS:   streamMS,
			RefreshConcurrency: concurrency,
		},
		Ingestion: IngestionConfig{
			Token: strings.TrimSpace(v.GetString("feed_ingest_token")),
		},
		Observability: ObservabilityConfig{
			Enabled:           otelEnabled,
			OTLPEndpoint:      otlpEndpoint,
			OTLPTraceHeaders:  mergeHeaderMaps(otlpCommonHeaders, otlpTraceHeaders),
			OTLPMetricHeaders: mergeHeaderMaps(otlpCommonHeaders, otlpMetricHeaders),
			ServiceName:       serviceName,
			ServiceVer:        serviceVersion,
			SamplingRatio:     samplingRatio,
			MetricsConsole:    metricsConsole,
		},
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = defaultDBPath
	}
	if requireIngestToken && !cfg.IsLocalDevelopment() && cfg.Ingestion.Token == "" {
		return Config{}, fmt.Errorf("FEED_INGEST_TOKEN is required outside local/dev environments")
	}

	return cfg, nil
}

func parseOTLPHeaders(raw string) map[string]string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	out := make(map[string]string)
	for _, part := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func mergeHeaderMaps(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

func (c Config) IsLocalDevelopment() bool {
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "", "local", "dev", "development", "test":
		return true
	default:
		return false
	}
}

func (c Config) RefreshPeriod() time.Duration {
	return time.Duration(c.Feed.RefreshMS) * time.Millisecond
}

func (c Config) StreamInterval() time.Duration {
	return time.Duration(c.Feed.StreamIntervalMS) * time.Millisecond
}

func resolveEnvironment(v *viper.Viper) string {
	for _, key := range []string{"feed_env", "app_env", "go_env"} {
		value := strings.TrimSpace(v.GetString(key))
		if value != "" {
			return strings.ToLower(value)
		}
	}
	return ""
}
