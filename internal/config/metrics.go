package config

import "strings"

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

// Exporting reports whether an OTLP push exporter is configured.
func (m MetricsConfig) Exporting() bool {
	return m.Enabled && m.OtlpEndpoint != ""
}

func loadMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled: boolEnvOrDefault(envMetricsOn, true),
		// Accept ":9090" as well as "9090".
		Port:         strings.TrimPrefix(envOrDefault(envMetricsPort, defaultMetricsPort), ":"),
		OtlpEndpoint: strings.TrimSpace(envOrDefault(envOtelEndpoint, "")),
		ServiceName:  envOrDefault(envOtelService, defaultServiceName),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, true),
	}
}
