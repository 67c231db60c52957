package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

type Config struct {
	// 服务配置
	ServerPort     string `env:"SERVER_PORT" envDefault:"8080"`
	ServerHost     string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Environment    string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName    string `env:"SERVICE_NAME" envDefault:"fibserver"`
	ServiceVersion string `env:"SERVICE_VERSION" envDefault:"0.1.0"`

	// OTLP 导出配置
	// 注意：endpoint 是 collector 的 gRPC 地址，不带 scheme
	OTLPEndpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4317"`
	OTLPInsecure    bool    `env:"OTLP_INSECURE" envDefault:"false"` // true 时跳过 TLS，仅用于本地 collector
	TracingSampler  float64 `env:"TRACING_SAMPLER" envDefault:"1"`
	MetricsInterval int     `env:"METRICS_INTERVAL_SECONDS" envDefault:"15"` // PeriodicReader 导出间隔

	// 日志配置
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`
}

func init() {

	if err := godotenv.Load(); err != nil {

		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	Cfg = Config{}
	if err := env.Parse(&Cfg); err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}

	validateConfig()
}

func validateConfig() {
	if Cfg.OTLPEndpoint == "" {
		log.Fatal("OTEL_EXPORTER_OTLP_ENDPOINT is required")
	}

	if Cfg.TracingSampler < 0 || Cfg.TracingSampler > 1 {
		log.Fatalf("TRACING_SAMPLER must be in [0,1], got %v", Cfg.TracingSampler)
	}

	if Cfg.MetricsInterval <= 0 {
		log.Fatalf("METRICS_INTERVAL_SECONDS must be positive, got %d", Cfg.MetricsInterval)
	}

	if Cfg.OTLPInsecure && Cfg.Environment == "production" {
		log.Printf("WARN: OTLP_INSECURE is set in production, telemetry export is unencrypted")
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
