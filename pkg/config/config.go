package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	ServiceName string
	LogLevel    string

	ServerPort   int
	FrontendURLs []string

	DatabaseDriver string
	DatabaseURL    string

	JWTAccessSecret []byte
	AuthHTTPURL     string

	AdminUsername     string
	AdminPasswordHash string

	KafkaBrokers []string

	ElasticURL      string
	ElasticUser     string
	ElasticPassword string
	ElasticIndex    string

	OtelEndpoint   string
	OtelAuthHeader string

	StrictOrderStatus bool
	VerifyOrderTotal  bool
	MaxLatestLimit    int
}

func Load() Config {
	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "gallery"),
		LogLevel:    os.Getenv("LOG_LEVEL"),

		ServerPort:   EnvIntDefault("SERVER_PORT", 8080),
		FrontendURLs: CSV(os.Getenv("FRONTEND_URL")),

		DatabaseDriver: EnvDefault("DB_DRIVER", "postgres"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),

		JWTAccessSecret: []byte(os.Getenv("JWT_SECRET")),
		AuthHTTPURL:     os.Getenv("AUTH_URL"),

		AdminUsername:     EnvDefault("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ElasticURL:      os.Getenv("ES_URL"),
		ElasticUser:     os.Getenv("ES_USER"),
		ElasticPassword: os.Getenv("ES_PASSWORD"),
		ElasticIndex:    EnvDefault("ES_INDEX", "artworks"),

		OtelEndpoint:   os.Getenv("OTEL_ENDPOINT"),
		OtelAuthHeader: os.Getenv("OTEL_AUTH_HEADER"),

		StrictOrderStatus: EnvBoolDefault("STRICT_ORDER_STATUS", false),
		VerifyOrderTotal:  EnvBoolDefault("VERIFY_ORDER_TOTAL", false),
		MaxLatestLimit:    EnvIntDefault("MAX_LATEST_LIMIT", 50),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
