package config

import (
	"os"
	"strconv"
	"time"

	ctopics "github.com/radieske/tennis-edge-api/pkg/contracts/topics"
)

// Config centraliza variáveis de ambiente e parâmetros de execução dos serviços
// Inclui porta HTTP, fonte de torneios, intervalo de refresh e sinks opcionais
type Config struct {
	Env         string // "local", "dev", "prod"
	ServiceName string // "tennis-api" ou "mock-api"
	LogLevel    string // sobrescreve o nível padrão do zap quando definido

	// Portas do serviço atual
	HTTPPort    string // Porta pública (API REST), vem de PORT
	MetricsPort string // Porta exclusiva para /metrics e /healthz; vazio desliga

	// Fonte de torneios (Tennis Abstract)
	SourceURL     string
	SourceTimeout time.Duration

	// Agregador
	RefreshInterval   time.Duration
	ScoringConfigPath string // YAML opcional com limiares de edge

	// Sinks opcionais: vazio desliga
	RedisAddr          string
	RedisSnapshotTTL   time.Duration
	RedisPubSubChannel string
	KafkaBrokers       string // "a:9092,b:9092"
	TopicValueBets     string

	// Mock
	MockMatches int
}

// Load carrega variáveis de ambiente e define defaults para cada serviço
func Load() Config {
	svc := getEnv("SERVICE_NAME", "tennis-api")
	env := getEnv("ENV", "local")

	cfg := Config{
		Env:         env,
		ServiceName: svc,
		LogLevel:    getEnv("LOG_LEVEL", ""),

		HTTPPort:    getEnv("PORT", "5000"),
		MetricsPort: getEnv("METRICS_PORT", "9095"),

		SourceURL:     getEnv("TENNIS_SOURCE_URL", "https://www.tennisabstract.com"),
		SourceTimeout: getEnvDuration("TENNIS_SOURCE_TIMEOUT", 10*time.Second),

		RefreshInterval:   getEnvDuration("REFRESH_INTERVAL", 900*time.Second),
		ScoringConfigPath: getEnv("SCORING_CONFIG", ""),

		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisSnapshotTTL:   getEnvDuration("REDIS_SNAPSHOT_TTL", 30*time.Minute),
		RedisPubSubChannel: getEnv("REDIS_PUBSUB_CHANNEL", ctopics.SnapshotBroadcast),
		KafkaBrokers:       getEnv("KAFKA_BROKERS", ""),
		TopicValueBets:     getEnv("KAFKA_TOPIC_VALUE_BETS", ctopics.ValueBets),

		MockMatches: getEnvInt("MOCK_MATCHES", 20),
	}

	// o mock não tem agregador nem sinks, só precisa de uma porta de métricas diferente
	switch svc {
	case "mock-api":
		cfg.MetricsPort = getEnv("METRICS_PORT_MOCK", "9094")
	}

	return cfg
}

// getEnv retorna o valor da variável de ambiente ou o default
func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

// getEnvDuration aceita "15m", "900s" ou um inteiro em segundos
func getEnvDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
