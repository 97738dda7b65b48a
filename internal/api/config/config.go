package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Cfg is the process-wide configuration, set by LoadConfig.
var Cfg *Config

const envPrefix = "MINDGARDEN"

// LoadConfig reads ./configs/config.yaml (plus .env and MINDGARDEN_* overrides) into Cfg.
func LoadConfig() error {
	cfg, err := Load("./configs", "config")
	if err != nil {
		return err
	}
	Cfg = cfg
	return nil
}

// Load builds a Config from <dir>/<name>.yaml. A missing file is not an error:
// defaults and environment variables still apply.
func Load(dir, name string) (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("jwt.secret must be set")
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)

	v.SetDefault("database.dsn", "file:mindgarden.db?_foreign_keys=on")
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 50)
	v.SetDefault("database.max_lifetime", 30)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 20)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "MindGarden")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.logstash_address", "")
	v.SetDefault("log.logstash_index", "logstash-mindgarden")
	v.SetDefault("log.logstash_token", "")
	v.SetDefault("log.slow_query_millis", 200)
	v.SetDefault("log.slow_redis_millis", 100)

	v.SetDefault("rate_limit.insight_limit", 30)
	v.SetDefault("rate_limit.insight_window", 60)
	v.SetDefault("rate_limit.export_limit", 5)
	v.SetDefault("rate_limit.export_window", 3600)

	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.access_key", "")
	v.SetDefault("minio.secret_key", "")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket", "mindgarden-exports")
	v.SetDefault("minio.presign_minute", 15)

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.sasl.enable", false)
	v.SetDefault("kafka.sasl.username", "")
	v.SetDefault("kafka.sasl.password", "")
	v.SetDefault("kafka.consumer.session_timeout", 30)
	v.SetDefault("kafka.consumer.heartbeat_interval", 3)
	v.SetDefault("kafka.consumer.rebalance_timeout", 60)
	v.SetDefault("kafka.consumer.max_processing_time", 10)
	v.SetDefault("kafka_checkin_consumer.enable", false)
	v.SetDefault("kafka_checkin_consumer.topic", "canal-mindgarden-checkins")
	v.SetDefault("kafka_checkin_consumer.group_id", "mindgarden-insight")

	v.SetDefault("job.insight_recompute_spec", "@every 10m")
}
