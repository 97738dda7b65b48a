package config

// Config is the root of configs/config.yaml.
type Config struct {
	Server               ServerConfig         `mapstructure:"server"`
	DB                   DBConfig             `mapstructure:"database"`
	Redis                RedisConfig          `mapstructure:"redis"`
	JWT                  JWTConfig            `mapstructure:"jwt"`
	Log                  LogConfig            `mapstructure:"log"`
	RateLimit            RateLimitConfig      `mapstructure:"rate_limit"`
	MinIO                MinIOConfig          `mapstructure:"minio"`
	Kafka                KafkaConfig          `mapstructure:"kafka"`
	KafkaCheckinConsumer KafkaCheckinConsumer `mapstructure:"kafka_checkin_consumer"`
	Job                  JobConfig            `mapstructure:"job"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

// DBConfig selects the driver by DSN prefix: postgres://, sqlite (file: or *.db),
// otherwise MySQL. MaxLifetime is in minutes.
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

type LogConfig struct {
	Level           string `mapstructure:"level"`
	LogstashAddress string `mapstructure:"logstash_address"`
	LogstashIndex   string `mapstructure:"logstash_index"`
	LogstashToken   string `mapstructure:"logstash_token"`
	SlowQueryMillis int    `mapstructure:"slow_query_millis"`
	SlowRedisMillis int    `mapstructure:"slow_redis_millis"`
}

// RateLimitConfig windows are in seconds.
type RateLimitConfig struct {
	InsightLimit  int `mapstructure:"insight_limit"`
	InsightWindow int `mapstructure:"insight_window"`
	ExportLimit   int `mapstructure:"export_limit"`
	ExportWindow  int `mapstructure:"export_window"`
}

type MinIOConfig struct {
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	UseSSL        bool   `mapstructure:"use_ssl"`
	Bucket        string `mapstructure:"bucket"`
	PresignMinute int    `mapstructure:"presign_minute"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaCheckinConsumer struct {
	Enable  bool   `mapstructure:"enable"`
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

type JobConfig struct {
	InsightRecomputeSpec string `mapstructure:"insight_recompute_spec"`
}
