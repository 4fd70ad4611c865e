package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type TimeclockConfig struct {
	Env              string `yaml:"env" env-default:"local"`
	HTTPServer       `yaml:"http_server"`
	TimeclockDB      `yaml:"timeclock_db"`
	LogConfig        `yaml:"log_config"`
	KafkaService     `yaml:"kafka-service"`
	DirectoryService `yaml:"directory-service"`
	Ledger           `yaml:"ledger"`
}

type HTTPServer struct {
	Host string `yaml:"host" env-default:"0.0.0.0"`
	Port string `yaml:"port" env-default:"8080"`
}

type TimeclockDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env-default:"info"`
	LogFormat string `yaml:"log_format" env-default:"json"`
	LogOutput string `yaml:"log_output" env-default:"stdout"`
}

type KafkaService struct {
	Host            string `yaml:"host"`
	Port            string `yaml:"port"`
	LedgerTopic     string `yaml:"ledger_topic" env-default:"ledger-events"`
	AdjustmentTopic string `yaml:"adjustment_topic" env-default:"adjustment-events"`
}

type DirectoryService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type Ledger struct {
	// MinInterval rejects accidental double submits; the alternation
	// guard is what actually enforces one open session per user.
	MinInterval     time.Duration `yaml:"min_interval" env-default:"1m"`
	MaxPageSize     int           `yaml:"max_page_size" env-default:"100"`
	MinReasonLength int           `yaml:"min_reason_length" env-default:"10"`
}

func MustLoad() *TimeclockConfig {
	configPath := os.Getenv("TIMECLOCK_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("TIMECLOCK_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	var cfg TimeclockConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
