package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Pricing  PricingConfig  `yaml:"pricing"`
	Worker   WorkerConfig   `yaml:"worker"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	SwaggerDir string `yaml:"swagger_dir"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	QuotesTopic        string   `yaml:"quotes_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

// PricingConfig holds the rule tables for the pricing engine. Fields left
// empty in the yaml file fall back to the platform defaults below, so a
// minimal config still produces a fully working engine.
type PricingConfig struct {
	FareBasePrice       float64  `yaml:"fare_base_price"`
	PeakMonths          []int    `yaml:"peak_months"`
	PopularDestinations []string `yaml:"popular_destinations"`
	Tier1Destinations   []string `yaml:"tier1_destinations"`
	Tier2Destinations   []string `yaml:"tier2_destinations"`
	HistoryCacheTTL     int      `yaml:"history_cache_ttl_seconds"`
	HistoryLimit        int      `yaml:"history_limit"`
}

type WorkerConfig struct {
	VolumeSweepMinutes int `yaml:"volume_sweep_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Pricing.applyDefaults()
	if cfg.Worker.VolumeSweepMinutes == 0 {
		cfg.Worker.VolumeSweepMinutes = 15
	}

	return &cfg, nil
}

func (p *PricingConfig) applyDefaults() {
	if p.FareBasePrice == 0 {
		p.FareBasePrice = 1000
	}
	if len(p.PeakMonths) == 0 {
		p.PeakMonths = []int{6, 12}
	}
	if len(p.PopularDestinations) == 0 {
		p.PopularDestinations = []string{"delhi", "mumbai", "bangalore", "goa", "manali"}
	}
	if len(p.Tier1Destinations) == 0 {
		p.Tier1Destinations = []string{"mumbai", "delhi", "bangalore", "goa", "jaipur", "agra"}
	}
	if len(p.Tier2Destinations) == 0 {
		p.Tier2Destinations = []string{"hyderabad", "chennai", "kolkata", "pune", "manali", "shimla"}
	}
	if p.HistoryCacheTTL == 0 {
		p.HistoryCacheTTL = 30
	}
	if p.HistoryLimit == 0 {
		p.HistoryLimit = 50
	}
}
