// Package config loads the application configuration from a YAML file
// with environment variable overrides.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds every setting the binaries need.
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	BaseURL                 string `yaml:"base_url" env:"BASE_URL" env-default:"http://localhost:8080"`
	HTTPServer              `yaml:"http_server"`
	RedisConnection         `yaml:"redis_connection"`
	Session                 `yaml:"session"`
	SMTP                    `yaml:"smtp"`
	RabbitMQ                `yaml:"rabbitmq"`
}

// HTTPServer groups the listener settings.
type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection groups the catalog cache settings.
type RedisConnection struct {
	AddressRedis string        `yaml:"address" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env-default:"0"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeout" env-default:"3s"`
}

// Session groups the server-side session settings. TTL doubles as the
// cookie lifetime.
type Session struct {
	Secret        string        `yaml:"secret" env:"SESSION_SECRET"`
	TTL           time.Duration `yaml:"ttl" env-default:"168h"`
	SweepInterval time.Duration `yaml:"sweep_interval" env-default:"24h"`
}

// SMTP groups the mail relay settings. With Mailjet the user and password
// are the API key and secret key.
type SMTP struct {
	SMTPHost string `yaml:"host" env:"SMTP_HOST" env-default:"in-v3.mailjet.com"`
	SMTPPort string `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	SMTPUser string `yaml:"user" env:"MAILJET_API_KEY"`
	SMTPPass string `yaml:"password" env:"MAILJET_SECRET_KEY"`
	From     string `yaml:"from" env:"MAIL_FROM" env-default:"awladnasem800@gmail.com"`
	FromName string `yaml:"from_name" env-default:"Alef Bata"`
}

// RabbitMQ groups the reminder queue settings.
type RabbitMQ struct {
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	MaxRetries int           `yaml:"max_retries" env-default:"10"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"3s"`
}

// MustLoad reads the config from CONFIG_PATH and exits on any failure.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
