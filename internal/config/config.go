package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
	"github.com/spf13/pflag"
)

type Arguments struct {
	ListenAddr  string `env:"SERVER_ADDRESS" envDefault:"localhost:8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	DatabaseDSN string `env:"DATABASE_DSN" envDefault:""`
	JWTSecret   string `env:"JWT_SECRET" envDefault:"secret"`
	ReviewAddr  string `env:"REVIEW_SYSTEM_ADDRESS" envDefault:"http://localhost:8081"`
}

// ServerConfig модель настроек сервера
type ServerConfig struct {
	ListenAddr  string
	LogLevel    string
	JWTSecret   string
	DatabaseDSN string
}

// ReviewConfig модель настроек работы с внешним сервисом проверки заявок на пополнение баланса
type ReviewConfig struct {
	ReviewAddr        string
	BatchSize         int
	PollInterval      time.Duration
	ProcessingTimeout time.Duration
}

// Config модель настроек сервиса
type Config struct {
	Server ServerConfig
	Review ReviewConfig
}

func NewConfig() Config {

	var args Arguments
	if err := env.Parse(&args); err != nil {
		panic(fmt.Sprintf("Failed to parse enviroment var: %s", err.Error()))
	}

	var (
		server   = pflag.StringP("server", "a", args.ListenAddr, "Server listen address in a form host:port.")
		logLevel = pflag.StringP("log_level", "l", args.LogLevel, "Log level.")
		DSN      = pflag.StringP("dsn", "d", args.DatabaseDSN, "Database DSN")
		secret   = pflag.StringP("secret", "s", args.JWTSecret, "Secret to JWT")
		review   = pflag.StringP("review", "r", args.ReviewAddr, "Review gateway address in a form host:port.")
	)
	pflag.Parse()

	return Config{
		Server: ServerConfig{
			ListenAddr:  *server,
			LogLevel:    *logLevel,
			DatabaseDSN: *DSN,
			JWTSecret:   *secret,
		},
		Review: ReviewConfig{
			ReviewAddr:        *review,
			BatchSize:         10,
			PollInterval:      5 * time.Second,
			ProcessingTimeout: 10 * time.Second,
		},
	}
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr:  "localhost:8080",
			LogLevel:    "info",
			DatabaseDSN: "",
			JWTSecret:   "secret",
		},
		Review: ReviewConfig{
			ReviewAddr:        ":8081",
			BatchSize:         10,
			PollInterval:      5 * time.Second,
			ProcessingTimeout: 10 * time.Second,
		},
	}
}
