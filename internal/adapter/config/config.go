package config

import (
	"encoding/json"
	"flag"
	"fmt"

	"github.com/adiallo/orderflow/internal/core/domain"
	"github.com/caarlos0/env/v6"
)

type Config struct {
	Database *Database
	HTTP     *HTTP
	Orders   *Orders
	QRCode   *QRCode
	Kafka    *Kafka
	App      *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string
}

type Database struct {
	DSN string `env:"DATABASE_URI"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

// Orders carries the engine configuration that used to live in ambient
// constants: the expiry time limit in days and the status enumerations.
// The enumerations are JSON arrays of status values, e.g.
// [{"id":"pending","label":"En attente","rank":0}]. Empty means the
// built-in defaults.
type Orders struct {
	TimeLimitDays int    `env:"ORDER_TIME_LIMIT_DAYS"`
	Statuses      string `env:"ORDER_STATUSES"`
	LocalStatuses string `env:"ORDER_LOCAL_STATUSES"`
}

// StatusValues decodes the configured customer-facing status enumeration.
func (o *Orders) StatusValues() (domain.StatusSet, error) {
	return parseStatusSet(o.Statuses)
}

// LocalStatusValues decodes the configured fulfillment status enumeration.
func (o *Orders) LocalStatusValues() (domain.StatusSet, error) {
	return parseStatusSet(o.LocalStatuses)
}

func parseStatusSet(raw string) (domain.StatusSet, error) {
	if raw == "" {
		return nil, nil
	}
	var set domain.StatusSet
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		return nil, fmt.Errorf("error parsing status enumeration: %w", err)
	}
	return set, nil
}

type QRCode struct {
	HostString string `env:"QRCODE_SYSTEM_ADDRESS"`
}

type Kafka struct {
	Broker string `env:"KAFKA_BROKER"`
	Topic  string `env:"KAFKA_ORDER_EVENTS_TOPIC"`
}

func NewConfig() (*Config, error) {
	var db Database
	var http HTTP
	var orders Orders
	var qrcode QRCode
	var kafka Kafka
	var app App

	flag.StringVar(&db.DSN, "d", "", "Database string")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.IntVar(&orders.TimeLimitDays, "t", 1, "Order expiry time limit, days")
	flag.StringVar(&qrcode.HostString, "q", "", "QR code system address")
	flag.StringVar(&kafka.Broker, "k", "", "Kafka broker address")
	flag.StringVar(&kafka.Topic, "topic", "order-events", "Kafka order events topic")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.Parse()

	err := env.Parse(&db)
	if err != nil {
		return nil, fmt.Errorf("error parsing env database config: %w", err)
	}
	err = env.Parse(&http)
	if err != nil {
		return nil, fmt.Errorf("error parsing http config: %w", err)
	}
	err = env.Parse(&orders)
	if err != nil {
		return nil, fmt.Errorf("error parsing orders config: %w", err)
	}
	err = env.Parse(&qrcode)
	if err != nil {
		return nil, fmt.Errorf("error parsing qrcode config: %w", err)
	}
	err = env.Parse(&kafka)
	if err != nil {
		return nil, fmt.Errorf("error parsing kafka config: %w", err)
	}
	err = env.Parse(&app)
	if err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}

	config := Config{
		Database: &db,
		HTTP:     &http,
		Orders:   &orders,
		QRCode:   &qrcode,
		Kafka:    &kafka,
		App:      &app,
	}

	return &config, nil
}
