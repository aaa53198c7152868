// Package config reads service configuration from the environment.
// Connection setup itself (pools, credentials) belongs to the stores.
package config

import "os"

// Cart holds the cart service configuration.
type Cart struct {
	ServiceName  string
	Env          string
	Port         string
	RedisAddr    string // empty means in-memory store
	OTLPEndpoint string
}

// Payment holds the payment service configuration.
type Payment struct {
	ServiceName  string
	Env          string
	Port         string
	LedgerDBAddr string // empty means in-memory ledger
	OTLPEndpoint string
}

func LoadCart() Cart {
	return Cart{
		ServiceName:  getenvDefault("SERVICE_NAME", "cartservice"),
		Env:          getenvDefault("ENV", "dev"),
		Port:         getenvDefault("PORT", "7070"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
}

func LoadPayment() Payment {
	return Payment{
		ServiceName:  getenvDefault("SERVICE_NAME", "paymentservice"),
		Env:          getenvDefault("ENV", "dev"),
		Port:         getenvDefault("PORT", "50051"),
		LedgerDBAddr: os.Getenv("LEDGER_DB_ADDR"),
		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
