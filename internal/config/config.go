package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the service-level settings the payment workflow needs.
// Database and Redis settings live with their own init code in
// internal/database.
type Config struct {
	SubscriptionServiceURL string
	SubscriptionTimeout    time.Duration
	ServiceActor           string
	EventQueueKey          string
}

// Load returns service configuration with defaults.
func Load() *Config {
	viper.SetDefault("subscription.service.url", "http://localhost:8081")
	viper.SetDefault("subscription.timeout", 10*time.Second)
	viper.SetDefault("service.actor", "payments-service")
	viper.SetDefault("events.queue_key", "payment_events")

	return &Config{
		SubscriptionServiceURL: viper.GetString("subscription.service.url"),
		SubscriptionTimeout:    viper.GetDuration("subscription.timeout"),
		ServiceActor:           viper.GetString("service.actor"),
		EventQueueKey:          viper.GetString("events.queue_key"),
	}
}
