package cmd

import "time"

type Config struct {
	HTTPPort                string
	DBHost                  string
	DBPort                  string
	DBUser                  string
	DBPassword              string
	DBName                  string
	DBSslMode               string
	KafkaHost               string
	KafkaNotificationsTopic string
	RoutingAPIURL           string
	RoutingAPIKey           string
	RoutingTimeout          time.Duration
	ProviderCooldown        time.Duration
	SlackBufferMinutes      int
	StaleWindow             time.Duration
}
