package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "foodbridge",
}

var defaultKafka = Kafka{
	Brokers: nil,
	Topic:   "food.intake",
	GroupID: "foodbridge-matching",
}

var defaultNotify = Notify{
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    2 * time.Second,
}

var defaultDonations = Donations{
	ExpireSweepInterval: time.Minute,
}

var defaultPprof = PprofConfig{
	Enabled: false,
	Addr:    "127.0.0.1:6060",
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       20,
	Burst:      40,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultKafka returns the default Kafka settings.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultNotify returns the default notification retry settings.
func DefaultNotify() Notify {
	return defaultNotify
}

// DefaultDonations returns the default donation housekeeping settings.
func DefaultDonations() Donations {
	return defaultDonations
}

// DefaultPprof returns the default profiling endpoint settings.
func DefaultPprof() PprofConfig {
	return defaultPprof
}

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}
