package config

import "time"

type HTTPConfig interface {
	GetRequestTimeout() time.Duration
	GetBreakerMaxRequests() uint32
	GetBreakerInterval() time.Duration
	GetBreakerTimeout() time.Duration
	GetBreakerConsecutiveFailures() uint32
}

type HTTP struct{}

var _ HTTPConfig = HTTP{}

func (HTTP) GetRequestTimeout() time.Duration {
	return 15 * time.Second // No request may hang the UI indefinitely
}

func (HTTP) GetBreakerMaxRequests() uint32 {
	return 3 // Probes allowed in half-open state
}

func (HTTP) GetBreakerInterval() time.Duration {
	return 60 * time.Second
}

func (HTTP) GetBreakerTimeout() time.Duration {
	return 30 * time.Second // Open -> half-open after 30 seconds
}

func (HTTP) GetBreakerConsecutiveFailures() uint32 {
	return 5
}
