package config

import "time"

// SlotsConfig configures the reservation time suggestion engine.  An empty
// APIKey means no generation capability: the engine answers with the
// fallback list.
type SlotsConfig struct {
	APIKey   string
	Model    string
	Endpoint string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// LoadSlotsConfig reads GEMINI_* and SLOTS_* variables.
func LoadSlotsConfig() SlotsConfig {
	return SlotsConfig{
		APIKey:   envStr("GEMINI_API_KEY", ""),
		Model:    envStr("GEMINI_MODEL", "gemini-2.5-flash"),
		Endpoint: envStr("GEMINI_ENDPOINT", "https://generativelanguage.googleapis.com/v1beta"),
		Timeout:  envDur("SLOTS_TIMEOUT", 10*time.Second),
		CacheTTL: envDur("SLOTS_CACHE_TTL", 15*time.Minute),
	}
}

// BrokerURL returns the AMQP URL used for booking events, or "" when no
// broker is configured.
func BrokerURL() string {
	if v := envStr("RABBITMQ_URL", ""); v != "" {
		return v
	}
	return envStr("AMQP_URL", "")
}
