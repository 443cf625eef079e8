// Package constants holds configuration values shared across layers.
package constants

// Environments.
const (
	EnvDevelop    = "develop"
	EnvStaging    = "staging"
	EnvProduction = "production"
)

// Event publisher providers.
const (
	PubSubProviderLog    = "log"
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
	PubSubProviderKafka  = "kafka"
)

// HeaderRetryAfter is set on rate-limited responses.
const HeaderRetryAfter = "Retry-After"
