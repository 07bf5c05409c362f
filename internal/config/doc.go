// Package config handles configuration loading for taskdeck.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	auth:
//	  jwt_secret: "${TASKDECK_JWT_SECRET}"
//
// Syntax: ${VAR_NAME}. Unset variables expand to the empty string, which
// fails validation for required fields rather than silently running with
// a blank secret.
//
// # Duration Parsing
//
// Duration fields (auth.token_ttl, cache.ttl) accept Go duration strings
// such as "1h" or "30s". The token TTL defaults to one hour.
package config
