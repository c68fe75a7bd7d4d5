package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion must match ENV_SCHEMA_VERSION in the .env file
const ExpectedEnvSchemaVersion = "1.0"

// MinAPIKeyLength is the shortest back-office key accepted without a warning
const MinAPIKeyLength = 16

var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"API_KEY",
}

// RequiredDBEnvVars apply to the postgres backend when DB_URL is not set
var RequiredDBEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
}

// envWarning flags a setting that works but should not reach production
type envWarning struct {
	check   func(getenv func(string) string) bool
	message string
}

var envWarnings = []envWarning{
	{
		check:   func(get func(string) string) bool { return get("DB_PASSWORD") == "change_this_secure_password" },
		message: "DB_PASSWORD still has the example value from .env.example",
	},
	{
		check:   func(get func(string) string) bool { return get("API_KEY") == "generate_with_openssl_rand_hex_32" },
		message: "API_KEY still has the example value, generate one with: openssl rand -hex 32",
	},
	{
		check: func(get func(string) string) bool {
			k := get("API_KEY")
			return k != "generate_with_openssl_rand_hex_32" && len(k) < MinAPIKeyLength
		},
		message: fmt.Sprintf("API_KEY is shorter than %d characters", MinAPIKeyLength),
	},
	{
		check:   func(get func(string) string) bool { return strings.EqualFold(get("STORAGE_BACKEND"), StorageBackendMemory) },
		message: "STORAGE_BACKEND=memory keeps balances in process memory, they are lost on restart",
	},
}

func requiredFor(getenv func(string) string) []string {
	if strings.EqualFold(getenv("STORAGE_BACKEND"), StorageBackendMemory) || getenv("DB_URL") != "" {
		return RequiredEnvVars
	}
	return append(append([]string(nil), RequiredEnvVars...), RequiredDBEnvVars...)
}

// ValidateEnv fails when the .env schema version is missing or stale, or
// when a variable the selected backend needs is unset.
func ValidateEnv() error {
	switch v := os.Getenv("ENV_SCHEMA_VERSION"); v {
	case ExpectedEnvSchemaVersion:
	case "":
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set, add it to your .env file (expected %s)", ExpectedEnvSchemaVersion)
	default:
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s, compare your .env with .env.example", ExpectedEnvSchemaVersion, v)
	}

	var missing []string
	for _, name := range requiredFor(os.Getenv) {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and then lists settings that are
// valid but unsafe.
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}
	var warnings []string
	for _, w := range envWarnings {
		if w.check(os.Getenv) {
			warnings = append(warnings, w.message)
		}
	}
	return warnings, nil
}
