package keyring

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/momentum/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// getenv is swapped in tests.
var getenv = os.Getenv

func get(user string) (string, error) {
	secret, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

func set(user, what, secret string) error {
	if strings.TrimSpace(secret) == "" {
		return fmt.Errorf("%s cannot be empty", what)
	}
	if err := keyring.Set(constants.AppName, user, secret); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", what, err)
	}
	return nil
}

func del(user, what string) error {
	if err := keyring.Delete(constants.AppName, user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", what, err)
	}
	return nil
}

// GetConnectionString retrieves the database connection string from the OS keyring.
// Returns ErrNotFound if no credentials are stored.
func GetConnectionString() (string, error) {
	return get(constants.KeyringConnectionUser)
}

// SetConnectionString stores the database connection string in the OS keyring.
func SetConnectionString(connStr string) error {
	return set(constants.KeyringConnectionUser, "connection string", connStr)
}

// DeleteConnectionString removes the database connection string from the OS keyring.
func DeleteConnectionString() error {
	return del(constants.KeyringConnectionUser, "connection string")
}

// GetAPIKey retrieves the coach API key from the OS keyring.
func GetAPIKey() (string, error) {
	return get(constants.KeyringAPIKeyUser)
}

// SetAPIKey stores the coach API key in the OS keyring.
func SetAPIKey(key string) error {
	return set(constants.KeyringAPIKeyUser, "API key", key)
}

// DeleteAPIKey removes the coach API key from the OS keyring.
func DeleteAPIKey() error {
	return del(constants.KeyringAPIKeyUser, "API key")
}

// APIKeySource names where ResolveAPIKey found the key.
type APIKeySource string

const (
	SourceNone    APIKeySource = "none"
	SourceEnv     APIKeySource = "environment"
	SourceKeyring APIKeySource = "keyring"
)

// ResolveAPIKey looks up the coach API key in MOMENTUM_API_KEY, then
// GEMINI_API_KEY, then the OS keyring. An empty key with SourceNone means
// the coach runs on fallbacks only.
func ResolveAPIKey() (string, APIKeySource) {
	for _, name := range []string{constants.APIKeyEnvVar, constants.GeminiAPIKeyEnvVar} {
		if v := strings.TrimSpace(getenv(name)); v != "" {
			return v, SourceEnv
		}
	}
	if key, err := GetAPIKey(); err == nil && key != "" {
		return key, SourceKeyring
	}
	return "", SourceNone
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	// ErrNotFound means the keyring answered but holds nothing for that user.
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
