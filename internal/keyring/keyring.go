// Package keyring provides access to the system keychain for storing API keys.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const serviceName = "teeshot"

// APIKey represents a named API key stored in the keychain.
type APIKey string

const (
	// Gemini is the keychain entry for the Google Gemini API key.
	Gemini APIKey = "gemini-api-key"
	// OpenAI is the keychain entry for the OpenAI API key.
	OpenAI APIKey = "openai-api-key"
	// Anthropic is the keychain entry for the Anthropic API key.
	Anthropic APIKey = "anthropic-api-key"
	// AWSAccessKeyID is the keychain entry for the S3 access key id.
	AWSAccessKeyID APIKey = "aws-access-key-id"
	// AWSSecretAccessKey is the keychain entry for the S3 secret key.
	AWSSecretAccessKey APIKey = "aws-secret-access-key"
)

// AllAPIKeys returns all known API key types for iteration.
func AllAPIKeys() []APIKey {
	return []APIKey{Gemini, OpenAI, Anthropic, AWSAccessKeyID, AWSSecretAccessKey}
}

// DisplayName returns a human-readable name for the API key.
func (k APIKey) DisplayName() string {
	switch k {
	case Gemini:
		return "gemini"
	case OpenAI:
		return "openai"
	case Anthropic:
		return "anthropic"
	case AWSAccessKeyID:
		return "aws-access-key"
	case AWSSecretAccessKey:
		return "aws-secret-key"
	default:
		return string(k)
	}
}

// Get retrieves an API key value from the system keychain.
func Get(apiKey APIKey) (string, error) {
	value, err := keyring.Get(serviceName, string(apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to get %s from keychain: %w", apiKey.DisplayName(), err)
	}

	return value, nil
}

// Lookup returns the stored value, or "" when it is missing or the keychain
// is unavailable.
func Lookup(apiKey APIKey) string {
	value, err := keyring.Get(serviceName, string(apiKey))
	if err != nil {
		return ""
	}

	return value
}

// Set stores an API key value in the system keychain.
func Set(apiKey APIKey, value string) error {
	if err := keyring.Set(serviceName, string(apiKey), value); err != nil {
		return fmt.Errorf("failed to set %s in keychain: %w", apiKey.DisplayName(), err)
	}

	return nil
}

// Delete removes an API key. Deleting a missing key is not an error.
func Delete(apiKey APIKey) error {
	err := keyring.Delete(serviceName, string(apiKey))
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete %s from keychain: %w", apiKey.DisplayName(), err)
	}

	return nil
}

// IsSet checks if an API key exists in the keychain.
func IsSet(apiKey APIKey) bool {
	_, err := keyring.Get(serviceName, string(apiKey))

	return err == nil
}

// APIKeyFromServiceName maps a service name (e.g., "openai") to an APIKey.
func APIKeyFromServiceName(name string) (APIKey, error) {
	for _, k := range AllAPIKeys() {
		if k.DisplayName() == name {
			return k, nil
		}
	}

	return "", fmt.Errorf("unknown service: %s", name)
}
