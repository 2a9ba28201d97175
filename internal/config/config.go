// Package config loads application configuration from environment variables
// and resolves object-storage credentials from an ordered list of sources.
package config

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Environment variables for the credential sources, in resolution order.
const (
	EnvCredentialsB64 = "STORAGE_CREDENTIALS_B64"
	EnvCredentials    = "STORAGE_CREDENTIALS"
	EnvKeyDir         = "STORAGE_KEY_DIR"
)

// ErrNoCredentials is returned when none of the credential sources is set.
var ErrNoCredentials = errors.New("no storage credentials configured")

// Credentials is the service-account document for the storage backend.
type Credentials struct {
	Endpoint  string `json:"endpoint"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
	UseSSL    bool   `json:"use_ssl"`
}

// Config holds all runtime configuration for the service.
type Config struct {
	Port   string
	AppEnv string

	// Object storage (S3-compatible: MinIO locally, any S3 provider in production)
	StorageBucket     string
	StoragePublicBase string // browser-accessible base URL, e.g. "http://localhost:9000/class-files"
	KeyDir            string

	// Credentials resolved at startup. CredentialsErr is kept instead of
	// failing hard: the server still starts and storage endpoints answer
	// with a configuration error.
	Credentials    *Credentials
	CredentialsErr error
}

// Load reads configuration from a .env file (if present) and environment
// variables, then resolves storage credentials.
func Load(log logrus.FieldLogger) *Config {
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, reading from environment")
	}

	cfg := &Config{
		Port:   getEnv("PORT", "8080"),
		AppEnv: getEnv("APP_ENV", "development"),

		StorageBucket:     getEnv("STORAGE_BUCKET", "class-files"),
		StoragePublicBase: getEnv("STORAGE_PUBLIC_BASE", "http://localhost:9000/class-files"),
		KeyDir:            getEnv(EnvKeyDir, "./secrets"),
	}

	cfg.Credentials, cfg.CredentialsErr = ResolveCredentials(cfg.KeyDir)
	return cfg
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// HasCredentials reports whether storage credentials were resolved.
func (c *Config) HasCredentials() bool {
	return c.Credentials != nil
}

// ResolveCredentials tries each credential source in order and returns the
// first that succeeds:
//
//  1. base64-encoded JSON in STORAGE_CREDENTIALS_B64
//  2. raw JSON in STORAGE_CREDENTIALS
//  3. the first *.json key file in keyDir
//
// A source that is present but malformed is an error, not a fall-through:
// silently skipping a broken credential document would mask typos.
func ResolveCredentials(keyDir string) (*Credentials, error) {
	if raw := os.Getenv(EnvCredentialsB64); raw != "" {
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", EnvCredentialsB64, err)
		}
		return parseCredentials(decoded, EnvCredentialsB64)
	}

	if raw := os.Getenv(EnvCredentials); raw != "" {
		return parseCredentials([]byte(raw), EnvCredentials)
	}

	matches, err := filepath.Glob(filepath.Join(keyDir, "*.json"))
	if err == nil && len(matches) > 0 {
		sort.Strings(matches)
		data, err := os.ReadFile(matches[0])
		if err != nil {
			return nil, fmt.Errorf("read key file %s: %w", matches[0], err)
		}
		return parseCredentials(data, matches[0])
	}

	return nil, ErrNoCredentials
}

// SourceStatus reports which credential sources are present. Used by the
// environment-diagnostics endpoint; lengths are exposed instead of values so
// nothing secret leaks.
type SourceStatus struct {
	B64EnvSet    bool   `json:"b64_env_set"`
	B64EnvLength int    `json:"b64_env_length"`
	RawEnvSet    bool   `json:"raw_env_set"`
	RawEnvLength int    `json:"raw_env_length"`
	KeyDir       string `json:"key_dir"`
	KeyFileFound bool   `json:"key_file_found"`
}

// Sources inspects the credential sources without parsing them.
func Sources(keyDir string) SourceStatus {
	b64 := os.Getenv(EnvCredentialsB64)
	raw := os.Getenv(EnvCredentials)
	matches, _ := filepath.Glob(filepath.Join(keyDir, "*.json"))
	return SourceStatus{
		B64EnvSet:    b64 != "",
		B64EnvLength: len(b64),
		RawEnvSet:    raw != "",
		RawEnvLength: len(raw),
		KeyDir:       keyDir,
		KeyFileFound: len(matches) > 0,
	}
}

func parseCredentials(data []byte, source string) (*Credentials, error) {
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials from %s: %w", source, err)
	}
	if creds.Endpoint == "" || creds.AccessKey == "" || creds.SecretKey == "" {
		return nil, fmt.Errorf("credentials from %s are incomplete (need endpoint, access_key, secret_key)", source)
	}
	return &creds, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
