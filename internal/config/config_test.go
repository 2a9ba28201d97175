package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `{"endpoint":"localhost:9000","access_key":"ak","secret_key":"sk","use_ssl":false}`

func TestResolveCredentialsFromBase64Env(t *testing.T) {
	t.Setenv(EnvCredentialsB64, base64.StdEncoding.EncodeToString([]byte(validDoc)))
	t.Setenv(EnvCredentials, "")

	creds, err := ResolveCredentials(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", creds.Endpoint)
	assert.Equal(t, "ak", creds.AccessKey)
	assert.Equal(t, "sk", creds.SecretKey)
}

func TestResolveCredentialsFromRawEnv(t *testing.T) {
	t.Setenv(EnvCredentialsB64, "")
	t.Setenv(EnvCredentials, validDoc)

	creds, err := ResolveCredentials(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "ak", creds.AccessKey)
}

func TestResolveCredentialsBase64TakesPriority(t *testing.T) {
	b64Doc := `{"endpoint":"b64:9000","access_key":"b64","secret_key":"b64"}`
	t.Setenv(EnvCredentialsB64, base64.StdEncoding.EncodeToString([]byte(b64Doc)))
	t.Setenv(EnvCredentials, validDoc)

	creds, err := ResolveCredentials(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "b64", creds.AccessKey)
}

func TestResolveCredentialsFromKeyFile(t *testing.T) {
	t.Setenv(EnvCredentialsB64, "")
	t.Setenv(EnvCredentials, "")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "service-account.json"), []byte(validDoc), 0o600))

	creds, err := ResolveCredentials(dir)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", creds.Endpoint)
}

func TestResolveCredentialsMissingEverywhere(t *testing.T) {
	t.Setenv(EnvCredentialsB64, "")
	t.Setenv(EnvCredentials, "")

	creds, err := ResolveCredentials(t.TempDir())
	assert.Nil(t, creds)
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestResolveCredentialsMalformedIsAnError(t *testing.T) {
	t.Setenv(EnvCredentialsB64, "")
	t.Setenv(EnvCredentials, `{"endpoint": "broken`)

	_, err := ResolveCredentials(t.TempDir())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoCredentials, "a present but broken source must not fall through")
}

func TestResolveCredentialsIncompleteDocument(t *testing.T) {
	t.Setenv(EnvCredentialsB64, "")
	t.Setenv(EnvCredentials, `{"endpoint":"localhost:9000"}`)

	_, err := ResolveCredentials(t.TempDir())
	assert.Error(t, err)
}
