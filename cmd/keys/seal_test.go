package keys

// Test index:
//  1. TestSealKey seals a live key that opens back to the input.
//  2. TestSealKeyDemo names the demo variable.
//  3. TestSealKeyRejectsEmptyInput refuses blank stdin.
//  4. TestSealKeyRequiresCredentialsKey refuses to seal without EXCHANGE_CREDENTIALS_KEY.

import (
	"bytes"
	"strings"
	"testing"

	"trading212/src/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCredentialsKey = "PnC7rXZFJyrI40LE/SUBTfhrPuF/atTZszSlegEHx/w="

func TestSealKey(t *testing.T) {
	t.Setenv("EXCHANGE_CREDENTIALS_KEY", testCredentialsKey)
	var out bytes.Buffer

	require.NoError(t, SealKey(strings.NewReader("  my-api-key \n"), &out, false))

	line := strings.TrimSpace(out.String())
	require.True(t, strings.HasPrefix(line, "T212_API_KEY_SEALED="))

	plain, err := security.DecryptString(strings.TrimPrefix(line, "T212_API_KEY_SEALED="))
	require.NoError(t, err)
	assert.Equal(t, "my-api-key", plain)
}

func TestSealKeyDemo(t *testing.T) {
	t.Setenv("EXCHANGE_CREDENTIALS_KEY", testCredentialsKey)
	var out bytes.Buffer

	require.NoError(t, SealKey(strings.NewReader("demo-key\n"), &out, true))

	line := strings.TrimSpace(out.String())
	require.True(t, strings.HasPrefix(line, "T212_DEMO_API_KEY_SEALED="))

	plain, err := security.DecryptString(strings.TrimPrefix(line, "T212_DEMO_API_KEY_SEALED="))
	require.NoError(t, err)
	assert.Equal(t, "demo-key", plain)
}

func TestSealKeyRejectsEmptyInput(t *testing.T) {
	t.Setenv("EXCHANGE_CREDENTIALS_KEY", testCredentialsKey)
	var out bytes.Buffer

	assert.Error(t, SealKey(strings.NewReader(""), &out, false))
	assert.Error(t, SealKey(strings.NewReader("   \n"), &out, false))
	assert.Empty(t, out.String())
}

func TestSealKeyRequiresCredentialsKey(t *testing.T) {
	t.Setenv("EXCHANGE_CREDENTIALS_KEY", "")
	var out bytes.Buffer

	err := SealKey(strings.NewReader("my-api-key\n"), &out, false)
	assert.ErrorIs(t, err, security.ErrKeyNotConfigured)
	assert.Empty(t, out.String())
}
