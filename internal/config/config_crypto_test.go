package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentumhq/momentum-lambda/internal/config"
)

const testKey = "01234567890123456789012345678901"

func TestInitCrypto(t *testing.T) {
	t.Run("ShortKey", func(t *testing.T) {
		os.Setenv("CRYPTO_KEY", "too-short")
		assert.Panics(t, func() { config.InitCrypto() })
	})

	t.Run("ValidKey", func(t *testing.T) {
		os.Setenv("CRYPTO_KEY", testKey)
		assert.NotPanics(t, func() { config.InitCrypto() })
	})
}

func TestEncryptDecrypt(t *testing.T) {
	os.Setenv("CRYPTO_KEY", testKey)
	config.InitCrypto()

	t.Run("RoundTrip", func(t *testing.T) {
		plaintext := "ya29.some-google-access-token"

		ciphertext, err := config.Encrypt(plaintext)
		require.NoError(t, err)

		decrypted, err := config.Decrypt(ciphertext)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)

		ciphertext2, err := config.Encrypt(plaintext)
		require.NoError(t, err)
		assert.NotEqual(t, ciphertext, ciphertext2, "nonce must randomize ciphertexts")
	})

	t.Run("EmptyText", func(t *testing.T) {
		ciphertext, err := config.Encrypt("")
		require.NoError(t, err)

		decrypted, err := config.Decrypt(ciphertext)
		require.NoError(t, err)
		assert.Equal(t, "", decrypted)
	})

	t.Run("TruncatedCiphertext", func(t *testing.T) {
		_, err := config.Decrypt("c2hvcnQ=")
		assert.Error(t, err)
	})

	t.Run("GarbageInput", func(t *testing.T) {
		_, err := config.Decrypt("not base64 at all!!!")
		assert.Error(t, err)
	})
}
