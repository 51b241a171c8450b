package signify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	key, err := Generate()
	require.NoError(t, err)

	message := []byte("toto mange du gateau")
	sig := key.Sign(message)

	require.NoError(t, key.Public().Verify(message, sig))
	assert.Equal(t, key.KeyNumber(), sig.KeyNumber())
}

func TestVerifyTamperedMessage(t *testing.T) {
	key, err := Generate()
	require.NoError(t, err)

	sig := key.Sign([]byte("toto mange du gateau"))

	err = key.Public().Verify([]byte("toto mange du Gateau"), sig)
	require.ErrorIs(t, err, ErrUntrustedSignature)
}

func TestVerifyOtherKey(t *testing.T) {
	alice, err := Generate()
	require.NoError(t, err)
	bob, err := Generate()
	require.NoError(t, err)

	message := []byte("toto mange du gateau")
	sig := alice.Sign(message)

	err = bob.Public().Verify(message, sig)
	require.ErrorIs(t, err, ErrKeyMismatch)
}

func TestPrivateKeyRoundTrip(t *testing.T) {
	key, err := Generate()
	require.NoError(t, err)

	parsed, err := ParsePrivateKey(key.Bytes())
	require.NoError(t, err)
	assert.Equal(t, key.KeyNumber(), parsed.KeyNumber())

	message := []byte("round trip")
	require.NoError(t, parsed.Public().Verify(message, key.Sign(message)))
}

func TestPublicKeyRoundTrip(t *testing.T) {
	key, err := Generate()
	require.NoError(t, err)

	parsed, err := ParsePublicKey(key.Public().Bytes())
	require.NoError(t, err)
	assert.Equal(t, key.KeyNumber(), parsed.KeyNumber())
}

func TestSignatureRoundTrip(t *testing.T) {
	key, err := Generate()
	require.NoError(t, err)

	message := []byte("round trip")
	sig := key.Sign(message)

	parsed, err := ParseSignature(sig.Bytes())
	require.NoError(t, err)
	require.NoError(t, key.Public().Verify(message, parsed))
}

func TestParseRejectsMalformedBlobs(t *testing.T) {
	key, err := Generate()
	require.NoError(t, err)

	_, err = ParsePrivateKey([]byte("XXgarbage"))
	assert.ErrorIs(t, err, ErrMalformedKey)

	_, err = ParsePrivateKey(key.Bytes()[:10])
	assert.ErrorIs(t, err, ErrMalformedKey)

	_, err = ParsePublicKey(key.Bytes())
	assert.ErrorIs(t, err, ErrMalformedKey)

	_, err = ParseSignature([]byte("Edshort"))
	assert.ErrorIs(t, err, ErrMalformedSignature)

	_, err = ParseSignature(nil)
	assert.ErrorIs(t, err, ErrMalformedSignature)
}
