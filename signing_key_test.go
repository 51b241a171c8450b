package sigserlic

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWithoutComment(t *testing.T) {
	key, err := Generate[struct{}]()
	require.NoError(t, err)

	_, hasComment := key.Comment()
	assert.False(t, hasComment)
	_, hasExpiration := key.ExpiredAt()
	assert.False(t, hasExpiration)
	assert.Equal(t, KeyUsageSigning, key.Usage())
	assert.False(t, key.CreatedAt().IsZero())
}

func TestGenerateWithPrimitiveComment(t *testing.T) {
	key, err := Generate[string]()
	require.NoError(t, err)
	key = key.WithComment("toto mange du gateau")

	comment, ok := key.Comment()
	require.True(t, ok)
	assert.Equal(t, "toto mange du gateau", comment)
}

func TestWithCommentDoesNotMutateOriginal(t *testing.T) {
	key, err := Generate[string]()
	require.NoError(t, err)

	commented := key.WithComment("later")
	_, ok := key.Comment()
	assert.False(t, ok)
	_, ok = commented.Comment()
	assert.True(t, ok)
	assert.Equal(t, key.KeyID(), commented.KeyID())
}

func TestWithExpiration(t *testing.T) {
	key, err := Generate[struct{}]()
	require.NoError(t, err)

	key, err = key.WithExpiration(1734885666)
	require.NoError(t, err)

	expiredAt, ok := key.ExpiredAt()
	require.True(t, ok)
	assert.Equal(t, "2024-12-22T16:41:06Z", formatTimestamp(expiredAt))
}

func TestWithExpirationOutOfRange(t *testing.T) {
	key, err := Generate[struct{}]()
	require.NoError(t, err)

	_, err = key.WithExpiration(1 << 60)
	var tsErr *TimestampError
	require.ErrorAs(t, err, &tsErr)
}

func TestSigningKeyJSONRoundTrip(t *testing.T) {
	type comment struct {
		Name    string `json:"name"`
		Age     int    `json:"age"`
		Awesome bool   `json:"awesome"`
	}

	key, err := Generate[comment]()
	require.NoError(t, err)
	key, err = key.WithExpiration(1750000000)
	require.NoError(t, err)
	key = key.WithComment(comment{Name: "Phil", Age: 24, Awesome: true})

	encoded, err := json.Marshal(key)
	require.NoError(t, err)

	var imported SigningKey[comment]
	require.NoError(t, json.Unmarshal(encoded, &imported))

	assert.Equal(t, key.KeyID(), imported.KeyID())
	assert.Equal(t, formatTimestamp(key.CreatedAt()), formatTimestamp(imported.CreatedAt()))
	gotExpiration, ok := imported.ExpiredAt()
	require.True(t, ok)
	assert.Equal(t, "2025-06-15T15:06:40Z", formatTimestamp(gotExpiration))
	gotComment, ok := imported.Comment()
	require.True(t, ok)
	assert.Equal(t, comment{Name: "Phil", Age: 24, Awesome: true}, gotComment)

	// Same key identity after the round trip.
	assert.Equal(t, key.Public().KeyID(), imported.Public().KeyID())
}

func TestSigningKeyCBORRoundTrip(t *testing.T) {
	key, err := Generate[string]()
	require.NoError(t, err)
	key = key.WithComment("testing key")

	encoded, err := cbor.Marshal(key)
	require.NoError(t, err)

	var imported SigningKey[string]
	require.NoError(t, cbor.Unmarshal(encoded, &imported))

	assert.Equal(t, key.KeyID(), imported.KeyID())
	gotComment, ok := imported.Comment()
	require.True(t, ok)
	assert.Equal(t, "testing key", gotComment)
}

func TestSigningKeyWireConventions(t *testing.T) {
	key, err := Generate[string]()
	require.NoError(t, err)

	encoded, err := json.Marshal(key)
	require.NoError(t, err)

	// expired_at stays visible as an explicit null, comment is omitted.
	assert.Contains(t, string(encoded), `"expired_at":null`)
	assert.NotContains(t, string(encoded), `"comment"`)
	assert.Contains(t, string(encoded), `"secret_key"`)
	assert.Contains(t, string(encoded), `"created_at"`)
}

func TestSigningKeyImportRejectsBadInput(t *testing.T) {
	const zeroKey = "RWQAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	cases := map[string]string{
		"bad base64":           `{"secret_key":"!!!","created_at":"2024-12-23T00:12:54Z","expired_at":null}`,
		"bad key material":     `{"secret_key":"AAAA","created_at":"2024-12-23T00:12:54Z","expired_at":null}`,
		"truncated material":   `{"secret_key":"RWQ=","created_at":"2024-12-23T00:12:54Z","expired_at":null}`,
		"missing created_at":   `{"secret_key":"` + zeroKey + `","expired_at":null}`,
		"unparsable expiry":    `{"secret_key":"` + zeroKey + `","created_at":"2024-12-23T00:12:54Z","expired_at":"garbage"}`,
		"unparsable timestamp": `{"secret_key":"` + zeroKey + `","created_at":"garbage","expired_at":null}`,
	}
	for name, input := range cases {
		var key SigningKey[string]
		err := json.Unmarshal([]byte(input), &key)
		assert.Error(t, err, name)
	}
}

func TestSigningKeyImportIgnoresUnknownFields(t *testing.T) {
	key, err := Generate[string]()
	require.NoError(t, err)
	encoded, err := json.Marshal(key)
	require.NoError(t, err)

	// Splice an unknown field into the serialized object.
	spliced := strings.Replace(string(encoded), `{"secret_key"`, `{"rotation_policy":"weekly","secret_key"`, 1)

	var imported SigningKey[string]
	require.NoError(t, json.Unmarshal([]byte(spliced), &imported))
	assert.Equal(t, key.KeyID(), imported.KeyID())
}

func TestSigningKeyStringDoesNotLeakSecret(t *testing.T) {
	key, err := Generate[struct{}]()
	require.NoError(t, err)

	rendered := key.String()
	assert.Contains(t, rendered, "<secret>")
	assert.Contains(t, rendered, key.KeyID().String())

	encoded, err := json.Marshal(key)
	require.NoError(t, err)
	var record map[string]any
	require.NoError(t, json.Unmarshal(encoded, &record))
	assert.NotContains(t, rendered, record["secret_key"])
}
