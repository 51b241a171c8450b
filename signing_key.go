package sigserlic

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deadbaed/sigserlic/internal/signify"
	"github.com/fxamacker/cbor/v2"
)

// SigningKey has the capability of signing data, producing a Signature
// which can be verified by the PublicKey derived from it. C is the type
// of the untrusted comment carried in the key metadata.
//
// The secret material is owned exclusively by the key and is never
// exposed except to the sign operation.
type SigningKey[C any] struct {
	secret signify.PrivateKey
	meta   metadata[C]
}

// Generate creates a new signing key from the operating system's secure
// random source. An error indicates an unusable execution environment
// and is not recoverable.
func Generate[C any]() (SigningKey[C], error) {
	secret, err := signify.Generate()
	if err != nil {
		return SigningKey[C]{}, fmt.Errorf("generate signing key: %w", err)
	}
	return SigningKey[C]{secret: secret, meta: newMetadata[C]()}, nil
}

// WithComment returns a copy of the key with the comment replaced. The
// comment is advisory and never signed.
func (k SigningKey[C]) WithComment(comment C) SigningKey[C] {
	k.meta = k.meta.withComment(comment)
	return k
}

// WithExpiration returns a copy of the key declaring when it is
// supposed to expire, from unix seconds. The expiration is
// informational: it is not checked against created_at and takes no part
// in signing.
func (k SigningKey[C]) WithExpiration(unix int64) (SigningKey[C], error) {
	meta, err := k.meta.withExpiration(unix)
	if err != nil {
		return SigningKey[C]{}, err
	}
	k.meta = meta
	return k, nil
}

// Public derives the verifying half of the key pair. The derivation is
// one-way and total; the metadata is carried over as a value copy.
func (k SigningKey[C]) Public() PublicKey[C] {
	return PublicKey[C]{public: k.secret.Public(), meta: k.meta.clone()}
}

// Sign consumes a builder with this key, producing a Signature. It is
// shorthand for builder.Sign(key).
func Sign[M, C, KC any](key SigningKey[KC], builder SignatureBuilder[M, C]) (Signature[M, C], error) {
	return builder.Sign(key)
}

// CreatedAt reports when the key was generated.
func (k SigningKey[C]) CreatedAt() time.Time { return k.meta.createdAt }

// ExpiredAt reports when the key is supposed to expire, if declared.
func (k SigningKey[C]) ExpiredAt() (time.Time, bool) {
	if k.meta.expiredAt == nil {
		return time.Time{}, false
	}
	return *k.meta.expiredAt, true
}

// KeyID reports the identifier of the key pair.
func (k SigningKey[C]) KeyID() KeyID {
	return KeyID(k.secret.KeyNumber())
}

// Comment reports the untrusted comment attached to the key, if any.
func (k SigningKey[C]) Comment() (C, bool) {
	if k.meta.comment == nil {
		var zero C
		return zero, false
	}
	return *k.meta.comment, true
}

// Usage reports the purpose of the key.
func (k SigningKey[C]) Usage() KeyUsage { return KeyUsageSigning }

// signMessage implements Signer.
func (k SigningKey[C]) signMessage(message []byte) []byte {
	return k.secret.Sign(message).Bytes()
}

// String renders the key for diagnostics without leaking the secret
// material.
func (k SigningKey[C]) String() string {
	return fmt.Sprintf("SigningKey{id: %s, secret_key: <secret>, created_at: %s}",
		k.KeyID(), formatTimestamp(k.meta.createdAt))
}

// signingKeyRecord is the serialized form: opaque key material next to
// the flattened metadata fields. expired_at stays visible as an
// explicit null when unset; comment is omitted entirely.
type signingKeyRecord[C any] struct {
	SecretKey string  `json:"secret_key" cbor:"secret_key"`
	CreatedAt string  `json:"created_at" cbor:"created_at"`
	ExpiredAt *string `json:"expired_at" cbor:"expired_at"`
	Comment   *C      `json:"comment,omitempty" cbor:"comment,omitempty"`
}

func (k SigningKey[C]) record() signingKeyRecord[C] {
	return signingKeyRecord[C]{
		SecretKey: base64.StdEncoding.EncodeToString(k.secret.Bytes()),
		CreatedAt: formatTimestamp(k.meta.createdAt),
		ExpiredAt: optionalTimestampText(k.meta.expiredAt),
		Comment:   k.meta.comment,
	}
}

func (k *SigningKey[C]) fromRecord(record signingKeyRecord[C]) error {
	blob, err := base64.StdEncoding.DecodeString(record.SecretKey)
	if err != nil {
		return fmt.Errorf("decode secret key: %w", err)
	}
	secret, err := signify.ParsePrivateKey(blob)
	if err != nil {
		return fmt.Errorf("decode secret key: %w", err)
	}
	createdAt, err := parseTimestampText(record.CreatedAt)
	if err != nil {
		return err
	}
	expiredAt, err := parseOptionalTimestampText(record.ExpiredAt)
	if err != nil {
		return err
	}
	k.secret = secret
	k.meta = metadata[C]{createdAt: createdAt, expiredAt: expiredAt, comment: record.Comment}
	return nil
}

func (k SigningKey[C]) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.record())
}

func (k *SigningKey[C]) UnmarshalJSON(data []byte) error {
	var record signingKeyRecord[C]
	if err := decodeJSON(data, &record); err != nil {
		return err
	}
	return k.fromRecord(record)
}

func (k SigningKey[C]) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(k.record())
}

func (k *SigningKey[C]) UnmarshalCBOR(data []byte) error {
	var record signingKeyRecord[C]
	if err := cbor.Unmarshal(data, &record); err != nil {
		return err
	}
	return k.fromRecord(record)
}
