package sigserlic

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/deadbaed/sigserlic/internal/signify"
	"github.com/fxamacker/cbor/v2"
)

// PublicKey has the capability of verifying a Signature emitted by the
// SigningKey it was derived from. C is the type of the untrusted
// comment carried in the key metadata.
type PublicKey[C any] struct {
	public signify.PublicKey
	meta   metadata[C]
}

// CreatedAt reports when the key pair was generated.
func (k PublicKey[C]) CreatedAt() time.Time { return k.meta.createdAt }

// ExpiredAt reports when the key is supposed to expire, if declared.
func (k PublicKey[C]) ExpiredAt() (time.Time, bool) {
	if k.meta.expiredAt == nil {
		return time.Time{}, false
	}
	return *k.meta.expiredAt, true
}

// KeyID reports the identifier of the key pair.
func (k PublicKey[C]) KeyID() KeyID {
	return KeyID(k.public.KeyNumber())
}

// Comment reports the untrusted comment attached to the key, if any.
func (k PublicKey[C]) Comment() (C, bool) {
	if k.meta.comment == nil {
		var zero C
		return zero, false
	}
	return *k.meta.comment, true
}

// Usage reports the purpose of the key.
func (k PublicKey[C]) Usage() KeyUsage { return KeyUsageVerifying }

// verifyMessage implements Verifier. Failure reasons from the signing
// primitive are surfaced unchanged as this package's sentinels.
func (k PublicKey[C]) verifyMessage(message, blob []byte) error {
	sig, err := signify.ParseSignature(blob)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}
	if err := k.public.Verify(message, sig); err != nil {
		if errors.Is(err, signify.ErrKeyMismatch) {
			return ErrKeyMismatch
		}
		return ErrVerificationFailed
	}
	return nil
}

// publicKeyRecord is the serialized form: opaque key material next to
// the flattened metadata fields, same conventions as the signing key.
type publicKeyRecord[C any] struct {
	PublicKey string  `json:"public_key" cbor:"public_key"`
	CreatedAt string  `json:"created_at" cbor:"created_at"`
	ExpiredAt *string `json:"expired_at" cbor:"expired_at"`
	Comment   *C      `json:"comment,omitempty" cbor:"comment,omitempty"`
}

func (k PublicKey[C]) record() publicKeyRecord[C] {
	return publicKeyRecord[C]{
		PublicKey: base64.StdEncoding.EncodeToString(k.public.Bytes()),
		CreatedAt: formatTimestamp(k.meta.createdAt),
		ExpiredAt: optionalTimestampText(k.meta.expiredAt),
		Comment:   k.meta.comment,
	}
}

func (k *PublicKey[C]) fromRecord(record publicKeyRecord[C]) error {
	blob, err := base64.StdEncoding.DecodeString(record.PublicKey)
	if err != nil {
		return fmt.Errorf("decode public key: %w", err)
	}
	public, err := signify.ParsePublicKey(blob)
	if err != nil {
		return fmt.Errorf("decode public key: %w", err)
	}
	createdAt, err := parseTimestampText(record.CreatedAt)
	if err != nil {
		return err
	}
	expiredAt, err := parseOptionalTimestampText(record.ExpiredAt)
	if err != nil {
		return err
	}
	k.public = public
	k.meta = metadata[C]{createdAt: createdAt, expiredAt: expiredAt, comment: record.Comment}
	return nil
}

func (k PublicKey[C]) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.record())
}

func (k *PublicKey[C]) UnmarshalJSON(data []byte) error {
	var record publicKeyRecord[C]
	if err := decodeJSON(data, &record); err != nil {
		return err
	}
	return k.fromRecord(record)
}

func (k PublicKey[C]) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(k.record())
}

func (k *PublicKey[C]) UnmarshalCBOR(data []byte) error {
	var record publicKeyRecord[C]
	if err := cbor.Unmarshal(data, &record); err != nil {
		return err
	}
	return k.fromRecord(record)
}
