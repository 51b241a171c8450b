package sigserlic

import (
	"time"

	"github.com/deadbaed/sigserlic/internal/signify"
)

// KeyIDSize is the length of a key identifier in bytes.
const KeyIDSize = signify.KeyNumberSize

// KeyID is an opaque fixed-size identifier derived from a key's public
// material. It is not secret: it exists for diagnostics and to detect
// whether a signature was produced by a specific key.
type KeyID [KeyIDSize]byte

func (id KeyID) String() string {
	return signify.KeyNumber(id).String()
}

// KeyUsage states what a key is for.
type KeyUsage string

const (
	// KeyUsageSigning generates signatures.
	KeyUsageSigning KeyUsage = "signing"
	// KeyUsageVerifying verifies signatures.
	KeyUsageVerifying KeyUsage = "verifying"
)

// KeyMetadata is the information available to identify a key,
// implemented by both SigningKey and PublicKey.
type KeyMetadata[C any] interface {
	// CreatedAt reports when the key was generated.
	CreatedAt() time.Time
	// ExpiredAt reports when the key is supposed to expire, if declared.
	ExpiredAt() (time.Time, bool)
	// KeyID reports the identifier of the key pair.
	KeyID() KeyID
	// Comment reports the untrusted comment attached to the key, if any.
	Comment() (C, bool)
	// Usage reports the purpose of the key.
	Usage() KeyUsage
}

// Signer is the signing half of a key pair, independent of its comment
// type. It is implemented by SigningKey.
type Signer interface {
	KeyID() KeyID

	// signMessage produces a signature blob over message.
	signMessage(message []byte) []byte
}

// Verifier is the verifying half of a key pair, independent of its
// comment type. It is implemented by PublicKey.
type Verifier interface {
	KeyID() KeyID

	// verifyMessage checks a signature blob over message.
	verifyMessage(message, blob []byte) error
}
