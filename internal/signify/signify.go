// Package signify is the asymmetric signing primitive behind sigserlic
// keys: Ed25519 key pairs and signatures framed the way OpenBSD signify
// frames them, with a short key number identifying the key pair. The
// key number travels inside every signature blob so verification can
// tell a signature made by another key apart from a corrupted one.
package signify

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

// KeyNumberSize is the length of the identifier derived from public key material.
const KeyNumberSize = 8

var algEd25519 = []byte("Ed")

var (
	ErrMalformedKey       = errors.New("malformed key material")
	ErrMalformedSignature = errors.New("malformed signature")
	ErrKeyMismatch        = errors.New("signature was produced by a different key")
	ErrUntrustedSignature = errors.New("signature verification failed")
)

// KeyNumber identifies a key pair. It is derived from public material
// and carries no secret information.
type KeyNumber [KeyNumberSize]byte

func (n KeyNumber) String() string {
	return hex.EncodeToString(n[:])
}

// PrivateKey is the secret half of a key pair.
type PrivateKey struct {
	key ed25519.PrivateKey
}

// PublicKey is the shareable half of a key pair.
type PublicKey struct {
	key ed25519.PublicKey
}

// Signature is a raw signature bound to the key number of the key that
// produced it.
type Signature struct {
	keyNumber KeyNumber
	raw       []byte
}

// Generate creates a key pair from the operating system's secure random
// source. An error means the environment has no usable randomness.
func Generate() (PrivateKey, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return PrivateKey{}, fmt.Errorf("generate ed25519 key: %w", err)
	}
	return PrivateKey{key: key}, nil
}

// Public derives the public half of the key pair. The derivation is
// one-way and deterministic.
func (k PrivateKey) Public() PublicKey {
	pub := k.key.Public().(ed25519.PublicKey)
	return PublicKey{key: append(ed25519.PublicKey(nil), pub...)}
}

// KeyNumber reports the identifier of the key pair.
func (k PrivateKey) KeyNumber() KeyNumber {
	return k.Public().KeyNumber()
}

// Sign produces a signature over message.
func (k PrivateKey) Sign(message []byte) Signature {
	return Signature{
		keyNumber: k.KeyNumber(),
		raw:       ed25519.Sign(k.key, message),
	}
}

// Bytes encodes the secret key material as a binary blob.
func (k PrivateKey) Bytes() []byte {
	blob := make([]byte, 0, len(algEd25519)+ed25519.PrivateKeySize)
	blob = append(blob, algEd25519...)
	return append(blob, k.key...)
}

// ParsePrivateKey decodes secret key material produced by PrivateKey.Bytes.
// A seed-only payload is accepted for keys imported from other tools.
func ParsePrivateKey(blob []byte) (PrivateKey, error) {
	payload, err := splitAlg(blob)
	if err != nil {
		return PrivateKey{}, err
	}
	switch len(payload) {
	case ed25519.SeedSize:
		return PrivateKey{key: ed25519.NewKeyFromSeed(payload)}, nil
	case ed25519.PrivateKeySize:
		return PrivateKey{key: append(ed25519.PrivateKey(nil), payload...)}, nil
	default:
		return PrivateKey{}, fmt.Errorf("%w: invalid secret key length %d", ErrMalformedKey, len(payload))
	}
}

// KeyNumber reports the identifier of the key pair, a prefix of the
// public material's SHA-256 digest.
func (k PublicKey) KeyNumber() KeyNumber {
	sum := sha256.Sum256(k.key)
	var n KeyNumber
	copy(n[:], sum[:KeyNumberSize])
	return n
}

// Verify checks signature over message. A key number mismatch is
// reported as ErrKeyMismatch before any cryptographic check runs.
func (k PublicKey) Verify(message []byte, signature Signature) error {
	if signature.keyNumber != k.KeyNumber() {
		return ErrKeyMismatch
	}
	if !ed25519.Verify(k.key, message, signature.raw) {
		return ErrUntrustedSignature
	}
	return nil
}

// Bytes encodes the public key material as a binary blob.
func (k PublicKey) Bytes() []byte {
	blob := make([]byte, 0, len(algEd25519)+ed25519.PublicKeySize)
	blob = append(blob, algEd25519...)
	return append(blob, k.key...)
}

// ParsePublicKey decodes public key material produced by PublicKey.Bytes.
func ParsePublicKey(blob []byte) (PublicKey, error) {
	payload, err := splitAlg(blob)
	if err != nil {
		return PublicKey{}, err
	}
	if len(payload) != ed25519.PublicKeySize {
		return PublicKey{}, fmt.Errorf("%w: invalid public key length %d", ErrMalformedKey, len(payload))
	}
	return PublicKey{key: append(ed25519.PublicKey(nil), payload...)}, nil
}

// KeyNumber reports the identifier of the key that produced the signature.
func (s Signature) KeyNumber() KeyNumber {
	return s.keyNumber
}

// Bytes encodes the signature as a binary blob: algorithm, key number,
// raw signature.
func (s Signature) Bytes() []byte {
	blob := make([]byte, 0, len(algEd25519)+KeyNumberSize+ed25519.SignatureSize)
	blob = append(blob, algEd25519...)
	blob = append(blob, s.keyNumber[:]...)
	return append(blob, s.raw...)
}

// ParseSignature decodes a signature blob produced by Signature.Bytes.
func ParseSignature(blob []byte) (Signature, error) {
	if !bytes.HasPrefix(blob, algEd25519) {
		return Signature{}, fmt.Errorf("%w: unknown algorithm", ErrMalformedSignature)
	}
	payload := blob[len(algEd25519):]
	if len(payload) != KeyNumberSize+ed25519.SignatureSize {
		return Signature{}, fmt.Errorf("%w: invalid signature length %d", ErrMalformedSignature, len(blob))
	}
	var sig Signature
	copy(sig.keyNumber[:], payload[:KeyNumberSize])
	sig.raw = append([]byte(nil), payload[KeyNumberSize:]...)
	return sig, nil
}

func splitAlg(blob []byte) ([]byte, error) {
	if !bytes.HasPrefix(blob, algEd25519) {
		return nil, fmt.Errorf("%w: unknown algorithm", ErrMalformedKey)
	}
	return blob[len(algEd25519):], nil
}
