package sigserlic

import (
	"encoding/base64"
	"time"
)

// SignatureBuilder stages data waiting to be signed. M is the payload
// type, C the type of the untrusted comment attached to the produced
// Signature. Every setter returns an updated copy, so partially
// configured builders are never observable in an inconsistent state.
type SignatureBuilder[M, C any] struct {
	message M

	// When unset, the timestamp is resolved at sign time.
	timestamp *time.Time

	expiresAt *time.Time
	comment   *C
}

// NewSignatureBuilder starts a builder around the payload to be signed.
func NewSignatureBuilder[M, C any](message M) SignatureBuilder[M, C] {
	return SignatureBuilder[M, C]{message: message}
}

// Timestamp sets the moment the signature starts to be valid, from unix
// seconds. This timestamp will be signed with the message.
func (b SignatureBuilder[M, C]) Timestamp(unix int64) (SignatureBuilder[M, C], error) {
	ts, err := parseUnixTimestamp(unix)
	if err != nil {
		return SignatureBuilder[M, C]{}, err
	}
	b.timestamp = &ts
	return b, nil
}

// Expiration sets when the signature is supposed to expire, from unix
// seconds. If set, this timestamp will be signed with the message.
func (b SignatureBuilder[M, C]) Expiration(unix int64) (SignatureBuilder[M, C], error) {
	ts, err := parseUnixTimestamp(unix)
	if err != nil {
		return SignatureBuilder[M, C]{}, err
	}
	b.expiresAt = &ts
	return b, nil
}

// Comment attaches a comment to the produced Signature. The comment is
// not signed; see openbsd signify "untrusted comment".
func (b SignatureBuilder[M, C]) Comment(comment C) SignatureBuilder[M, C] {
	b.comment = &comment
	return b
}

// Sign consumes the builder to produce a Signature.
//
// The effective timestamp is the explicit one if set, otherwise the
// current time, resolved now rather than at builder construction. When
// an expiration is set it must not precede the effective timestamp;
// expiring at the exact signing instant is accepted. On any failure no
// partial Signature is produced.
func (b SignatureBuilder[M, C]) Sign(key Signer) (Signature[M, C], error) {
	timestamp := timeNow()
	if b.timestamp != nil {
		timestamp = *b.timestamp
	}
	if b.expiresAt != nil && b.expiresAt.Before(timestamp) {
		return Signature[M, C]{}, &PastExpirationError{
			Timestamp:  timestamp,
			Expiration: *b.expiresAt,
		}
	}

	message := Message[M]{
		data:       b.message,
		timestamp:  timestamp,
		expiration: b.expiresAt,
	}
	canonical, err := message.canonicalBytes()
	if err != nil {
		return Signature[M, C]{}, err
	}

	return Signature[M, C]{
		signedArtifact: message,
		signature:      base64.StdEncoding.EncodeToString(key.signMessage(canonical)),
		comment:        b.comment,
	}, nil
}
