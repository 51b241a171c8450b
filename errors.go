package sigserlic

import (
	"errors"
	"fmt"
	"time"
)

// Failures surfaced by Signature.Verify. They are returned as typed
// results and never retried internally; retry is caller policy.
var (
	// ErrMalformedSignature means the stored signature text is not a
	// validly encoded signature blob.
	ErrMalformedSignature = errors.New("malformed signature encoding")

	// ErrKeyMismatch means the signature was produced by a key other
	// than the one presented for verification.
	ErrKeyMismatch = errors.New("signature was produced by a different key")

	// ErrVerificationFailed means the cryptographic check failed.
	ErrVerificationFailed = errors.New("signature verification failed")
)

// TimestampError reports an integer or text value that could not be
// interpreted as a valid timestamp. The caller can fix the input and
// retry.
type TimestampError struct {
	Unix  int64
	Text  string
	cause error
}

func (e *TimestampError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("failed to parse timestamp %q: %v", e.Text, e.cause)
	}
	return fmt.Sprintf("failed to parse timestamp %d: %v", e.Unix, e.cause)
}

func (e *TimestampError) Unwrap() error { return e.cause }

// PastExpirationError means the expiration set on a builder is earlier
// than the timestamp the message is signed with. The signature is never
// produced and the expiration is never clamped.
type PastExpirationError struct {
	// Timestamp the message was going to be signed with.
	Timestamp time.Time
	// Expiration requested for the signature.
	Expiration time.Time
}

func (e *PastExpirationError) Error() string {
	return fmt.Sprintf("expiration %s is before timestamp %s",
		formatTimestamp(e.Expiration), formatTimestamp(e.Timestamp))
}

// EncodingError means the canonical binary encoding of a message
// failed. It indicates a payload type the encoding scheme cannot
// represent and is not worth retrying.
type EncodingError struct {
	cause error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding message in binary format: %v", e.cause)
}

func (e *EncodingError) Unwrap() error { return e.cause }
