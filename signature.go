package sigserlic

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Signature packages a signed Message with the base64 encoded signature
// over its canonical bytes and an untrusted comment. It is produced
// once by SignatureBuilder.Sign and immutable afterwards.
type Signature[T, C any] struct {
	signedArtifact Message[T]
	signature      string
	comment        *C
}

// Comment reports the untrusted comment riding along with the
// signature, if any. It must never back an authorization decision.
func (s Signature[T, C]) Comment() (C, bool) {
	if s.comment == nil {
		var zero C
		return zero, false
	}
	return *s.comment, true
}

// Verify checks the signature against a public key and, on success,
// releases the inner Message to the caller. Verification is binary:
// failures are reported as ErrMalformedSignature, ErrKeyMismatch or
// ErrVerificationFailed, never softened.
func (s Signature[T, C]) Verify(key Verifier) (Message[T], error) {
	blob, err := base64.StdEncoding.DecodeString(s.signature)
	if err != nil {
		return Message[T]{}, fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}
	canonical, err := s.signedArtifact.canonicalBytes()
	if err != nil {
		return Message[T]{}, err
	}
	if err := key.verifyMessage(canonical, blob); err != nil {
		return Message[T]{}, err
	}
	return s.signedArtifact, nil
}

// signatureRecord is the wire form of a Signature.
type signatureRecord[T, C any] struct {
	SignedArtifact messageRecord[T] `json:"signed_artifact" cbor:"signed_artifact"`
	Signature      string           `json:"signature" cbor:"signature"`
	Comment        *C               `json:"comment,omitempty" cbor:"comment,omitempty"`
}

func (s Signature[T, C]) record() signatureRecord[T, C] {
	return signatureRecord[T, C]{
		SignedArtifact: s.signedArtifact.record(),
		Signature:      s.signature,
		Comment:        s.comment,
	}
}

func (s *Signature[T, C]) fromRecord(record signatureRecord[T, C]) error {
	var artifact Message[T]
	if err := artifact.fromRecord(record.SignedArtifact); err != nil {
		return err
	}
	s.signedArtifact = artifact
	s.signature = record.Signature
	s.comment = record.Comment
	return nil
}

func (s Signature[T, C]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.record())
}

func (s *Signature[T, C]) UnmarshalJSON(data []byte) error {
	var record signatureRecord[T, C]
	if err := decodeJSON(data, &record); err != nil {
		return err
	}
	return s.fromRecord(record)
}

func (s Signature[T, C]) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(s.record())
}

func (s *Signature[T, C]) UnmarshalCBOR(data []byte) error {
	var record signatureRecord[T, C]
	if err := cbor.Unmarshal(data, &record); err != nil {
		return err
	}
	return s.fromRecord(record)
}
