package sigserlic

import (
	"encoding/json"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Message is the exact structure that gets signed: the payload, the
// timestamp the signature was made with, and an optional expiration.
// Its canonical binary encoding is the cryptographic signing input.
type Message[T any] struct {
	data       T
	timestamp  time.Time
	expiration *time.Time
}

// Data returns the signed payload.
func (m Message[T]) Data() T { return m.data }

// Timestamp reports when the message was signed.
func (m Message[T]) Timestamp() time.Time { return m.timestamp }

// Expiration reports when the signature is supposed to expire, if set.
func (m Message[T]) Expiration() (time.Time, bool) {
	if m.expiration == nil {
		return time.Time{}, false
	}
	return *m.expiration, true
}

// messageRecord is the wire form of a Message. Unlike key metadata, the
// expiration is omitted entirely when unset.
type messageRecord[T any] struct {
	Data       T       `json:"data" cbor:"data"`
	Timestamp  string  `json:"timestamp" cbor:"timestamp"`
	Expiration *string `json:"expiration,omitempty" cbor:"expiration,omitempty"`
}

func (m Message[T]) record() messageRecord[T] {
	return messageRecord[T]{
		Data:       m.data,
		Timestamp:  formatTimestamp(m.timestamp),
		Expiration: optionalTimestampText(m.expiration),
	}
}

func (m *Message[T]) fromRecord(record messageRecord[T]) error {
	timestamp, err := parseTimestampText(record.Timestamp)
	if err != nil {
		return err
	}
	expiration, err := parseOptionalTimestampText(record.Expiration)
	if err != nil {
		return err
	}
	m.data = record.Data
	m.timestamp = timestamp
	m.expiration = expiration
	return nil
}

// canonicalBytes derives the signing input. The derivation must stay
// byte-identical between the signing and verifying sides.
func (m Message[T]) canonicalBytes() ([]byte, error) {
	return encodeCanonical(m.record())
}

func (m Message[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.record())
}

func (m *Message[T]) UnmarshalJSON(data []byte) error {
	var record messageRecord[T]
	if err := decodeJSON(data, &record); err != nil {
		return err
	}
	return m.fromRecord(record)
}

func (m Message[T]) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(m.record())
}

func (m *Message[T]) UnmarshalCBOR(data []byte) error {
	var record messageRecord[T]
	if err := cbor.Unmarshal(data, &record); err != nil {
		return err
	}
	return m.fromRecord(record)
}
