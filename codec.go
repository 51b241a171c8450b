package sigserlic

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// The bytes that get signed use a single deterministic binary encoding
// (core deterministic CBOR: definite lengths, sorted keys, shortest
// forms), shared by the signing and verifying paths. Transported
// envelopes may travel as JSON or CBOR; the signing bytes never depend
// on the transport format and are never exposed to callers.
var canonicalMode = func() cbor.EncMode {
	mode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("canonical cbor mode: %v", err))
	}
	return mode
}()

func encodeCanonical(v any) ([]byte, error) {
	encoded, err := canonicalMode.Marshal(v)
	if err != nil {
		return nil, &EncodingError{cause: err}
	}
	return encoded, nil
}

// decodeJSON decodes like json.Unmarshal but keeps numbers as
// json.Number when the target is untyped. Both sides of a signature
// must decode payloads identically for the canonical bytes to match,
// so every Unmarshal entry point in the package goes through here.
func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(new(any)); !errors.Is(err, io.EOF) {
		return errors.New("trailing data after JSON value")
	}
	return nil
}
