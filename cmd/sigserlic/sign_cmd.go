package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/deadbaed/sigserlic"
)

func runSign(args []string) int {
	fs := flag.NewFlagSet("sign", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var keyPath string
	var inPath string
	var timestamp int64
	var expires int64
	var comment string
	var outPath string

	fs.StringVar(&keyPath, "key", "", "signing key JSON path")
	fs.StringVar(&inPath, "in", "", "payload JSON path")
	fs.Int64Var(&timestamp, "timestamp", 0, "signature timestamp (unix seconds, default now)")
	fs.Int64Var(&expires, "expires", 0, "signature expiration (unix seconds)")
	fs.StringVar(&comment, "comment", "", "untrusted comment attached to the signature")
	fs.StringVar(&outPath, "out", "", "output signature path (default stdout)")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if keyPath == "" || inPath == "" {
		fmt.Fprintln(os.Stderr, "sign requires --key and --in")
		return 1
	}

	key, err := loadSigningKey(keyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load key: %v\n", err)
		return 1
	}

	payload, err := readPayload(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read payload: %v\n", err)
		return 1
	}

	builder := sigserlic.NewSignatureBuilder[any, string](payload)
	if timestamp != 0 {
		builder, err = builder.Timestamp(timestamp)
		if err != nil {
			fmt.Fprintf(os.Stderr, "set timestamp: %v\n", err)
			return 1
		}
	}
	if expires != 0 {
		builder, err = builder.Expiration(expires)
		if err != nil {
			fmt.Fprintf(os.Stderr, "set expiration: %v\n", err)
			return 1
		}
	}
	if comment != "" {
		builder = builder.Comment(comment)
	}

	signature, err := builder.Sign(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sign payload: %v\n", err)
		return 1
	}

	out, err := json.Marshal(signature)
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal signature: %v\n", err)
		return 1
	}
	if err := writeOutput(outPath, out); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		return 1
	}
	return 0
}

// readPayload decodes an arbitrary JSON document while keeping numbers
// as json.Number, so the bytes signed here match the bytes a verifier
// derives after decoding the signature from its wire form.
func readPayload(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}
