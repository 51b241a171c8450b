package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/deadbaed/sigserlic"
)

func runVerify(args []string) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var pubkeyPath string
	var inPath string
	var outPath string

	fs.StringVar(&pubkeyPath, "pubkey", "", "public key JSON path")
	fs.StringVar(&inPath, "in", "", "signature JSON path")
	fs.StringVar(&outPath, "out", "", "output payload path (default stdout)")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if pubkeyPath == "" || inPath == "" {
		fmt.Fprintln(os.Stderr, "verify requires --pubkey and --in")
		return 1
	}

	rawKey, err := os.ReadFile(pubkeyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read public key: %v\n", err)
		return 1
	}
	var pubkey sigserlic.PublicKey[string]
	if err := json.Unmarshal(rawKey, &pubkey); err != nil {
		fmt.Fprintf(os.Stderr, "decode public key: %v\n", err)
		return 1
	}

	rawSignature, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read signature: %v\n", err)
		return 1
	}
	var signature sigserlic.Signature[any, string]
	if err := json.Unmarshal(rawSignature, &signature); err != nil {
		fmt.Fprintf(os.Stderr, "decode signature: %v\n", err)
		return 1
	}

	message, err := signature.Verify(pubkey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "verify signature: %v\n", err)
		return 1
	}

	fmt.Fprintf(os.Stderr, "good signature from key %s, signed at %s\n",
		pubkey.KeyID(), message.Timestamp().Format(time.RFC3339))
	if expiration, ok := message.Expiration(); ok {
		fmt.Fprintf(os.Stderr, "signature expires at %s\n", expiration.Format(time.RFC3339))
	}

	out, err := json.Marshal(message.Data())
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal payload: %v\n", err)
		return 1
	}
	if err := writeOutput(outPath, out); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		return 1
	}
	return 0
}
