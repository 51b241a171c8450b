package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/deadbaed/sigserlic"
)

func runKeygen(args []string) int {
	fs := flag.NewFlagSet("keygen", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var comment string
	var expires int64
	var outPath string

	fs.StringVar(&comment, "comment", "", "untrusted comment attached to the key")
	fs.Int64Var(&expires, "expires", 0, "key expiration (unix seconds)")
	fs.StringVar(&outPath, "out", "", "output key path (default stdout)")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	key, err := sigserlic.Generate[string]()
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate key: %v\n", err)
		return 1
	}
	if comment != "" {
		key = key.WithComment(comment)
	}
	if expires != 0 {
		key, err = key.WithExpiration(expires)
		if err != nil {
			fmt.Fprintf(os.Stderr, "set expiration: %v\n", err)
			return 1
		}
	}

	payload, err := json.Marshal(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal key: %v\n", err)
		return 1
	}
	if err := writeOutput(outPath, payload); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		return 1
	}
	fmt.Fprintf(os.Stderr, "generated key %s\n", key.KeyID())
	return 0
}

func runPubkey(args []string) int {
	fs := flag.NewFlagSet("pubkey", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var keyPath string
	var outPath string

	fs.StringVar(&keyPath, "key", "", "signing key JSON path")
	fs.StringVar(&outPath, "out", "", "output public key path (default stdout)")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if keyPath == "" {
		fmt.Fprintln(os.Stderr, "pubkey requires --key")
		return 1
	}

	key, err := loadSigningKey(keyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load key: %v\n", err)
		return 1
	}

	payload, err := json.Marshal(key.Public())
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal public key: %v\n", err)
		return 1
	}
	if err := writeOutput(outPath, payload); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		return 1
	}
	return 0
}

func loadSigningKey(path string) (sigserlic.SigningKey[string], error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return sigserlic.SigningKey[string]{}, err
	}
	var key sigserlic.SigningKey[string]
	if err := json.Unmarshal(raw, &key); err != nil {
		return sigserlic.SigningKey[string]{}, err
	}
	return key, nil
}
