package main

import (
	"fmt"
	"os"
	"path/filepath"
)

func run(args []string) int {
	if len(args) < 2 {
		usage(args)
		return 1
	}

	switch args[1] {
	case "keygen":
		return runKeygen(args[2:])
	case "pubkey":
		return runPubkey(args[2:])
	case "sign":
		return runSign(args[2:])
	case "verify":
		return runVerify(args[2:])
	}

	usage(args)
	return 1
}

func usage(args []string) {
	name := "sigserlic"
	if len(args) > 0 && args[0] != "" {
		name = filepath.Base(args[0])
	}
	fmt.Fprintf(os.Stderr, "usage:\n")
	fmt.Fprintf(os.Stderr, "  %s keygen [--comment <text>] [--expires <unix>] [--out <key.json>]\n", name)
	fmt.Fprintf(os.Stderr, "  %s pubkey --key <key.json> [--out <pubkey.json>]\n", name)
	fmt.Fprintf(os.Stderr, "  %s sign --key <key.json> --in <payload.json> [--timestamp <unix>] [--expires <unix>] [--comment <text>] [--out <signature.json>]\n", name)
	fmt.Fprintf(os.Stderr, "  %s verify --pubkey <pubkey.json> --in <signature.json> [--out <payload.json>]\n", name)
}
