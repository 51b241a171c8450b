// Package sigserlic attaches strongly typed application data to
// cryptographic signatures: the signify signing scheme combined with
// Go's serialization ecosystem.
//
// A SigningKey signs payloads staged in a SignatureBuilder, producing a
// Signature; the PublicKey derived from the SigningKey verifies it and
// releases the signed Message back to the caller. Keys and signatures
// carry metadata (creation time, optional expiration, free-form
// comment) that travels alongside the cryptographic payload but is
// never part of the signed bytes.
//
// Generate a key, sign a payload and verify it:
//
//	type Recipe struct {
//		Name string `json:"name"`
//		Age  int    `json:"age"`
//	}
//
//	key, err := sigserlic.Generate[string]()
//	if err != nil {
//		// no usable randomness on this host
//	}
//
//	builder := sigserlic.NewSignatureBuilder[Recipe, string](Recipe{Name: "Toto", Age: 42})
//	builder = builder.Comment("anybody can change me :)")
//	signature, err := builder.Sign(key)
//
//	message, err := signature.Verify(key.Public())
//	data := message.Data() // Recipe{Name: "Toto", Age: 42}
//
// Keys and signatures serialize to JSON or CBOR through the standard
// marshal interfaces; the bytes that get signed use a single
// deterministic binary encoding independent of the transport format.
package sigserlic
