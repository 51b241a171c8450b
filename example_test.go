package sigserlic_test

import (
	"fmt"

	"github.com/deadbaed/sigserlic"
)

type recipe struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
}

func ExampleSignatureBuilder_Sign() {
	key, err := sigserlic.Generate[string]()
	if err != nil {
		panic(err)
	}

	builder, err := sigserlic.NewSignatureBuilder[recipe, string](recipe{
		Name:        "pain au chocolat",
		Ingredients: []string{"flour", "butter", "chocolate"},
	}).Timestamp(1700000000)
	if err != nil {
		panic(err)
	}

	signature, err := builder.Sign(key)
	if err != nil {
		panic(err)
	}

	message, err := signature.Verify(key.Public())
	if err != nil {
		panic(err)
	}

	fmt.Println(message.Data().Name)
	fmt.Println(message.Timestamp().Unix())
	// Output:
	// pain au chocolat
	// 1700000000
}

func ExampleSigningKey_WithComment() {
	key, err := sigserlic.Generate[string]()
	if err != nil {
		panic(err)
	}
	key = key.WithComment("deploy key for staging")

	comment, _ := key.Comment()
	fmt.Println(comment)
	fmt.Println(key.Usage())
	// Output:
	// deploy key for staging
	// signing
}
