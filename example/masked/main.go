// Package main demonstrates masked (password-style) input with a text hook
// that rejects short passphrases.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/termio/console"
)

func main() {
	c, err := console.New()
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()

	fmt.Println("Masked Input Example (Escape cancels)")

	res := c.ReadLine(context.Background(),
		console.WithPrompt("passphrase: "),
		console.WithMask('*'),
		console.WithCancelOnEscape(),
		console.WithAllowEmptyInput(false),
		console.WithTextHook(func(s string) (string, console.TextHookAction) {
			if len(s) < 8 {
				return s, console.TextReject
			}
			return s, console.TextAccept
		}),
	)
	switch res.Status {
	case console.ReadSuccess:
		fmt.Printf("accepted %d characters\n", len(res.Text))
	case console.ReadCanceled:
		fmt.Println("canceled")
	}
}
