// Package main demonstrates the two multi-line input modes: triple-quote
// delimiter input and backslash line continuation.
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

	fmt.Println("Multi-line Input Example")
	fmt.Println(`Open a block with """ and close it with another """,`)
	fmt.Println(`or end a line with \ to continue it on the next line.`)
	fmt.Println()

	res := c.ReadLine(context.Background(),
		console.WithPrompt("sql> "),
		console.WithContinuationPrompt("  -> "),
		console.WithDelimiter(`"""`),
		console.WithLineContinuation('\\'),
	)
	if res.Status != console.ReadSuccess {
		return
	}

	fmt.Println("--- input ---")
	fmt.Println(res.Text)
}
