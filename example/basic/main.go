// Package main demonstrates basic usage of the console library.
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

	fmt.Println("Basic Console Example")
	fmt.Println("Type 'exit' or 'quit' to exit, Ctrl+C to cancel")
	fmt.Println()

	for {
		res := c.ReadLine(context.Background(), console.WithPrompt(">>> "))
		switch res.Status {
		case console.ReadCanceled:
			fmt.Println("Goodbye!")
			return
		case console.ReadTerminated:
			return
		}

		if res.Text == "exit" || res.Text == "quit" {
			fmt.Println("Goodbye!")
			return
		}
		fmt.Printf("You typed: %s\n", res.Text)
	}
}
