// Package main demonstrates background writers and programmatic input
// injection running alongside an interactive read.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/termio/console"
)

func main() {
	c, err := console.New()
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()

	fmt.Println("Injection Example: log lines appear above the prompt;")
	fmt.Println("after 10 seconds the read is terminated programmatically.")
	fmt.Println()

	go func() {
		for i := 1; ; i++ {
			time.Sleep(2 * time.Second)
			c.WriteLine(fmt.Sprintf("[background] tick %d", i))
		}
	}()

	go func() {
		time.Sleep(10 * time.Second)
		if err := c.InjectTerminate(); err != nil {
			log.Printf("inject: %v", err)
		}
	}()

	for {
		res := c.ReadLine(context.Background(), console.WithPrompt("chat> "))
		switch res.Status {
		case console.ReadSuccess:
			c.WriteLine("you said: " + res.Text)
		case console.ReadCanceled:
			return
		case console.ReadTerminated:
			fmt.Println("terminated")
			return
		}
	}
}
