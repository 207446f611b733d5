// Package console provides an interactive line-editing library for terminal
// programs: a readline-like experience without history, built around a
// text-layout engine that wraps input across terminal rows and repaints only
// what changed.
//
// Key Features:
//
//   - Single-line, delimiter-multiline, and line-continuation input modes
//   - Multi-line prompts and continuation prompts
//   - Wide-character aware layout (CJK, emoji, combined UTF-16 pairs)
//   - Masked (password-style) input
//   - Programmatic input injection and a termination sentinel
//   - Key and text validation hooks, including nested reads from a hook
//   - Background output interleaved safely with an in-progress edit
//   - Context support for cancellation
//
// Quick Start:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//
//		"github.com/termio/console"
//	)
//
//	func main() {
//		c, err := console.New()
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer c.Close()
//
//		res := c.ReadLine(context.Background(), console.WithPrompt("$ "))
//		if res.Status == console.ReadSuccess {
//			fmt.Printf("You entered: %s\n", res.Text)
//		}
//	}
//
// Multi-line Input:
//
// Two modes collect input across several lines. With a delimiter token,
// input continues while the token count is odd, like a triple-quoted string:
//
//	res := c.ReadLine(ctx,
//		console.WithPrompt(">>> "),
//		console.WithContinuationPrompt("... "),
//		console.WithDelimiter(`"""`),
//	)
//
// With a continuation rune, a line ending in it continues on the next line
// and the runes are stripped from the assembled result:
//
//	res := c.ReadLine(ctx, console.WithLineContinuation('\\'))
//
// Results:
//
// Every read produces exactly one of three statuses rather than an error:
//
//   - console.ReadSuccess: Enter completed the input; Text holds the string
//   - console.ReadCanceled: Ctrl+C, or Escape with WithCancelOnEscape
//   - console.ReadTerminated: context canceled, InjectTerminate, or Close
//
// Background Output:
//
// Other goroutines may call WriteLine while a read is in progress. The text
// is printed above the edit region and the region is redrawn below it:
//
//	go func() {
//		for msg := range logCh {
//			c.WriteLine(msg)
//		}
//	}()
//
// Thread Safety:
//
// A single edit loop applies key events sequentially; WriteLine, InjectInput,
// and InjectTerminate are safe from any goroutine. A key hook may call
// ReadLine recursively to open a sub-prompt; the nested read owns the
// terminal until it completes.
//
// Resource Management:
//
// Always call Close when done to restore the terminal:
//
//	c, err := console.New()
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//
// Close is safe to call multiple times.
package console
