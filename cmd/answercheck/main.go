// Package main implements the entry point for the answercheck CLI, which
// evaluates free-text flashcard answers with an LLM provider and recommends
// a review difficulty rating.
package main

import (
	"os"

	"github.com/answercheck/answercheck/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
