package main

import (
	"fmt"
	"os"

	"github.com/godilite/feedback-report/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "feedback: %v\n", err)
		os.Exit(1)
	}
}
