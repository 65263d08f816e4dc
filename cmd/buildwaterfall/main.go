// Package main provides the entry point for the buildwaterfall CLI.
package main

import (
	"context"
	"os"

	"github.com/askiada/go-buildwaterfall/internal/cli"
)

func main() {
	ctx := context.Background()
	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
