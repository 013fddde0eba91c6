// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

// Package main is the entry point for the schema-infer CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/akrishnanDG/schema-infer-plugin/cmd/internal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := internal.Run(ctx, os.Args[1:], os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
