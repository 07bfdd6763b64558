// Command svcrun runs one of the example services until interrupted.
//
// Usage:
//
//	go run ./cmd/svcrun listen --addr 127.0.0.1:5000
//	go run ./cmd/svcrun watch --metrics-addr :9090 /tmp
//	SVCRUN_LOG_LEVEL=debug go run ./cmd/svcrun poll --interval 2s go.mod
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "svcrun:", err)
		os.Exit(1)
	}
}
