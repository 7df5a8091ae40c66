// dirsnap snapshots directory trees and reports where the bytes went.
package main

import (
	"fmt"
	"os"

	"github.com/dirsnap/dirsnap/internal/cli"
)

// version is injected at build time.
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
