// intcode CLI - runs intcode programs from a file or an intcode.toml manifest
package main

import (
	"os"
)

func main() {
	os.Exit(runCLI(os.Args[1:], os.Stdout, os.Stderr))
}
