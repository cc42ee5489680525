// Command rollcall tracks teacher attendance from the command line.
package main

import (
	"os"

	"github.com/roach88/rollcall/internal/cli"
)

func main() {
	os.Exit(cli.Main(os.Args[1:], os.Stdout, os.Stderr))
}
