// # cmd/fedmap/main.go
package main

import (
	"os"

	"fedmap/internal/ui/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
