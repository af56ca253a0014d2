// Command fc-const generates fcconst.h, the constant name tables of
// fontconfig, from a constant list and the object enumeration header.
package main

import (
	"fmt"
	"os"

	"github.com/sailfishos-mirror/fontconfig/cmd/fc-const/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
