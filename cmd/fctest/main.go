// Command fctest runs fontconfig tools from a build tree against a private,
// throwaway font setup. It is the interactive face of package fctest.
package main

import (
	"fmt"
	"os"

	"github.com/sailfishos-mirror/fontconfig/cmd/fctest/commands"
	"github.com/sailfishos-mirror/fontconfig/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		var exit *commands.ExitCodeError
		if errors.As(err, &exit) {
			os.Exit(exit.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
