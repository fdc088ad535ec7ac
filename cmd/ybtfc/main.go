// Command ybtfc remaps structure templates onto TerraFirmaCraft blocks.
package main

import (
	"fmt"
	"os"

	"github.com/claustra01/yungsbettertfc/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
