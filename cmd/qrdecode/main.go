// Command qrdecode decodes QR codes from image files.
package main

import (
	"os"

	"github.com/ericlevine/qrdecode/cmd/qrdecode/cmd"
	"github.com/spf13/afero"
)

func main() {
	if err := cmd.NewRootCommand(afero.NewOsFs()).Execute(); err != nil {
		os.Exit(1)
	}
}
