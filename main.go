package main

import (
	"os"

	"github.com/PixelCode01/syllabo/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
