package main

import (
	"os"

	"github.com/melih-ucgun/yurt/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
