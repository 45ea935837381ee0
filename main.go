package main

import (
	"os"

	"github.com/digest-dev/digestctl/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
