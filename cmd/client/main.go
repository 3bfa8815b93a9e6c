package main

import (
	"os"

	"github.com/dmitrijs2005/veildiary/internal/client/cli"
)

func main() {
	os.Exit(cli.Execute())
}
