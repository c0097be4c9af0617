package main

import (
	"os"

	"github.com/Neev4n/codecrafters-shell-go/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
