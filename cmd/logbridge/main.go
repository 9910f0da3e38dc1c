package main

import (
	"fmt"
	"os"

	"github.com/philipp01105/logbridge/cmd/logbridge/cli"
)

func main() {
	if err := cli.Run(os.Stdout, os.Exit, os.Args[1:]...); err != nil {
		fmt.Fprintln(os.Stderr, "logbridge:", err)
		os.Exit(1)
	}
}
