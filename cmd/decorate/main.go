package main

import (
	"fmt"
	"os"

	"github.com/on-the-ground/decorate_ive_go/cmd/decorate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
