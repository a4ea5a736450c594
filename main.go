package main

import (
	"dontverifyme/cmd/dontverifyme"
	"fmt"
	"os"
)

func main() {
	if err := dontverifyme.Command.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
