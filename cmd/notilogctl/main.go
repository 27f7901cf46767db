package main

import (
	"fmt"
	"os"

	"github.com/matheus3301/notilog/internal/command"
)

func main() {
	if err := command.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
