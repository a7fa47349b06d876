package main

import (
	"os"

	"github.com/readnoevil/rnoe/cmd"
	"github.com/readnoevil/rnoe/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// Injection detections exit with a distinct code so calling
		// agents can tell "blocked" from "failed".
		if errors.IsSecurity(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
