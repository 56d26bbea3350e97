package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/roach88/folio/internal/cli"
)

func main() {
	// Optional; real environment variables win over .env entries.
	_ = godotenv.Load()

	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
