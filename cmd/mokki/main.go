package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/mmynk/mokkicalc/internal/cli"
	"github.com/mmynk/mokkicalc/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
