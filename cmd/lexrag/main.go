package main

import (
	"github.com/joho/godotenv"

	"lexrag/internal/cli"
)

func main() {
	// Best effort; the synthesizer API key may come from a .env file.
	_ = godotenv.Load()

	cli.Execute()
}
