package main

import (
	"github.com/joho/godotenv"

	"github.com/codekivy/kivybot-be/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	// A missing .env file is fine; the API keys may come straight from the
	// environment.
	_ = godotenv.Load()
}
