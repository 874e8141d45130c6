package main

import (
	"github.com/jsphweid/hummingbird/cmd"
	"github.com/jsphweid/hummingbird/logging"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logging.Debug("no .env file found, using environment variables")
	}
	cmd.Execute()
}
