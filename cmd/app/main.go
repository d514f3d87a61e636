package main

import (
	"github.com/joho/godotenv"

	"smart-erp/internal/adapters/cli"
)

func main() {
	_ = godotenv.Load()
	cli.Execute()
}
