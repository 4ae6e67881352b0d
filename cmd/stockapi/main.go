package main

import (
	"os"

	"github.com/vanlang/stock-api/cmd/stockapi/commands"
)

// main is the entry point for the stock API CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/stockapi [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
