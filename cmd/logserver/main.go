package main

import (
	"os"

	"github.com/ZQisAmalou/v2x-log-server/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
