package main

import (
	"os"

	"github.com/soundprediction/ontonav/cmd/ontonav"
)

func main() {
	if err := ontonav.Execute(); err != nil {
		os.Exit(1)
	}
}
