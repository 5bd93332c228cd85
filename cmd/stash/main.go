package main

import (
	"log"

	"github.com/herathmmr/stash/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ stash failed to start: %v", err)
	}
}
