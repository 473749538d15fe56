package main

import (
	"log"
	"os"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/application/startup"
)

func main() {
	if err := startup.Initialize(); err != nil {
		log.Fatalf("Application startup failed: %v", err)
		os.Exit(1)
	}

	log.Println("Application has shut down gracefully.")
}
