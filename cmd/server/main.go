// Package main implements the entry point for the vjezbajmo API server,
// which serves Croatian grammar exercises backed by a shared cache, a
// static worksheet bank and LLM generation.
package main

import (
	"context"
	"log"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		app.logger.Error("Server exited with error", "error", err)
	}
}
