// Tails the intake event stream. Handy for checking that completion and
// rejection events actually reach the bus in a deployed environment.
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"project-intake-be/pkg/events"
	"project-intake-be/pkg/nats"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}

	sub, err := nats.NewSubscriber(natsURL)
	if err != nil {
		log.Fatalf("Error: Failed to connect to NATS: %v", err)
	}
	defer sub.Close()

	err = sub.Subscribe("events.>", "intake-event-tail", func(ctx context.Context, event events.Event) error {
		payload, _ := json.Marshal(event.Payload())
		log.Printf("[%s] %s", event.EventType(), payload)
		return nil
	})
	if err != nil {
		log.Fatalf("Error: Failed to subscribe: %v", err)
	}

	log.Printf("Tailing events on %s (ctrl-c to stop)...", natsURL)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}
