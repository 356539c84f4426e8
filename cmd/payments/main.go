package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/example/order-fulfillment/internal/infrastructure/kafka"
	"github.com/example/order-fulfillment/internal/payments"
)

func main() {
	// Configuration from environment variables
	kafkaBrokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	consumerGroup := getEnv("KAFKA_GROUP", "payments-worker")

	log.Println("[Payments] ========================================")
	log.Println("[Payments] Order Fulfillment - Payments Worker")
	log.Println("[Payments] ========================================")
	log.Printf("[Payments] Kafka: %v", kafkaBrokers)
	log.Printf("[Payments] Group: %s", consumerGroup)

	bus := kafka.NewBus(kafkaBrokers, consumerGroup)
	defer bus.Close()

	service := payments.NewService()
	consumer := payments.NewOrderConsumer(bus, service)
	if err := consumer.Start(); err != nil {
		log.Fatalf("[Payments] Failed to subscribe: %v", err)
	}

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[Payments] Shutting down...")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
