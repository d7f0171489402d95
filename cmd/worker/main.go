package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ticketkinen/server/config"
	"github.com/ticketkinen/server/internal/email"
	"github.com/ticketkinen/server/internal/gateway"
	"github.com/ticketkinen/server/internal/kafka"
	"github.com/ticketkinen/server/internal/repository"
	"github.com/ticketkinen/server/internal/service/settlement"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := repository.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		log.Fatalf("connect mongo: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.Mongo.Database)

	ticketRepo := repository.NewTicketRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	stripeGateway := gateway.NewStripeGateway(cfg.Stripe.APIKey)
	engine := settlement.NewEngine(paymentRepo, bookingRepo, ticketRepo, stripeGateway, nil, "")

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	go func() {
		if err := consumer.Consume(ctx, emailSender.Send); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	reconcileTicker := time.NewTicker(time.Duration(cfg.Worker.ReconcileSweepMinutes) * time.Minute)
	defer reconcileTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-reconcileTicker.C:
			completed, err := engine.Reconcile(ctx)
			if err != nil {
				log.Printf("reconcile payments error: %v", err)
				continue
			}
			if completed > 0 {
				log.Printf("reconciled %d payments", completed)
			}
		case s := <-sig:
			log.Printf("received signal %v, shutting down", s)
			return
		}
	}
}
