package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ticketkinen/server/api"
	"github.com/ticketkinen/server/config"
	"github.com/ticketkinen/server/internal/auth"
	"github.com/ticketkinen/server/internal/bootstrap"
	"github.com/ticketkinen/server/internal/cache"
	"github.com/ticketkinen/server/internal/gateway"
	"github.com/ticketkinen/server/internal/kafka"
	"github.com/ticketkinen/server/internal/repository"
	"github.com/ticketkinen/server/internal/service/bookings"
	"github.com/ticketkinen/server/internal/service/checkout"
	"github.com/ticketkinen/server/internal/service/settlement"
	"github.com/ticketkinen/server/internal/service/tickets"
	"github.com/ticketkinen/server/internal/service/users"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := repository.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		log.Fatalf("connect mongo: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.Mongo.Database)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("ensure indexes: %v", err)
	}

	listingCache := cache.NewListingCache(cfg.Redis, time.Duration(cfg.Cache.ApprovedTicketsTTL)*time.Second)
	defer listingCache.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	stripeGateway := gateway.NewStripeGateway(cfg.Stripe.APIKey)
	verifier := auth.NewJWTVerifier([]byte(cfg.Auth.JWTSecret))

	userRepo := repository.NewUserRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	userService := users.NewUserService(userRepo)
	ticketService := tickets.NewTicketService(ticketRepo, listingCache)
	bookingService := bookings.NewBookingService(bookingRepo, producer, cfg.Kafka.BookingTopic)
	checkoutService := checkout.NewCheckoutService(stripeGateway, cfg.Stripe.Currency, cfg.Stripe.SiteDomain)
	settlementEngine := settlement.NewEngine(
		paymentRepo,
		bookingRepo,
		ticketRepo,
		stripeGateway,
		producer,
		cfg.Kafka.PaymentTopic,
		settlement.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	handlers := bootstrap.Handlers{
		Users:    api.NewUserHandler(userService),
		Tickets:  api.NewTicketHandler(ticketService),
		Bookings: api.NewBookingHandler(bookingService),
		Payments: api.NewPaymentHandler(checkoutService, settlementEngine),
		Verifier: verifier,
	}

	if err := bootstrap.Run(ctx, cfg, handlers); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
