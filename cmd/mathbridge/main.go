package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/mathbridge/mathbridge-backend/internal/app/background"
	"github.com/mathbridge/mathbridge-backend/internal/config"
	httpdelivery "github.com/mathbridge/mathbridge-backend/internal/delivery/http"
	"github.com/mathbridge/mathbridge-backend/internal/delivery/http/handlers"
	"github.com/mathbridge/mathbridge-backend/internal/dispatcher"
	"github.com/mathbridge/mathbridge-backend/internal/domain"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/gateway/payos"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/gateway/sepay"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/kafka"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/mailer"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/metrics"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/migrate"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/postgres"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/postgres/repository"
	contractuc "github.com/mathbridge/mathbridge-backend/internal/usecase/contract"
	notificationuc "github.com/mathbridge/mathbridge-backend/internal/usecase/notification"
	paymentuc "github.com/mathbridge/mathbridge-backend/internal/usecase/payment"
	reportuc "github.com/mathbridge/mathbridge-backend/internal/usecase/report"
	rescheduleuc "github.com/mathbridge/mathbridge-backend/internal/usecase/reschedule"
	useruc "github.com/mathbridge/mathbridge-backend/internal/usecase/user"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)
	if err := migrate.RunMigrations(db, cfg.MigrationsPath); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	paymentMetrics := metrics.NewPaymentMetrics()

	// Repositories
	userRepo := repository.NewDefaultUserRepository(db)
	walletRepo := repository.NewDefaultWalletRepository(db)
	gatewayRepo := repository.NewDefaultGatewayTransactionRepository(db)
	packageRepo := repository.NewDefaultPackageRepository(db)
	contractRepo := repository.NewDefaultContractRepository(db)
	sessionRepo := repository.NewDefaultSessionRepository(db)
	rescheduleRepo := repository.NewDefaultRescheduleRepository(db)
	notificationRepo := repository.NewDefaultNotificationRepository(db)
	reportRepo := repository.NewDefaultReportRepository(db)

	// Stream registry and cross-instance fan-out. Without a kafka host the
	// service runs single-instance with local delivery only.
	registry := dispatcher.NewRegistry()
	var fanout notificationuc.Fanout = notificationuc.NewLocalOnlyFanout()
	if cfg.KafkaService.Host != "" {
		brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
		pub := kafka.NewDefaultKafkaPublisher(brokers)
		sub := kafka.NewDefaultKafkaSubscriber(brokers)
		fanout = notificationuc.NewKafkaFanout(pub, cfg.KafkaService.Topic, cfg.InstanceID)

		fanoutSub := dispatcher.NewFanoutSubscriber(sub, registry, paymentMetrics, cfg.KafkaService.Topic, cfg.InstanceID)
		if err := fanoutSub.Start(); err != nil {
			log.Fatalf("failed to start notification subscriber: %v", err)
		}
	}

	// Usecases
	notificationUsecase := notificationuc.NewDefaultNotificationUsecase(notificationRepo, registry, fanout, paymentMetrics)
	userUsecase := useruc.NewDefaultUserUsecase(userRepo, walletRepo, cfg.Auth.JWTSecret)

	verifiers := map[domain.GatewayProvider]domain.GatewayVerifier{
		domain.ProviderSePay: sepay.NewVerifier(cfg.SePay.APIKey),
		domain.ProviderPayOS: payos.NewVerifier(cfg.PayOS.ChecksumKey),
	}
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP)
	paymentUsecase, err := paymentuc.NewDefaultPaymentUsecase(
		walletRepo,
		gatewayRepo,
		contractRepo,
		userRepo,
		verifiers,
		notificationUsecase,
		smtpMailer,
		paymentMetrics,
	)
	if err != nil {
		log.Fatalf("failed to init payment usecase: %v", err)
	}

	contractUsecase := contractuc.NewDefaultContractUsecase(contractRepo, sessionRepo, packageRepo, userRepo, notificationUsecase)
	rescheduleUsecase := rescheduleuc.NewDefaultRescheduleUsecase(rescheduleRepo, sessionRepo, contractRepo, notificationUsecase)
	reportUsecase := reportuc.NewDefaultReportUsecase(reportRepo, userRepo)

	// Background sweeps
	tasks := background.NewBackgroundTasks(paymentUsecase, contractUsecase)
	tasks.StartAll(context.Background())

	// HTTP server
	router := httpdelivery.NewRouter(httpdelivery.RouterDeps{
		Auth:         handlers.NewAuthHandler(userUsecase),
		Webhook:      handlers.NewWebhookHandler(paymentUsecase),
		Payment:      handlers.NewPaymentHandler(paymentUsecase),
		Contract:     handlers.NewContractHandler(contractUsecase),
		Reschedule:   handlers.NewRescheduleHandler(rescheduleUsecase),
		Notification: handlers.NewNotificationHandler(notificationUsecase, registry, paymentMetrics, cfg.InstanceID),
		Report:       handlers.NewReportHandler(reportUsecase),
		JWTSecret:    cfg.Auth.JWTSecret,
	})

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("HTTP server started on %s\n", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
