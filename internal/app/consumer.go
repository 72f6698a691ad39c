package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"leavedesk/internal/employee"
	"leavedesk/internal/events"
	"leavedesk/internal/messaging/kafka/consumer"
	"leavedesk/internal/notification"
	"leavedesk/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer reads lifecycle events from kafka and materializes them as
// notifications until it is signalled to stop.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	employeeRepo := employee.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	notificationService := notification.NewService(notificationRepo, employeeRepo)

	reader := connection.NewKafkaReader(kafkaBroker, events.LeaveLifecycleTopic, "leavedesk-notifications")
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeLeaveLifecycle(ctx, reader, notificationService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
