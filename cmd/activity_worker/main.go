package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/oksasatya/go-session-profile/config"
	"github.com/oksasatya/go-session-profile/internal/worker"
	"github.com/oksasatya/go-session-profile/pkg/helpers"
	"github.com/oksasatya/go-session-profile/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-activity-worker", cfg.Env)

	if cfg.RabbitMQURL == "" {
		logger.Fatal("RABBITMQ_URL not configured")
	}
	if cfg.MailSendEnabled && (cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "") {
		logger.Fatal("MAIL_SEND_ENABLED=true but Mailgun is not configured")
	}
	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; events are logged only")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.WithError(err).Fatal("amqp dial")
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.WithError(err).Fatal("amqp channel")
	}
	defer func() { _ = ch.Close() }()

	// prefetch for fair dispatch between workers
	if err := ch.Qos(16, 0, false); err != nil {
		logger.WithError(err).Fatal("qos")
	}
	if err := helpers.DeclareQueue(ch, cfg.RabbitMQActivityQueue); err != nil {
		logger.WithError(err).Fatal("queue declare")
	}

	msgs, err := ch.Consume(cfg.RabbitMQActivityQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.WithError(err).Fatal("consume")
	}

	h := &worker.ActivityHandler{
		Mailer:      mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender),
		NotifyTo:    cfg.AdminNotifyEmail,
		SendEnabled: cfg.MailSendEnabled,
		Logger:      logger,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			err := h.Handle(ctx, msg.Body)
			switch {
			case err == nil:
				_ = msg.Ack(false)
			case errors.Is(err, worker.ErrBadMessage):
				logger.WithError(err).WithField("type", msg.Type).Warn("dropping message")
				_ = msg.Nack(false, false)
			default:
				logger.WithError(err).WithField("type", msg.Type).Error("handle failed; requeueing")
				_ = msg.Nack(false, true)
			}
		}
		close(done)
	}()

	logger.Infof("activity worker listening on queue=%s", cfg.RabbitMQActivityQueue)
	<-stop
	logger.Info("shutting down...")
	cancel()
	_ = ch.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
