package main

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/muaishaq001/nacos-hub/infra/queue"
	"github.com/muaishaq001/nacos-hub/internal/api/rest/handlers"
	"github.com/muaishaq001/nacos-hub/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var mailerCmd = &cobra.Command{
	Use:   "mailer",
	Short: "Consume hub events and send mail",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.KafkaBroker == "" {
			return errors.New("KAFKA_BROKER is required for the mailer")
		}
		logger.Info("mailer starting",
			zap.String("kafka_broker", cfg.KafkaBroker),
			zap.String("topic", cfg.KafkaTopic),
			zap.String("group_id", cfg.KafkaGroupID))

		// ---------- Init Service ----------
		sender := services.NewSMTPSender(cfg.GmailUser, cfg.GmailAppPassword, cfg.MailFrom, cfg.MailFromName)
		mailService, err := services.NewMailService(sender, cfg.MailInbox, logger)
		if err != nil {
			return err
		}
		if cfg.MailInbox == "" {
			logger.Warn("MAIL_INBOX not set, contact and collaboration mail will fail")
		}

		// ---------- Init Handler ----------
		handler := handlers.NewMailHandler(mailService, logger)

		// ---------- Init Kafka Consumer ----------
		consumer := queue.NewKafkaConsumer(
			cfg.KafkaBroker,
			cfg.KafkaTopic,
			cfg.KafkaGroupID,
			cfg.KafkaUsername,
			cfg.KafkaPassword,
			handler,
			logger,
		)
		defer func() { _ = consumer.Close() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.Info("mailer listening for events")
		return consumer.Listen(ctx)
	},
}
