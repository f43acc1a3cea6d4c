package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"coursehub/internal/models"
	"coursehub/internal/server"
	"coursehub/pkg/rabbitmq"

	"github.com/spf13/cobra"
)

func newServeMockCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "serve-mock",
		Short: "run the local mock auth server",
		Long: "Serves POST /api/auth/register, POST /api/auth/login, GET /api/auth/me, /health and /metrics.\n" +
			"Configured with APP_PORT, USERS_FILE, AUTH_STORE_DRIVER, DATABASE_DSN, JWT_SECRET, RABBITMQ_URL and AUTH_HASH_PASSWORDS.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return server.Run(ctx, *rt.cfg, rt.log)
		},
	}
}

func newTailEventsCmd(rt *runtime) *cobra.Command {
	var queue string
	cmd := &cobra.Command{
		Use:   "tail-events",
		Short: "print mock auth events from RabbitMQ",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rt.cfg.RabbitMQURL == "" {
				return fmt.Errorf("RABBITMQ_URL is not set")
			}
			mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: rt.cfg.RabbitMQURL, Queue: queue}, rt.log)
			if err != nil {
				return err
			}
			defer mq.Close()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return mq.ConsumeAuthEvents(ctx, func(e models.AuthEvent) error {
				_, err := fmt.Fprintf(rt.out, "%s\t%s\t%s\t%s\n", e.At.Format("2006-01-02 15:04:05"), e.Type, e.Email, e.Name)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&queue, "queue", rabbitmq.DefaultQueue, "queue to consume")
	return cmd
}
