package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/live-ls/ls-fulfillment/config"
	"github.com/live-ls/ls-fulfillment/internal/module/checkoutapp/checkout"
	"github.com/live-ls/ls-fulfillment/internal/module/webhookapp/crm"
	"github.com/live-ls/ls-fulfillment/internal/module/webhookapp/order"
	"github.com/live-ls/ls-fulfillment/internal/module/webhookapp/payment"
	"github.com/live-ls/ls-fulfillment/internal/module/webhookapp/viva"
	"github.com/live-ls/ls-fulfillment/internal/pkg/auditlog"
	"github.com/live-ls/ls-fulfillment/internal/pkg/idempotency"
	internalMiddleware "github.com/live-ls/ls-fulfillment/internal/pkg/middleware"
	"github.com/live-ls/ls-fulfillment/internal/pkg/secrets"
	"github.com/live-ls/ls-fulfillment/pkg/applogger"
	"github.com/live-ls/ls-fulfillment/pkg/middleware"
	"github.com/live-ls/ls-fulfillment/pkg/monitoring"
	"github.com/live-ls/ls-fulfillment/pkg/postgresql"
	"github.com/live-ls/ls-fulfillment/pkg/pubsub"
	"github.com/live-ls/ls-fulfillment/pkg/redis"
	"github.com/live-ls/ls-fulfillment/pkg/server"
	"github.com/live-ls/ls-fulfillment/pkg/validator"
)

const (
	idempotencyLockTTL   = time.Minute
	idempotencyMarkerTTL = 24 * time.Hour
)

var c *config.Config

func init() {
	c = config.Get()
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := applogger.GetLogrus()

	monitoring.Register()

	validate := validator.Get()

	hc := http.DefaultClient

	psqldb := postgresql.GetDatabase()
	if err := psqldb.Ping(); err != nil {
		logger.WithContext(ctx).WithError(err).Error()
	}

	rc := redis.GetClient()
	if err := rc.Ping(context.Background()).Err(); err != nil {
		logger.WithContext(ctx).WithError(err).Error()
	}

	publisher := pubsub.NewKafkaPublisher(logger, c.Kafka.Brokers)

	router := mux.NewRouter()
	router.Use(
		otelmux.Middleware(c.Application.Name),
		middleware.HTTPResponseTraceInjection,
		middleware.NewHTTPRequestLogger(logger, c.Application.Debug, http.StatusInternalServerError).Middleware,
	)

	router.Handle("/metrics", monitoring.Handler()).Methods(http.MethodGet)

	auditLog := auditlog.NewPostgresStore(logger, psqldb)
	idempotencyStore := idempotency.NewRedisStore(logger, rc, idempotencyLockTTL, idempotencyMarkerTTL)
	webhookAuth := internalMiddleware.NewWebhookAuth(logger, secrets.NewEnvProvider(), c.Viva.WebhookSecretKey)

	// webhook's app
	vivaRepo := viva.NewVivaRepository(c.Viva.BaseURL, c.Viva.BasicAuthKey, logger, hc)
	orderRepo := order.NewOrderRepository(c.OrderService.BaseURL, c.OrderService.APIKey, logger, hc)
	crmRepo := crm.NewCRMRepository(c.CRM.BaseURL, c.CRM.APIKey, logger, hc)
	ticketMailer := crm.NewTicketMailer(logger, c.CRM.TicketTemplateID, c.Application.SiteURL, crmRepo)
	paymentWebhookUseCase := payment.NewPaymentWebhookUseCase(payment.PaymentWebhookUseCaseProperty{
		Logger:           logger,
		Timeout:          c.Application.Timeout,
		FulfillmentTopic: c.Kafka.FulfillmentTopic,
		OrderRepository:  orderRepo,
		TicketMailer:     ticketMailer,
		VivaRepository:   vivaRepo,
		AuditLog:         auditLog,
		IdempotencyStore: idempotencyStore,
		Publisher:        publisher,
	})
	payment.InitHTTPHandler(router, webhookAuth, paymentWebhookUseCase)

	// checkout's app
	checkoutTicketRepo := checkout.NewTicketRepository(logger, psqldb)
	checkoutUseCase := checkout.NewCheckoutUseCase(checkout.CheckoutUseCaseProperty{
		Logger:           logger,
		Timeout:          c.Application.Timeout,
		SourceCode:       c.Viva.SourceCode,
		CheckoutBaseURL:  c.Viva.CheckoutBaseURL,
		TicketRepository: checkoutTicketRepo,
		VivaRepository:   vivaRepo,
		AuditLog:         auditLog,
	})
	checkout.InitHTTPHandler(router, validate, checkoutUseCase)

	handler := middleware.SetChain(
		router,
		cors.New(cors.Options{
			AllowedOrigins:   c.CORS.AllowedOrigins,
			AllowedMethods:   c.CORS.AllowedMethods,
			AllowedHeaders:   c.CORS.AllowedHeaders,
			ExposedHeaders:   c.CORS.ExposedHeaders,
			MaxAge:           c.CORS.MaxAge,
			AllowCredentials: c.CORS.AllowCredentials,
		}).Handler,
	)

	srv := &server.Server{
		Server: http.Server{
			Addr:    fmt.Sprintf(":%d", c.Application.Port),
			Handler: handler,
		},
		Logger: logger,
	}

	go func() {
		srv.ListenAndServe()
	}()

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGINT, syscall.SIGTERM)
	<-sigterm

	srv.Shutdown(ctx)
	publisher.Close()
	psqldb.Close()
	rc.Close()
}
