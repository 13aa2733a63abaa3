package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/velmark/crm-backend/internal/infra/database"
	"github.com/velmark/crm-backend/internal/infra/http/handlers"
	"github.com/velmark/crm-backend/internal/infra/http/middleware"
	"github.com/velmark/crm-backend/internal/infra/logging"
	"github.com/velmark/crm-backend/internal/infra/mail"
	"github.com/velmark/crm-backend/internal/infra/queue"
	"github.com/velmark/crm-backend/internal/usecase"
)

func main() {
	godotenv.Load()

	eventLog, err := logging.NewEventLog()
	if err != nil {
		log.Fatal(err)
	}
	defer eventLog.Sync()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatal(err)
	}

	// RabbitMQ is optional. Without it conversions still succeed, they just
	// do not emit welcome emails.
	var producer *queue.RabbitMQProducer
	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		eventLog.Warning("rabbitmq unavailable, conversion events disabled: " + err.Error())
	} else {
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		mailSender := mail.NewEmailSender(
			os.Getenv("MAIL_HOST"), 587,
			os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
			os.Getenv("MAIL_FROM"),
		)
		worker := queue.NewWorker(rabbitMQ.Ch, mailSender)
		go worker.Start(queue.QueueName)
	}

	// Repositories
	userRepo := database.NewUserRepository(db)
	serviceRepo := database.NewServiceRepository(db)
	campaignRepo := database.NewCampaignRepository(db)
	leadRepo := database.NewLeadRepository(db)
	contractRepo := database.NewContractRepository(db)
	clientRepo := database.NewClientRepository(db)
	statsRepo := database.NewStatsRepository(db)

	// UseCases
	serviceUC := usecase.NewServiceUseCase(serviceRepo, eventLog)
	campaignUC := usecase.NewCampaignUseCase(campaignRepo, serviceRepo, eventLog)
	leadUC := usecase.NewLeadUseCase(leadRepo, campaignRepo, eventLog)
	contractUC := usecase.NewContractUseCase(contractRepo, serviceRepo, eventLog)
	clientUC := usecase.NewClientUseCase(clientRepo, contractRepo, eventLog)
	convertUC := usecase.NewConvertLeadUseCase(clientRepo, leadRepo, contractRepo, notifier(producer), eventLog)
	statsUC := usecase.NewCampaignStatsUseCase(statsRepo, eventLog)

	// Handlers
	serviceHandler := handlers.NewServiceHandler(serviceUC, serviceRepo, eventLog)
	campaignHandler := handlers.NewCampaignHandler(campaignUC, campaignRepo, eventLog)
	leadHandler := handlers.NewLeadHandler(leadUC, convertUC, leadRepo, eventLog)
	contractHandler := handlers.NewContractHandler(contractUC, contractRepo, eventLog)
	clientHandler := handlers.NewClientHandler(clientUC, clientRepo, eventLog)
	statsHandler := handlers.NewStatsHandler(statsUC)

	healthHandler := handlers.NewHealthHandler(db, nil)
	if rabbitMQ != nil {
		healthHandler = handlers.NewHealthHandler(db, rabbitMQ.Conn)
	}

	// Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-User-ID"},
	}))
	r.Use(middleware.Metrics)

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Actor(userRepo))

		r.Route("/services", func(r chi.Router) {
			r.Get("/", serviceHandler.List)
			r.Post("/", serviceHandler.Create)
			r.Get("/{id}", serviceHandler.Get)
			r.Put("/{id}", serviceHandler.Update)
			r.Delete("/{id}", serviceHandler.Delete)
		})

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", campaignHandler.List)
			r.Post("/", campaignHandler.Create)
			r.Get("/{id}", campaignHandler.Get)
			r.Put("/{id}", campaignHandler.Update)
			r.Delete("/{id}", campaignHandler.Delete)
		})

		r.Route("/leads", func(r chi.Router) {
			r.Get("/", leadHandler.List)
			r.Post("/", leadHandler.Create)
			r.Get("/{id}", leadHandler.Get)
			r.Put("/{id}", leadHandler.Update)
			r.Delete("/{id}", leadHandler.Delete)
			r.Post("/{id}/convert", leadHandler.HandleConvert)
		})

		r.Route("/contracts", func(r chi.Router) {
			r.Get("/", contractHandler.List)
			r.Post("/", contractHandler.Create)
			r.Get("/{id}", contractHandler.Get)
			r.Put("/{id}", contractHandler.Update)
			r.Delete("/{id}", contractHandler.Delete)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", clientHandler.List)
			r.Get("/{id}", clientHandler.Get)
			r.Put("/{id}", clientHandler.Update)
			r.Delete("/{id}", clientHandler.Delete)
		})

		r.Get("/stats", statsHandler.Get)
	})

	port := envOr("PORT", "8080")
	eventLog.Success("CRM API listening on :" + port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// notifier keeps the nil check out of the usecase wiring. A typed nil
// *RabbitMQProducer stored in the interface would not compare equal to nil.
func notifier(p *queue.RabbitMQProducer) usecase.ConversionNotifier {
	if p == nil {
		return nil
	}
	return p
}
