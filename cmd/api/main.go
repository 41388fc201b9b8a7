package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-crm/internal/infra/database"
	"github.com/xavierca1/ligue-crm/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/infra/integration/planner"
	"github.com/xavierca1/ligue-crm/internal/infra/integration/zapi"
	"github.com/xavierca1/ligue-crm/internal/infra/mail"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
	"github.com/xavierca1/ligue-crm/internal/infra/worker"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

func main() {
	godotenv.Load()

	ctx := context.Background()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := database.CreateTables(ctx, db); err != nil {
		log.Fatal(err)
	}
	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := database.SeedDemoData(ctx, db); err != nil {
			log.Fatal(err)
		}
	}

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "user"),
		envOr("RABBITMQ_PASS", "password"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		panic(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)
	dealRepo := database.NewDealRepository(db)
	activityRepo := database.NewActivityRepository(db)
	stepRepo := database.NewOutreachStepRepository(db)

	// 2. Gateways e Adapters
	plannerClient := planner.NewClient(os.Getenv("PLANNER_API_KEY"), os.Getenv("PLANNER_URL"))
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), 587, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
	)
	zapiClient := zapi.NewClient(os.Getenv("ZAPI_INSTANCE_ID"), os.Getenv("ZAPI_TOKEN"))
	whatsappSender := mail.NewWhatsAppSender(zapiClient)

	// 3. Workers (varredura de vencidos + consumo da fila de lembretes)
	reminderWorker := worker.NewReminderWorker(db, producer)
	go reminderWorker.Start(ctx)

	queueWorker := queue.NewWorker(rabbitMQ.Ch, mailSender, whatsappSender)
	go queueWorker.Start(queue.QueueName)

	// 4. UseCases
	generatePlanUC := usecase.NewGeneratePlanUseCase(
		dealRepo, activityRepo, stepRepo, plannerClient, usecase.SystemClock{},
	)
	updateStatusUC := usecase.NewUpdateStepStatusUseCase(stepRepo)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(leadRepo, dealRepo)
	dealHandler := handlers.NewDealHandler(dealRepo)
	activityHandler := handlers.NewActivityHandler(activityRepo, dealRepo)
	outreachHandler := handlers.NewOutreachHandler(generatePlanUC, updateStatusUC, stepRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/leads", func(r chi.Router) {
		r.Post("/", leadHandler.CaptureLead)
		r.Get("/", leadHandler.List)
		r.Get("/{leadId}", leadHandler.Get)
		r.Put("/{leadId}", leadHandler.Update)
		r.Delete("/{leadId}", leadHandler.Delete)
		r.Post("/{leadId}/convert", leadHandler.Convert)
	})

	r.Route("/deals", func(r chi.Router) {
		r.Post("/", dealHandler.Create)
		r.Get("/", dealHandler.List)
		r.Get("/{dealId}", dealHandler.Get)
		r.Put("/{dealId}", dealHandler.Update)
		r.Patch("/{dealId}/stage", dealHandler.UpdateStage)

		r.Post("/{dealId}/activities", activityHandler.Create)
		r.Get("/{dealId}/activities", activityHandler.ListByDeal)

		r.Post("/{dealId}/outreach/plan", outreachHandler.HandleGeneratePlan)
		r.Get("/{dealId}/outreach/steps", outreachHandler.HandleListSteps)
	})

	r.Patch("/outreach/steps/{stepId}/status", outreachHandler.HandleUpdateStepStatus)

	port := ":" + envOr("PORT", "8080")
	log.Printf("🔥 Server CRM Ligue rodando na porta %s", port)
	http.ListenAndServe(port, r)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
