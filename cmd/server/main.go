package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"terra/internal/api"
	"terra/internal/config"
	"terra/internal/gcal"
	"terra/internal/gemini"
	"terra/internal/service"
	"terra/internal/square"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
)

func main() {
	godotenv.Load()
	cfg := config.Load()
	if cfg.GoogleClientEmail == "" || cfg.GooglePrivateKey == "" {
		log.Fatal("GOOGLE_CLIENT_EMAIL / GOOGLE_PRIVATE_KEY not set")
	}
	if cfg.CalDirectID == "" || cfg.CalBlockID == "" {
		log.Fatal("CAL_DIRECT_ID / CAL_BLOCK_ID not set")
	}
	if cfg.SquareAccessToken == "" || cfg.SquareLocationID == "" {
		log.Fatal("SQUARE_ACCESS_TOKEN / SQUARE_LOCATION_ID not set")
	}

	calendarClient, err := gcal.NewClient(gcal.Config{
		ClientEmail: cfg.GoogleClientEmail,
		PrivateKey:  cfg.GooglePrivateKey,
	})
	if err != nil {
		log.Fatalf("Failed to init calendar client: %v", err)
	}
	connector := service.ConnectorFunc(func(ctx context.Context) (service.CalendarSession, error) {
		return calendarClient.Connect(ctx)
	})

	payments := square.NewClient(square.Config{
		AccessToken: cfg.SquareAccessToken,
		BaseURL:     cfg.SquareBaseURL,
	})

	var creator service.ArtifactCreator
	switch cfg.CompletionMode {
	case config.ModeInvoice:
		creator = &service.InvoiceCreator{
			Payments:     payments,
			LocationID:   cfg.SquareLocationID,
			TTL:          cfg.InvoiceHoldTTL,
			DueInDays:    cfg.InvoiceDueInDays,
			ReminderDays: cfg.InvoiceReminderDays,
		}
	case config.ModeCheckout:
		creator = &service.CheckoutLinkCreator{
			Payments:    payments,
			LocationID:  cfg.SquareLocationID,
			RedirectURL: cfg.PaymentRedirectURL,
			TTL:         cfg.CheckoutHoldTTL,
		}
	default:
		log.Fatalf("Unknown COMPLETION_MODE: %q", cfg.CompletionMode)
	}

	sweeper := service.NewSweeperService(cfg.CalDirectID, cfg.SweepLookBack, cfg.SweepHorizon)
	rates := service.RateTable{
		Standard:      cfg.StandardRate,
		Premium:       cfg.PremiumRate,
		ExtraGuest:    cfg.ExtraGuestRate,
		BaseOccupancy: cfg.BaseOccupancy,
	}
	reservationService := service.NewReservationService(connector, sweeper, creator,
		rates, cfg.MaxStayNights, cfg.CalDirectID, cfg.CalBlockID)

	assistantService := service.NewAssistantService(gemini.NewClient(gemini.Config{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
	}))

	notifyService := &service.NotifyService{
		OwnerEmail:       cfg.OwnerEmail,
		OwnerPhone:       cfg.OwnerPhone,
		SendGridAPIKey:   cfg.SendGridAPIKey,
		SendGridFrom:     cfg.SendGridFrom,
		TwilioAccountSID: cfg.TwilioAccountSID,
		TwilioAuthToken:  cfg.TwilioAuthToken,
		TwilioFromNumber: cfg.TwilioFromNumber,
	}

	reservationHandler := api.NewReservationHandler(reservationService)
	assistantHandler := api.NewAssistantHandler(assistantService)
	webhookHandler := api.NewSquareWebhookHandler(cfg.SquareWebhookKey, cfg.SquareWebhookURL, notifyService)

	// Background sweep in addition to the per-request advisory pass.
	c := cron.New()
	if _, err := c.AddFunc(cfg.SweepSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		sweeper.Run(ctx, connector)
	}); err != nil {
		log.Fatalf("Failed to schedule sweep: %v", err)
	}
	c.Start()

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/reservations", reservationHandler.CreateReservation).Methods("POST")
	r.HandleFunc("/api/assistant", assistantHandler.Ask).Methods("POST")
	r.HandleFunc("/api/square/webhook", webhookHandler.HandleWebhook).Methods("POST")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"https://terra-shimanami.com"}),
		handlers.AllowedMethods([]string{"POST", "GET", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, cors(handlers.LoggingHandler(os.Stdout, r))))
}
