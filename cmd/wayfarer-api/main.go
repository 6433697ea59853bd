// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"wayfarer/internal/config"
	httptransport "wayfarer/internal/http"
	"wayfarer/internal/infra"
	"wayfarer/internal/modules/auth"
	"wayfarer/internal/modules/geo"
	"wayfarer/internal/modules/trip"
	"wayfarer/internal/planner"
	"wayfarer/internal/service"
	"wayfarer/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient := infra.NewRedis(cfg.RedisAddr)
	trips := trip.NewService(trip.NewStore(trip.NewRedisKV(redisClient)))

	var plan planner.Planner
	switch cfg.PlannerProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			log.Fatal("GEMINI_API_KEY is required when WAYFARER_PLANNER=gemini")
		}
		gemini, err := planner.NewGeminiPlanner(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer gemini.Close()
		plan = gemini
	default:
		plan = planner.NewWebhookPlanner(cfg.DayOutWebhookURL, cfg.TripPlannerWebhookURL)
	}

	var provider geo.Provider = geo.NewNominatimProvider(cfg.NominatimBaseURL, cfg.GeocodeCountryHint)
	if cfg.GoogleMapsAPIKey != "" {
		google, err := geo.NewGoogleProvider(cfg.GoogleMapsAPIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		provider = google
	}
	extractor := geo.NewExtractor(geo.NewGeocoder(provider))

	assistant := service.NewAssistant(plan, extractor, trips, session.New())

	deps := httptransport.ServerDeps{Assistant: assistant, Trips: trips}

	// Accounts need PostgreSQL; without a reachable database the assistant
	// still runs, just unauthenticated.
	if dbPool, err := infra.NewDB(ctx, cfg.DBDSN); err != nil {
		log.Printf("db unavailable, auth disabled: %v", err)
	} else {
		defer dbPool.Close()
		deps.Accounts = auth.NewService(auth.NewStore(dbPool), cfg.JWTSecret)
	}

	handler := httptransport.NewServer(deps)
	server := &http.Server{Addr: cfg.HTTPAddr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
