package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/you/go-clonar-search/internal/auth"
	"github.com/you/go-clonar-search/internal/config"
	"github.com/you/go-clonar-search/internal/httpx"
	"github.com/you/go-clonar-search/internal/providers"
	"github.com/you/go-clonar-search/internal/service"
)

func main() {

	// one process-wide logger; httpx and auth log through the same instance
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})

	// Loading config
	cfg := config.Load()

	// Creating services
	searchSvc := service.NewSearchService(log, cfg.CacheTTL, cfg.CacheMaxEntries, cfg.ProviderTimeout)
	recSvc := service.NewRecommendationService()

	// Registering the providers whose credentials are configured
	if cfg.SerpAPIKey != "" {
		searchSvc.Register(providers.NewSerpShopping(cfg))
		searchSvc.Register(providers.NewSerpHotels(cfg))
	}
	if cfg.RapidProductsRapidApiKey != "" {
		searchSvc.Register(providers.NewRapidProducts(cfg))
	}

	publicMux := http.NewServeMux()

	// Public: login to get JWT
	publicMux.HandleFunc("/auth/login", auth.LoginHandler(cfg))

	// Protected group with JWT
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("/search", httpx.SearchHandler(searchSvc))
	protectedMux.HandleFunc("/providers", httpx.ProvidersHandler(searchSvc))
	protectedMux.HandleFunc("/recommendations", httpx.RecommendationsHandler(recSvc))
	protectedMux.HandleFunc("/sse/", httpx.SubscribeSSEHandler(searchSvc)) // /sse/product?q=nike+shoes
	protectedMux.HandleFunc("/ws/", httpx.SubscribeWSHandler(searchSvc))

	// handler to control authenticated routes
	root := auth.JWTMiddleware(publicMux, protectedMux, cfg)

	// Creation of HTTP server
	srv := &http.Server{
		Addr:              ":8080",
		Handler:           root,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      0,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Running http server on a secondary thread
	go func() {
		log.Infof("server listening on http://localhost%s", srv.Addr)
		if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
			log.Info("TLS enabled")
			log.Fatal(srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile))
		} else {
			log.Fatal(srv.ListenAndServe())
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
