package main

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"listings/internal/app/listings"
	"listings/internal/config"
	"listings/internal/events"
	"listings/internal/http/middleware"
	"listings/internal/httpapi"
	"listings/internal/metrics"
	"listings/internal/store"
)

func newHTTPHandler(cfg *config.Config, logger zerolog.Logger, dataStore *store.Store, publisher events.Publisher) http.Handler {
	m := metrics.New(dataStore.Count)

	listingSvc := listings.New(dataStore,
		listings.WithMetrics(m),
		listings.WithPublisher(publisher, cfg.Events.Subject),
		listings.WithLogger(logger),
	)

	var handler http.Handler = httpapi.New(listingSvc, m).Routes()
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CORS(cfg.CORS.AllowedOrigins)(handler)
	return handler
}

func newPublisher(cfg *config.Config, logger zerolog.Logger) (events.Publisher, error) {
	if cfg.Events.NATSURL == "" {
		logger.Info().Msg("NATS_URL not set, listing events disabled")
		return events.Nop{}, nil
	}

	publisher, err := events.NewNATSPublisher(cfg.Events.NATSURL)
	if err != nil {
		return nil, fmt.Errorf("events: %w", err)
	}
	logger.Info().Str("subject", cfg.Events.Subject).Msg("publishing listing events to NATS")
	return publisher, nil
}
