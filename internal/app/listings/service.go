package listings

import (
	"context"

	"github.com/rs/zerolog"

	"listings/internal/events"
	"listings/internal/logging"
	"listings/internal/metrics"
	"listings/internal/store"
)

// Store captures the persistence needs for listing workflows.
type Store interface {
	CreateListing(input store.NewListing) store.Listing
	ListingByID(id string) (store.Listing, error)
	ListListings(filter store.ListingFilter) []store.Listing
}

// Service coordinates listing-related operations.
type Service interface {
	Create(ctx context.Context, input store.NewListing) (store.Listing, error)
	List(ctx context.Context, filter store.ListingFilter) ([]store.Listing, error)
	Get(ctx context.Context, id string) (store.Listing, error)
}

// CreatedEvent is published after a listing has been stored.
type CreatedEvent struct {
	Listing store.Listing `json:"listing"`
}

// Option customises a Service.
type Option func(*service)

// WithMetrics counts created listings on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *service) { s.metrics = m }
}

// WithPublisher publishes a CreatedEvent on subject for every new listing.
func WithPublisher(p events.Publisher, subject string) Option {
	return func(s *service) {
		s.publisher = p
		s.subject = subject
	}
}

// WithLogger sets the logger used for publish failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *service) { s.logger = logger }
}

type service struct {
	store     Store
	metrics   *metrics.Metrics
	publisher events.Publisher
	subject   string
	logger    zerolog.Logger
}

// New constructs a Service backed by the provided Store.
func New(store Store, opts ...Option) Service {
	s := &service{
		store:     store,
		publisher: events.Nop{},
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create always stores the listing, even when ctx is already done. The
// creation event is published on a context detached from ctx's cancellation.
func (s *service) Create(ctx context.Context, input store.NewListing) (store.Listing, error) {
	listing := s.store.CreateListing(input)

	if s.metrics != nil {
		s.metrics.ListingsCreated.Inc()
	}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), s.subject, CreatedEvent{Listing: listing}); err != nil {
		logging.FromContext(ctx, s.logger).Warn().
			Err(err).
			Str("listing_id", listing.ID).
			Str("subject", s.subject).
			Msg("publish listing created event")
	}

	return listing, nil
}

func (s *service) List(ctx context.Context, filter store.ListingFilter) ([]store.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListListings(filter), nil
}

func (s *service) Get(ctx context.Context, id string) (store.Listing, error) {
	if err := ctx.Err(); err != nil {
		return store.Listing{}, err
	}
	return s.store.ListingByID(id)
}
