package pricing

import (
	"context"
	"log"
	"time"

	"github.com/Domenick1991/priceops/internal/domain"
	"github.com/Domenick1991/priceops/internal/kafka"
	"github.com/Domenick1991/priceops/internal/repository"
	"github.com/google/uuid"
)

type PricingUseCase interface {
	QuoteFare(ctx context.Context, input FareInput) (*FareQuote, error)
	QuotePackage(ctx context.Context, input PackageInput) (*PackageQuote, error)
	History(ctx context.Context, limit int) ([]domain.QuoteRecord, error)
}

type Cache interface {
	GetHistory(ctx context.Context) ([]domain.QuoteRecord, error)
	SetHistory(ctx context.Context, records []domain.QuoteRecord) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
	PublishWithRetry(ctx context.Context, topic, key string, value interface{}, maxRetries int) error
}

// notificationPublishRetries bounds redelivery attempts for the notification
// fan-out; the quote itself never waits on it beyond these attempts.
const notificationPublishRetries = 3

type FareQuote struct {
	FinalPrice float64
}

type PackageQuote struct {
	OriginalPrice  float64
	FinalPrice     float64
	Factors        *domain.PricingFactors
	ConversionRate float64
}

type PricingService struct {
	rules              Rules
	audit              repository.QuoteRepository
	cache              Cache
	producer           Producer
	quotesTopic        string
	notificationsTopic string
	historyLimit       int
	now                func() time.Time
}

type PricingServiceOption func(*PricingService)

func WithNotificationsTopic(topic string) PricingServiceOption {
	return func(s *PricingService) {
		s.notificationsTopic = topic
	}
}

// WithClock overrides the timestamp source, used by tests to pin audit
// timestamps.
func WithClock(now func() time.Time) PricingServiceOption {
	return func(s *PricingService) {
		s.now = now
	}
}

func NewPricingService(
	rules Rules,
	audit repository.QuoteRepository,
	cache Cache,
	producer Producer,
	quotesTopic string,
	historyLimit int,
	opts ...PricingServiceOption,
) *PricingService {
	service := &PricingService{
		rules:        rules,
		audit:        audit,
		cache:        cache,
		producer:     producer,
		quotesTopic:  quotesTopic,
		historyLimit: historyLimit,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// QuoteFare prices a simple fare request and appends an audit record. An
// unparsable flight date rejects the request before anything is computed or
// written.
func (s *PricingService) QuoteFare(ctx context.Context, input FareInput) (*FareQuote, error) {
	input = input.normalized()

	finalPrice, err := s.rules.priceFare(input)
	if err != nil {
		return nil, err
	}

	record := &domain.QuoteRecord{
		ID:            uuid.NewString(),
		Kind:          domain.QuoteKindFare,
		Destination:   input.Destination,
		TicketType:    input.TicketType,
		FlightDate:    input.FlightDate,
		FlightTime:    input.FlightTime,
		OriginalPrice: s.rules.FareBasePrice(),
		FinalPrice:    finalPrice,
		CreatedAt:     s.now(),
	}
	s.append(ctx, record)
	s.publish(ctx, "fare_quoted", record)

	return &FareQuote{FinalPrice: finalPrice}, nil
}

// QuotePackage prices a package request. When dynamic pricing is disabled the
// call is a pass-through: the final price equals the original price and no
// factors are computed, though the call is still recorded.
func (s *PricingService) QuotePackage(ctx context.Context, input PackageInput) (*PackageQuote, error) {
	input = input.normalized()

	if !input.DynamicPricing {
		record := &domain.QuoteRecord{
			ID:            uuid.NewString(),
			Kind:          domain.QuoteKindPackagePassthrough,
			PackageID:     input.PackageID,
			Destination:   input.Destination,
			Duration:      input.Duration,
			Tags:          input.Tags,
			OriginalPrice: input.BasePrice,
			FinalPrice:    input.BasePrice,
			Conversion: domain.ConversionMetrics{
				Bookings: input.Bookings,
				Visitors: input.Visitors,
			},
			CreatedAt: s.now(),
		}
		s.append(ctx, record)
		s.publish(ctx, "package_passthrough", record)

		return &PackageQuote{
			OriginalPrice: input.BasePrice,
			FinalPrice:    input.BasePrice,
		}, nil
	}

	finalPrice, factors, rate := s.rules.pricePackage(input)

	record := &domain.QuoteRecord{
		ID:            uuid.NewString(),
		Kind:          domain.QuoteKindPackage,
		PackageID:     input.PackageID,
		Destination:   input.Destination,
		Duration:      input.Duration,
		Tags:          input.Tags,
		OriginalPrice: input.BasePrice,
		FinalPrice:    finalPrice,
		Factors:       &factors,
		Conversion: domain.ConversionMetrics{
			Bookings:       input.Bookings,
			Visitors:       input.Visitors,
			ConversionRate: rate,
		},
		CreatedAt: s.now(),
	}
	s.append(ctx, record)
	s.publish(ctx, "package_quoted", record)

	return &PackageQuote{
		OriginalPrice:  input.BasePrice,
		FinalPrice:     finalPrice,
		Factors:        &factors,
		ConversionRate: rate,
	}, nil
}

// History returns the most recent audit records, newest first. Results are
// served from the cache when fresh.
func (s *PricingService) History(ctx context.Context, limit int) ([]domain.QuoteRecord, error) {
	if limit <= 0 || limit > s.historyLimit {
		limit = s.historyLimit
	}

	if s.cache != nil {
		if cached, err := s.cache.GetHistory(ctx); err == nil && cached != nil {
			if len(cached) > limit {
				cached = cached[:limit]
			}
			return cached, nil
		}
	}

	records, err := s.audit.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetHistory(ctx, records)
	}
	return records, nil
}

// append is fire-and-forget: a failed audit write never fails the quote.
func (s *PricingService) append(ctx context.Context, record *domain.QuoteRecord) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Append(ctx, record); err != nil {
		log.Printf("WARNING: failed to append quote record %s: %v", record.ID, err)
	}
}

func (s *PricingService) publish(ctx context.Context, eventType string, record *domain.QuoteRecord) {
	if s.producer == nil || s.quotesTopic == "" {
		return
	}
	event := kafka.QuoteEvent{
		Type:          eventType,
		QuoteID:       record.ID,
		Kind:          string(record.Kind),
		Destination:   record.Destination,
		OriginalPrice: record.OriginalPrice,
		FinalPrice:    record.FinalPrice,
		CreatedAt:     record.CreatedAt,
	}
	if err := s.producer.Publish(ctx, s.quotesTopic, record.ID, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for quote %s: %v", eventType, record.ID, err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.PublishWithRetry(ctx, s.notificationsTopic, record.ID, event, notificationPublishRetries); err != nil {
			log.Printf("WARNING: failed to publish notification for quote %s: %v", record.ID, err)
		}
	}
}

var _ PricingUseCase = (*PricingService)(nil)
